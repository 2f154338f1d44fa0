package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/internal/models"
	"github.com/ejoven/halalan/internal/repository"
	"github.com/ejoven/halalan/pkg/electionapi"
)

// AdminSession is the slice of the admin session store the admin
// service needs.
type AdminSession interface {
	Identity() (models.Admin, bool)
}

// AdminService serves the admin panel: turnout stats from the balloting
// service and the kiosk QR code voters scan to open the ballot on their
// own device.
type AdminService struct {
	log      logger.Logger
	api      electionapi.Client
	session  AdminSession
	settings repository.SettingsStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(log logger.Logger, api electionapi.Client, session AdminSession, settings repository.SettingsStore) *AdminService {
	return &AdminService{
		log:      log,
		api:      api,
		session:  session,
		settings: settings,
	}
}

// Stats fetches the turnout summary with the admin credential.
func (s *AdminService) Stats(ctx context.Context) (models.AdminStats, error) {
	if _, ok := s.session.Identity(); !ok {
		return models.AdminStats{}, ErrAdminRequired
	}
	return s.api.AdminStats(ctx)
}

// KioskQR generates a QR code PNG of the kiosk's ballot URL.
func (s *AdminService) KioskQR(ctx context.Context) ([]byte, error) {
	baseURL, err := s.settings.GetSetting(ctx, "base_url")
	if err != nil || baseURL == "" {
		return nil, fmt.Errorf("base_url not configured")
	}
	ballotURL := strings.TrimSuffix(baseURL, "/") + "/"
	return qrcode.Encode(ballotURL, qrcode.Medium, 256)
}
