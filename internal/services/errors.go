package services

// Service errors
var (
	ErrNotAuthenticated    = &ServiceError{Message: "you must be logged in to vote"}
	ErrIncompleteSelection = &ServiceError{Message: "select both a position and a candidate"}
	ErrAdminRequired       = &ServiceError{Message: "admin authentication required"}
)

// ServiceError represents a service-level error.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
