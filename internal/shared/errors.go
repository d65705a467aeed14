package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Classification errors
	ErrUnclassifiablePath = fmt.Errorf("path does not match any content type")
	ErrUnsupportedType    = fmt.Errorf("content type has no registered handler")

	// Sync errors
	ErrHandlerFailed = fmt.Errorf("content handler failed")
	ErrCleanup       = fmt.Errorf("failed to clean existing directories")
	ErrTracking      = fmt.Errorf("failed to write tracking metadata")

	// Journal errors
	ErrSessionNotFound = fmt.Errorf("session not found")

	// Remote node errors
	ErrAuthFailed         = fmt.Errorf("authentication failed")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrNotFound           = fmt.Errorf("remote item not found")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
