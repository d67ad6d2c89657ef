package domain

import "errors"

var (
	ErrValidation        = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrPersistence       = errors.New("could not persist catalog")
	ErrNotConfigured     = errors.New("server not configured")
	ErrTestTokenRequired = errors.New("test access token required outside production")
	ErrMissingInitPoint  = errors.New("payment provider response has no init_point")
)

// Machine-readable codes sent alongside the error message.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeAdminNotConfigured = "ADMIN_TOKEN_NOT_CONFIGURED"
	CodeMPNotConfigured    = "MP_ACCESS_TOKEN_NOT_CONFIGURED"
	CodeUseTestAccessToken = "USE_TEST_ACCESS_TOKEN"
	CodeProviderError      = "PROVIDER_ERROR"
	CodeMissingRedirectURL = "MISSING_INIT_POINT"
)

// ErrorBody is the JSON shape of every error reply. Code is omitted when the error
// has no machine-readable code (plain 404 and 409).
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
