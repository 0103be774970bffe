package intake

import "errors"

var (
	// ErrNotConfigured indicates the GitHub App credentials are missing from
	// the deployment. It is fatal for every submission until fixed.
	ErrNotConfigured = errors.New("GitHub App credentials are not configured")
)

// Outward error messages. Anything beyond validation detail stays in the logs.
const (
	msgValidationFailed = "Validation failed"
	msgNotConfigured    = "Server not configured"
	msgServerError      = "Server error"
)
