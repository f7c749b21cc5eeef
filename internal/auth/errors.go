package auth

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMissingCredentials is returned when email or password is empty. No call is made to the provider.
	ErrMissingCredentials = errors.New("Please fill in all fields")

	// ErrAccessDenied is returned when the provider authenticated an identity that is not the administrator.
	ErrAccessDenied = errors.New("Access denied. Please contact administrator.")

	// ErrInvalidSession is returned for missing, expired or tampered session tokens.
	ErrInvalidSession = errors.New("invalid session")
)

// ProviderError is a sign-in failure reported by the identity provider.
type ProviderError struct {
	// Code is the provider error code, e.g. EMAIL_NOT_FOUND.
	Code string
}

func (e *ProviderError) Error() string {
	return "identity provider: " + e.Code
}

// Provider error codes.
const (
	CodeEmailNotFound      = "EMAIL_NOT_FOUND"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInvalidCredentials = "INVALID_LOGIN_CREDENTIALS"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeUserDisabled       = "USER_DISABLED"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS_TRY_LATER"
	CodeOperationNotAllow  = "OPERATION_NOT_ALLOWED"
	CodeInvalidAPIKey      = "INVALID_API_KEY"
	CodeNetworkFailure     = "NETWORK_REQUEST_FAILED"
)

var providerMessages = map[string]string{
	CodeEmailNotFound:      "User account not found. Please check the account exists with the identity provider.",
	CodeInvalidPassword:    "Invalid password. Please check your password.",
	CodeInvalidCredentials: "Invalid password. Please check your password.",
	CodeInvalidEmail:       "Invalid email format.",
	CodeUserDisabled:       "This account has been disabled.",
	CodeTooManyAttempts:    "Too many failed attempts. Please try again later.",
	CodeNetworkFailure:     "Network error. Please check your connection.",
	CodeInvalidAPIKey:      "Invalid identity provider API key. Please check your configuration.",
	CodeOperationNotAllow:  "Email/password sign-in is not enabled for this project.",
}

// Message turns a login error into the English message shown on the login page.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		// Codes may carry a detail suffix, e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : Access ..."
		code := strings.TrimSpace(strings.SplitN(pe.Code, ":", 2)[0])
		if msg, ok := providerMessages[code]; ok {
			return msg
		}
		return fmt.Sprintf("Login failed: %s", pe.Code)
	}

	switch {
	case errors.Is(err, ErrMissingCredentials), errors.Is(err, ErrAccessDenied):
		return errors.Cause(err).Error()
	default:
		return "Login failed. Please try again."
	}
}
