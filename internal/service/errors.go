package service

import (
	"github.com/pkg/errors"
)

// ErrValidation matches every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError is a user input problem detected before any remote call.
// Message is shown to the operator as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// OperationError is a failed remote operation. It reads "Failed to <action>: <cause>".
type OperationError struct {
	Action string
	Err    error
}

func (e *OperationError) Error() string {
	return "Failed to " + e.Action + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error { return e.Err }

func failed(action string, err error) error {
	return &OperationError{Action: action, Err: err}
}

// Success messages shown after a completed flow.
const (
	MsgImageUploaded  = "Image uploaded successfully!"
	MsgImageDeleted   = "Image deleted successfully!"
	MsgMenuUploaded   = "Menu uploaded successfully!"
	MsgMenuDeleted    = "Menu deleted successfully!"
	MsgInstagramSaved = "Instagram credentials saved successfully!"
	MsgJobCreated     = "Job posting created successfully!"
	MsgJobDeleted     = "Job posting deleted successfully!"
)

// Validation messages.
const (
	msgSelectImage     = "Please select an image file"
	msgInvalidImage    = "Please select a valid image file"
	msgImageTooLarge   = "Image size must be less than 5MB"
	msgSelectFile      = "Please select a file"
	msgInvalidMenuFile = "Please select a valid image or PDF file"
	msgMenuTooLarge    = "File size must be less than 10MB"
	msgInvalidMenuType = "Please select a valid menu type"
	msgInstagramFields = "Please fill in both fields"
	msgJobFields       = "Please fill in the job title and description"
	msgInvalidJobType  = "Please select a valid job type"
)
