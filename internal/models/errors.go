package models

import (
	"errors"
	"fmt"
	"strings"
)

// User-facing messages shown in the single result slot
const (
	// MessageIncompleteForm is shown when any form field is empty
	MessageIncompleteForm = "Please fill out all fields."

	// MessageEstimationFailed is shown when the prediction request got no response
	MessageEstimationFailed = "An error occurred while estimating the price."

	// MessageRequestTimedOut is shown when the prediction request exceeded its bound
	MessageRequestTimedOut = "The request timed out."

	// MessageInvalidPrice is shown when a 2xx response carries no numeric price
	MessageInvalidPrice = "The server returned an invalid price."

	// MessageOptionsUnavailable is the single advisory raised when reference lists fail to load
	MessageOptionsUnavailable = "Could not load selection options. Please ensure the server is running."
)

// ErrSubmissionInFlight is returned when submit is called while a prediction request is outstanding
var ErrSubmissionInFlight = errors.New("a price estimate is already in progress")

// GenericHTTPErrorMessage returns the message used when a failed response carries no error text
func GenericHTTPErrorMessage(statusCode int) string {
	return fmt.Sprintf("HTTP error! Status: %d", statusCode)
}

// ValidationError represents an incomplete form caught before any request is sent
type ValidationError struct {
	MissingFields []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.MissingFields))
	for _, f := range e.MissingFields {
		names = append(names, string(f))
	}
	return fmt.Sprintf("validation error: missing fields [%s]", strings.Join(names, ", "))
}

// UserMessage returns the single aggregate message shown to the user
func (e *ValidationError) UserMessage() string {
	return MessageIncompleteForm
}

// NewValidationError creates a new ValidationError
func NewValidationError(missing []Field) *ValidationError {
	return &ValidationError{
		MissingFields: missing,
	}
}

// ReferenceLoadError represents a failure to load one reference list
type ReferenceLoadError struct {
	List       ReferenceList
	StatusCode int
	Message    string
	Err        error
}

func (e *ReferenceLoadError) Error() string {
	if e.StatusCode > 0 {
		if e.Err != nil {
			return fmt.Sprintf("reference load error (%s): HTTP %d - %s (caused by: %v)",
				e.List, e.StatusCode, e.Message, e.Err)
		}
		return fmt.Sprintf("reference load error (%s): HTTP %d - %s", e.List, e.StatusCode, e.Message)
	}

	if e.Err != nil {
		return fmt.Sprintf("reference load error (%s): %s (caused by: %v)", e.List, e.Message, e.Err)
	}
	return fmt.Sprintf("reference load error (%s): %s", e.List, e.Message)
}

func (e *ReferenceLoadError) Unwrap() error {
	return e.Err
}

// NewReferenceLoadError creates a new ReferenceLoadError
func NewReferenceLoadError(list ReferenceList, statusCode int, message string, err error) *ReferenceLoadError {
	return &ReferenceLoadError{
		List:       list,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// SubmissionError represents a failed prediction request.
// UserMessage is what ends up in the FAILED state.
type SubmissionError struct {
	StatusCode  int
	UserMessage string
	Timeout     bool
	Err         error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode > 0 {
		if e.Err != nil {
			return fmt.Sprintf("submission error: HTTP %d - %s (caused by: %v)",
				e.StatusCode, e.UserMessage, e.Err)
		}
		return fmt.Sprintf("submission error: HTTP %d - %s", e.StatusCode, e.UserMessage)
	}

	if e.Err != nil {
		return fmt.Sprintf("submission error: %s (caused by: %v)", e.UserMessage, e.Err)
	}
	return fmt.Sprintf("submission error: %s", e.UserMessage)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewSubmissionError creates a new SubmissionError
func NewSubmissionError(statusCode int, userMessage string, err error) *SubmissionError {
	return &SubmissionError{
		StatusCode:  statusCode,
		UserMessage: userMessage,
		Err:         err,
	}
}

// NewNetworkSubmissionError creates a SubmissionError for a request that got no response
func NewNetworkSubmissionError(err error) *SubmissionError {
	return NewSubmissionError(0, MessageEstimationFailed, err)
}

// NewTimeoutSubmissionError creates a SubmissionError for a request that exceeded its time bound
func NewTimeoutSubmissionError(err error) *SubmissionError {
	e := NewSubmissionError(0, MessageRequestTimedOut, err)
	e.Timeout = true
	return e
}

// UserMessage extracts the message to store in a FAILED state from any error
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.UserMessage()
	}

	var submissionErr *SubmissionError
	if errors.As(err, &submissionErr) && submissionErr.UserMessage != "" {
		return submissionErr.UserMessage
	}

	return MessageEstimationFailed
}
