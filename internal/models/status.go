package models

import "fmt"

// SubmissionStatus represents the current state of an estimation request
type SubmissionStatus string

const (
	// SubmissionStatusIdle indicates no request has been made yet
	SubmissionStatusIdle SubmissionStatus = "IDLE"

	// SubmissionStatusValidating indicates the draft is being checked before sending
	SubmissionStatusValidating SubmissionStatus = "VALIDATING"

	// SubmissionStatusInFlight indicates the prediction request was sent and no response arrived yet
	SubmissionStatusInFlight SubmissionStatus = "IN_FLIGHT"

	// SubmissionStatusSucceeded indicates the backend returned a price
	SubmissionStatusSucceeded SubmissionStatus = "SUCCEEDED"

	// SubmissionStatusFailed indicates validation or the request failed
	SubmissionStatusFailed SubmissionStatus = "FAILED"
)

// IsValid checks if the status is a valid SubmissionStatus value
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusIdle, SubmissionStatusValidating, SubmissionStatusInFlight,
		SubmissionStatusSucceeded, SubmissionStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status ends a submission attempt
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusSucceeded || s == SubmissionStatusFailed
}

// String returns the string representation of the status
func (s SubmissionStatus) String() string {
	return string(s)
}

// SubmissionState is a tagged variant: only SUCCEEDED carries a price and only
// FAILED carries a message. Values are built with the constructors below.
type SubmissionState struct {
	status  SubmissionStatus
	price   float64
	message string
}

// IdleState returns the state of a controller that has not submitted yet
func IdleState() SubmissionState {
	return SubmissionState{status: SubmissionStatusIdle}
}

// ValidatingState returns the transient state entered on submit
func ValidatingState() SubmissionState {
	return SubmissionState{status: SubmissionStatusValidating}
}

// InFlightState returns the state held while the prediction request is outstanding
func InFlightState() SubmissionState {
	return SubmissionState{status: SubmissionStatusInFlight}
}

// SucceededState returns a terminal state carrying the estimated price
func SucceededState(price float64) SubmissionState {
	return SubmissionState{status: SubmissionStatusSucceeded, price: price}
}

// FailedState returns a terminal state carrying a user-facing message
func FailedState(message string) SubmissionState {
	return SubmissionState{status: SubmissionStatusFailed, message: message}
}

// Status returns the active variant
func (s SubmissionState) Status() SubmissionStatus {
	if s.status == "" {
		return SubmissionStatusIdle
	}
	return s.status
}

// Price returns the estimated price when the state is SUCCEEDED
func (s SubmissionState) Price() (float64, bool) {
	if s.status != SubmissionStatusSucceeded {
		return 0, false
	}
	return s.price, true
}

// Message returns the failure message when the state is FAILED
func (s SubmissionState) Message() (string, bool) {
	if s.status != SubmissionStatusFailed {
		return "", false
	}
	return s.message, true
}

// IsInFlight reports whether a prediction request is outstanding
func (s SubmissionState) IsInFlight() bool {
	return s.status == SubmissionStatusInFlight
}

func (s SubmissionState) String() string {
	switch s.Status() {
	case SubmissionStatusSucceeded:
		return fmt.Sprintf("%s{price: %v}", s.status, s.price)
	case SubmissionStatusFailed:
		return fmt.Sprintf("%s{message: %q}", s.status, s.message)
	default:
		return s.Status().String()
	}
}
