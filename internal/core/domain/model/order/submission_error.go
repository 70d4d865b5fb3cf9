package order

import (
	"errors"
	"fmt"
)

// ErrSubmissionFailed is matched by every *SubmissionError.
var ErrSubmissionFailed = errors.New("order submission failed")

// GenericSubmissionMessage is surfaced when the exchange broke before a
// readable upstream answer arrived.
const GenericSubmissionMessage = "Failed to place order. Please try again."

// SubmissionError is an upstream rejection or a failed exchange with the
// courier. StatusCode is zero when no HTTP answer was received.
type SubmissionError struct {
	StatusCode int
	Detail     string
	Cause      error
}

// NewRejectedError reports a non-2xx upstream answer.
func NewRejectedError(statusCode int, detail string) *SubmissionError {
	return &SubmissionError{StatusCode: statusCode, Detail: detail}
}

// NewExchangeError reports a network, timeout or decoding failure.
func NewExchangeError(cause error) *SubmissionError {
	return &SubmissionError{Detail: GenericSubmissionMessage, Cause: cause}
}

func (e *SubmissionError) Error() string {
	msg := ErrSubmissionFailed.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: upstream status %d", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *SubmissionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrSubmissionFailed}
	}
	return []error{ErrSubmissionFailed, e.Cause}
}

// UserMessage is the text shown to the buyer.
func (e *SubmissionError) UserMessage() string {
	if e.Detail == "" {
		return GenericSubmissionMessage
	}
	return e.Detail
}
