package checkout

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// SubmissionStatus is the state of the most recent submit action of a session.
type SubmissionStatus int

const (
	// UnknownStatus catches uninitialized values.
	UnknownStatus SubmissionStatus = iota

	// Idle means nothing has been submitted since the session started or
	// since the last confirmation was dismissed.
	Idle

	// Submitting means a request is in flight to the courier.
	Submitting

	// Succeeded means the last submission was accepted upstream.
	Succeeded

	// Failed means the last submission was rejected or never arrived.
	Failed
)

func getStatusStrings() map[SubmissionStatus]string {
	return map[SubmissionStatus]string{
		UnknownStatus: "Unknown",
		Idle:          "Idle",
		Submitting:    "Submitting",
		Succeeded:     "Succeeded",
		Failed:        "Failed",
	}
}

// ParseSubmissionStatus is the inverse of String for valid statuses.
func ParseSubmissionStatus(s string) (SubmissionStatus, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != UnknownStatus {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects UnknownStatus and out-of-range values.
func (s SubmissionStatus) Validate() error {
	if s == UnknownStatus {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s SubmissionStatus) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Submit transitions to Submitting. A session that is already Submitting
// cannot start a second submission.
func (s SubmissionStatus) Submit() (SubmissionStatus, error) {
	switch s {
	case Idle, Failed, Succeeded:
		return Submitting, nil
	case Submitting:
		return 0, ErrSessionIsSubmitting
	case UnknownStatus:
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to submit", s))
}

// Succeed transitions Submitting to Succeeded.
func (s SubmissionStatus) Succeed() (SubmissionStatus, error) {
	if s != Submitting {
		return 0, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to succeed", s))
	}
	return Succeeded, nil
}

// Fail transitions Submitting to Failed.
func (s SubmissionStatus) Fail() (SubmissionStatus, error) {
	if s != Submitting {
		return 0, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status to fail", s))
	}
	return Failed, nil
}
