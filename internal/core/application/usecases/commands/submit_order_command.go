package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/receipt"
	"checkout/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand sends the session's draft to the courier.
//
// Example:
//
//	cmd, _ := NewSubmitOrderCommand(sessionID, receipt.Bengali)
//	res, err := handler.Handle(ctx, cmd)
//	var verr *checkout.ValidationError
//	var serr *order.SubmissionError
//	switch {
//	case errors.As(err, &verr):
//	    // 422, nothing was sent
//	case errors.Is(err, checkout.ErrSessionIsSubmitting):
//	    // 409, another submit is in flight
//	case errors.As(err, &serr):
//	    // 502, draft preserved for retry
//	case err == nil:
//	    fmt.Println(res.Result.Invoice())
//	}
type SubmitOrderCommand struct {
	sessionID kernel.UUID
	language  receipt.Language

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand validates the session id. The language selects the
// labels of the receipt returned with a successful submission.
func NewSubmitOrderCommand(sessionID kernel.UUID, language receipt.Language) (SubmitOrderCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return SubmitOrderCommand{}, err
	}
	if language == "" {
		language = receipt.Bengali
	}

	return SubmitOrderCommand{
		sessionID: sessionID,
		language:  language,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) SessionID() kernel.UUID     { return c.sessionID }
func (c SubmitOrderCommand) Language() receipt.Language { return c.language }
