package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/receipt"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"

	"go.uber.org/zap"
)

// DefaultSubmitTimeout bounds the wait for the courier when none is configured.
const DefaultSubmitTimeout = 30 * time.Second

// SubmitLeaseMargin is added to the courier timeout to form the submit lease.
const SubmitLeaseMargin = time.Minute

// SubmitLease returns how long a session may stay Submitting before it is
// considered abandoned. No call bounded by timeout outlives it.
func SubmitLease(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	return timeout + SubmitLeaseMargin
}

var ErrSubmitOrderDependencyIsRequired = errors.New("submit order handler dependency is required")

// ErrOrderNotRecorded is returned when the courier accepted an order that
// could not be archived afterwards. The session stays Submitting and is
// marked unrecorded, so neither the lease nor the sweep releases it.
var ErrOrderNotRecorded = errors.New("order was accepted but not recorded")

// SubmitOrderResponse is the outcome of an accepted submission.
//
// Receipt is nil and ReceiptError is set when rendering failed; the order is
// accepted and archived either way.
type SubmitOrderResponse struct {
	Result       *order.Result
	Upstream     json.RawMessage
	Receipt      *receipt.Document
	ReceiptError string
}

// SubmitOrderCommandHandler runs the submission protocol of a session.
//
// Protocol:
//   - Validate and compose in a transaction, then persist the move to
//     Submitting with the version check; a concurrent submit loses the race
//   - Call the courier outside any transaction, detached from the caller's
//     cancellation and bounded by the timeout
//   - On failure persist Failed with the message; draft and cart stay as they were
//   - A session left Submitting past the lease is released to Failed by the
//     next submit, unless it holds an accepted but unrecorded order
//   - On success archive the result, reset the draft, clear the cart
//   - Publish order.placed and render the receipt, both best effort
type SubmitOrderCommandHandler struct {
	uowFactory UoWFactory
	composer   *services.OrderComposer
	pricing    services.PricingEngine
	gateway    ports.OrderGateway
	receipts   ports.ReceiptRenderer
	events     ports.OrderEventPublisher
	timeout    time.Duration
	lease      time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewSubmitOrderCommandHandler wires the handler. A non-positive timeout
// means DefaultSubmitTimeout and a nil logger means no logging.
func NewSubmitOrderCommandHandler(
	uowFactory UoWFactory,
	composer *services.OrderComposer,
	gateway ports.OrderGateway,
	receipts ports.ReceiptRenderer,
	events ports.OrderEventPublisher,
	timeout time.Duration,
	logger *zap.Logger,
) (SubmitOrderCommandHandler, error) {
	if uowFactory == nil || composer == nil || gateway == nil || receipts == nil || events == nil {
		return SubmitOrderCommandHandler{}, ErrSubmitOrderDependencyIsRequired
	}
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		composer:   composer,
		pricing:    services.NewPricingEngine(),
		gateway:    gateway,
		receipts:   receipts,
		events:     events,
		timeout:    timeout,
		lease:      SubmitLease(timeout),
		now:        time.Now,
		logger:     logger.With(zap.String("component", "submit-order")),
	}, nil
}

// WithClock returns a copy of the handler reading time from now.
func (h SubmitOrderCommandHandler) WithClock(now func() time.Time) SubmitOrderCommandHandler {
	h.now = now
	return h
}

// Handle submits the order of the session in command.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, command SubmitOrderCommand) (SubmitOrderResponse, error) {
	if err := command.Validate(); err != nil {
		return SubmitOrderResponse{}, err
	}

	session, composition, err := h.begin(ctx, command)
	if err != nil {
		return SubmitOrderResponse{}, err
	}

	// The courier call and the outcome write ignore client cancellation.
	detached := context.WithoutCancel(ctx)
	log := h.logger.With(
		zap.String("session", session.ID().String()),
		zap.String("invoice", composition.Invoice().ID()),
	)

	callCtx, cancel := context.WithTimeout(detached, h.timeout)
	upstream, submitErr := h.gateway.Submit(callCtx, []order.Payload{composition.Payload()})
	cancel()

	if submitErr != nil {
		serr := asSubmissionError(submitErr)
		log.Warn("order submission failed", zap.Error(serr))
		if err = h.fail(detached, session, serr.UserMessage()); err != nil {
			log.Error("record failed submission", zap.Error(err))
			return SubmitOrderResponse{}, errors.Join(serr, err)
		}
		return SubmitOrderResponse{}, serr
	}

	result := composition.Result()
	if err = h.complete(detached, session, result); err != nil {
		// The courier has the order; only the local record is missing.
		log.Error("record accepted order", zap.Error(err))
		if markErr := h.markUnrecorded(detached, session, result.Invoice().ID()); markErr != nil {
			log.Error("mark accepted order unrecorded", zap.Error(markErr))
		}
		return SubmitOrderResponse{}, fmt.Errorf("%w: %s: %w", ErrOrderNotRecorded, result.Invoice().ID(), err)
	}
	log.Info("order accepted", zap.String("total", result.Pricing().Total.String()))

	if err = h.events.PublishOrderPlaced(detached, result); err != nil {
		log.Warn("publish order placed", zap.Error(err))
	}

	response := SubmitOrderResponse{Result: result, Upstream: upstream}
	doc, err := h.receipts.Render(result, receipt.Options{Sink: receipt.Display, Language: command.Language()})
	if err != nil {
		log.Error("render receipt", zap.Error(err))
		response.ReceiptError = "The order was placed but its receipt could not be generated."
		return response, nil
	}
	response.Receipt = &doc

	return response, nil
}

// begin validates, composes and persists the move to Submitting.
func (h SubmitOrderCommandHandler) begin(
	ctx context.Context,
	command SubmitOrderCommand,
) (*checkout.Session, *order.Composition, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SessionRepository()
	session, err := repo.Get(ctx, command.SessionID())
	if err != nil {
		return nil, nil, err
	}
	if session.IsSubmitting() {
		if !session.ExpireSubmit(h.now().UTC().Add(-h.lease), order.GenericSubmissionMessage) {
			return nil, nil, checkout.ErrSessionIsSubmitting
		}
		h.logger.Warn("released expired submission", zap.String("session", session.ID().String()))
	}

	pricing := h.pricing.Price(session.Lines(), session.Draft().ShippingTier())
	composition, err := h.composer.Compose(session.Draft(), session.Lines(), pricing)
	if err != nil {
		return nil, nil, err
	}

	if err = session.BeginSubmit(); err != nil {
		return nil, nil, err
	}

	if err = repo.Update(ctx, session); err != nil {
		if errors.Is(err, ports.ErrVersionConflict) {
			return nil, nil, fmt.Errorf("%w: %w", checkout.ErrSessionIsSubmitting, err)
		}
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return session, composition, nil
}

func (h SubmitOrderCommandHandler) fail(ctx context.Context, session *checkout.Session, reason string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := session.FailSubmit(reason); err != nil {
		return err
	}
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h SubmitOrderCommandHandler) complete(ctx context.Context, session *checkout.Session, result *order.Result) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, result); err != nil {
		return err
	}
	if err := session.CompleteSubmit(result.Invoice().ID()); err != nil {
		return err
	}
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// markUnrecorded reloads the session, since complete may have moved the
// in-memory copy past Submitting.
func (h SubmitOrderCommandHandler) markUnrecorded(ctx context.Context, session *checkout.Session, invoiceID string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SessionRepository()
	stored, err := repo.Get(ctx, session.ID())
	if err != nil {
		return err
	}
	if err = stored.MarkUnrecorded(invoiceID); err != nil {
		return err
	}
	if err = repo.Update(ctx, stored); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func asSubmissionError(err error) *order.SubmissionError {
	var serr *order.SubmissionError
	if errors.As(err, &serr) {
		return serr
	}
	return order.NewExchangeError(err)
}
