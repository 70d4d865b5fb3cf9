// Package http exposes the checkout use cases over echo.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"checkout/internal/adapters/out/courier"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/receipt"
	"checkout/internal/core/domain/model/shipping"
	"checkout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

// Use case contracts the server depends on.
type (
	StartCheckoutHandler interface {
		Handle(ctx context.Context, command commands.StartCheckoutCommand) (kernel.UUID, error)
	}
	ChangeQuantityHandler interface {
		Handle(ctx context.Context, command commands.ChangeQuantityCommand) error
	}
	SelectAddressHandler interface {
		Handle(ctx context.Context, command commands.SelectAddressCommand) error
	}
	UpdateDeliveryDetailsHandler interface {
		Handle(ctx context.Context, command commands.UpdateDeliveryDetailsCommand) error
	}
	SelectShippingTierHandler interface {
		Handle(ctx context.Context, command commands.SelectShippingTierCommand) error
	}
	SubmitOrderHandler interface {
		Handle(ctx context.Context, command commands.SubmitOrderCommand) (commands.SubmitOrderResponse, error)
	}
	DismissConfirmationHandler interface {
		Handle(ctx context.Context, command commands.DismissConfirmationCommand) error
	}
	CheckoutSummaryHandler interface {
		Handle(ctx context.Context, query queries.GetCheckoutSummaryQuery) (queries.GetCheckoutSummaryQueryResponse, error)
	}
	ReceiptHandler interface {
		Handle(ctx context.Context, query queries.GetReceiptQuery) (receipt.Document, error)
	}
	DivisionsHandler interface {
		Handle(query queries.ListDivisionsQuery) ([]string, error)
	}
	// OrderForwarder relays a bulk order to the courier with the service
	// credentials attached.
	OrderForwarder interface {
		Forward(ctx context.Context, orders json.RawMessage) (courier.Response, error)
	}
)

// Handlers groups the use cases served by Server.
type Handlers struct {
	StartCheckout         StartCheckoutHandler
	ChangeQuantity        ChangeQuantityHandler
	SelectAddress         SelectAddressHandler
	UpdateDeliveryDetails UpdateDeliveryDetailsHandler
	SelectShippingTier    SelectShippingTierHandler
	SubmitOrder           SubmitOrderHandler
	DismissConfirmation   DismissConfirmationHandler
	CheckoutSummary       CheckoutSummaryHandler
	Receipt               ReceiptHandler
	Divisions             DivisionsHandler

	// Forwarder backs POST /api/order. Without it the route answers 500.
	Forwarder OrderForwarder
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

// NewServer creates a server over the given use cases.
func NewServer(h Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{h: h, logger: logger.With(zap.String("component", "http"))}
}

// StartCheckout handles POST /api/v1/sessions.
func (s *Server) StartCheckout(c echo.Context) error {
	var req StartCheckoutRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	items, err := req.toCommandItems()
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewStartCheckoutCommand(items)
	if err != nil {
		return s.writeError(c, err)
	}

	id, err := s.h.StartCheckout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.respondSummary(c, http.StatusCreated, id)
}

// GetCheckoutSummary handles GET /api/v1/sessions/{sessionId}.
func (s *Server) GetCheckoutSummary(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.respondSummary(c, http.StatusOK, id)
}

// ChangeQuantity handles POST /api/v1/sessions/{sessionId}/lines/{lineId}/quantity.
func (s *Server) ChangeQuantity(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req ChangeQuantityRequest
	if ok, bindErr := bind(c, &req); !ok {
		return bindErr
	}

	change, err := checkout.ParseQuantityChange(req.Change)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewChangeQuantityCommand(id, c.Param("lineId"), change)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.h.ChangeQuantity.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondSummary(c, http.StatusOK, id)
}

// SelectAddress handles PUT /api/v1/sessions/{sessionId}/address.
func (s *Server) SelectAddress(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req SelectAddressRequest
	if ok, bindErr := bind(c, &req); !ok {
		return bindErr
	}

	level, err := address.ParseLevel(req.Level)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewSelectAddressCommand(id, level, req.Value)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.h.SelectAddress.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondSummary(c, http.StatusOK, id)
}

// UpdateDeliveryDetails handles PUT /api/v1/sessions/{sessionId}/details.
func (s *Server) UpdateDeliveryDetails(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req DeliveryDetailsRequest
	if ok, bindErr := bind(c, &req); !ok {
		return bindErr
	}

	cmd, err := commands.NewUpdateDeliveryDetailsCommand(id, checkout.DeliveryDetails{
		FullName:      req.FullName,
		Phone:         req.Phone,
		StreetAddress: req.StreetAddress,
		PostalCode:    req.PostalCode,
		Notes:         req.Notes,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.h.UpdateDeliveryDetails.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondSummary(c, http.StatusOK, id)
}

// SelectShippingTier handles PUT /api/v1/sessions/{sessionId}/shipping-tier.
func (s *Server) SelectShippingTier(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req SelectShippingTierRequest
	if ok, bindErr := bind(c, &req); !ok {
		return bindErr
	}

	tier, err := shipping.ParseTier(req.Tier)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewSelectShippingTierCommand(id, tier)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.h.SelectShippingTier.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondSummary(c, http.StatusOK, id)
}

// SubmitOrder handles POST /api/v1/sessions/{sessionId}/submit.
func (s *Server) SubmitOrder(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var lang string
	if err = runtime.BindQueryParameter("form", true, false, "lang", c.QueryParams(), &lang); err != nil {
		return badRequest(c, "Invalid format for parameter lang")
	}
	language, err := receipt.ParseLanguage(lang)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewSubmitOrderCommand(id, language)
	if err != nil {
		return s.writeError(c, err)
	}

	res, err := s.h.SubmitOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, newSubmitOrderResponse(res))
}

// DismissConfirmation handles DELETE /api/v1/sessions/{sessionId}/confirmation.
func (s *Server) DismissConfirmation(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewDismissConfirmationCommand(id)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.h.DismissConfirmation.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondSummary(c, http.StatusOK, id)
}

// ListDivisions handles GET /api/v1/divisions.
func (s *Server) ListDivisions(c echo.Context) error {
	divisions, err := s.h.Divisions.Handle(queries.NewListDivisionsQuery())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, nonNil(divisions))
}

// GetReceipt handles GET /api/v1/orders/{invoice}/receipt.
func (s *Server) GetReceipt(c echo.Context) error {
	var invoice string
	if err := runtime.BindStyledParameterWithLocation("simple", false, "invoice", runtime.ParamLocationPath, c.Param("invoice"), &invoice); err != nil {
		return badRequest(c, "Invalid format for parameter invoice")
	}
	var sinkName, lang string
	if err := runtime.BindQueryParameter("form", true, false, "sink", c.QueryParams(), &sinkName); err != nil {
		return badRequest(c, "Invalid format for parameter sink")
	}
	if err := runtime.BindQueryParameter("form", true, false, "lang", c.QueryParams(), &lang); err != nil {
		return badRequest(c, "Invalid format for parameter lang")
	}

	sink, err := receipt.ParseSink(sinkName)
	if err != nil {
		return s.writeError(c, err)
	}
	language, err := receipt.ParseLanguage(lang)
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetReceiptQuery(invoice, sink, language)
	if err != nil {
		return s.writeError(c, err)
	}

	doc, err := s.h.Receipt.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, doc.Disposition())
	header.Set(echo.HeaderContentLength, strconv.Itoa(len(doc.Body)))
	return c.Blob(http.StatusOK, receipt.ContentType, doc.Body)
}

func (s *Server) respondSummary(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetCheckoutSummaryQuery(id)
	if err != nil {
		return s.writeError(c, err)
	}
	summary, err := s.h.CheckoutSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(status, newCheckoutSummary(summary))
}

// bind decodes and validates the body. When it reports false the 400 has
// been written and the returned error is that of the write.
func bind(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, badRequest(c, "Invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return false, badRequest(c, err.Error())
	}
	return true, nil
}

func sessionID(c echo.Context) (kernel.UUID, error) {
	raw := strings.TrimSpace(c.Param("sessionId"))
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("sessionId")
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("sessionId", err)
	}
	return id, nil
}
