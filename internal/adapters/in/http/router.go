package http

import (
	"net/http"

	"checkout/internal/adapters/in/http/openapi"
	"checkout/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const (
	proxyPath = "/api/order"

	defaultSubmitRate  = 1.0
	defaultSubmitBurst = 5
)

type RouterConfig struct {
	Contract *openapi3.T
	Metrics  *metrics.Metrics
	Logger   *zap.Logger

	// SubmitRate and SubmitBurst limit submit and proxy calls per client IP.
	SubmitRate  float64
	SubmitBurst int

	// BodyLimit is an echo size string such as "1M".
	BodyLimit string
}

// NewRouter mounts server and the operational endpoints on a new echo instance.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SubmitRate <= 0 {
		cfg.SubmitRate = defaultSubmitRate
	}
	if cfg.SubmitBurst <= 0 {
		cfg.SubmitBurst = defaultSubmitBurst
	}
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = "1M"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger.With(zap.String("component", "http")), cfg.Metrics))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	if cfg.Contract != nil {
		validate, err := contractValidator(cfg.Contract, func(c echo.Context) bool {
			return c.Path() == proxyPath
		})
		if err != nil {
			return nil, err
		}
		e.Use(validate)

		if err = openapi.RegisterSwagger(cfg.Contract); err != nil {
			return nil, err
		}
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}

	limited := rateLimit(cfg.SubmitRate, cfg.SubmitBurst)

	v1 := e.Group("/api/v1")
	v1.GET("/divisions", server.ListDivisions)
	v1.GET("/orders/:invoice/receipt", server.GetReceipt)

	sessions := v1.Group("/sessions")
	sessions.POST("", server.StartCheckout)
	sessions.GET("/:sessionId", server.GetCheckoutSummary)
	sessions.POST("/:sessionId/lines/:lineId/quantity", server.ChangeQuantity)
	sessions.PUT("/:sessionId/address", server.SelectAddress)
	sessions.PUT("/:sessionId/details", server.UpdateDeliveryDetails)
	sessions.PUT("/:sessionId/shipping-tier", server.SelectShippingTier)
	sessions.POST("/:sessionId/submit", server.SubmitOrder, limited)
	sessions.DELETE("/:sessionId/confirmation", server.DismissConfirmation)

	e.POST(proxyPath, server.ForwardOrders, limited)

	return e, nil
}
