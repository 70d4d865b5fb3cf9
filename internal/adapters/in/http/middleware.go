package http

import (
	"errors"
	"net/http"
	"time"

	"checkout/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// requestLogger logs every request at a level derived from its status and
// records it in m.
func requestLogger(logger *zap.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			elapsed := time.Since(start)
			route := c.Path()
			m.ObserveRequest(route, status, elapsed)

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("latency", elapsed),
				zap.Int64("bytes", c.Response().Size),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			}
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("request completed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("request completed", fields...)
			default:
				logger.Info("request completed", fields...)
			}
			return nil
		}
	}
}

// contractValidator rejects requests that do not match doc with a 400.
// Paths outside the contract pass through.
func contractValidator(doc *openapi3.T, skipper middleware.Skipper) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{
		MultiError:         true,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrPathNotFound) || errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return badRequest(c, findErr.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if verr := openapi3filter.ValidateRequest(req.Context(), input); verr != nil {
				return badRequest(c, verr.Error())
			}
			return next(c)
		}
	}, nil
}

var errClientUnidentified = errors.New("client could not be identified")

// rateLimit allows perSecond requests per client IP with the given burst.
func rateLimit(perSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			ip := c.RealIP()
			if ip == "" {
				return "", errClientUnidentified
			}
			return ip, nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusBadRequest, Error{Code: CodeBadRequest, Message: errClientUnidentified.Error()})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, Error{
				Code:    CodeTooManyRequests,
				Message: "Too many requests. Please wait a moment and try again.",
			})
		},
	})
}
