package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// proxyError is the only failure shape of POST /api/order. Error holds the
// courier's JSON answer when it sent one, otherwise a message.
type proxyError struct {
	Error any `json:"error"`
}

// ForwardOrders handles POST /api/order: the body's orders are forwarded as
// {"data": orders} with the courier credentials attached. A 2xx JSON answer
// is returned unchanged with status 200; every failure is a 500. Credentials
// never appear in a response.
func (s *Server) ForwardOrders(c echo.Context) error {
	if s.h.Forwarder == nil {
		return c.JSON(http.StatusInternalServerError, proxyError{Error: "courier proxy is not configured"})
	}

	var req ForwardOrdersRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, proxyError{Error: "invalid request body"})
	}

	resp, err := s.h.Forwarder.Forward(c.Request().Context(), req.Orders)
	if err != nil {
		s.logger.Warn("courier unreachable", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, proxyError{Error: "courier request failed"})
	}

	if !resp.OK() {
		s.logger.Warn("courier rejected orders", zap.Int("status", resp.StatusCode))
		return c.JSON(http.StatusInternalServerError, proxyError{Error: upstreamDetail(resp.Body, resp.StatusCode)})
	}
	if !json.Valid(resp.Body) {
		s.logger.Warn("courier sent malformed response")
		return c.JSON(http.StatusInternalServerError, proxyError{Error: "malformed courier response"})
	}

	return c.JSONBlob(http.StatusOK, resp.Body)
}

func upstreamDetail(body []byte, status int) any {
	if len(body) > 0 && json.Valid(body) {
		return json.RawMessage(body)
	}
	if len(body) > 0 {
		return string(body)
	}
	return http.StatusText(status)
}
