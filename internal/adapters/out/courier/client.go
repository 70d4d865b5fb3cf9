// Package courier is the client of the courier bulk-order API. It holds the
// service credentials and is used both by the submit use case and by the
// proxy endpoint.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/metrics"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds one bulk-order exchange.
	DefaultTimeout = 30 * time.Second

	bulkOrderPath   = "create_order/bulk-order"
	apiKeyHeader    = "Api-Key"
	secretKeyHeader = "Secret-Key"
	maxBodyBytes    = 1 << 20
	maxDetailBytes  = 2048
)

// Config locates the bulk-order endpoint and carries the credentials.
type Config struct {
	BaseURL   string
	APIKey    string
	SecretKey string
	Timeout   time.Duration
}

// Response is an upstream answer as received.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client implements ports.OrderGateway against the courier directly.
type Client struct {
	endpoint  string
	apiKey    string
	secretKey string
	http      *http.Client
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. The client's Timeout is kept as given.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) { cl.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient validates cfg. Credentials are required; they are never logged.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	var baseErr error
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		baseErr = errs.NewValueIsRequiredError("courier base url")
	} else if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		baseErr = errs.NewValueIsInvalidErrorWithCause("courier base url", fmt.Errorf("%q is not an absolute url", base))
	}
	var keyErr, secretErr error
	if strings.TrimSpace(cfg.APIKey) == "" {
		keyErr = errs.NewValueIsRequiredError("courier api key")
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		secretErr = errs.NewValueIsRequiredError("courier secret key")
	}
	if err := errors.Join(baseErr, keyErr, secretErr); err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(base, bulkOrderPath)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("courier base url", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		endpoint:  endpoint,
		apiKey:    cfg.APIKey,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: timeout},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("component", "courier-client"))
	return c, nil
}

// Submit sends the composed orders and maps the answer to the gateway
// contract.
func (c *Client) Submit(ctx context.Context, orders []order.Payload) (json.RawMessage, error) {
	raw, err := json.Marshal(orders)
	if err != nil {
		return nil, order.NewExchangeError(fmt.Errorf("encode orders: %w", err))
	}

	started := time.Now()
	resp, err := c.Forward(ctx, raw)
	if err != nil {
		c.metrics.ObserveCourierCall(metrics.OutcomeFailed, time.Since(started))
		c.logger.Warn("courier exchange failed", zap.Error(err), zap.Int("orders", len(orders)))
		return nil, order.NewExchangeError(err)
	}

	if !resp.OK() {
		c.metrics.ObserveCourierCall(metrics.OutcomeRejected, time.Since(started))
		detail := RejectionDetail(resp)
		c.logger.Warn("courier rejected orders",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
			zap.Int("orders", len(orders)),
		)
		return nil, order.NewRejectedError(resp.StatusCode, detail)
	}

	if !json.Valid(resp.Body) {
		c.metrics.ObserveCourierCall(metrics.OutcomeFailed, time.Since(started))
		c.logger.Warn("courier answered with malformed json", zap.Int("status", resp.StatusCode))
		return nil, order.NewExchangeError(errors.New("courier response is not valid json"))
	}

	c.metrics.ObserveCourierCall(metrics.OutcomeAccepted, time.Since(started))
	c.logger.Info("courier accepted orders", zap.Int("orders", len(orders)))
	return json.RawMessage(resp.Body), nil
}

// Forward posts {"data": orders} with the credentials attached and returns
// the upstream answer whatever its status. An error means no answer was read.
func (c *Client) Forward(ctx context.Context, orders json.RawMessage) (Response, error) {
	body, err := json.Marshal(struct {
		Data json.RawMessage `json:"data"`
	}{Data: orders})
	if err != nil {
		return Response{}, fmt.Errorf("encode bulk-order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set(secretKeyHeader, c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("read courier response: %w", err)
	}
	return Response{StatusCode: resp.StatusCode, Body: payload}, nil
}

// RejectionDetail extracts the text to show for a non-2xx answer: the
// "message" (or "error") string of a JSON object body, otherwise the body
// itself, otherwise the status text.
func RejectionDetail(resp Response) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Message); msg != "" {
			return truncate(msg)
		}
		if msg := strings.TrimSpace(envelope.Error); msg != "" {
			return truncate(msg)
		}
	}
	if text := strings.TrimSpace(string(resp.Body)); text != "" {
		return truncate(text)
	}
	return http.StatusText(resp.StatusCode)
}

func truncate(s string) string {
	if len(s) <= maxDetailBytes {
		return s
	}
	cut := maxDetailBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
