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

	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ProxyClient implements ports.OrderGateway through a remote proxy boundary
// that owns the credentials. It posts {"orders": [...]} and interprets the
// proxy's 200 / 500 {"error": ...} contract.
type ProxyClient struct {
	endpoint string
	http     *http.Client
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewProxyClient targets proxyURL, e.g. "https://shop.example/api/order".
func NewProxyClient(proxyURL string, timeout time.Duration, opts ...Option) (*ProxyClient, error) {
	proxyURL = strings.TrimSpace(proxyURL)
	u, err := url.Parse(proxyURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("proxy url", fmt.Errorf("%q is not an absolute url", proxyURL))
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// Options are shared with Client.
	base := &Client{http: &http.Client{Timeout: timeout}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(base)
	}

	return &ProxyClient{
		endpoint: proxyURL,
		http:     base.http,
		metrics:  base.metrics,
		logger:   base.logger.With(zap.String("component", "proxy-client")),
	}, nil
}

// Submit posts the orders to the proxy.
func (p *ProxyClient) Submit(ctx context.Context, orders []order.Payload) (json.RawMessage, error) {
	body, err := json.Marshal(struct {
		Orders []order.Payload `json:"orders"`
	}{Orders: orders})
	if err != nil {
		return nil, order.NewExchangeError(fmt.Errorf("encode orders: %w", err))
	}

	started := time.Now()
	resp, err := p.post(ctx, body)
	if err != nil {
		p.metrics.ObserveCourierCall(metrics.OutcomeFailed, time.Since(started))
		p.logger.Warn("proxy exchange failed", zap.Error(err))
		return nil, order.NewExchangeError(err)
	}

	if !resp.OK() {
		p.metrics.ObserveCourierCall(metrics.OutcomeRejected, time.Since(started))
		detail := proxyErrorDetail(resp)
		p.logger.Warn("proxy reported failure", zap.Int("status", resp.StatusCode), zap.String("detail", detail))
		return nil, order.NewRejectedError(resp.StatusCode, detail)
	}

	if !json.Valid(resp.Body) {
		p.metrics.ObserveCourierCall(metrics.OutcomeFailed, time.Since(started))
		return nil, order.NewExchangeError(errors.New("proxy response is not valid json"))
	}

	p.metrics.ObserveCourierCall(metrics.OutcomeAccepted, time.Since(started))
	return json.RawMessage(resp.Body), nil
}

func (p *ProxyClient) post(ctx context.Context, body []byte) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("read proxy response: %w", err)
	}
	return Response{StatusCode: resp.StatusCode, Body: payload}, nil
}

// proxyErrorDetail unwraps {"error": X}. X is the upstream body when the
// courier answered, or a message string.
func proxyErrorDetail(resp Response) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err == nil && len(envelope.Error) > 0 {
		var text string
		if json.Unmarshal(envelope.Error, &text) == nil {
			if text = strings.TrimSpace(text); text != "" {
				return truncate(text)
			}
		}
		return RejectionDetail(Response{StatusCode: resp.StatusCode, Body: envelope.Error})
	}
	return RejectionDetail(resp)
}
