package gateway

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/CloudArcade/GameGate/pkg/config"
	"github.com/CloudArcade/GameGate/pkg/domain/session"
	"github.com/CloudArcade/GameGate/pkg/infra/httpx"
	"github.com/CloudArcade/GameGate/pkg/infra/prometheus"
)

const (
	sessionsPath     = "/1.0/sessions"
	applicationsPath = "/1.0/applications/"

	breakerCooldown    = 30 * time.Second
	breakerMaxFailures = 5
)

// Client is the single point of outbound communication with the upstream
// session gateway. Implementations must be safe for concurrent use.
type Client interface {
	// MakeRequest issues a request against the gateway and returns the
	// transport-level status code and raw body without interpreting either.
	// body may be raw bytes or any JSON-encodable value.
	MakeRequest(ctx context.Context, method, path string, headers map[string]string, body interface{}) (int, []byte, error)
	CreateSession(ctx context.Context, data session.CreateRequest) (*Response, error)
	ListApplications(ctx context.Context) (*Response, error)
}

type client struct {
	logger        *logrus.Logger
	baseURL       string
	token         string
	timeout       time.Duration
	retryAttempts int
	httpClient    *fasthttp.Client
	breaker       httpx.CircuitBreaker

	// backoff yields the delay before retry attempt n (1-based);
	// overridable in tests.
	backoff func(attempt int) time.Duration
}

// safe methods are assumed idempotent and eligible for automatic retry.
var safeMethods = map[string]bool{
	fasthttp.MethodGet:     true,
	fasthttp.MethodHead:    true,
	fasthttp.MethodOptions: true,
}

func NewClient(cfg config.GatewayConfig, logger *logrus.Logger) Client {
	httpClient := &fasthttp.Client{
		ReadTimeout:              cfg.Timeout,
		WriteTimeout:             cfg.Timeout,
		MaxConnsPerHost:          512,
		MaxIdleConnDuration:      120 * time.Second,
		NoDefaultUserAgentHeader: true,
	}

	if cfg.InsecureSkipVerify {
		// The gateway usually terminates TLS with a self-signed certificate.
		httpClient.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &client{
		logger:        logger,
		baseURL:       strings.TrimSuffix(cfg.URL, "/"),
		token:         cfg.Token,
		timeout:       cfg.Timeout,
		retryAttempts: cfg.RetryAttempts,
		httpClient:    httpClient,
		breaker:       httpx.NewCircuitBreaker("gateway", breakerCooldown, breakerMaxFailures),
		backoff:       expBackoff,
	}
}

// expBackoff doubles the delay each retry: 1s, 2s, 4s, ...
func expBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * time.Second
}

func (c *client) MakeRequest(
	ctx context.Context,
	method, path string,
	headers map[string]string,
	body interface{},
) (int, []byte, error) {
	encoded, err := encodeBody(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	uri := c.baseURL + path

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	if len(encoded) > 0 {
		req.SetBodyRaw(encoded)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	// Always ours, regardless of what the caller supplied.
	req.Header.Set(fasthttp.HeaderAuthorization, "macaroon root="+c.token)
	req.Header.Set(fasthttp.HeaderContentType, "application/json")

	maxAttempts := 1
	if safeMethods[method] {
		maxAttempts = 1 + c.retryAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			prometheus.UpstreamRetries.WithLabelValues(method, path).Inc()
			select {
			case <-time.After(c.backoff(attempt - 1)):
			case <-ctx.Done():
				return 0, nil, ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}

		start := time.Now()
		lastErr = c.breaker.Execute(func() error {
			return c.httpClient.DoDeadline(req, resp, deadline(ctx, c.timeout))
		})
		if prometheus.Config.EnableUpstreamLatency {
			prometheus.UpstreamLatency.WithLabelValues(method, path).
				Observe(float64(time.Since(start).Milliseconds()))
		}

		if lastErr != nil {
			c.logger.WithError(lastErr).WithFields(logrus.Fields{
				"method":  method,
				"path":    path,
				"attempt": attempt,
			}).Warn("gateway request failed")
			continue
		}

		status := resp.StatusCode()
		if status >= fasthttp.StatusInternalServerError && attempt < maxAttempts {
			c.logger.WithFields(logrus.Fields{
				"method":  method,
				"path":    path,
				"status":  status,
				"attempt": attempt,
			}).Warn("gateway returned server error, retrying")
			continue
		}

		respBody := make([]byte, len(resp.Body()))
		copy(respBody, resp.Body())
		return status, respBody, nil
	}

	return 0, nil, fmt.Errorf("request to %s failed: %w", uri, lastErr)
}

func (c *client) CreateSession(ctx context.Context, data session.CreateRequest) (*Response, error) {
	_, body, err := c.MakeRequest(
		ctx,
		fasthttp.MethodPost,
		sessionsPath,
		map[string]string{fasthttp.HeaderContentType: "application/json"},
		data,
	)
	if err != nil {
		return nil, err
	}
	return parseResponse(body)
}

func (c *client) ListApplications(ctx context.Context) (*Response, error) {
	_, body, err := c.MakeRequest(ctx, fasthttp.MethodGet, applicationsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return parseResponse(body)
}

func encodeBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	default:
		return json.Marshal(b)
	}
}

func deadline(ctx context.Context, timeout time.Duration) time.Time {
	d := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}
