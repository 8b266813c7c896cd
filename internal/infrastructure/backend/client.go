package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-roster/internal/domain/user"
	"github.com/riskibarqy/fantasy-roster/internal/platform/cache"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	userDataPath         = "/api/GetUserData"
	rosterMemberPath     = "/api/roster-member"
	rosterPredictionPath = "/api/RosterPrediction"
	playersByPosPath     = "/api/GetPlayersByPosition/"
	playerComparisonPath = "/api/PlayerComparison/"

	maxBodyPreview = 2048
)

var errBackendTransient = crerr.New("roster backend transient failure")

type ClientConfig struct {
	HTTPClient        *fasthttp.Client
	BaseURL           string
	Timeout           time.Duration
	MaxConnsPerHost   int
	PrincipalCacheTTL time.Duration
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client talks to the roster backend: the source of truth for users,
// leagues and rosters, and the gateway to paid advice.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	principals     *cache.Store[user.Principal]
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("backend")

	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid BACKEND_BASE_URL")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		maxConns := cfg.MaxConnsPerHost
		if maxConns <= 0 {
			maxConns = fasthttp.DefaultMaxConnsPerHost
		}
		httpClient = &fasthttp.Client{
			Name:                     "fantasy-roster",
			MaxConnsPerHost:          maxConns,
			ReadTimeout:              timeout,
			WriteTimeout:             timeout,
			MaxIdleConnDuration:      30 * time.Second,
			NoDefaultUserAgentHeader: true,
		}
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	breaker := resilience.NewCircuitBreaker("roster-backend", breakerCfg, func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		timeout:        timeout,
		logger:         logger,
		breaker:        breaker,
		circuitEnabled: breakerCfg.Enabled,
		principals:     cache.NewStore[user.Principal](cfg.PrincipalCacheTTL),
	}, nil
}

// PurgePrincipals drops expired token lookups.
func (c *Client) PurgePrincipals() int {
	return c.principals.Purge()
}

func (c *Client) BreakerState() resilience.CircuitState {
	return c.breaker.State()
}

type request struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	token, ok := user.AccessTokenFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: missing access token for backend call", usecase.ErrUnauthorized)
	}

	fullURL := c.baseURL + req.path
	if encoded := req.query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	call := func() error {
		var callErr error
		raw, callErr = c.execute(ctx, req, fullURL, token)
		return callErr
	}

	var err error
	if c.circuitEnabled {
		err = c.breaker.Execute(call, isCircuitFailure)
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "backend circuit breaker rejected request", "state", string(c.breaker.State()), "path", req.path)
			return nil, fmt.Errorf("%w: roster backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	} else {
		err = call()
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) execute(ctx context.Context, req request, fullURL, token string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	httpReq := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(httpReq)
	httpResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(httpResp)

	httpReq.SetRequestURI(fullURL)
	httpReq.Header.SetMethod(req.method)
	httpReq.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	httpReq.Header.Set(fasthttp.HeaderAccept, "application/json")
	if len(req.body) > 0 {
		httpReq.Header.SetContentType("application/json")
		httpReq.SetBody(req.body)
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("backend.method", req.method),
			attribute.String("backend.path", req.path),
		)
	}
	c.logger.DebugContext(ctx, "backend request", "curl_preview", buildCurlPreview(req.method, fullURL, req.body))

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	start := time.Now()
	if err := c.httpClient.DoDeadline(httpReq, httpResp, deadline); err != nil {
		c.logger.WarnContext(ctx, "backend request failed", "method", req.method, "path", req.path, "error", err)
		return nil, fmt.Errorf("%w: %w: %s %s: %v", usecase.ErrDependencyUnavailable, errBackendTransient, req.method, req.path, err)
	}

	status := httpResp.StatusCode()
	raw := append([]byte(nil), httpResp.Body()...)
	if span.IsRecording() {
		span.SetAttributes(attribute.Int("backend.status_code", status))
	}
	c.logger.DebugContext(ctx, "backend response",
		"method", req.method,
		"path", req.path,
		"status_code", status,
		"duration", time.Since(start),
	)

	if status >= 200 && status < 300 {
		return raw, nil
	}
	return nil, statusError(req, status, raw)
}

func statusError(req request, status int, raw []byte) error {
	target := req.method + " " + req.path
	body := abbreviateBody(raw)
	switch {
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return fmt.Errorf("%w: %s status=%d", usecase.ErrUnauthorized, target, status)
	case status == fasthttp.StatusNotFound:
		return fmt.Errorf("%w: %s status=%d", usecase.ErrNotFound, target, status)
	case status == fasthttp.StatusPaymentRequired:
		return fmt.Errorf("%w: %s status=%d", usecase.ErrInsufficientTokens, target, status)
	case isRetryableStatus(status):
		return fmt.Errorf("%w: %w: %s status=%d body=%s", usecase.ErrDependencyUnavailable, errBackendTransient, target, status, body)
	default:
		return crerr.Newf("backend %s status=%d body=%s", target, status, body)
	}
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errBackendTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	value := strings.TrimSpace(string(raw))
	if len(value) <= maxBodyPreview {
		return value
	}
	return value[:maxBodyPreview] + "...(" + strconv.Itoa(len(value)-maxBodyPreview) + " more bytes)"
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildCurlPreview(method, fullURL string, body []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart(method)
	appendPart(shellQuote(fullURL))
	appendPart("-H")
	appendPart(shellQuote("Authorization: Bearer ***"))
	if len(body) > 0 {
		appendPart("-H")
		appendPart(shellQuote("Content-Type: application/json"))
		appendPart("-d")
		appendPart(shellQuote(abbreviateBody(body)))
	}

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
