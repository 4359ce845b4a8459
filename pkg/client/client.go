package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/garnizeh/pedidos/pkg/repository"
	"github.com/google/uuid"
)

// IdempotencyHeader carries the key of a mutation that may be retried.
const IdempotencyHeader = "Idempotency-Key"

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client is the HTTP binding of the pedidos REST API. It adds timeouts,
// optional retries for safe calls, idempotency keys and a circuit breaker.
type Client struct {
	cfg    Config
	base   *url.URL
	client *http.Client
	tokens atomic.Value // tokenHolder
	newKey func() string

	// simple circuit breaker state
	failures  int32
	openUntil int64 // unix nano
	closed    int32 // atomic flag for Close()
}

// NewClient creates a new API client.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		cfg:    cfg,
		base:   u,
		client: httpClient,
		newKey: uuid.NewString,
	}
	logger.Info("client: NewClient created", slog.String("base_url", cfg.BaseURL), slog.Duration("timeout", cfg.Timeout))
	return c, nil
}

func NewDefaultClient(cfg Config) (*Client, error) {
	defaultClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

// tokenHolder keeps the stored type constant for atomic.Value.
type tokenHolder struct{ ts TokenSource }

// SetTokenSource installs the bearer token provider. Passing nil removes it.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens.Store(tokenHolder{ts: ts})
}

func (c *Client) token() string {
	if h, ok := c.tokens.Load().(tokenHolder); ok && h.ts != nil {
		return h.ts.Token()
	}
	return ""
}

// Close releases idle connections on the underlying transport. Close is
// idempotent; calls made after Close fail with ErrClosed.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
			logger.Info("client: Close() called - CloseIdleConnections invoked")
		}
	}
	return nil
}

// package-level logger for pkg/client; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/client. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func (c *Client) isCircuitOpen() bool {
	if c.cfg.CircuitFailureThreshold <= 0 {
		return false
	}
	if atomic.LoadInt32(&c.failures) < int32(c.cfg.CircuitFailureThreshold) {
		return false
	}

	if time.Now().UnixNano() < atomic.LoadInt64(&c.openUntil) {
		return true
	}

	// attempt half-open: reset failures and allow a request
	atomic.StoreInt32(&c.failures, 0)
	return false
}

func (c *Client) recordFailure() {
	v := atomic.AddInt32(&c.failures, 1)
	if c.cfg.CircuitFailureThreshold > 0 && v >= int32(c.cfg.CircuitFailureThreshold) {
		atomic.StoreInt64(&c.openUntil, time.Now().Add(c.cfg.CircuitReset).UnixNano())
	}
}

// call describes one API request.
type call struct {
	method string
	path   string
	query  url.Values
	body   any
	public bool // no Authorization header
	keyed  bool // send an Idempotency-Key and allow retries
}

func (k call) safe() bool { return k.method == http.MethodGet || k.keyed }

// do runs the call, retrying safe calls on transport failures,
// and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, k call, out any) error {
	if atomic.LoadInt32(&c.closed) == 1 {
		return &APIError{Method: k.method, Path: k.path, kind: ErrNetwork, err: ErrClosed}
	}

	var payload []byte
	if k.body != nil {
		b, err := json.Marshal(k.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", k.method, k.path, err)
		}
		payload = b
	}

	var key string
	if k.keyed {
		if key = repository.IdempotencyKey(ctx); key == "" {
			key = c.newKey()
		}
	}

	attempts := 1
	if k.safe() && c.cfg.Retries > 0 {
		attempts += c.cfg.Retries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := c.cfg.Backoff * time.Duration(attempt)
			logger.Warn("client: retrying", slog.String("method", k.method), slog.String("path", k.path), slog.Int("attempt", attempt), slog.Duration("backoff", wait))
			select {
			case <-ctx.Done():
				return &APIError{Method: k.method, Path: k.path, kind: ErrNetwork, err: ctx.Err()}
			case <-time.After(wait):
			}
		}

		lastErr = c.once(ctx, k, payload, key, out)
		if lastErr == nil || !retryable(lastErr) || ctx.Err() != nil {
			return lastErr
		}
	}

	return lastErr
}

func (c *Client) once(ctx context.Context, k call, payload []byte, key string, out any) error {
	if c.isCircuitOpen() {
		return &APIError{Method: k.method, Path: k.path, kind: ErrNetwork, err: ErrCircuitOpen}
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	u := c.base.JoinPath(k.path)
	if len(k.query) > 0 {
		u.RawQuery = k.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, k.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", k.method, k.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	if !k.public {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.recordFailure()
		return &APIError{Method: k.method, Path: k.path, kind: ErrNetwork, err: err}
	}
	defer resp.Body.Close()

	logger.Debug("client: response",
		slog.String("method", k.method),
		slog.String("path", k.path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 {
			c.recordFailure()
		} else {
			atomic.StoreInt32(&c.failures, 0)
		}
		return &APIError{
			Method:  k.method,
			Path:    k.path,
			Status:  resp.StatusCode,
			Message: readMessage(resp.Body),
			kind:    kindForStatus(resp.StatusCode),
		}
	}

	atomic.StoreInt32(&c.failures, 0)

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", k.method, k.path, err)
	}
	return nil
}

// readMessage extracts a short error message from an error body: the
// "error" or "message" field of a JSON object, or the trimmed text.
func readMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4<<10))
	var obj struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &obj) == nil {
		if obj.Error != "" {
			return obj.Error
		}
		if obj.Message != "" {
			return obj.Message
		}
	}
	return strings.TrimSpace(string(b))
}
