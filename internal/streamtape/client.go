// Package streamtape is the single point of contact with the Streamtape API.
//
// Every call goes through Client.Forward, which adds the account
// credentials, sends the request over a shared connection pool and unwraps
// the {status, msg, result} envelope into either the raw result or an
// *Error carrying the HTTP status the local API should answer with.
package streamtape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andresuchdata/streamtape-gateway/internal/config"
	"github.com/andresuchdata/streamtape-gateway/internal/metrics"
	"github.com/rs/zerolog/log"
)

const maxErrorBody = 64 << 10

var errClosed = errors.New("gateway is closed")

// Observer receives one observation per outbound call.
type Observer interface {
	ObserveUpstream(endpoint, outcome string, elapsed time.Duration)
}

// Client owns the outbound connection pool. It is safe for concurrent use
// and must be closed once, after the HTTP server has drained.
type Client struct {
	baseURL    *url.URL
	login      string
	key        string
	transport  *http.Transport
	httpClient *http.Client
	observer   Observer

	closed    atomic.Bool
	closeOnce sync.Once
}

type envelope struct {
	Status *int            `json:"status"`
	Msg    *string         `json:"msg"`
	Result json.RawMessage `json:"result"`
}

// NewClient builds a Client from cfg. observer may be nil.
func NewClient(cfg config.StreamtapeConfig, observer Observer) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid streamtape base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("streamtape base url must be absolute: %q", cfg.BaseURL)
	}
	if cfg.Login == "" || cfg.Key == "" {
		return nil, fmt.Errorf("streamtape credentials must be provided")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 100
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = maxIdle
	transport.MaxIdleConnsPerHost = maxIdle

	if observer == nil {
		observer = (*metrics.Metrics)(nil)
	}

	return &Client{
		baseURL:   base,
		login:     cfg.Login,
		key:       cfg.Key,
		transport: transport,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		observer: observer,
	}, nil
}

// Forward issues one upstream call and returns the envelope's result
// verbatim. The credentials always override login/key entries in params.
func (c *Client) Forward(ctx context.Context, method, endpoint string, params Params) (json.RawMessage, error) {
	start := time.Now()
	result, outcome, err := c.forward(ctx, method, endpoint, params)
	elapsed := time.Since(start)
	c.observer.ObserveUpstream(endpoint, outcome, elapsed)

	logEvent := log.Debug()
	if err != nil {
		logEvent = log.Warn().Err(err)
	}
	logEvent.
		Str("method", method).
		Str("endpoint", endpoint).
		Str("outcome", outcome).
		Dur("latency", elapsed).
		Msg("streamtape call")

	return result, err
}

func (c *Client) forward(ctx context.Context, method, endpoint string, params Params) (json.RawMessage, string, error) {
	if c.closed.Load() {
		return nil, metrics.OutcomeTransport, newTransportError(errClosed)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint, params), nil)
	if err != nil {
		return nil, metrics.OutcomeTransport, newTransportError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, metrics.OutcomeTransport, newTransportError(redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, metrics.OutcomeHTTPError, newHTTPError(resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, metrics.OutcomeTransport, newTransportError(redact(err))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, metrics.OutcomeRejected, NewInvalidPayloadError(endpoint, err)
	}
	if env.Status == nil || *env.Status != http.StatusOK {
		return nil, metrics.OutcomeRejected, newRejectedError(env.Status, env.Msg)
	}

	if len(env.Result) == 0 {
		return json.RawMessage("null"), metrics.OutcomeOK, nil
	}
	return env.Result, metrics.OutcomeOK, nil
}

func (c *Client) endpointURL(endpoint string, params Params) string {
	u := *c.baseURL
	u.Path = path.Join("/", u.Path, endpoint)
	u.RawQuery = params.Encode(c.login, c.key).Encode()
	return u.String()
}

// Close releases pooled connections. Only the first call has an effect.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.transport.CloseIdleConnections()
	})
}

// redact strips the request URL from transport errors; it carries the API
// key in its query string.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
