package httpprobe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/zamio/svcprobe/pkg/endpoint"
	"github.com/zamio/svcprobe/pkg/probe"
)

// maxInspectBytes caps how much body is buffered for JSON path extraction.
const maxInspectBytes = 1 << 20

// HTTPClient abstracts HTTP requests for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RealHTTPClient uses the real net/http package. It dials endpoints
// directly, never through a proxy, and does not follow redirects.
// Keep-alives are off so that nothing stays open once a probe returns.
type RealHTTPClient struct {
	once   sync.Once
	client *http.Client
}

// Do executes an HTTP request.
func (c *RealHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.once.Do(func() {
		c.client = &http.Client{
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	})
	return c.client.Do(req)
}

// Check probes one endpoint with a bounded timeout.
type Check struct {
	Endpoint endpoint.Endpoint
	Timeout  time.Duration // default: 5s
	Client   HTTPClient    // injected for testing
}

// Run issues a single GET and converts every outcome into a probe.Result.
// It never returns an error: connection failures and timeouts are recorded
// in the result.
func (c *Check) Run(ctx context.Context) probe.Result {
	ep := c.Endpoint
	target := ep.URL()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = probe.DefaultTimeout
	}
	client := c.Client
	if client == nil {
		client = &RealHTTPClient{}
	}

	// Cancelling reqCtx aborts the in-flight dial or read.
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return probe.Failed(ep.Name, ep.Port, target, probe.OutcomeConnectionError, "failed to create request: "+err.Error(), 0)
	}

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		if isTimeout(ctx, reqCtx, err) {
			return probe.Failed(ep.Name, ep.Port, target, probe.OutcomeTimeout, probe.TimeoutMessage, latency)
		}
		return probe.Failed(ep.Name, ep.Port, target, probe.OutcomeConnectionError, transportMessage(err), latency)
	}
	defer func() { _ = resp.Body.Close() }()

	result := probe.Responded(ep.Name, ep.Port, target, resp.StatusCode, latency)

	// The response already arrived, so body errors do not change the outcome.
	if ep.JSONPath != "" {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxInspectBytes))
		result.BodyBytes = int64(len(body))
		if v := gjson.GetBytes(body, ep.JSONPath); v.Exists() {
			result.Detail = v.String()
		}
	} else {
		result.BodyBytes, _ = io.Copy(io.Discard, resp.Body)
	}

	return result
}

// Prober runs a Check per endpoint and satisfies probe.Prober.
type Prober struct {
	Client HTTPClient
}

// NewProber returns a Prober backed by a RealHTTPClient.
func NewProber() *Prober {
	return &Prober{Client: &RealHTTPClient{}}
}

// Probe implements probe.Prober.
func (p *Prober) Probe(ctx context.Context, ep endpoint.Endpoint, timeout time.Duration) probe.Result {
	c := &Check{Endpoint: ep, Timeout: timeout, Client: p.Client}
	return c.Run(ctx)
}

// isTimeout reports whether err was caused by the probe's own deadline rather
// than by the parent context or the transport.
func isTimeout(parent, reqCtx context.Context, err error) bool {
	if parent.Err() != nil {
		return false
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// transportMessage drops the "Get <url>:" prefix added by net/http.
func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
