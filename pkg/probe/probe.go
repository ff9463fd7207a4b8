package probe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zamio/svcprobe/pkg/endpoint"
)

// DefaultTimeout applies when Options.Timeout is not positive.
const DefaultTimeout = 5 * time.Second

// Prober probes a single endpoint. Implementations must not panic and must
// report every failure through the returned Result.
type Prober interface {
	Probe(ctx context.Context, ep endpoint.Endpoint, timeout time.Duration) Result
}

// Options controls a batch run.
type Options struct {
	Timeout     time.Duration // per-probe budget
	Concurrency int           // max probes in flight; 0 runs all at once, 1 runs them in sequence
	Logger      *slog.Logger
}

// Run probes every endpoint and returns the results in input order.
func Run(ctx context.Context, prober Prober, endpoints []endpoint.Endpoint, opts Options) []Result {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	results := make([]Result, len(endpoints))

	var g errgroup.Group
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, ep := range endpoints {
		g.Go(func() error {
			defer func() {
				if p := recover(); p != nil {
					logger.Error("prober panicked", "name", ep.Name, "panic", p)
					results[i] = Failed(ep.Name, ep.Port, ep.URL(), OutcomeConnectionError, fmt.Sprintf("probe panicked: %v", p), 0)
				}
			}()
			logger.Debug("probing endpoint", "name", ep.Name, "url", ep.URL(), "timeout", timeout)
			r := prober.Probe(ctx, ep, timeout)
			logger.Debug("probe finished",
				"name", r.Name,
				"outcome", r.Outcome,
				"status", r.StatusCode,
				"latency", r.Latency,
			)
			results[i] = r
			return nil
		})
	}
	_ = g.Wait() // probes never return errors

	return results
}
