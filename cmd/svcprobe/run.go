package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zamio/svcprobe/pkg/endpoint"
	"github.com/zamio/svcprobe/pkg/httpprobe"
	"github.com/zamio/svcprobe/pkg/output"
	"github.com/zamio/svcprobe/pkg/probe"
	"github.com/zamio/svcprobe/pkg/probefile"
)

// ErrProbeFailed is returned when at least one endpoint fails the gate.
// The returned error causes the process to exit with code 1.
var ErrProbeFailed = errors.New("probe failed")

var (
	probeTimeout     time.Duration
	probeConcurrency int
	probeSequential  bool
	probeGate        string
	probeFile        string
	probeHost        string
	probeOnly        []string
	probeJSON        bool
	probeNoColor     bool
)

func init() {
	rootCmd.Flags().DurationVar(&probeTimeout, "timeout", probe.DefaultTimeout, "per-endpoint request timeout")
	rootCmd.Flags().IntVar(&probeConcurrency, "concurrency", 0, "max probes in flight (0 = all at once)")
	rootCmd.Flags().BoolVar(&probeSequential, "sequential", false, "probe one endpoint at a time")
	rootCmd.Flags().StringVar(&probeGate, "gate", "", "pass condition: accessible (any response) or success (HTTP 200)")
	rootCmd.Flags().BoolVar(&probeJSON, "json", false, "print the report as JSON")
	rootCmd.Flags().BoolVar(&probeNoColor, "no-color", false, "disable coloured output")

	// Shared with the endpoints subcommand.
	rootCmd.PersistentFlags().StringVar(&probeFile, "file", "", "endpoint file (default: search up for "+probefile.FileName+")")
	rootCmd.PersistentFlags().StringVar(&probeHost, "host", "", "override the host of every endpoint")
	rootCmd.PersistentFlags().StringSliceVar(&probeOnly, "only", nil, "probe only the named endpoints, can be repeated")
}

// config is the fully resolved input of a run.
type config struct {
	Source    string
	Endpoints []endpoint.Endpoint
	Timeout   time.Duration
	Gate      probe.Gate
}

func runProbe(cmd *cobra.Command, _ []string) error {
	if err := validateProbeFlags(); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	concurrency := probeConcurrency
	if probeSequential {
		concurrency = 1
	}

	logger.Debug("starting probe run",
		"source", cfg.Source,
		"endpoints", len(cfg.Endpoints),
		"timeout", cfg.Timeout,
		"concurrency", concurrency,
		"gate", cfg.Gate,
	)

	results := probe.Run(cmd.Context(), httpprobe.NewProber(), cfg.Endpoints, probe.Options{
		Timeout:     cfg.Timeout,
		Concurrency: concurrency,
		Logger:      logger,
	})
	summary := probe.Summarize(results, cfg.Gate)

	out := cmd.OutOrStdout()
	if probeJSON {
		if err := output.PrintJSON(out, results, summary); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else {
		if probeNoColor {
			output.DisableColor()
		}
		output.PrintReport(out, results, summary)
	}

	if !summary.Passed {
		logger.Debug("probe run failed", "failed", summary.FailedNames)
		return ErrProbeFailed
	}
	return nil
}

// loadConfig resolves endpoints, timeout and gate from the endpoint file,
// the built-in table, and the command-line flags. Flags win over the file.
func loadConfig(cmd *cobra.Command) (config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config{}, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := config{Source: "built-in", Endpoints: endpoint.Defaults()}
	var fileGate string

	path, err := probefile.FindFile(wd, probeFile)
	switch {
	case errors.Is(err, probefile.ErrNotFound):
		logger.Debug("no endpoint file found, using built-in table")
	case err != nil:
		return config{}, err
	default:
		f, err := probefile.ParseFile(path)
		if err != nil {
			return config{}, err
		}
		cfg.Source = path
		cfg.Endpoints = f.Endpoints
		cfg.Timeout = f.Timeout
		fileGate = f.Gate
	}

	if probeHost != "" {
		cfg.Endpoints = endpoint.WithHost(cfg.Endpoints, probeHost)
	}
	cfg.Endpoints, err = endpoint.Filter(cfg.Endpoints, probeOnly)
	if err != nil {
		return config{}, err
	}
	if err := endpoint.ValidateAll(cfg.Endpoints); err != nil {
		return config{}, err
	}

	if f := cmd.Flags().Lookup("timeout"); cfg.Timeout == 0 || (f != nil && f.Changed) {
		cfg.Timeout = probeTimeout
	}

	gate := fileGate
	if probeGate != "" {
		gate = probeGate
	}
	cfg.Gate, err = probe.ParseGate(gate)
	if err != nil {
		return config{}, err
	}

	return cfg, nil
}
