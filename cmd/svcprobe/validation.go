package main

import (
	"fmt"
	"time"
)

// flagSet represents a flag that is either set (true) or not set (false).
type flagSet struct {
	name  string
	isSet bool
}

// requireAtMostOne returns an error if more than one of the given flags is set.
func requireAtMostOne(flags ...flagSet) error {
	var set []string
	for _, f := range flags {
		if f.isSet {
			set = append(set, f.name)
		}
	}
	if len(set) > 1 {
		return fmt.Errorf("%s and %s cannot be combined", set[0], set[1])
	}
	return nil
}

// requirePositiveDuration returns an error unless d > 0.
func requirePositiveDuration(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return nil
}

// requireNonNegative returns an error if n < 0.
func requireNonNegative(name string, n int) error {
	if n < 0 {
		return fmt.Errorf("%s cannot be negative, got %d", name, n)
	}
	return nil
}

func validateProbeFlags() error {
	if err := requirePositiveDuration("--timeout", probeTimeout); err != nil {
		return err
	}
	if err := requireNonNegative("--concurrency", probeConcurrency); err != nil {
		return err
	}
	return requireAtMostOne(
		flagSet{"--sequential", probeSequential},
		flagSet{"--concurrency", probeConcurrency > 0},
	)
}
