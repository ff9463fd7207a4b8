package probe

import "fmt"

// Gate selects which results count as passing.
type Gate string

const (
	// GateAccessible passes a run when every endpoint returned any response.
	GateAccessible Gate = "accessible"
	// GateSuccess passes a run only when every endpoint returned 200.
	GateSuccess Gate = "success"
)

// ParseGate converts a flag or file value to a Gate. Empty means GateAccessible.
func ParseGate(s string) (Gate, error) {
	switch Gate(s) {
	case "", GateAccessible:
		return GateAccessible, nil
	case GateSuccess:
		return GateSuccess, nil
	default:
		return "", fmt.Errorf("invalid gate %q (want %s or %s)", s, GateAccessible, GateSuccess)
	}
}

// Summary aggregates a batch of results.
type Summary struct {
	Total       int
	Accessible  int
	Succeeded   int
	Failed      int // results that do not pass the gate
	Gate        Gate
	Passed      bool
	FailedNames []string // in input order
}

// Summarize counts results and applies the gate. It performs no I/O.
func Summarize(results []Result, gate Gate) Summary {
	if gate == "" {
		gate = GateAccessible
	}
	s := Summary{Total: len(results), Gate: gate}

	for _, r := range results {
		if r.Accessible {
			s.Accessible++
		}
		if r.OK {
			s.Succeeded++
		}
		if !passes(r, gate) {
			s.Failed++
			s.FailedNames = append(s.FailedNames, r.Name)
		}
	}

	s.Passed = s.Failed == 0
	return s
}

func passes(r Result, gate Gate) bool {
	if gate == GateSuccess {
		return r.OK
	}
	return r.Accessible
}
