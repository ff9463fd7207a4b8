package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/zamio/svcprobe/pkg/probe"
)

// noColor clears colour codes for the duration of a test.
func noColor(t *testing.T) {
	t.Helper()
	oldGreen, oldYellow, oldRed, oldDim, oldReset := green, yellow, red, dim, reset
	t.Cleanup(func() { green, yellow, red, dim, reset = oldGreen, oldYellow, oldRed, oldDim, oldReset })
	DisableColor()
}

func TestFormatLabel(t *testing.T) {
	oldDim, oldReset := dim, reset
	defer func() { dim, reset = oldDim, oldReset }()

	dim, reset = "", ""
	tests := []struct {
		input string
		want  string
	}{
		{"url: http://localhost:9002/", "url: http://localhost:9002/"},
		{"no colon here", "no colon here"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatLabel(tt.input); got != tt.want {
			t.Errorf("formatLabel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	dim, reset = "[DIM]", "[RESET]"
	if got := formatLabel("error: refused"); got != "[DIM]error:[RESET] refused" {
		t.Errorf("formatLabel with colors = %q", got)
	}
	if got := formatLabel("url: http://h:1/"); got != "[DIM]url:[RESET] http://h:1/" {
		t.Errorf("formatLabel splits on first colon only, got %q", got)
	}
}

func TestPrintResultOK(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	PrintResult(&buf, probe.Responded("artist", 9002, "http://localhost:9002/", 200, 12*time.Millisecond))

	expected := "[OK] artist (port 9002)\n" +
		"     url: http://localhost:9002/\n" +
		"     status: 200 in 12ms\n"
	if buf.String() != expected {
		t.Errorf("PrintResult output = %q, want %q", buf.String(), expected)
	}
}

func TestPrintResultHTTPError(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	r := probe.Responded("admin", 9007, "http://localhost:9007/", 503, 3*time.Millisecond)
	r.Detail = "degraded"
	PrintResult(&buf, r)

	expected := "[HTTP] admin (port 9007)\n" +
		"       url: http://localhost:9007/\n" +
		"       status: 503 in 3ms\n" +
		"       value: degraded\n"
	if buf.String() != expected {
		t.Errorf("PrintResult output = %q, want %q", buf.String(), expected)
	}
}

func TestPrintResultFail(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	PrintResult(&buf, probe.Failed("publisher", 9005, "http://localhost:9005/", probe.OutcomeTimeout, "", 5*time.Second))

	expected := "[FAIL] publisher (port 9005)\n" +
		"       url: http://localhost:9005/\n" +
		"       error: Request timeout\n"
	if buf.String() != expected {
		t.Errorf("PrintResult output = %q, want %q", buf.String(), expected)
	}
}

func TestPrintSummary(t *testing.T) {
	noColor(t)

	t.Run("pass", func(t *testing.T) {
		var buf bytes.Buffer
		PrintSummary(&buf, probe.Summary{Total: 4, Accessible: 4, Succeeded: 3, Gate: probe.GateAccessible, Passed: true})

		want := "accessible: 4/4\nsuccess:    3/4\nPASS all 4 endpoints accessible\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})

	t.Run("fail lists endpoints", func(t *testing.T) {
		var buf bytes.Buffer
		PrintSummary(&buf, probe.Summary{
			Total: 4, Accessible: 2, Succeeded: 2, Failed: 2,
			Gate: probe.GateAccessible, FailedNames: []string{"station", "publisher"},
		})

		if !strings.Contains(buf.String(), "FAIL 2 of 4 endpoints not accessible: station, publisher") {
			t.Errorf("unexpected summary: %q", buf.String())
		}
	})

	t.Run("success gate wording", func(t *testing.T) {
		var buf bytes.Buffer
		PrintSummary(&buf, probe.Summary{Total: 1, Accessible: 1, Failed: 1, Gate: probe.GateSuccess, FailedNames: []string{"admin"}})

		if !strings.Contains(buf.String(), "not returning 200: admin") {
			t.Errorf("unexpected summary: %q", buf.String())
		}
	})
}

func TestPrintReport(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	results := []probe.Result{
		probe.Responded("artist", 9002, "http://localhost:9002/", 200, 0),
		probe.Failed("station", 9006, "http://localhost:9006/", probe.OutcomeConnectionError, "connection refused", 0),
	}
	PrintReport(&buf, results, probe.Summarize(results, probe.GateAccessible))

	out := buf.String()
	artist := strings.Index(out, "[OK] artist")
	station := strings.Index(out, "[FAIL] station")
	summary := strings.Index(out, "accessible: 1/2")
	if artist == -1 || station == -1 || summary == -1 {
		t.Fatalf("missing sections in report: %q", out)
	}
	if !(artist < station && station < summary) {
		t.Errorf("report out of order: %q", out)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	results := []probe.Result{
		probe.Responded("artist", 9002, "http://localhost:9002/", 200, 1500*time.Microsecond),
		probe.Failed("publisher", 9005, "http://localhost:9005/", probe.OutcomeTimeout, "", 0),
	}

	if err := PrintJSON(&buf, results, probe.Summarize(results, probe.GateAccessible)); err != nil {
		t.Fatalf("PrintJSON failed: %v", err)
	}

	var got struct {
		Results []map[string]any `json:"results"`
		Summary map[string]any   `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if len(got.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(got.Results))
	}
	if got.Results[0]["latencyMs"] != 1.5 {
		t.Errorf("latencyMs = %v, want 1.5", got.Results[0]["latencyMs"])
	}
	if _, ok := got.Results[0]["error"]; ok {
		t.Error("error should be omitted for a response")
	}
	if got.Results[1]["error"] != probe.TimeoutMessage {
		t.Errorf("error = %v, want %q", got.Results[1]["error"], probe.TimeoutMessage)
	}
	if got.Summary["passed"] != false || got.Summary["accessible"] != float64(1) {
		t.Errorf("unexpected summary: %v", got.Summary)
	}
}
