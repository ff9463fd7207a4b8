package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jwalton/go-supportscolor"

	"github.com/zamio/svcprobe/pkg/probe"
)

var (
	green  = "\033[32m"
	yellow = "\033[33m"
	red    = "\033[31m"
	dim    = "\033[2m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		DisableColor()
	}
}

// DisableColor turns off ANSI escapes for all later output.
func DisableColor() {
	green, yellow, red, dim, reset = "", "", "", "", ""
}

// formatLabel dims the "label:" prefix of a detail line.
func formatLabel(s string) string {
	idx := strings.Index(s, ":")
	if idx == -1 {
		return s
	}
	return dim + s[:idx+1] + reset + s[idx+1:]
}

// tag returns the status marker for a result and its visible width.
func tag(r probe.Result) (string, int) {
	switch {
	case r.OK:
		return green + "[OK]" + reset, 4
	case r.Accessible:
		return yellow + "[HTTP]" + reset, 6
	default:
		return red + "[FAIL]" + reset, 6
	}
}

// PrintResult writes one result with its detail lines aligned under the name.
func PrintResult(w io.Writer, r probe.Result) {
	marker, width := tag(r)
	_, _ = fmt.Fprintf(w, "%s %s (port %d)\n", marker, r.Name, r.Port)

	indent := strings.Repeat(" ", width+1)
	for _, d := range details(r) {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, formatLabel(d))
	}
}

func details(r probe.Result) []string {
	d := []string{"url: " + r.URL}
	if r.Accessible {
		d = append(d, fmt.Sprintf("status: %d in %s", r.StatusCode, r.Latency.Round(time.Millisecond)))
		if r.Detail != "" {
			d = append(d, "value: "+r.Detail)
		}
	} else {
		d = append(d, "error: "+r.Error)
	}
	return d
}

// PrintReport writes every result followed by the summary block.
func PrintReport(w io.Writer, results []probe.Result, s probe.Summary) {
	for _, r := range results {
		PrintResult(w, r)
	}
	_, _ = fmt.Fprintln(w)
	PrintSummary(w, s)
}

// PrintSummary writes totals and the overall verdict.
func PrintSummary(w io.Writer, s probe.Summary) {
	_, _ = fmt.Fprintf(w, "%s %d/%d\n", formatLabel("accessible:"), s.Accessible, s.Total)
	_, _ = fmt.Fprintf(w, "%s    %d/%d\n", formatLabel("success:"), s.Succeeded, s.Total)

	want := "accessible"
	if s.Gate == probe.GateSuccess {
		want = "returning 200"
	}
	if s.Passed {
		_, _ = fmt.Fprintf(w, "%sPASS%s all %d endpoints %s\n", green, reset, s.Total, want)
		return
	}
	_, _ = fmt.Fprintf(w, "%sFAIL%s %d of %d endpoints not %s: %s\n",
		red, reset, s.Failed, s.Total, want, strings.Join(s.FailedNames, ", "))
}

type jsonResult struct {
	Name       string  `json:"name"`
	Port       int     `json:"port"`
	URL        string  `json:"url"`
	StatusCode int     `json:"statusCode"`
	Accessible bool    `json:"accessible"`
	OK         bool    `json:"success"`
	Outcome    string  `json:"outcome"`
	Error      string  `json:"error,omitempty"`
	LatencyMs  float64 `json:"latencyMs"`
	BodyBytes  int64   `json:"bodyBytes"`
	Detail     string  `json:"value,omitempty"`
}

type jsonSummary struct {
	Total      int      `json:"total"`
	Accessible int      `json:"accessible"`
	Success    int      `json:"success"`
	Failed     int      `json:"failed"`
	Gate       string   `json:"gate"`
	Passed     bool     `json:"passed"`
	FailedList []string `json:"failedEndpoints"`
}

type jsonReport struct {
	Results []jsonResult `json:"results"`
	Summary jsonSummary  `json:"summary"`
}

// PrintJSON writes the results and summary as one indented JSON document.
func PrintJSON(w io.Writer, results []probe.Result, s probe.Summary) error {
	report := jsonReport{
		Results: make([]jsonResult, 0, len(results)),
		Summary: jsonSummary{
			Total:      s.Total,
			Accessible: s.Accessible,
			Success:    s.Succeeded,
			Failed:     s.Failed,
			Gate:       string(s.Gate),
			Passed:     s.Passed,
			FailedList: s.FailedNames,
		},
	}
	if report.Summary.FailedList == nil {
		report.Summary.FailedList = []string{}
	}
	for _, r := range results {
		report.Results = append(report.Results, jsonResult{
			Name:       r.Name,
			Port:       r.Port,
			URL:        r.URL,
			StatusCode: r.StatusCode,
			Accessible: r.Accessible,
			OK:         r.OK,
			Outcome:    string(r.Outcome),
			Error:      r.Error,
			LatencyMs:  float64(r.Latency.Microseconds()) / 1000,
			BodyBytes:  r.BodyBytes,
			Detail:     r.Detail,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
