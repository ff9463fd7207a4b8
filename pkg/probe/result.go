package probe

import "time"

// Outcome classifies how a single probe ended.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"          // response with status 200
	OutcomeHTTPError       Outcome = "http-error"       // response with any other status
	OutcomeConnectionError Outcome = "connection-error" // transport failed before a response
	OutcomeTimeout         Outcome = "timeout"          // no response within the budget
)

// TimeoutMessage is the Error recorded for probes that hit their deadline.
const TimeoutMessage = "Request timeout"

// Result holds the outcome of probing one endpoint. It is never modified after creation.
type Result struct {
	Name       string
	Port       int
	URL        string
	StatusCode int     // 0 when no response was received
	Accessible bool    // a response of any status arrived in time
	OK         bool    // status code was 200
	Error      string  // set only when no status code was obtained
	Outcome    Outcome // success, http-error, connection-error or timeout
	Latency    time.Duration
	BodyBytes  int64
	Detail     string // value extracted by the endpoint's JSON path, if any
}

// Responded builds the result for a probe that received a response.
func Responded(name string, port int, url string, statusCode int, latency time.Duration) Result {
	r := Result{
		Name:       name,
		Port:       port,
		URL:        url,
		StatusCode: statusCode,
		Accessible: true,
		OK:         statusCode == 200,
		Outcome:    OutcomeHTTPError,
		Latency:    latency,
	}
	if r.OK {
		r.Outcome = OutcomeSuccess
	}
	return r
}

// Failed builds the result for a probe that got no response.
func Failed(name string, port int, url string, outcome Outcome, msg string, latency time.Duration) Result {
	if outcome == OutcomeTimeout {
		msg = TimeoutMessage
	}
	if msg == "" {
		msg = "request failed"
	}
	return Result{
		Name:    name,
		Port:    port,
		URL:     url,
		Error:   msg,
		Outcome: outcome,
		Latency: latency,
	}
}
