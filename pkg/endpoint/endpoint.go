package endpoint

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultHost is used when an endpoint does not name a host.
const DefaultHost = "localhost"

// Endpoint is a named HTTP health-check route. Endpoints are read-only once a run starts.
type Endpoint struct {
	Name     string `yaml:"name" json:"name"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Path     string `yaml:"path" json:"path"`
	JSONPath string `yaml:"json_path" json:"json_path,omitempty"` // optional gjson path shown in the report
}

// Defaults returns the frontend table probed when no endpoint file is found.
func Defaults() []Endpoint {
	return []Endpoint{
		{Name: "artist", Host: DefaultHost, Port: 9002, Path: "/"},
		{Name: "admin", Host: DefaultHost, Port: 9007, Path: "/"},
		{Name: "station", Host: DefaultHost, Port: 9006, Path: "/"},
		{Name: "publisher", Host: DefaultHost, Port: 9005, Path: "/"},
	}
}

// URL returns http://host:port/path for the endpoint.
func (e Endpoint) URL() string {
	host := e.Host
	if host == "" {
		host = DefaultHost
	}
	path := e.Path
	if path == "" {
		path = "/"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(e.Port)) + path
}

// Validate reports the first problem with the endpoint, if any.
func (e Endpoint) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("endpoint name is required")
	}
	if strings.TrimSpace(e.Host) == "" {
		return fmt.Errorf("endpoint %s: host is required", e.Name)
	}
	if e.Port < 1 || e.Port > 65535 {
		return fmt.Errorf("endpoint %s: port %d out of range", e.Name, e.Port)
	}
	if e.Path != "" && !strings.HasPrefix(e.Path, "/") {
		return fmt.Errorf("endpoint %s: path %q must start with /", e.Name, e.Path)
	}
	return nil
}

// ValidateAll checks every endpoint and rejects duplicate names.
func ValidateAll(endpoints []Endpoint) error {
	if len(endpoints) == 0 {
		return errors.New("no endpoints configured")
	}
	seen := make(map[string]struct{}, len(endpoints))
	for _, e := range endpoints {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("duplicate endpoint name %q", e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

// Filter returns the endpoints whose names are listed, in their original order.
// An empty names list returns the input unchanged.
func Filter(endpoints []Endpoint, names []string) ([]Endpoint, error) {
	if len(names) == 0 {
		return endpoints, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = false
	}

	var out []Endpoint
	for _, e := range endpoints {
		if _, ok := want[e.Name]; ok {
			want[e.Name] = true
			out = append(out, e)
		}
	}

	var missing []string
	for _, n := range names {
		if !want[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown endpoint(s): %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// WithHost returns a copy of endpoints with every host replaced.
func WithHost(endpoints []Endpoint, host string) []Endpoint {
	out := make([]Endpoint, len(endpoints))
	for i, e := range endpoints {
		e.Host = host
		out[i] = e
	}
	return out
}
