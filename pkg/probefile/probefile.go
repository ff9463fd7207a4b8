package probefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zamio/svcprobe/pkg/endpoint"
)

// FileName is the endpoint file looked up from the working directory upwards.
const FileName = ".svcprobe.yaml"

// ErrNotFound is returned by FindFile when no endpoint file exists on the search path.
var ErrNotFound = errors.New(FileName + " not found")

// File is the parsed content of an endpoint file.
type File struct {
	Timeout   time.Duration       `yaml:"timeout"`
	Gate      string              `yaml:"gate"`
	Endpoints []endpoint.Endpoint `yaml:"endpoints"`
}

// FindFile returns explicitPath when given, otherwise walks up from startDir
// looking for FileName. The walk stops at the home directory, at a directory
// containing .git, or at the filesystem root.
func FindFile(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("endpoint file not found: %w", err)
		}
		return explicitPath, nil
	}

	homeDir, _ := os.UserHomeDir()

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		if currentDir == homeDir {
			break
		}
		if _, err := os.Stat(filepath.Join(currentDir, ".git")); err == nil {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", ErrNotFound
}

// ParseFile reads and parses the endpoint file at path.
func ParseFile(path string) (File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from --file or the upward search
	if err != nil {
		return File{}, fmt.Errorf("failed to read endpoint file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes endpoint file content, fills host and path defaults, and validates the result.
func Parse(data []byte) (File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse endpoint file: %w", err)
	}

	if f.Timeout < 0 {
		return File{}, fmt.Errorf("timeout must be positive, got %s", f.Timeout)
	}

	for i := range f.Endpoints {
		if f.Endpoints[i].Host == "" {
			f.Endpoints[i].Host = endpoint.DefaultHost
		}
		if f.Endpoints[i].Path == "" {
			f.Endpoints[i].Path = "/"
		}
	}
	if err := endpoint.ValidateAll(f.Endpoints); err != nil {
		return File{}, err
	}
	return f, nil
}
