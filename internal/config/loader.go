package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader reads a manifest override file on top of the defaults.
type Loader struct {
	logger *slog.Logger
	known  []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithKnownTemplates restricts template references to the given names.
func WithKnownTemplates(names []string) LoaderOption {
	return func(l *Loader) {
		l.known = names
	}
}

// NewLoader creates a new Loader instance.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the default manifest when path is empty. Otherwise the YAML
// file at path is decoded over the defaults: sections present in the file
// replace the defaults, absent sections keep them. The result is validated.
func (l *Loader) Load(path string) (*Manifest, error) {
	m := NewDefaultManifest()
	if path == "" {
		l.logger.Debug("using default manifest")
		return m, nil
	}

	found, err := loadYAMLFile(path, m)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", path, ErrManifestNotFound)
	}
	l.logger.Debug("manifest loaded", "path", path,
		"folders", len(m.Folders), "model_files", len(m.ModelFiles))

	if err := Validate(m, l.known); err != nil {
		return nil, err
	}
	return m, nil
}

// Marshal encodes the manifest as YAML with two-space indentation.
func Marshal(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// loadYAMLFile reads a YAML file and unmarshals it into the target struct.
// Returns (true, nil) if the file was found and parsed, (false, nil) if the
// file does not exist, or (false, error) on failure.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w: %v", path, ErrInvalidYAML, err)
	}

	return true, nil
}
