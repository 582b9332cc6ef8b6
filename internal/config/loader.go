package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// staticConfigPath locates the optional static configuration file.
// Overridable in tests.
var staticConfigPath = func() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, ".tco", "config"), nil
}

// loadStaticOverlay reads and decodes the static configuration file. A
// missing file is not an error; the empty overlay leaves defaults untouched.
func loadStaticOverlay() (*Overlay, error) {
	path, err := staticConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Overlay{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var overlay Overlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &overlay, nil
}

// Resolve merges the three configuration sources in ascending precedence:
// built-in defaults, then the static file, then flags the user explicitly
// set on the command line. Suite and test selection are treated as a single
// unit: once the command line supplies either, the file's selection is
// discarded rather than mixed with it.
//
// Path fields understand a leading ~, which is expanded after merging so a
// literal value from any source gets the same treatment.
func Resolve(cli *Overlay) (*Config, error) {
	cfg := Default()

	file, err := loadStaticOverlay()
	if err != nil {
		return nil, err
	}

	if cli.selectsSuite() {
		file.Suite = nil
		file.Tests = nil
	}

	file.apply(&cfg)
	cli.apply(&cfg)

	if cfg.Kubeconfig, err = ExpandHome(cfg.Kubeconfig); err != nil {
		return nil, err
	}

	if cfg.RepoRoot, err = ExpandHome(cfg.RepoRoot); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
