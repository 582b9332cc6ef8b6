package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/spjmurray/tco/internal/suite"
)

// validConfig is a minimal configuration that passes every check.
func validConfig() Config {
	cfg := Default()
	cfg.Kubeconfig = "/home/dev/.kube/config"
	cfg.RepoRoot = "/src/operator"
	cfg.Suite = suite.Sanity

	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		wantErrs []string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:     "missing repo",
			mutate:   func(c *Config) { c.RepoRoot = "" },
			wantErrs: []string{"required argument repo unset"},
		},
		{
			name:     "missing namespace",
			mutate:   func(c *Config) { c.Namespace = "" },
			wantErrs: []string{"required argument namespace unset"},
		},
		{
			name: "several required fields missing",
			mutate: func(c *Config) {
				c.Namespace = ""
				c.ServiceAccount = ""
				c.OperatorImage = ""
			},
			wantErrs: []string{
				"required argument namespace unset",
				"required argument service-account unset",
				"required argument image unset",
			},
		},
		{
			name: "suite and tests together",
			mutate: func(c *Config) {
				c.Tests = []string{"TestCreateCluster"}
			},
			wantErrs: []string{"mutually exclusive"},
		},
		{
			name: "neither suite nor tests",
			mutate: func(c *Config) {
				c.Suite = ""
			},
			wantErrs: []string{"one of suite or test must be selected"},
		},
		{
			name: "unknown suite alias",
			mutate: func(c *Config) {
				c.Suite = "smoke"
			},
			wantErrs: []string{`unknown suite "smoke"`},
		},
		{
			name: "docker server alone",
			mutate: func(c *Config) {
				c.Docker.Server = "registry.example.com"
			},
			wantErrs: []string{
				"required argument docker-username unset",
				"required argument docker-password unset",
			},
		},
		{
			name: "docker username alone",
			mutate: func(c *Config) {
				c.Docker.Username = "dev"
			},
			wantErrs: []string{
				"required argument docker-server unset",
				"required argument docker-password unset",
			},
		},
		{
			name: "docker complete",
			mutate: func(c *Config) {
				c.Docker = DockerRegistry{
					Server:   "registry.example.com",
					Username: "dev",
					Password: "hunter2",
				}
			},
		},
		{
			name: "too many contexts",
			mutate: func(c *Config) {
				c.Contexts = []string{"a", "b", "c"}
			},
			wantErrs: []string{"3 contexts supplied"},
		},
		{
			name: "unknown runner schema",
			mutate: func(c *Config) {
				c.RunnerSchema = "grpc"
			},
			wantErrs: []string{`unknown runner schema "grpc"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Len(t, multierr.Errors(err), len(tt.wantErrs))

			for _, want := range tt.wantErrs {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
