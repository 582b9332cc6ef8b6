package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/spjmurray/tco/internal/cluster"
)

// errRequired names a missing argument by its long flag.
func errRequired(name string) error {
	return fmt.Errorf("required argument %s unset", name)
}

// Validate checks every constraint on the resolved configuration and reports
// all violations together, so a bad invocation can be fixed in one pass. No
// process is spawned and no file written while any constraint is violated.
func (c *Config) Validate() error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{name: "namespace", value: c.Namespace},
		{name: "kubeconfig", value: c.Kubeconfig},
		{name: "service-account", value: c.ServiceAccount},
		{name: "image", value: c.OperatorImage},
		{name: "repo", value: c.RepoRoot},
	}

	for _, arg := range required {
		if arg.value == "" {
			errs = append(errs, errRequired(arg.name))
		}
	}

	switch {
	case c.Suite != "" && len(c.Tests) > 0:
		errs = append(errs, errors.New("suite and test selections are mutually exclusive"))
	case c.Suite == "" && len(c.Tests) == 0:
		errs = append(errs, errors.New("one of suite or test must be selected"))
	case c.Suite != "":
		if _, err := c.Suite.Canonical(); err != nil {
			errs = append(errs, err)
		}
	}

	// Registry credentials are all-or-nothing; report every missing half.
	if !c.Docker.Empty() {
		if c.Docker.Server == "" {
			errs = append(errs, errRequired("docker-server"))
		}

		if c.Docker.Username == "" {
			errs = append(errs, errRequired("docker-username"))
		}

		if c.Docker.Password == "" {
			errs = append(errs, errRequired("docker-password"))
		}
	}

	if len(c.Contexts) > len(cluster.Roles) {
		errs = append(errs, fmt.Errorf("%d contexts supplied but a run only addresses %d clusters", len(c.Contexts), len(cluster.Roles)))
	}

	if c.RunnerSchema != SchemaFlags && c.RunnerSchema != SchemaFile {
		errs = append(errs, fmt.Errorf("unknown runner schema %q, expected one of %s, %s", c.RunnerSchema, SchemaFlags, SchemaFile))
	}

	return multierr.Combine(errs...)
}
