// Package suite resolves what the e2e runner will execute: either one of the
// built-in suites, addressed by a short alias, or a transient single-use
// suite synthesized from explicitly named tests.
package suite

import (
	"fmt"
	"strings"
)

// Alias is the short name for a built-in suite. The set is closed; anything
// outside it is rejected before the runner is involved.
type Alias string

// Built-in suite aliases.
const (
	Sanity  Alias = "sanity"
	P0      Alias = "p0"
	P1      Alias = "p1"
	CRD     Alias = "crd"
	Upgrade Alias = "upgrade"
	RBAC    Alias = "rbac"
	LDAP    Alias = "ldap"
)

// canonical maps each alias to the suite identifier the runner selects by.
var canonical = map[Alias]string{
	Sanity:  "TestSanity",
	P0:      "TestP0",
	P1:      "TestP1",
	CRD:     "TestCRDValidation",
	Upgrade: "TestUpgrade",
	RBAC:    "TestRBAC",
	LDAP:    "TestLDAP",
}

// ordered fixes the listing order for help output and error messages.
var ordered = []Alias{Sanity, P0, P1, CRD, Upgrade, RBAC, LDAP}

// Aliases returns the built-in aliases in listing order.
func Aliases() []Alias {
	out := make([]Alias, len(ordered))
	copy(out, ordered)

	return out
}

// Names returns the alias names in listing order, for flag help text and
// shell completion.
func Names() []string {
	out := make([]string, len(ordered))
	for i, alias := range ordered {
		out[i] = string(alias)
	}

	return out
}

// Valid reports whether the alias names a built-in suite.
func (a Alias) Valid() bool {
	_, ok := canonical[a]

	return ok
}

// Canonical returns the runner-side suite identifier for a built-in alias.
func (a Alias) Canonical() (string, error) {
	name, ok := canonical[a]
	if !ok {
		return "", fmt.Errorf("unknown suite %q, expected one of %s", string(a), strings.Join(Names(), ", "))
	}

	return name, nil
}

// Selection is the resolved suite the runner will execute: its identifier
// plus, when synthesized from explicit tests, the transient definition file
// backing it.
type Selection struct {
	// Name is the suite identifier handed to the runner.
	Name string

	// Transient is non-nil when the suite was synthesized. The caller owns
	// removal once the run finishes.
	Transient *Transient
}

// Select resolves the suite for a run. A non-empty alias maps to its
// canonical identifier; otherwise the explicit tests are wrapped in a
// transient suite written under the repository's suite directory.
// Configuration validation guarantees exactly one of the two is supplied.
func Select(alias Alias, tests []string, repoRoot string) (*Selection, error) {
	if alias != "" {
		name, err := alias.Canonical()
		if err != nil {
			return nil, err
		}

		return &Selection{Name: name}, nil
	}

	transient, err := writeTransient(tests, repoRoot)
	if err != nil {
		return nil, err
	}

	return &Selection{Name: transient.Name, Transient: transient}, nil
}
