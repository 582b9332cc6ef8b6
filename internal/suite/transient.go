package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// suitesDir is where the runner discovers suite definitions, relative to the
// repository root.
const suitesDir = "test/e2e/resources/suites"

// Transient suites run under the runner's single-test harness, which fixes
// the suite name, a generous timeout and the clusters the testcases may
// reference.
const (
	singleSuite   = "TestSingle"
	singleTimeout = "240m"
	singleGroup   = "Group1"
)

var singleClusters = []string{"BasicCluster", "NewCluster1"}

// Definition mirrors the suite file format the runner consumes.
type Definition struct {
	Suite   string  `yaml:"suite"`
	Timeout string  `yaml:"timeout"`
	Groups  []Group `yaml:"tcGroups"`
}

// Group is one testcase group within a suite definition.
type Group struct {
	Name      string   `yaml:"name"`
	Clusters  []string `yaml:"clusters"`
	Testcases []Case   `yaml:"testcases"`
}

// Case names a single testcase within a group.
type Case struct {
	Name string `yaml:"name"`
}

// Transient is a synthesized single-use suite definition written into the
// runner's suite directory. The file must outlive the runner process, so
// removal is left to the caller.
type Transient struct {
	// Name is the suite identifier, the file's base name minus extension.
	Name string

	// Path is the definition file's location.
	Path string
}

// Remove deletes the backing definition file.
func (t *Transient) Remove() error {
	if err := os.Remove(t.Path); err != nil {
		return fmt.Errorf("failed to remove transient suite %s: %w", t.Path, err)
	}

	return nil
}

// writeTransient synthesizes a suite running exactly the named tests and
// writes it to a uniquely named file so concurrent runs cannot collide.
func writeTransient(tests []string, repoRoot string) (*Transient, error) {
	definition := Definition{
		Suite:   singleSuite,
		Timeout: singleTimeout,
		Groups: []Group{
			{
				Name:      singleGroup,
				Clusters:  singleClusters,
				Testcases: make([]Case, 0, len(tests)),
			},
		},
	}

	for _, test := range tests {
		definition.Groups[0].Testcases = append(definition.Groups[0].Testcases, Case{Name: test})
	}

	data, err := yaml.Marshal(&definition)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suite definition: %w", err)
	}

	dir := filepath.Join(repoRoot, suitesDir)

	file, err := os.CreateTemp(dir, "single-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to create transient suite in %s: %w", dir, err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(file.Name())

		return nil, fmt.Errorf("failed to write transient suite %s: %w", file.Name(), err)
	}

	if err := file.Close(); err != nil {
		os.Remove(file.Name())

		return nil, fmt.Errorf("failed to write transient suite %s: %w", file.Name(), err)
	}

	name := strings.TrimSuffix(filepath.Base(file.Name()), filepath.Ext(file.Name()))

	return &Transient{Name: name, Path: file.Name()}, nil
}
