// Package runconfig synthesizes the run description the e2e runner consumes
// and renders it for one of the runner's interface generations, either as a
// full set of discrete flags or as a single config file passed by path.
package runconfig

import (
	"fmt"
	"os"

	"github.com/spjmurray/tco/internal/cluster"
)

// Platform identifies the orchestration target the runner validates against.
type Platform struct {
	Type    string `yaml:"type" json:"type"`
	Version string `yaml:"version" json:"version"`
}

// Images collects every image reference a run deploys.
type Images struct {
	Operator      string `yaml:"operator" json:"operator"`
	Admission     string `yaml:"admission" json:"admission"`
	Server        string `yaml:"server" json:"server"`
	ServerUpgrade string `yaml:"serverUpgrade" json:"serverUpgrade"`
	SyncGateway   string `yaml:"syncGateway" json:"syncGateway"`
}

// Docker carries private registry credentials into the run.
type Docker struct {
	Server   string `yaml:"server" json:"server"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// RunConfig is the complete description of one run, assembled once from the
// resolved configuration and the selected suite, and never mutated after.
type RunConfig struct {
	// Suite is the identifier the runner resolves against its suite
	// directory.
	Suite string `yaml:"suite" json:"suite"`

	Platform       Platform `yaml:"platform" json:"platform"`
	Namespace      string   `yaml:"namespace" json:"namespace"`
	ServiceAccount string   `yaml:"serviceAccount" json:"serviceAccount"`
	Images         Images   `yaml:"images" json:"images"`
	StorageClass   string   `yaml:"storageClass" json:"storageClass"`

	// DeploymentSpec and ClusterConfig are resources inside the repository
	// checkout, derived rather than user supplied.
	DeploymentSpec string `yaml:"deploymentSpec" json:"deploymentSpec"`
	ClusterConfig  string `yaml:"clusterConfig" json:"clusterConfig"`

	Clusters cluster.Endpoints `yaml:"clusters" json:"clusters"`

	// Duration is the soak allowance in days.
	Duration int `yaml:"duration" json:"duration"`

	// SkipTeardown is always false for developer runs; resources are torn
	// down so repeated runs start clean.
	SkipTeardown bool `yaml:"skipTeardown" json:"skipTeardown"`

	CollectLogs bool `yaml:"collectLogs" json:"collectLogs"`

	// Docker is present only when registry credentials were supplied.
	Docker *Docker `yaml:"docker,omitempty" json:"docker,omitempty"`
}

// Transient is a run configuration written to a temporary file for the
// runner to read. The file must outlive the runner process, so removal is
// left to the caller.
type Transient struct {
	// Path is the file's location, under the OS temp directory rather than
	// the repository.
	Path string
}

// Remove deletes the backing file.
func (t *Transient) Remove() error {
	if err := os.Remove(t.Path); err != nil {
		return fmt.Errorf("failed to remove run config %s: %w", t.Path, err)
	}

	return nil
}
