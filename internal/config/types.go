package config

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spjmurray/tco/internal/suite"
)

// Runner schema names, selecting how the synthesized test configuration is
// handed to the external runner. The older runner generations consumed a
// single config file; the current one takes discrete flags.
const (
	// SchemaFlags flattens every run parameter into its own runner flag.
	SchemaFlags = "flags"
	// SchemaFile writes the run parameters to a transient config file and
	// passes its path as a single flag.
	SchemaFile = "file"
)

// DockerRegistry holds private registry credentials used by the runner to
// pull server images. All-or-nothing: if any field is set, all must be.
type DockerRegistry struct {
	Server   string
	Username string
	Password string
}

// Empty reports whether no registry field is set at all.
func (d DockerRegistry) Empty() bool {
	return d.Server == "" && d.Username == "" && d.Password == ""
}

// Config is the fully resolved set of run parameters after merging built-in
// defaults, the static user config file, and explicitly supplied command-line
// flags, in that order of precedence.
type Config struct {
	Namespace          string
	Kubeconfig         string
	Contexts           []string
	ServiceAccount     string
	OperatorImage      string
	AdmissionImage     string
	ServerImage        string
	ServerUpgradeImage string
	SyncGatewayImage   string
	StorageClass       string
	RepoRoot           string
	Docker             DockerRegistry

	// Suite and Tests are mutually exclusive; exactly one selects what runs.
	Suite suite.Alias
	Tests []string

	Verbose      bool
	CollectLogs  bool
	Timeout      time.Duration
	RunnerSchema string
}

// Duration wraps time.Duration so the static config file can spell durations
// the way the runner flags do ("16h"), rather than as integer nanoseconds.
type Duration time.Duration

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Overlay is one layer of configuration overrides. Pointer fields distinguish
// "key absent" from "key explicitly set to the zero value", so a present key
// fully replaces the corresponding Config field and an absent one leaves it
// alone. The same type carries both the static-file layer (decoded from YAML,
// keys named after the long flags) and the command-line layer (populated only
// for flags the user actually supplied).
type Overlay struct {
	Namespace          *string   `yaml:"namespace"`
	Kubeconfig         *string   `yaml:"kubeconfig"`
	Contexts           []string  `yaml:"context"`
	ServiceAccount     *string   `yaml:"service-account"`
	OperatorImage      *string   `yaml:"image"`
	AdmissionImage     *string   `yaml:"admission-controller-image"`
	ServerImage        *string   `yaml:"server-image"`
	ServerUpgradeImage *string   `yaml:"server-upgrade-image"`
	SyncGatewayImage   *string   `yaml:"sync-gateway-image"`
	StorageClass       *string   `yaml:"storage-class"`
	RepoRoot           *string   `yaml:"repo"`
	DockerServer       *string   `yaml:"docker-server"`
	DockerUsername     *string   `yaml:"docker-username"`
	DockerPassword     *string   `yaml:"docker-password"`
	Suite              *string   `yaml:"suite"`
	Tests              []string  `yaml:"test"`
	Verbose            *bool     `yaml:"verbose"`
	CollectLogs        *bool     `yaml:"collect-logs"`
	Timeout            *Duration `yaml:"timeout"`
	RunnerSchema       *string   `yaml:"runner-schema"`
}

// selectsSuite reports whether this layer supplies either half of the suite
// selector.
func (o *Overlay) selectsSuite() bool {
	return o != nil && (o.Suite != nil || len(o.Tests) > 0)
}

// apply replaces every Config field for which this layer has a present key.
func (o *Overlay) apply(c *Config) {
	if o == nil {
		return
	}
	if o.Namespace != nil {
		c.Namespace = *o.Namespace
	}
	if o.Kubeconfig != nil {
		c.Kubeconfig = *o.Kubeconfig
	}
	if o.Contexts != nil {
		c.Contexts = o.Contexts
	}
	if o.ServiceAccount != nil {
		c.ServiceAccount = *o.ServiceAccount
	}
	if o.OperatorImage != nil {
		c.OperatorImage = *o.OperatorImage
	}
	if o.AdmissionImage != nil {
		c.AdmissionImage = *o.AdmissionImage
	}
	if o.ServerImage != nil {
		c.ServerImage = *o.ServerImage
	}
	if o.ServerUpgradeImage != nil {
		c.ServerUpgradeImage = *o.ServerUpgradeImage
	}
	if o.SyncGatewayImage != nil {
		c.SyncGatewayImage = *o.SyncGatewayImage
	}
	if o.StorageClass != nil {
		c.StorageClass = *o.StorageClass
	}
	if o.RepoRoot != nil {
		c.RepoRoot = *o.RepoRoot
	}
	if o.DockerServer != nil {
		c.Docker.Server = *o.DockerServer
	}
	if o.DockerUsername != nil {
		c.Docker.Username = *o.DockerUsername
	}
	if o.DockerPassword != nil {
		c.Docker.Password = *o.DockerPassword
	}
	if o.Suite != nil {
		c.Suite = suite.Alias(*o.Suite)
	}
	if o.Tests != nil {
		c.Tests = o.Tests
	}
	if o.Verbose != nil {
		c.Verbose = *o.Verbose
	}
	if o.CollectLogs != nil {
		c.CollectLogs = *o.CollectLogs
	}
	if o.Timeout != nil {
		c.Timeout = time.Duration(*o.Timeout)
	}
	if o.RunnerSchema != nil {
		c.RunnerSchema = *o.RunnerSchema
	}
}
