package runconfig

import (
	"path/filepath"

	"github.com/spjmurray/tco/internal/cluster"
	"github.com/spjmurray/tco/internal/config"
)

// Supporting resources inside the repository checkout, extension applied per
// schema generation.
const (
	deploymentSpecRel = "example/deployment"
	clusterConfigRel  = "test/e2e/resources/cluster_conf"
)

// Run parameters fixed for developer-driven runs.
const (
	platformType    = "kubernetes"
	platformVersion = "1.13"
	runDurationDays = 7
)

// Synthesize assembles the complete run description from the resolved
// configuration and the selected suite identifier. Pure assembly: any file
// the chosen schema needs is written at emission time, not here.
func Synthesize(cfg *config.Config, suiteName string, schema *Schema) *RunConfig {
	rc := &RunConfig{
		Suite: suiteName,
		Platform: Platform{
			Type:    platformType,
			Version: platformVersion,
		},
		Namespace:      cfg.Namespace,
		ServiceAccount: cfg.ServiceAccount,
		Images: Images{
			Operator:      cfg.OperatorImage,
			Admission:     cfg.AdmissionImage,
			Server:        cfg.ServerImage,
			ServerUpgrade: cfg.ServerUpgradeImage,
			SyncGateway:   cfg.SyncGatewayImage,
		},
		StorageClass:   cfg.StorageClass,
		DeploymentSpec: filepath.Join(cfg.RepoRoot, deploymentSpecRel+schema.ConfigExt),
		ClusterConfig:  filepath.Join(cfg.RepoRoot, clusterConfigRel+schema.ConfigExt),
		Clusters:       cluster.New(cfg.Kubeconfig, cfg.Contexts),
		Duration:       runDurationDays,
		CollectLogs:    cfg.CollectLogs,
	}

	if !cfg.Docker.Empty() {
		rc.Docker = &Docker{
			Server:   cfg.Docker.Server,
			Username: cfg.Docker.Username,
			Password: cfg.Docker.Password,
		}
	}

	return rc
}
