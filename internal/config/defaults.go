package config

import "time"

// Default returns the built-in configuration the static file and command line
// layer on top of. Image references track the current release train; the
// repository root has no sensible default and must be supplied.
func Default() Config {
	return Config{
		Namespace:          "default",
		Kubeconfig:         "~/.kube/config",
		ServiceAccount:     "default",
		OperatorImage:      "couchbase/couchbase-operator:v1",
		AdmissionImage:     "couchbase/couchbase-operator-admission:v1",
		ServerImage:        "couchbase/server:6.5.0",
		ServerUpgradeImage: "couchbase/server:6.5.1",
		SyncGatewayImage:   "couchbase/sync-gateway:2.7.0-enterprise",
		StorageClass:       "standard",
		Timeout:            16 * time.Hour,
		RunnerSchema:       SchemaFlags,
	}
}
