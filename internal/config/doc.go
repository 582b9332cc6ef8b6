// Package config resolves the parameters for a test run.
//
// Configuration is merged from three sources in ascending precedence, with
// later sources overriding earlier ones:
//
//  1. Built-in defaults
//     - Cover every setting except the repository root
//     - Track the current operator release train
//
//  2. Static file (~/.tco/config)
//     - Developer-specific settings that rarely change between runs
//     - Useful for the repository root, registry credentials and images
//
//  3. Command line
//     - Only flags the user explicitly set take part in the merge, so a
//       flag sitting at its built-in default never shadows a file value
//
// # Static File Format
//
// The static file is YAML; keys are named after the long command-line flags:
//
//	namespace: test
//	kubeconfig: ~/.kube/config
//	repo: ~/go/src/github.com/couchbase/couchbase-operator
//	image: registry.example.com/couchbase-operator:latest
//	docker-server: registry.example.com
//	docker-username: dev
//	docker-password: hunter2
//	timeout: 8h
//	collect-logs: true
//
// A missing file is not an error; resolution simply continues with defaults
// and the command line.
//
// # Suite Selection
//
// The suite alias and the explicit test list are mutually exclusive and one
// of them is required. They are also treated as a single unit during the
// merge: a suite or test selection on the command line discards any
// selection the static file makes, rather than combining with it.
//
// # Path Expansion
//
// Path-typed values (kubeconfig, repo) understand a leading ~, expanded to
// the current user's home directory after all sources are merged.
//
// # Validation
//
// Constraint violations are collected and reported together rather than one
// at a time, and nothing is launched while any of them stands.
//
// # Usage Example
//
//	cfg, err := config.Resolve(overlayFromFlags())
//	if err != nil {
//	    return err
//	}
//
//	fmt.Printf("running %s against %s\n", cfg.Suite, cfg.Namespace)
package config
