package runconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileEmitter writes the run configuration to a single transient file and
// passes its path, the intake of the previous runner generation. The file
// lands in the OS temp directory; only the suite definition belongs inside
// the repository.
type FileEmitter struct{}

// Emit implements Emitter. The cluster connection flags still travel on the
// command line alongside the config path, since the runner establishes its
// connections before reading the config.
func (e *FileEmitter) Emit(schema *Schema, rc *RunConfig) ([]string, *Transient, error) {
	data, err := e.encode(schema, rc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode run config: %w", err)
	}

	file, err := os.CreateTemp("", "tco-run-*"+schema.ConfigExt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create run config: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(file.Name())

		return nil, nil, fmt.Errorf("failed to write run config %s: %w", file.Name(), err)
	}

	if err := file.Close(); err != nil {
		os.Remove(file.Name())

		return nil, nil, fmt.Errorf("failed to write run config %s: %w", file.Name(), err)
	}

	args := []string{"-testconfig", file.Name()}
	args = append(args, rc.Clusters.Args()...)

	return args, &Transient{Path: file.Name()}, nil
}

// encode serializes the run config in the format the schema's extension
// names.
func (e *FileEmitter) encode(schema *Schema, rc *RunConfig) ([]byte, error) {
	if schema.ConfigExt == ".json" {
		return json.MarshalIndent(rc, "", "  ")
	}

	return yaml.Marshal(rc)
}
