package runconfig

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spjmurray/tco/internal/config"
)

func TestFlagEmitter(t *testing.T) {
	cfg := fullConfig()
	cfg.Docker = config.DockerRegistry{
		Server:   "registry.example.com",
		Username: "dev",
		Password: "hunter2",
	}

	schema, err := Lookup(config.SchemaFlags)
	require.NoError(t, err)

	rc := Synthesize(cfg, "TestSanity", schema)

	args, transient, err := schema.Emit(rc)
	require.NoError(t, err)
	assert.Nil(t, transient)

	want := []string{
		"-operator-image", "registry.example.com/operator:latest",
		"-admission-image", "registry.example.com/admission:latest",
		"-server-image", "registry.example.com/server:7.0.0",
		"-server-image-upgrade", "registry.example.com/server:7.0.1",
		"-mobile-image", "registry.example.com/sync-gateway:3.0.0",
		"-storage-class", "fast",
		"-suite", "TestSanity",
		"-kubeconfig1", "/home/dev/.kube/config",
		"-namespace1", "default",
		"-kubeconfig2", "/home/dev/.kube/config",
		"-namespace2", "remote",
		"-context1", "kind-alpha",
		"-context2", "kind-alpha",
		"-collect-logs",
		"-docker-server", "registry.example.com",
		"-docker-username", "dev",
		"-docker-password", "hunter2",
	}
	assert.Equal(t, want, args)
}

func TestFlagEmitterOmitsOptional(t *testing.T) {
	cfg := fullConfig()
	cfg.Contexts = nil
	cfg.CollectLogs = false

	schema, err := Lookup(config.SchemaFlags)
	require.NoError(t, err)

	args, _, err := schema.Emit(Synthesize(cfg, "TestSanity", schema))
	require.NoError(t, err)

	joined := strings.Join(args, " ")
	assert.NotContains(t, joined, "-docker-server")
	assert.NotContains(t, joined, "-collect-logs")
	assert.NotContains(t, joined, "-context1")
}

func TestFileEmitter(t *testing.T) {
	schema, err := Lookup(config.SchemaFile)
	require.NoError(t, err)

	rc := Synthesize(fullConfig(), "TestP0", schema)

	args, transient, err := schema.Emit(rc)
	require.NoError(t, err)
	require.NotNil(t, transient)

	defer transient.Remove()

	require.True(t, len(args) >= 2)
	assert.Equal(t, "-testconfig", args[0])
	assert.Equal(t, transient.Path, args[1])
	assert.True(t, strings.HasSuffix(transient.Path, ".json"))

	// Connection flags still travel on the command line.
	joined := strings.Join(args[2:], " ")
	assert.Contains(t, joined, "-kubeconfig1")
	assert.Contains(t, joined, "-namespace2 remote")

	// Round trip: the document parses back to exactly what was synthesized.
	data, err := os.ReadFile(transient.Path)
	require.NoError(t, err)

	var parsed RunConfig
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, *rc, parsed)
}

func TestFileEmitterYAML(t *testing.T) {
	// No current generation pairs file emission with YAML resources, but the
	// encoder follows the descriptor rather than assuming JSON.
	schema := &Schema{Name: "file-yaml", ConfigExt: ".yaml", emitter: &FileEmitter{}}

	rc := Synthesize(fullConfig(), "TestP1", schema)

	args, transient, err := schema.Emit(rc)
	require.NoError(t, err)
	require.NotNil(t, transient)

	defer transient.Remove()

	assert.True(t, strings.HasSuffix(args[1], ".yaml"))

	data, err := os.ReadFile(transient.Path)
	require.NoError(t, err)

	var parsed RunConfig
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, *rc, parsed)
}

func TestTransientRemove(t *testing.T) {
	schema, err := Lookup(config.SchemaFile)
	require.NoError(t, err)

	_, transient, err := schema.Emit(Synthesize(fullConfig(), "TestP0", schema))
	require.NoError(t, err)

	require.NoError(t, transient.Remove())

	_, err = os.Stat(transient.Path)
	assert.True(t, os.IsNotExist(err))
}
