package runconfig

import (
	"fmt"
	"strings"

	"github.com/spjmurray/tco/internal/config"
)

// Emitter renders a run configuration into the argument fragment one runner
// generation consumes. Exactly one emitter runs per invocation.
type Emitter interface {
	// Emit renders the runner-directed arguments. A non-nil transient must
	// outlive the runner process; the caller owns its removal.
	Emit(schema *Schema, rc *RunConfig) ([]string, *Transient, error)
}

// Schema describes one generation of the runner's accepted interface. The
// intake has alternated between discrete flags and a single config file over
// the runner's lifetime, and the extension of its supporting resources moved
// with it, so both halves live on one descriptor instead of being hard-coded
// at each use site.
type Schema struct {
	// Name selects the schema on the command line.
	Name string

	// ConfigExt is the extension of the config documents this generation
	// reads, applied to the derived resource paths and, for file emission,
	// the generated run config itself.
	ConfigExt string

	emitter Emitter
}

// Emit renders the run configuration through this schema's emitter.
func (s *Schema) Emit(rc *RunConfig) ([]string, *Transient, error) {
	return s.emitter.Emit(s, rc)
}

var schemas = map[string]*Schema{
	config.SchemaFlags: {
		Name:      config.SchemaFlags,
		ConfigExt: ".yaml",
		emitter:   &FlagEmitter{},
	},
	config.SchemaFile: {
		Name:      config.SchemaFile,
		ConfigExt: ".json",
		emitter:   &FileEmitter{},
	},
}

// Names returns the known schema names for flag help text and completion.
func Names() []string {
	return []string{config.SchemaFlags, config.SchemaFile}
}

// Lookup finds the schema descriptor for a name. Configuration validation
// has already established membership, so a miss here is a programming error
// rather than user error, but it is reported all the same.
func Lookup(name string) (*Schema, error) {
	schema, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown runner schema %q, expected one of %s", name, strings.Join(Names(), ", "))
	}

	return schema, nil
}
