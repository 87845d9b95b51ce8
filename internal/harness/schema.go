package harness

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// SchemaError reports a scenario file that does not satisfy #Scenario.
type SchemaError struct {
	Path    string
	Pos     string // "line:col" in the scenario file, if known
	Message string
}

func (e *SchemaError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s:%s: %s", e.Path, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// validateSchema checks raw scenario YAML against the #Scenario definition.
// The definition is closed, so unknown fields are rejected here as well as
// by the YAML decoder.
func validateSchema(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return formatCUEError(path, err)
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return formatCUEError(path, err)
	}

	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(path, err)
	}
	return nil
}

// formatCUEError converts the first CUE error into a SchemaError carrying
// its position in the scenario file.
func formatCUEError(path string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &SchemaError{Path: path, Message: err.Error()}
	}

	first := errs[0]
	schemaErr := &SchemaError{Path: path, Message: first.Error()}
	for _, pos := range cueerrors.Positions(first) {
		if pos.Filename() == path {
			schemaErr.Pos = fmt.Sprintf("%d:%d", pos.Line(), pos.Column())
			break
		}
	}
	return schemaErr
}
