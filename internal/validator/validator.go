// Package validator enforces the data contract between the extractor and
// the policy engine. A schema mismatch here means a bug upstream, and the
// right response is an immediate, loud failure: if bad fact tables reach
// OPA, rules silently receive undefined values and stop firing, which
// looks exactly like clean source code.
package validator

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

//go:embed output_schema.cue
var outputSchemaFS embed.FS

// Validator checks fact tables against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New creates a Validator from the embedded facts schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate checks that data conforms to the #Input definition. Returns
// nil if valid, or an error explaining what failed.
func (v *Validator) Validate(data interface{}) error {
	return v.validateAgainst("#Input", data)
}

func (v *Validator) validateAgainst(defName string, data interface{}) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data to JSON: %w", err)
	}

	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling data as CUE: %w", dataValue.Err())
	}

	def := v.schema.LookupPath(cue.ParsePath(defName))
	if def.Err() != nil {
		return fmt.Errorf("looking up %s definition: %w", defName, def.Err())
	}

	// Unification is CUE's type checking.
	unified := def.Unify(dataValue)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// ValidationErrors returns one message per validation failure, or nil
// when the data is valid.
func (v *Validator) ValidationErrors(data interface{}) []string {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return []string{fmt.Sprintf("marshal error: %v", err)}
	}

	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return []string{fmt.Sprintf("compile error: %v", dataValue.Err())}
	}

	inputDef := v.schema.LookupPath(cue.ParsePath("#Input"))
	if inputDef.Err() != nil {
		return []string{fmt.Sprintf("schema lookup error: %v", inputDef.Err())}
	}

	unified := inputDef.Unify(dataValue)
	err = unified.Validate()
	if err == nil {
		return nil
	}

	var errs []string
	for _, e := range errors.Errors(err) {
		errs = append(errs, e.Error())
	}
	return errs
}

// OutputValidator checks linter warnings against the output schema.
type OutputValidator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewOutputValidator creates a validator for linter output.
func NewOutputValidator() (*OutputValidator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := outputSchemaFS.ReadFile("output_schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading output schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling output schema: %w", schema.Err())
	}

	return &OutputValidator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// ValidateWarning checks a single warning against the #Warning definition.
func (v *OutputValidator) ValidateWarning(w interface{}) error {
	jsonBytes, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshaling warning to JSON: %w", err)
	}

	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling warning as CUE: %w", dataValue.Err())
	}

	def := v.schema.LookupPath(cue.ParsePath("#Warning"))
	if def.Err() != nil {
		return fmt.Errorf("looking up #Warning definition: %w", def.Err())
	}

	unified := def.Unify(dataValue)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("output schema validation failed: %w", err)
	}

	return nil
}
