// Package linter wires the analysis pipeline together: normalize the
// source text, extract symbol and usage facts, validate the fact tables
// against the CUE contract, evaluate the rego rules, and return the
// warnings in report order.
package linter

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/robert-at-pretension-io/verilog-lint/internal/config"
	"github.com/robert-at-pretension-io/verilog-lint/internal/extractor"
	"github.com/robert-at-pretension-io/verilog-lint/internal/facts"
	"github.com/robert-at-pretension-io/verilog-lint/internal/policy"
	"github.com/robert-at-pretension-io/verilog-lint/internal/validator"
)

// Rules are reported in this order when several hit the same line.
var rulePriority = map[string]int{
	config.RuleAssignToReg:        0,
	config.RuleProcAssignToWire:   1,
	config.RuleUndeclaredSignal:   2,
	config.RuleUnreferencedSignal: 3,
}

// Linter analyzes Verilog module sources. Construction prepares the rego
// queries and the schema validator; after that a Linter is read-only and
// safe to share across goroutines, one analysis per call.
type Linter struct {
	cfg             *config.Config
	validator       *validator.Validator
	outputValidator *validator.OutputValidator
	engine          *policy.Engine

	Verbose bool

	// Out receives warning lines, Diag receives errors and progress.
	Out  io.Writer
	Diag io.Writer
}

// New creates a Linter with the default configuration.
func New() (*Linter, error) {
	return NewWithConfig(config.DefaultConfig())
}

// NewWithConfig creates a Linter using the given configuration.
func NewWithConfig(cfg *config.Config) (*Linter, error) {
	v, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("initializing facts validator: %w", err)
	}
	ov, err := validator.NewOutputValidator()
	if err != nil {
		return nil, fmt.Errorf("initializing output validator: %w", err)
	}
	engine, err := policy.New()
	if err != nil {
		return nil, fmt.Errorf("initializing policy engine: %w", err)
	}
	return &Linter{
		cfg:             cfg,
		validator:       v,
		outputValidator: ov,
		engine:          engine,
		Out:             os.Stdout,
		Diag:            os.Stderr,
	}, nil
}

// CheckModule analyzes one module's source text and returns its warnings
// sorted by line. It performs no I/O and keeps no state between calls;
// identical input yields identical output. Malformed Verilog never
// produces an error, only fewer facts. An error here means the pipeline
// itself broke its data contract.
func (l *Linter) CheckModule(text string) ([]policy.Violation, error) {
	normalized := extractor.Normalize(text)
	moduleFacts := extractor.ExtractModule(normalized)
	tables := facts.BuildTables(moduleFacts)

	if err := l.validator.Validate(tables); err != nil {
		return nil, fmt.Errorf("facts contract: %w", err)
	}

	result, err := l.engine.Evaluate(tables)
	if err != nil {
		return nil, fmt.Errorf("evaluating rules: %w", err)
	}

	violations := l.applyRuleConfig(result.Violations)
	sortViolations(violations)
	for _, v := range violations {
		if err := l.outputValidator.ValidateWarning(v); err != nil {
			return nil, fmt.Errorf("output contract: %w", err)
		}
	}
	return violations, nil
}

// CheckFile reads a Verilog file and analyzes it. A read failure is
// reported on the diagnostic stream and yields zero warnings; the
// analysis core is never invoked for unreadable input.
func (l *Linter) CheckFile(path string) ([]policy.Violation, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(l.Diag, "Error reading %s: %v\n", path, err)
		return nil, nil
	}

	violations, err := l.CheckModule(string(content))
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	for i := range violations {
		violations[i].File = path
	}
	return violations, nil
}

// Run lints every given path (directories expand through the config's
// file patterns), prints one line per warning, and returns the process
// exit code: 1 if any warning was produced, 0 otherwise.
func (l *Linter) Run(paths ...string) (int, error) {
	rc := 0
	for _, path := range paths {
		files, err := l.resolvePath(path)
		if err != nil {
			return 1, err
		}
		for _, file := range files {
			if l.Verbose {
				fmt.Fprintf(l.Diag, "Linting %s\n", file)
			}
			violations, err := l.CheckFile(file)
			if err != nil {
				return 1, err
			}
			for _, v := range violations {
				fmt.Fprintf(l.Out, "%s:%d: %s: %s\n", v.File, v.Line, v.Severity, v.Message)
				rc = 1
			}
		}
	}
	return rc, nil
}

func (l *Linter) resolvePath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		// Let CheckFile report the read failure in its usual form.
		return []string{path}, nil
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := l.cfg.ResolveFiles(path)
	if err != nil {
		return nil, fmt.Errorf("resolving files under %s: %w", path, err)
	}
	return files, nil
}

// applyRuleConfig drops violations for rules configured off and relabels
// the rest with their configured severity.
func (l *Linter) applyRuleConfig(violations []policy.Violation) []policy.Violation {
	result := []policy.Violation{}
	for _, v := range violations {
		sev := l.cfg.Severity(v.Rule)
		if sev == "off" {
			continue
		}
		v.Severity = sev
		result = append(result, v)
	}
	return result
}

// sortViolations puts warnings into report order: ascending line, then
// rule priority, then token offset. Each rule discovers its hits in
// ascending offset order, so for equal lines this reproduces discovery
// order exactly. Column is no tiebreaker: a declaration list spanning
// several physical lines reports every name at the declaration's start
// line, and a continuation-line name may sit at a smaller column than a
// name declared before it.
func sortViolations(violations []policy.Violation) {
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if rulePriority[a.Rule] != rulePriority[b.Rule] {
			return rulePriority[a.Rule] < rulePriority[b.Rule]
		}
		return a.Offset < b.Offset
	})
}
