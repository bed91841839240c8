// Package policy evaluates the signal-usage rules against extracted fact
// tables. The rules themselves live in signals.rego and are compiled into
// the binary; the Go side only prepares the queries and decodes results.
package policy

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/robert-at-pretension-io/verilog-lint/internal/facts"
)

//go:embed signals.rego
var policyFS embed.FS

// Violation is one rule hit at a source location. Offset is the byte
// position of the token the rule fired on; rules discover their hits in
// ascending offset order, which the report sort relies on.
type Violation struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Offset   int    `json:"offset"`
	Message  string `json:"message"`
}

// Result contains the evaluation results for one module.
type Result struct {
	Violations []Violation
	Summary    Summary
}

// Summary provides aggregate counts.
type Summary struct {
	TotalViolations int `json:"total_violations"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
}

// Engine holds the prepared rego queries. Preparing is the expensive part,
// so an Engine is built once and reused; prepared queries are read-only
// and safe for concurrent Evaluate calls.
type Engine struct {
	queries map[string]rego.PreparedEvalQuery
}

// New compiles the embedded policy module and prepares the violation and
// summary queries.
func New() (*Engine, error) {
	source, err := policyFS.ReadFile("signals.rego")
	if err != nil {
		return nil, fmt.Errorf("loading embedded policy: %w", err)
	}
	module := rego.Module("signals.rego", string(source))

	engine := &Engine{
		queries: make(map[string]rego.PreparedEvalQuery),
	}

	query, err := rego.New(module, rego.Query("data.verilog.signals.all_violations")).
		PrepareForEval(context.Background())
	if err != nil {
		return nil, fmt.Errorf("preparing violations query: %w", err)
	}
	engine.queries["violations"] = query

	query, err = rego.New(module, rego.Query("data.verilog.signals.summary")).
		PrepareForEval(context.Background())
	if err != nil {
		return nil, fmt.Errorf("preparing summary query: %w", err)
	}
	engine.queries["summary"] = query

	return engine, nil
}

// Evaluate runs the signal rules against one module's fact tables.
func (e *Engine) Evaluate(tables facts.Tables) (*Result, error) {
	ctx := context.Background()

	inputMap, err := structToMap(tables)
	if err != nil {
		return nil, fmt.Errorf("converting input: %w", err)
	}

	result := &Result{}

	rs, err := e.queries["violations"].Eval(ctx, rego.EvalInput(inputMap))
	if err != nil {
		return nil, fmt.Errorf("evaluating violations: %w", err)
	}

	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		violations, ok := rs[0].Expressions[0].Value.([]interface{})
		if ok {
			for _, v := range violations {
				vmap, ok := v.(map[string]interface{})
				if !ok {
					continue
				}
				result.Violations = append(result.Violations, Violation{
					Rule:     getString(vmap, "rule"),
					Severity: getString(vmap, "severity"),
					Line:     getInt(vmap, "line"),
					Col:      getInt(vmap, "col"),
					Offset:   getInt(vmap, "offset"),
					Message:  getString(vmap, "message"),
				})
			}
		}
	}

	rs, err = e.queries["summary"].Eval(ctx, rego.EvalInput(inputMap))
	if err != nil {
		return nil, fmt.Errorf("evaluating summary: %w", err)
	}

	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		smap, ok := rs[0].Expressions[0].Value.(map[string]interface{})
		if ok {
			result.Summary = Summary{
				TotalViolations: getInt(smap, "total_violations"),
				Errors:          getInt(smap, "errors"),
				Warnings:        getInt(smap, "warnings"),
				Info:            getInt(smap, "info"),
			}
		}
	}

	return result, nil
}

func structToMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	err = json.Unmarshal(data, &result)
	return result, err
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case json.Number:
			i, _ := n.Int64()
			return int(i)
		}
	}
	return 0
}
