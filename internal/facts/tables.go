// Package facts holds the relational fact model shared between the
// extractor and the policy engine. Each slice is a relation (table) with
// flat rows; the JSON field names are the contract the rego rules and the
// CUE schema are written against.
package facts

import (
	"github.com/robert-at-pretension-io/verilog-lint/internal/extractor"
)

// Tables is the full fact snapshot for one module analysis.
type Tables struct {
	Ports       []PortRow       `json:"ports"`
	PortRegs    []PortRegRow    `json:"port_regs"`
	Signals     []SignalRow     `json:"signals"`
	Params      []ParamRow      `json:"params"`
	DeclLines   []int           `json:"decl_lines"`
	Assigns     []AssignRow     `json:"assigns"`
	ProcAssigns []ProcAssignRow `json:"proc_assigns"`
	References  []ReferenceRow  `json:"references"`
}

type PortRow struct {
	Name string `json:"name"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

// PortRegRow marks a port declared with an explicit reg qualifier.
type PortRegRow struct {
	Name string `json:"name"`
}

type SignalRow struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Line   int    `json:"line"`
	Col    int    `json:"col"`
	Offset int    `json:"offset"`
}

type ParamRow struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

type AssignRow struct {
	LValue string `json:"lvalue"`
	Line   int    `json:"line"`
	Col    int    `json:"col"`
	Offset int    `json:"offset"`
}

type ProcAssignRow struct {
	LValue string `json:"lvalue"`
	Block  string `json:"block"`
	Line   int    `json:"line"`
	Col    int    `json:"col"`
	Offset int    `json:"offset"`
}

type ReferenceRow struct {
	Name   string `json:"name"`
	Line   int    `json:"line"`
	Col    int    `json:"col"`
	Offset int    `json:"offset"`
}

// BuildTables converts extracted module facts into the relational model.
// Slices are always non-nil so the tables serialize as JSON arrays, never
// null; the schema and the rego rules both count on that.
func BuildTables(mf extractor.ModuleFacts) Tables {
	tables := Tables{
		Ports:       []PortRow{},
		PortRegs:    []PortRegRow{},
		Signals:     []SignalRow{},
		Params:      []ParamRow{},
		DeclLines:   []int{},
		Assigns:     []AssignRow{},
		ProcAssigns: []ProcAssignRow{},
		References:  []ReferenceRow{},
	}

	for _, p := range mf.Ports {
		tables.Ports = append(tables.Ports, PortRow{Name: p.Name, Line: p.Line, Col: p.Col})
	}
	for _, name := range mf.PortRegs {
		tables.PortRegs = append(tables.PortRegs, PortRegRow{Name: name})
	}
	for _, sig := range mf.Signals {
		tables.Signals = append(tables.Signals, SignalRow{
			Name:   sig.Name,
			Kind:   sig.Kind,
			Line:   sig.Line,
			Col:    sig.Col,
			Offset: sig.Offset,
		})
	}
	for _, p := range mf.Params {
		tables.Params = append(tables.Params, ParamRow{Name: p.Name, Line: p.Line})
	}
	tables.DeclLines = append(tables.DeclLines, mf.DeclLines...)
	for _, a := range mf.Assigns {
		tables.Assigns = append(tables.Assigns, AssignRow{
			LValue: a.LValue,
			Line:   a.Line,
			Col:    a.Col,
			Offset: a.Offset,
		})
	}
	for _, pa := range mf.ProcAssigns {
		tables.ProcAssigns = append(tables.ProcAssigns, ProcAssignRow{
			LValue: pa.LValue,
			Block:  pa.Block,
			Line:   pa.Line,
			Col:    pa.Col,
			Offset: pa.Offset,
		})
	}
	for _, r := range mf.References {
		tables.References = append(tables.References, ReferenceRow{
			Name:   r.Name,
			Line:   r.Line,
			Col:    r.Col,
			Offset: r.Offset,
		})
	}

	return tables
}
