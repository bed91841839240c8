package extractor

import (
	"reflect"
	"testing"
)

func portNames(mf ModuleFacts) map[string]bool {
	names := map[string]bool{}
	for _, p := range mf.Ports {
		names[p.Name] = true
	}
	return names
}

func signalByName(mf ModuleFacts, name string) (Signal, bool) {
	for _, s := range mf.Signals {
		if s.Name == name {
			return s, true
		}
	}
	return Signal{}, false
}

func TestExtractAnsiPorts(t *testing.T) {
	src := `module m (
    input             clk,
    input       [7:0] din,
    output reg  [7:0] q,
    output wire [7:0] dout
);
endmodule
`
	mf := ExtractModule(Normalize(src))

	ports := portNames(mf)
	for _, want := range []string{"clk", "din", "q", "dout"} {
		if !ports[want] {
			t.Errorf("port %q missing from %v", want, mf.Ports)
		}
	}
	if len(mf.PortRegs) != 1 || mf.PortRegs[0] != "q" {
		t.Errorf("PortRegs = %v, want [q]", mf.PortRegs)
	}
	if len(mf.Signals) != 0 {
		t.Errorf("ports leaked into the internal-signal table: %v", mf.Signals)
	}
}

func TestExtractNonAnsiPorts(t *testing.T) {
	src := `module m (clk, din, dout);
    input        clk;
    input  [7:0] din;
    output [7:0] dout;
endmodule
`
	mf := ExtractModule(Normalize(src))

	ports := portNames(mf)
	for _, want := range []string{"clk", "din", "dout"} {
		if !ports[want] {
			t.Errorf("port %q missing from %v", want, mf.Ports)
		}
	}
	if len(mf.Signals) != 0 {
		t.Errorf("non-ANSI ports misclassified as internal signals: %v", mf.Signals)
	}

	declared := map[int]bool{}
	for _, ln := range mf.DeclLines {
		declared[ln] = true
	}
	for _, ln := range []int{2, 3, 4} {
		if !declared[ln] {
			t.Errorf("declaration line %d missing from DeclLines %v", ln, mf.DeclLines)
		}
	}
}

func TestExtractNonAnsiPortReg(t *testing.T) {
	src := `module m (q);
    output reg [7:0] q;
endmodule
`
	mf := ExtractModule(Normalize(src))

	if !portNames(mf)["q"] {
		t.Fatalf("q not a port: %v", mf.Ports)
	}
	if len(mf.PortRegs) != 1 || mf.PortRegs[0] != "q" {
		t.Errorf("PortRegs = %v, want [q]", mf.PortRegs)
	}
	if len(mf.Signals) != 0 {
		t.Errorf("reg-qualified port misclassified as internal signal: %v", mf.Signals)
	}
}

func TestExtractInternalSignals(t *testing.T) {
	src := `module m (input a, output b);
    wire w1;
    reg [3:0] r1;
endmodule
`
	mf := ExtractModule(Normalize(src))

	w1, ok := signalByName(mf, "w1")
	if !ok || w1.Kind != "wire" || w1.Line != 2 {
		t.Errorf("w1 = %+v (found=%v), want wire at line 2", w1, ok)
	}
	r1, ok := signalByName(mf, "r1")
	if !ok || r1.Kind != "reg" || r1.Line != 3 {
		t.Errorf("r1 = %+v (found=%v), want reg at line 3", r1, ok)
	}
	if _, ok := signalByName(mf, "a"); ok {
		t.Errorf("port a leaked into internal signals")
	}
}

// First declaration wins; a later redeclaration of the same name is
// silently ignored and never overwrites kind or line.
func TestExtractDuplicateDeclarationFirstWins(t *testing.T) {
	src := `module m (input a);
    wire w1;
    reg w1;
endmodule
`
	mf := ExtractModule(Normalize(src))

	count := 0
	for _, s := range mf.Signals {
		if s.Name == "w1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("w1 recorded %d times, want 1: %v", count, mf.Signals)
	}
	w1, _ := signalByName(mf, "w1")
	if w1.Kind != "wire" || w1.Line != 2 {
		t.Errorf("w1 = %+v, want the first (wire, line 2) declaration", w1)
	}
}

// Everything up to the terminating semicolon is part of the declaration
// span, so right-hand names of an initializer enter the table too.
func TestExtractDeclarationInitializerNames(t *testing.T) {
	src := `module m (input a);
    wire w1;
    wire w2 = a & w1;
endmodule
`
	mf := ExtractModule(Normalize(src))

	if _, ok := signalByName(mf, "w2"); !ok {
		t.Errorf("w2 missing: %v", mf.Signals)
	}
	if _, ok := signalByName(mf, "a"); ok {
		t.Errorf("port a must not enter the signal table")
	}
	w1, _ := signalByName(mf, "w1")
	if w1.Line != 2 {
		t.Errorf("w1 line = %d, want 2 (initializer use must not re-declare)", w1.Line)
	}
}

func TestExtractParameters(t *testing.T) {
	src := `module m #(parameter WIDTH = 8, parameter [3:0] MODE = 1) (input a);
    localparam DEPTH = 4;
endmodule
`
	mf := ExtractModule(Normalize(src))

	params := map[string]bool{}
	for _, p := range mf.Params {
		params[p.Name] = true
	}
	for _, want := range []string{"WIDTH", "MODE", "DEPTH"} {
		if !params[want] {
			t.Errorf("parameter %q missing from %v", want, mf.Params)
		}
	}
}

func TestExtractAssigns(t *testing.T) {
	src := `module m (input a, output b);
    assign b = a;
endmodule
`
	mf := ExtractModule(Normalize(src))

	if len(mf.Assigns) != 1 {
		t.Fatalf("Assigns = %v, want one entry", mf.Assigns)
	}
	if mf.Assigns[0].LValue != "b" || mf.Assigns[0].Line != 2 {
		t.Errorf("assign = %+v, want b at line 2", mf.Assigns[0])
	}
}

func TestExtractProceduralAssignments(t *testing.T) {
	src := `module m (input clk, input d, output q);
    reg r;
    wire w;
    always @(posedge clk) begin
        r <= d;
        w = d;
        if (r == d) begin
            r <= d;
        end
    end
    initial begin
        r = d;
    end
endmodule
`
	mf := ExtractModule(Normalize(src))

	type hit struct {
		lvalue string
		block  string
		line   int
	}
	var got []hit
	for _, pa := range mf.ProcAssigns {
		got = append(got, hit{pa.LValue, pa.Block, pa.Line})
	}
	want := []hit{
		{"r", "always", 5},
		{"w", "always", 6},
		{"r", "always", 8},
		{"r", "initial", 12},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProcAssigns = %v, want %v", got, want)
	}
}

func TestExtractProceduralAssignmentBitSelect(t *testing.T) {
	src := `module m (input clk, input d);
    reg [7:0] mem;
    always @(posedge clk) begin
        mem[3] <= d;
    end
endmodule
`
	mf := ExtractModule(Normalize(src))

	if len(mf.ProcAssigns) != 1 || mf.ProcAssigns[0].LValue != "mem" {
		t.Fatalf("ProcAssigns = %v, want mem only", mf.ProcAssigns)
	}
}

func TestExtractReferencesAndDeclLines(t *testing.T) {
	src := `module m (input a, output b);
    wire w;
    assign b = a & w & mystery;
endmodule
`
	mf := ExtractModule(Normalize(src))

	if !reflect.DeepEqual(mf.DeclLines, []int{1, 2}) {
		t.Errorf("DeclLines = %v, want [1 2]", mf.DeclLines)
	}

	var names []string
	for _, r := range mf.References {
		names = append(names, r.Name)
	}
	want := []string{"w", "b", "a", "w", "mystery"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("references = %v, want %v", names, want)
	}
}

// Identifiers in the module header (before the terminating semicolon)
// are not body references.
func TestExtractBodyStartsAfterHeader(t *testing.T) {
	src := `module m (input only_in_header, output b);
    assign b = b;
endmodule
`
	mf := ExtractModule(Normalize(src))

	for _, r := range mf.References {
		if r.Name == "only_in_header" || r.Name == "m" {
			t.Errorf("header identifier %q counted as body reference", r.Name)
		}
	}
}

func TestExtractEmptyAndGarbageInput(t *testing.T) {
	for _, src := range []string{"", "garbage ( [ ;;; )", "wire"} {
		mf := ExtractModule(Normalize(src))
		if len(mf.Signals) != 0 || len(mf.Ports) != 0 {
			t.Errorf("unexpected facts from %q: %+v", src, mf)
		}
	}
}
