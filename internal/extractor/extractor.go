package extractor

import "sort"

// Signal is one internal (non-port) wire/reg declaration.
type Signal struct {
	Name   string
	Kind   string // "wire" or "reg"
	Line   int    // line of the declaration's starting keyword
	Col    int    // column of the name token
	Offset int    // byte offset of the name token
}

// Port is a module port name from either declaration style.
type Port struct {
	Name string
	Line int
	Col  int
}

// Param is a parameter/localparam name.
type Param struct {
	Name string
	Line int
}

// Assign is one continuous-assignment site: "assign <name> ...".
type Assign struct {
	LValue string
	Line   int // line of the assign keyword
	Col    int
	Offset int // byte offset of the assign keyword
}

// ProcAssign is one procedural-assignment l-value inside an always or
// initial block.
type ProcAssign struct {
	LValue string
	Block  string // "always" or "initial"
	Line   int    // line of the l-value token
	Col    int
	Offset int // byte offset of the l-value token
}

// Reference is one identifier occurrence in the module body.
type Reference struct {
	Name   string
	Line   int
	Col    int
	Offset int
}

// ModuleFacts is everything the rule engine needs to know about one
// module's text. Built once per analysis, read-only afterwards.
type ModuleFacts struct {
	Ports       []Port
	PortRegs    []string
	Signals     []Signal
	Params      []Param
	DeclLines   []int
	Assigns     []Assign
	ProcAssigns []ProcAssign
	References  []Reference
}

// ExtractModule scans normalized module text and builds the symbol and
// usage facts. Ports are collected before internal signals so that a port
// redundantly matching the internal-declaration shape is never
// misclassified. Constructs that do not match any declaration shape
// simply contribute nothing.
func ExtractModule(text string) ModuleFacts {
	s := &moduleScan{
		tokens:    Scan(text),
		portSet:   map[string]bool{},
		regSet:    map[string]bool{},
		signalSet: map[string]bool{},
		paramSet:  map[string]bool{},
		declLines: map[int]bool{},
	}
	s.scanPorts()
	s.scanSignals()
	s.scanParams()
	s.scanAssigns()
	s.scanBlocks()
	s.scanReferences()
	return s.facts()
}

type moduleScan struct {
	tokens []Token

	portSet   map[string]bool
	regSet    map[string]bool
	signalSet map[string]bool
	paramSet  map[string]bool
	declLines map[int]bool

	ports       []Port
	portRegs    []string
	signals     []Signal
	params      []Param
	assigns     []Assign
	procAssigns []ProcAssign
	references  []Reference
}

func isDirection(t Token) bool {
	return t.Kind == TokenKeyword &&
		(t.Text == "input" || t.Text == "output" || t.Text == "inout")
}

// skipBracket returns the index just past a "[...]" group starting at j,
// or -1 when there is no closing "]". The first "]" closes the group;
// nesting is not tracked.
func (s *moduleScan) skipBracket(j, limit int) int {
	if j >= limit || s.tokens[j].Text != "[" {
		return j
	}
	for k := j + 1; k < limit; k++ {
		if s.tokens[k].Text == "]" {
			return k + 1
		}
	}
	return -1
}

// semicolonAfter returns the index of the next ";" token at or after j,
// or -1 if none remains.
func (s *moduleScan) semicolonAfter(j int) int {
	for ; j < len(s.tokens); j++ {
		if s.tokens[j].Text == ";" {
			return j
		}
	}
	return -1
}

func (s *moduleScan) addPort(t Token) {
	if s.portSet[t.Text] {
		return
	}
	s.portSet[t.Text] = true
	s.ports = append(s.ports, Port{Name: t.Text, Line: t.Line, Col: t.Col})
}

func (s *moduleScan) markDeclLines(from, to int) {
	for ln := from; ln <= to; ln++ {
		s.declLines[ln] = true
	}
}

// scanPorts handles the three port-related shapes in one pass:
//
//	ANSI:     input|output|inout [wire|reg] [signed|unsigned] [range] name  ,|)
//	non-ANSI: input|output|inout [wire|reg] [signed|unsigned] [range] name, ... ;
//	port reg: input|output|inout reg [signed|unsigned] [range] name
//
// The non-ANSI shape also matches inside an ANSI port list (everything up
// to the header's ";"), which is harmless for the port set and keeps the
// header lines in the declaration-line set.
func (s *moduleScan) scanPorts() {
	n := len(s.tokens)
	for i := 0; i < n; i++ {
		if !isDirection(s.tokens[i]) {
			continue
		}

		j := i + 1
		isReg := false
		if j < n && s.tokens[j].Kind == TokenKeyword &&
			(s.tokens[j].Text == "wire" || s.tokens[j].Text == "reg") {
			isReg = s.tokens[j].Text == "reg"
			j++
		}
		if j < n && s.tokens[j].Kind == TokenKeyword &&
			(s.tokens[j].Text == "signed" || s.tokens[j].Text == "unsigned") {
			j++
		}

		// ANSI port and port-reg both require a closed range when one
		// is present.
		if k := s.skipBracket(j, n); k >= 0 {
			if k < n && s.tokens[k].Kind == TokenIdent {
				name := s.tokens[k]
				if isReg && !s.regSet[name.Text] {
					s.regSet[name.Text] = true
					s.portRegs = append(s.portRegs, name.Text)
				}
				if k+1 < n && (s.tokens[k+1].Text == "," || s.tokens[k+1].Text == ")") {
					s.addPort(name)
				}
			}
		}

		// Non-ANSI list: an unclosed range just becomes part of the
		// captured span, mirroring an optional pattern group that
		// failed to participate.
		capStart := j
		if k := s.skipBracket(j, n); k >= 0 {
			capStart = k
		}
		semi := s.semicolonAfter(capStart)
		if semi < 0 {
			continue
		}
		for k := capStart; k < semi; k++ {
			if s.tokens[k].Kind == TokenIdent {
				s.addPort(s.tokens[k])
			}
		}
		s.markDeclLines(s.tokens[i].Line, s.tokens[semi].Line)
	}
}

// scanSignals collects internal wire/reg declarations. Every identifier in
// the span up to the terminating ";" is recorded, so a declaration
// initializer's right-hand names enter the table too. The first
// declaration of a name wins; redeclarations are ignored.
func (s *moduleScan) scanSignals() {
	n := len(s.tokens)
	for i := 0; i < n; i++ {
		t := s.tokens[i]
		if t.Kind != TokenKeyword || (t.Text != "wire" && t.Text != "reg") {
			continue
		}

		j := i + 1
		if j < n && s.tokens[j].Kind == TokenKeyword &&
			(s.tokens[j].Text == "signed" || s.tokens[j].Text == "unsigned") {
			j++
		}
		if k := s.skipBracket(j, n); k >= 0 {
			j = k
		}
		semi := s.semicolonAfter(j)
		if semi < 0 {
			continue
		}
		for k := j; k < semi; k++ {
			nt := s.tokens[k]
			if nt.Kind != TokenIdent || s.portSet[nt.Text] || s.signalSet[nt.Text] {
				continue
			}
			s.signalSet[nt.Text] = true
			s.signals = append(s.signals, Signal{
				Name:   nt.Text,
				Kind:   t.Text,
				Line:   t.Line,
				Col:    nt.Col,
				Offset: nt.Offset,
			})
		}
		s.markDeclLines(t.Line, s.tokens[semi].Line)
	}
}

func (s *moduleScan) scanParams() {
	n := len(s.tokens)
	for i := 0; i < n; i++ {
		t := s.tokens[i]
		if t.Kind != TokenKeyword || (t.Text != "parameter" && t.Text != "localparam") {
			continue
		}
		j := i + 1
		if k := s.skipBracket(j, n); k >= 0 {
			j = k
		}
		if j < n && s.tokens[j].Kind == TokenIdent && !s.paramSet[s.tokens[j].Text] {
			s.paramSet[s.tokens[j].Text] = true
			s.params = append(s.params, Param{Name: s.tokens[j].Text, Line: s.tokens[j].Line})
		}
	}
}

func (s *moduleScan) scanAssigns() {
	for i := 0; i+1 < len(s.tokens); i++ {
		t := s.tokens[i]
		if t.Kind == TokenKeyword && t.Text == "assign" && s.tokens[i+1].Kind == TokenIdent {
			s.assigns = append(s.assigns, Assign{
				LValue: s.tokens[i+1].Text,
				Line:   t.Line,
				Col:    t.Col,
				Offset: t.Offset,
			})
		}
	}
}

func isBlockDelimiter(t Token) bool {
	if t.Kind != TokenKeyword {
		return false
	}
	switch t.Text {
	case "always", "initial", "assign", "endmodule":
		return true
	}
	return false
}

// scanBlocks partitions the token stream into approximate procedural
// blocks (from an always/initial keyword to the next delimiter keyword)
// and records every l-value shaped "name [select] <=|=" inside them.
func (s *moduleScan) scanBlocks() {
	n := len(s.tokens)
	for i := 0; i < n; i++ {
		t := s.tokens[i]
		if t.Kind != TokenKeyword || (t.Text != "always" && t.Text != "initial") {
			continue
		}
		end := n
		for k := i + 1; k < n; k++ {
			if isBlockDelimiter(s.tokens[k]) {
				end = k
				break
			}
		}

		for k := i + 1; k < end; k++ {
			if s.tokens[k].Kind != TokenIdent {
				continue
			}
			j := s.skipBracket(k+1, end)
			if j < 0 || j >= end {
				continue
			}
			if s.tokens[j].Text == "<=" || s.tokens[j].Text == "=" {
				s.procAssigns = append(s.procAssigns, ProcAssign{
					LValue: s.tokens[k].Text,
					Block:  t.Text,
					Line:   s.tokens[k].Line,
					Col:    s.tokens[k].Col,
					Offset: s.tokens[k].Offset,
				})
				k = j
			}
		}
	}
}

// scanReferences records every identifier in the module body, which
// starts after the module header's terminating ";". Without a recognizable
// header the whole text counts as body.
func (s *moduleScan) scanReferences() {
	start := 0
	for i, t := range s.tokens {
		if t.Kind == TokenKeyword && t.Text == "module" {
			if semi := s.semicolonAfter(i); semi >= 0 {
				start = semi + 1
			}
			break
		}
	}
	for _, t := range s.tokens[start:] {
		if t.Kind == TokenIdent {
			s.references = append(s.references, Reference{
				Name:   t.Text,
				Line:   t.Line,
				Col:    t.Col,
				Offset: t.Offset,
			})
		}
	}
}

func (s *moduleScan) facts() ModuleFacts {
	lines := make([]int, 0, len(s.declLines))
	for ln := range s.declLines {
		lines = append(lines, ln)
	}
	sort.Ints(lines)
	return ModuleFacts{
		Ports:       s.ports,
		PortRegs:    s.portRegs,
		Signals:     s.signals,
		Params:      s.params,
		DeclLines:   lines,
		Assigns:     s.assigns,
		ProcAssigns: s.procAssigns,
		References:  s.references,
	}
}
