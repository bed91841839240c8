package extractor

// Verilog reserved words. A token spelled like one of these is never a
// signal name, no matter where it appears.
var keywords = map[string]bool{
	"module": true, "endmodule": true, "input": true, "output": true,
	"inout": true, "wire": true, "reg": true,
	"integer": true, "real": true, "time": true, "realtime": true,
	"parameter": true, "localparam": true,
	"assign": true, "always": true, "initial": true, "begin": true,
	"end": true, "if": true, "else": true,
	"case": true, "casex": true, "casez": true, "endcase": true,
	"for": true, "while": true, "repeat": true,
	"forever": true, "fork": true, "join": true, "posedge": true,
	"negedge": true, "or": true, "and": true,
	"not": true, "xor": true, "nor": true, "nand": true, "xnor": true,
	"buf": true, "bufif0": true, "bufif1": true,
	"notif0": true, "notif1": true, "defparam": true, "task": true,
	"endtask": true, "function": true,
	"endfunction": true, "generate": true, "endgenerate": true,
	"genvar": true, "signed": true,
	"unsigned": true, "supply0": true, "supply1": true, "tri": true,
	"tri0": true, "tri1": true, "wand": true,
	"wor": true, "trireg": true, "disable": true, "default": true,
	"deassign": true, "force": true,
	"release": true, "wait": true,
}

// IsKeyword reports whether name is a Verilog reserved word.
func IsKeyword(name string) bool {
	return keywords[name]
}
