package extractor

// TokenKind classifies a scanned token.
type TokenKind int

const (
	// TokenIdent is an identifier that is not a reserved word.
	TokenIdent TokenKind = iota
	// TokenKeyword is a reserved word.
	TokenKeyword
	// TokenNumber is a plain unsized number (sized literals are blanked
	// out by Normalize before scanning).
	TokenNumber
	// TokenSymbol is an operator or punctuation token.
	TokenSymbol
)

// Token is one lexical unit of normalized Verilog source.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int // byte offset into the normalized text
	Line   int // 1-based
	Col    int // 1-based
}

// Multi-character operators, longest first. Scanning these as single
// tokens is what makes a bare "=" token unambiguous: it can never be the
// tail of "<=", "==", ">=" or "!=".
var operators = []string{
	"===", "!==", "<<<", ">>>",
	"==", "!=", "<=", ">=", "<<", ">>", "&&", "||", "**",
}

// Scan splits normalized source text into a flat token stream. Line and
// column numbers are tracked while scanning, so downstream consumers never
// re-derive positions from string slicing.
func Scan(text string) []Token {
	var tokens []Token
	line, col := 1, 1
	i := 0
	for i < len(text) {
		c := text[i]

		if c == '\n' {
			line++
			col = 1
			i++
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' {
			col++
			i++
			continue
		}

		if isIdentStart(c) {
			start := i
			for i < len(text) && isIdentPart(text[i]) {
				i++
			}
			word := text[start:i]
			kind := TokenIdent
			if IsKeyword(word) {
				kind = TokenKeyword
			}
			tokens = append(tokens, Token{Kind: kind, Text: word, Offset: start, Line: line, Col: col})
			col += i - start
			continue
		}

		if c >= '0' && c <= '9' {
			start := i
			for i < len(text) && (text[i] >= '0' && text[i] <= '9' || text[i] == '_') {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Text: text[start:i], Offset: start, Line: line, Col: col})
			col += i - start
			continue
		}

		if op := matchOperator(text[i:]); op != "" {
			tokens = append(tokens, Token{Kind: TokenSymbol, Text: op, Offset: i, Line: line, Col: col})
			i += len(op)
			col += len(op)
			continue
		}

		tokens = append(tokens, Token{Kind: TokenSymbol, Text: string(c), Offset: i, Line: line, Col: col})
		i++
		col++
	}
	return tokens
}

func matchOperator(s string) string {
	for _, op := range operators {
		if len(s) >= len(op) && s[:len(op)] == op {
			return op
		}
	}
	return ""
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
