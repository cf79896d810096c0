package lexer

// keywords is the static Python keyword set. Soft keywords (match, case,
// type) are context-dependent and deliberately absent: they classify as
// identifiers.
var keywords = map[string]bool{
	"False":    true,
	"None":     true,
	"True":     true,
	"and":      true,
	"as":       true,
	"assert":   true,
	"async":    true,
	"await":    true,
	"break":    true,
	"class":    true,
	"continue": true,
	"def":      true,
	"del":      true,
	"elif":     true,
	"else":     true,
	"except":   true,
	"finally":  true,
	"for":      true,
	"from":     true,
	"global":   true,
	"if":       true,
	"import":   true,
	"in":       true,
	"is":       true,
	"lambda":   true,
	"nonlocal": true,
	"not":      true,
	"or":       true,
	"pass":     true,
	"raise":    true,
	"return":   true,
	"try":      true,
	"while":    true,
	"with":     true,
	"yield":    true,
}

// IsKeyword reports whether name is in the static keyword set.
func IsKeyword(name string) bool {
	return keywords[name]
}

// Keywords returns a copy of the static keyword set, for callers that build
// language descriptions around the scanner.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}

// Operator and punctuation tables, longest match first. The three maps are
// prefix-disjoint per length, so greedy matching is unambiguous.
var (
	operators3 = map[string]Kind{
		"**=": KindOperator,
		"//=": KindOperator,
		">>=": KindOperator,
		"<<=": KindOperator,
		"...": KindPunct,
	}

	operators2 = map[string]Kind{
		"**": KindOperator,
		"//": KindOperator,
		">>": KindOperator,
		"<<": KindOperator,
		"<=": KindOperator,
		">=": KindOperator,
		"==": KindOperator,
		"!=": KindOperator,
		"->": KindPunct,
		":=": KindOperator,
		"+=": KindOperator,
		"-=": KindOperator,
		"*=": KindOperator,
		"/=": KindOperator,
		"%=": KindOperator,
		"&=": KindOperator,
		"|=": KindOperator,
		"^=": KindOperator,
		"@=": KindOperator,
	}

	operators1 = map[string]Kind{
		"+": KindOperator,
		"-": KindOperator,
		"*": KindOperator,
		"/": KindOperator,
		"%": KindOperator,
		"@": KindOperator,
		"&": KindOperator,
		"|": KindOperator,
		"^": KindOperator,
		"~": KindOperator,
		"<": KindOperator,
		">": KindOperator,
		"=": KindOperator,
		"(": KindPunct,
		")": KindPunct,
		"[": KindPunct,
		"]": KindPunct,
		"{": KindPunct,
		"}": KindPunct,
		",": KindPunct,
		":": KindPunct,
		".": KindPunct,
		";": KindPunct,
	}
)
