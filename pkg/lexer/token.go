package lexer

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	KindError
	KindWhitespace
	KindNewline
	KindIndent
	KindDedent
	KindComment
	KindString
	KindNumber
	KindKeyword
	KindIdentifier
	KindOperator
	KindPunct
	KindDecorator // leading '@' of a decorator line
	KindUnterminatedString
	KindInconsistentDedent
)

var kindNames = [...]string{
	KindEOF:                "EOF",
	KindError:              "ERROR",
	KindWhitespace:         "WHITESPACE",
	KindNewline:            "NEWLINE",
	KindIndent:             "INDENT",
	KindDedent:             "DEDENT",
	KindComment:            "COMMENT",
	KindString:             "STRING",
	KindNumber:             "NUMBER",
	KindKeyword:            "KEYWORD",
	KindIdentifier:         "IDENTIFIER",
	KindOperator:           "OPERATOR",
	KindPunct:              "PUNCTUATION",
	KindDecorator:          "DECORATOR",
	KindUnterminatedString: "UNTERMINATED_STRING",
	KindInconsistentDedent: "INCONSISTENT_DEDENT",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Synthetic reports whether the kind marks a zero-width token. Synthetic
// tokens carry no source text: Start == End and Text is empty.
func (k Kind) Synthetic() bool {
	switch k {
	case KindEOF, KindIndent, KindDedent, KindInconsistentDedent:
		return true
	}
	return false
}

// Token is a classified, positioned slice of source text. Text aliases the
// scanner's source buffer; concatenating Text over a full scan reproduces
// the input exactly.
type Token struct {
	Kind   Kind
	Text   string
	Start  int // byte offset, inclusive
	End    int // byte offset, exclusive
	Line   int // 1-based
	Column int // 1-based, in runes
}
