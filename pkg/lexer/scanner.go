package lexer

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidEncoding is the single fatal scanner error: the input cannot be
// treated as UTF-8 text. Everything else is reported in-stream as error
// token kinds.
var ErrInvalidEncoding = errors.New("lexer: source is not valid UTF-8")

// Scanner performs lexical analysis on Python source. One Scanner owns its
// state exclusively; independent scanners never share anything, so parallel
// scans of different inputs need no locking.
type Scanner struct {
	source string
	cursor int
	line   int
	col    int

	indents []int // indentation widths, innermost last
	depth   int   // open bracket depth

	indentPending bool // leading whitespace of a fresh logical line not yet handled
	lineStart     bool // no non-whitespace token emitted on this logical line yet
	dedentsFlush  bool // end-of-input dedents already queued

	pending    []Token
	pendingIdx int
}

// NewScanner creates a scanner for the given source. The only failure mode
// is non-UTF-8 input.
func NewScanner(source []byte) (*Scanner, error) {
	s := &Scanner{indents: make([]int, 1, 8)}
	if err := s.Reset(source); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset re-initializes the scanner with new source for reuse.
func (s *Scanner) Reset(source []byte) error {
	if !utf8.Valid(source) {
		return ErrInvalidEncoding
	}
	s.source = string(source)
	s.cursor = 0
	s.line = 1
	s.col = 1
	s.indents = s.indents[:1]
	s.indents[0] = 0
	s.depth = 0
	s.indentPending = true
	s.lineStart = true
	s.dedentsFlush = false
	s.pending = s.pending[:0]
	s.pendingIdx = 0
	return nil
}

// Tokenize scans source eagerly and returns every token up to, but not
// including, the end-of-input marker.
func Tokenize(source []byte) ([]Token, error) {
	s, err := NewScanner(source)
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for {
		tok := s.Next()
		if tok.Kind == KindEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token. After the end of input it returns a
// zero-width KindEOF token forever. The scanner advances by at least one
// byte per text-bearing token, so every scan terminates.
func (s *Scanner) Next() Token {
	if tok, ok := s.popPending(); ok {
		return tok
	}

	if s.indentPending && s.depth == 0 && s.cursor < len(s.source) {
		s.indentPending = false
		s.measureIndentation()
		if tok, ok := s.popPending(); ok {
			return tok
		}
	}

	if s.cursor >= len(s.source) {
		return s.finish()
	}

	start := s.cursor
	line, col := s.line, s.col
	ch := s.source[s.cursor]

	switch {
	case ch == ' ' || ch == '\t' || s.isFoldedTerminator(ch):
		s.scanWhitespace()
		return s.emit(KindWhitespace, start, line, col)

	case ch == '\n' || ch == '\r':
		s.consumeTerminator()
		s.indentPending = true
		s.lineStart = true
		return s.emit(KindNewline, start, line, col)

	case ch == '#':
		for s.cursor < len(s.source) && s.source[s.cursor] != '\n' && s.source[s.cursor] != '\r' {
			s.cursor++
		}
		return s.emit(KindComment, start, line, col)

	case ch == '\'' || ch == '"':
		return s.scanString(start, line, col, false)

	case isDigit(ch) || (ch == '.' && isDigit(s.peek())):
		s.scanNumber()
		return s.emit(KindNumber, start, line, col)

	case isIdentStartByte(ch):
		return s.scanIdentifier(start, line, col)

	case ch >= utf8.RuneSelf:
		r, size := utf8.DecodeRuneInString(s.source[s.cursor:])
		if unicode.IsLetter(r) {
			return s.scanIdentifier(start, line, col)
		}
		s.cursor += size
		return s.emit(KindError, start, line, col)

	case ch == '@' && s.lineStart && s.identStartAt(s.cursor+1):
		s.cursor++
		return s.emit(KindDecorator, start, line, col)
	}

	if kind, n := s.matchOperator(); n > 0 {
		switch s.source[s.cursor] {
		case '(', '[', '{':
			s.depth++
		case ')', ']', '}':
			if s.depth > 0 {
				s.depth--
			}
		}
		s.cursor += n
		return s.emit(kind, start, line, col)
	}

	// Unrecognized byte: consume it and keep going.
	s.cursor++
	return s.emit(KindError, start, line, col)
}

// emit builds the token for source[start:cursor] and advances the
// line/column bookkeeping over its text.
func (s *Scanner) emit(kind Kind, start, line, col int) Token {
	text := s.source[start:s.cursor]
	for i := 0; i < len(text); {
		switch text[i] {
		case '\n':
			s.line++
			s.col = 1
			i++
		case '\r':
			s.line++
			s.col = 1
			i++
			if i < len(text) && text[i] == '\n' {
				i++
			}
		default:
			_, size := utf8.DecodeRuneInString(text[i:])
			s.col++
			i += size
		}
	}
	if kind != KindWhitespace && kind != KindNewline {
		s.lineStart = false
	}
	return Token{Kind: kind, Text: text, Start: start, End: s.cursor, Line: line, Column: col}
}

func (s *Scanner) synthetic(kind Kind) Token {
	return Token{Kind: kind, Start: s.cursor, End: s.cursor, Line: s.line, Column: s.col}
}

func (s *Scanner) queue(kind Kind) {
	s.pending = append(s.pending, s.synthetic(kind))
}

func (s *Scanner) popPending() (Token, bool) {
	if s.pendingIdx < len(s.pending) {
		tok := s.pending[s.pendingIdx]
		s.pendingIdx++
		return tok, true
	}
	s.pending = s.pending[:0]
	s.pendingIdx = 0
	return Token{}, false
}

// finish flushes outstanding dedents, then settles on the zero-width
// end-of-input token.
func (s *Scanner) finish() Token {
	if !s.dedentsFlush {
		s.dedentsFlush = true
		for len(s.indents) > 1 {
			s.indents = s.indents[:len(s.indents)-1]
			s.queue(KindDedent)
		}
		if tok, ok := s.popPending(); ok {
			return tok
		}
	}
	return s.synthetic(KindEOF)
}

// measureIndentation inspects the leading whitespace of a fresh logical
// line without consuming it and queues indent/dedent markers. Blank and
// comment-only lines never touch the stack.
func (s *Scanner) measureIndentation() {
	width := 0
	i := s.cursor
	for i < len(s.source) {
		if s.source[i] == ' ' {
			width++
		} else if s.source[i] == '\t' {
			width += 8 - width%8
		} else {
			break
		}
		i++
	}
	if i >= len(s.source) {
		return
	}
	switch s.source[i] {
	case '\n', '\r', '#':
		return
	}

	top := s.indents[len(s.indents)-1]
	switch {
	case width > top:
		s.indents = append(s.indents, width)
		s.queue(KindIndent)
	case width < top:
		for len(s.indents) > 1 && s.indents[len(s.indents)-1] > width {
			s.indents = s.indents[:len(s.indents)-1]
			s.queue(KindDedent)
		}
		if s.indents[len(s.indents)-1] != width {
			// No matching level: recover at the nearest lower one.
			s.queue(KindInconsistentDedent)
		}
	}
}

// isFoldedTerminator reports whether ch begins a line terminator that folds
// into a whitespace run instead of producing a NEWLINE: terminators inside
// brackets and backslash continuations.
func (s *Scanner) isFoldedTerminator(ch byte) bool {
	if ch == '\\' {
		next := s.peek()
		return next == '\n' || next == '\r'
	}
	if ch == '\n' || ch == '\r' {
		return s.depth > 0
	}
	return false
}

func (s *Scanner) scanWhitespace() {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if ch == ' ' || ch == '\t' {
			s.cursor++
			continue
		}
		if s.isFoldedTerminator(ch) {
			if ch == '\\' {
				s.cursor++
			}
			s.consumeTerminator()
			continue
		}
		return
	}
}

// consumeTerminator consumes "\n", "\r\n" or a lone "\r".
func (s *Scanner) consumeTerminator() {
	if s.source[s.cursor] == '\r' {
		s.cursor++
		if s.cursor < len(s.source) && s.source[s.cursor] == '\n' {
			s.cursor++
		}
		return
	}
	s.cursor++
}

func (s *Scanner) scanIdentifier(start, line, col int) Token {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if isIdentContByte(ch) {
			s.cursor++
			continue
		}
		if ch >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s.source[s.cursor:])
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				s.cursor += size
				continue
			}
		}
		break
	}

	name := s.source[start:s.cursor]

	// A short identifier directly against a quote may be a string prefix.
	if s.cursor < len(s.source) && (s.source[s.cursor] == '\'' || s.source[s.cursor] == '"') {
		if raw, ok := stringPrefix(name); ok {
			return s.scanString(start, line, col, raw)
		}
	}

	if IsKeyword(name) {
		return s.emit(KindKeyword, start, line, col)
	}
	return s.emit(KindIdentifier, start, line, col)
}

// stringPrefix reports whether name is a valid string literal prefix and
// whether it selects the raw (escape-free) variant.
func stringPrefix(name string) (raw, ok bool) {
	if len(name) > 2 {
		return false, false
	}
	switch strings.ToLower(name) {
	case "r", "rb", "br", "rf", "fr":
		return true, true
	case "b", "f", "u":
		return false, true
	}
	return false, false
}

// scanString consumes a string literal. The cursor sits on the opening
// quote; start may lie earlier when a prefix was consumed. Raw variants
// disable backslash escaping but the closing delimiter is still honored.
func (s *Scanner) scanString(start, line, col int, raw bool) Token {
	quote := s.source[s.cursor]
	s.cursor++

	if s.cursor+1 < len(s.source) && s.source[s.cursor] == quote && s.source[s.cursor+1] == quote {
		s.cursor += 2
		return s.scanTripleString(start, line, col, raw, quote)
	}

	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		switch {
		case ch == quote:
			s.cursor++
			return s.emit(KindString, start, line, col)
		case ch == '\n' || ch == '\r':
			// Single-quoted strings must close on their own line; recover
			// at the terminator.
			return s.emit(KindUnterminatedString, start, line, col)
		case ch == '\\' && !raw && s.cursor+1 < len(s.source):
			s.cursor++
			if s.source[s.cursor] == '\r' && s.cursor+1 < len(s.source) && s.source[s.cursor+1] == '\n' {
				s.cursor++
			}
			s.cursor++
		default:
			s.cursor++
		}
	}
	return s.emit(KindUnterminatedString, start, line, col)
}

func (s *Scanner) scanTripleString(start, line, col int, raw bool, quote byte) Token {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if ch == quote && s.cursor+2 < len(s.source) &&
			s.source[s.cursor+1] == quote && s.source[s.cursor+2] == quote {
			s.cursor += 3
			return s.emit(KindString, start, line, col)
		}
		if ch == '\\' && !raw && s.cursor+1 < len(s.source) {
			s.cursor += 2
			continue
		}
		s.cursor++
	}
	return s.emit(KindUnterminatedString, start, line, col)
}

func (s *Scanner) scanNumber() {
	if s.source[s.cursor] == '0' && s.cursor+1 < len(s.source) {
		switch s.source[s.cursor+1] {
		case 'x', 'X':
			s.cursor += 2
			s.consumeDigits(isHexDigit)
			return
		case 'o', 'O', 'b', 'B':
			s.cursor += 2
			s.consumeDigits(isDigit)
			return
		}
	}

	s.consumeDigits(isDigit)
	if s.cursor < len(s.source) && s.source[s.cursor] == '.' {
		s.cursor++
		s.consumeDigits(isDigit)
	}
	if s.cursor < len(s.source) && (s.source[s.cursor] == 'e' || s.source[s.cursor] == 'E') {
		next := s.peek()
		if isDigit(next) || ((next == '+' || next == '-') && s.cursor+2 < len(s.source) && isDigit(s.source[s.cursor+2])) {
			s.cursor++
			if s.source[s.cursor] == '+' || s.source[s.cursor] == '-' {
				s.cursor++
			}
			s.consumeDigits(isDigit)
		}
	}
	if s.cursor < len(s.source) && (s.source[s.cursor] == 'j' || s.source[s.cursor] == 'J') {
		s.cursor++
	}
}

// consumeDigits eats a run of digits with interior underscore separators.
// Underscore placement is not validated here; that is a parser concern.
func (s *Scanner) consumeDigits(valid func(byte) bool) {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if valid(ch) || (ch == '_' && valid(s.peek())) {
			s.cursor++
			continue
		}
		return
	}
}

// matchOperator finds the longest operator or punctuation match at the
// cursor. The tables are prefix-disjoint per length, so greedy matching is
// unambiguous.
func (s *Scanner) matchOperator() (Kind, int) {
	rest := s.source[s.cursor:]
	if len(rest) >= 3 {
		if kind, ok := operators3[rest[:3]]; ok {
			return kind, 3
		}
	}
	if len(rest) >= 2 {
		if kind, ok := operators2[rest[:2]]; ok {
			return kind, 2
		}
	}
	if kind, ok := operators1[rest[:1]]; ok {
		return kind, 1
	}
	return KindError, 0
}

func (s *Scanner) peek() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStartByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContByte(ch byte) bool {
	return isIdentStartByte(ch) || isDigit(ch)
}

// identStartAt reports whether an identifier can begin at byte offset i,
// decoding a full rune for non-ASCII input.
func (s *Scanner) identStartAt(i int) bool {
	if i >= len(s.source) {
		return false
	}
	ch := s.source[i]
	if ch < utf8.RuneSelf {
		return isIdentStartByte(ch)
	}
	r, _ := utf8.DecodeRuneInString(s.source[i:])
	return unicode.IsLetter(r)
}
