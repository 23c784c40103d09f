// Package tokenizer lexes Pascal-family source into a normalised token
// stream with a parallel position map, the leaf stage of the syntactic
// similarity pipeline.
package tokenizer

import (
	"strings"
	"unicode"
)

// TokenizedFile is the immutable result of tokenizing one SourceFile: an
// ordered token stream plus a parallel mapping from token index back to the
// source region it came from. len(Tokens) always equals len(Positions).
type TokenizedFile struct {
	Name      string
	Source    string
	Tokens    []string
	Positions []Region
	lineCount int
}

// TokenCount returns the number of tokens in the stream.
func (tf *TokenizedFile) TokenCount() int {
	return len(tf.Tokens)
}

// LineCount returns the number of source lines, counted after normalising
// CRLF to LF.
func (tf *TokenizedFile) LineCount() int {
	return tf.lineCount
}

// LineAt returns the 1-based source line a token index starts on. Out of
// range indices degrade to line 1 rather than panicking.
func (tf *TokenizedFile) LineAt(tokenIndex int) int {
	return resolveLine(tf.Positions, tokenIndex, tf.lineCount)
}

// Lines splits the normalised source into its constituent lines, 0-indexed.
func (tf *TokenizedFile) Lines() []string {
	return strings.Split(tf.Source, "\n")
}

// Snippet returns the source lines in [fromLine, toLine] (1-based,
// inclusive), clamped to the file's actual bounds.
func (tf *TokenizedFile) Snippet(fromLine, toLine int) []string {
	lines := tf.Lines()
	if fromLine < 1 {
		fromLine = 1
	}
	if toLine > len(lines) {
		toLine = len(lines)
	}
	if fromLine > toLine {
		return nil
	}
	return lines[fromLine-1 : toLine]
}

var keywords = map[string]bool{
	"and": true, "array": true, "begin": true, "case": true, "const": true,
	"div": true, "do": true, "downto": true, "else": true, "end": true,
	"file": true, "for": true, "forward": true, "function": true, "goto": true,
	"if": true, "implementation": true, "in": true, "inherited": true,
	"interface": true, "label": true, "mod": true, "nil": true, "not": true,
	"of": true, "or": true, "packed": true, "procedure": true, "program": true,
	"record": true, "repeat": true, "set": true, "then": true, "to": true,
	"try": true, "except": true, "finally": true, "raise": true,
	"type": true, "unit": true, "until": true, "uses": true, "var": true,
	"while": true, "with": true, "class": true, "true": true, "false": true,
}

// Tokenize lexes Pascal source into a TokenizedFile. It is deterministic:
// identical (name, text) always yields an identical result. Malformed
// lexemes (unterminated string or comment) are reported as *LexError.
func Tokenize(name, text string) (*TokenizedFile, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	l := &lexer{
		file: name,
		src:  []rune(text),
		row:  1,
		col:  1,
	}

	tf := &TokenizedFile{Name: name, Source: text}

	for {
		tok, region, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok == "" {
			break
		}
		tf.Tokens = append(tf.Tokens, tok)
		tf.Positions = append(tf.Positions, region)
	}

	tf.lineCount = strings.Count(text, "\n") + 1
	if tf.lineCount < 1 {
		tf.lineCount = 1
	}

	return tf, nil
}

type lexer struct {
	file string
	src  []rune
	pos  int
	row  int
	col  int
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// next returns the next normalised token and its region, or ("", Region{},
// nil) at end of input.
func (l *lexer) next() (string, Region, error) {
	for {
		if l.skipWhitespace() {
			continue
		}
		skipped, err := l.skipComment()
		if err != nil {
			return "", Region{}, err
		}
		if skipped {
			continue
		}
		break
	}

	if l.eof() {
		return "", Region{}, nil
	}

	startRow, startCol := l.row, l.col
	r := l.peek()

	switch {
	case unicode.IsLetter(r) || r == '_':
		return l.lexIdentifierOrKeyword(startRow, startCol)
	case unicode.IsDigit(r):
		return l.lexNumber(startRow, startCol)
	case r == '\'':
		return l.lexString(startRow, startCol)
	default:
		return l.lexOperator(startRow, startCol)
	}
}

func (l *lexer) skipWhitespace() bool {
	skipped := false
	for !l.eof() && unicode.IsSpace(l.peek()) {
		l.advance()
		skipped = true
	}
	return skipped
}

// skipComment consumes a { ... }, (* ... *), or // ... \n comment if one
// starts at the current position. Returns an error if a brace/paren comment
// is never closed.
func (l *lexer) skipComment() (bool, error) {
	startRow, startCol := l.row, l.col

	if l.peek() == '{' {
		l.advance()
		for {
			if l.eof() {
				return false, &LexError{File: l.file, Row: startRow, Col: startCol, Msg: "unterminated { } comment"}
			}
			if l.peek() == '}' {
				l.advance()
				return true, nil
			}
			l.advance()
		}
	}

	if l.peek() == '(' && l.peekAt(1) == '*' {
		l.advance()
		l.advance()
		for {
			if l.eof() {
				return false, &LexError{File: l.file, Row: startRow, Col: startCol, Msg: "unterminated (* *) comment"}
			}
			if l.peek() == '*' && l.peekAt(1) == ')' {
				l.advance()
				l.advance()
				return true, nil
			}
			l.advance()
		}
	}

	if l.peek() == '/' && l.peekAt(1) == '/' {
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}
		return true, nil
	}

	return false, nil
}

func (l *lexer) lexIdentifierOrKeyword(startRow, startCol int) (string, Region, error) {
	var b strings.Builder
	for !l.eof() && (unicode.IsLetter(l.peek()) || unicode.IsDigit(l.peek()) || l.peek() == '_') {
		b.WriteRune(l.advance())
	}
	lexeme := strings.ToLower(b.String())

	value := "IDENT"
	if keywords[lexeme] {
		value = lexeme
	}

	return value, Region{StartRow: startRow, StartCol: startCol, EndRow: l.row, EndCol: l.col - 1}, nil
}

func (l *lexer) lexNumber(startRow, startCol int) (string, Region, error) {
	for !l.eof() && unicode.IsDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && unicode.IsDigit(l.peekAt(1)) {
		l.advance()
		for !l.eof() && unicode.IsDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		if unicode.IsDigit(l.peekAt(1)) || ((l.peekAt(1) == '+' || l.peekAt(1) == '-') && unicode.IsDigit(l.peekAt(2))) {
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for !l.eof() && unicode.IsDigit(l.peek()) {
				l.advance()
			}
		}
	}
	return "NUM", Region{StartRow: startRow, StartCol: startCol, EndRow: l.row, EndCol: l.col - 1}, nil
}

func (l *lexer) lexString(startRow, startCol int) (string, Region, error) {
	l.advance() // opening quote
	for {
		if l.eof() {
			return "", Region{}, &LexError{File: l.file, Row: startRow, Col: startCol, Msg: "unterminated string literal"}
		}
		if l.peek() == '\n' {
			return "", Region{}, &LexError{File: l.file, Row: startRow, Col: startCol, Msg: "unterminated string literal"}
		}
		if l.peek() == '\'' {
			l.advance()
			if l.peek() == '\'' {
				// escaped quote ('') — consume and keep scanning the literal
				l.advance()
				continue
			}
			break
		}
		l.advance()
	}
	return "STR", Region{StartRow: startRow, StartCol: startCol, EndRow: l.row, EndCol: l.col - 1}, nil
}

var multiCharOps = []string{":=", "<=", ">=", "<>", ".."}

func (l *lexer) lexOperator(startRow, startCol int) (string, Region, error) {
	for _, op := range multiCharOps {
		if l.hasPrefix(op) {
			for range op {
				l.advance()
			}
			return op, Region{StartRow: startRow, StartCol: startCol, EndRow: l.row, EndCol: l.col - 1}, nil
		}
	}

	r := l.advance()
	return string(r), Region{StartRow: startRow, StartCol: startCol, EndRow: l.row, EndCol: l.col - 1}, nil
}

func (l *lexer) hasPrefix(s string) bool {
	for i, r := range s {
		if l.peekAt(i) != r {
			return false
		}
	}
	return true
}
