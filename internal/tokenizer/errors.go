package tokenizer

import "fmt"

// LexError reports a malformed lexeme (unterminated string or comment). The
// tokenizer does not attempt recovery; the caller treats the file as
// unanalyzable for this run.
type LexError struct {
	File string
	Row  int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Row, e.Col, e.Msg)
}

// EmptyFileError reports that normalisation produced no tokens at all.
type EmptyFileError struct {
	File string
}

func (e *EmptyFileError) Error() string {
	return fmt.Sprintf("%s: no tokens after normalisation", e.File)
}
