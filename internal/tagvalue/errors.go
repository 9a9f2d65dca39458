package tagvalue

import "fmt"

// MalformedLineError reports a line that was expected to contain a
// tag:value pair but had no colon. This is unrecoverable for the
// generic dialect: the loader discards all accumulated pairs.
type MalformedLineError struct {
	Line int
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed tag:value line %d: no ':' in %q", e.Line, e.Text)
}

// UnterminatedTextError reports that input ended while a multi-line
// <text> value was still open.
type UnterminatedTextError struct {
	Tag  string
	Line int
}

func (e *UnterminatedTextError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("unterminated <text> value for tag %q at end of input (line %d)", e.Tag, e.Line)
	}
	return fmt.Sprintf("unterminated <text> value at end of input (line %d)", e.Line)
}
