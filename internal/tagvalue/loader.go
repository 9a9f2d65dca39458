// Package tagvalue parses license-scan reports in the line-oriented
// tag:value text format into ordered per-file records. Two producer
// dialects are supported: the generic format with an explicit
// <text>...</text> escape for multi-line values, and the FOSSology
// variant that delimits records with ##File sentinels.
package tagvalue

import (
	"log"
	"strings"
)

const (
	textOpen  = "<text>"
	textClose = "</text>"
)

// LoaderState tracks where the tag:value tokenizer is within the input.
type LoaderState int

const (
	// StateReady means the loader is ready to parse a new tag/value pair.
	StateReady LoaderState = iota
	// StateMidtext means the loader is inside a multi-line <text> value.
	StateMidtext
	// StateError means the loader hit an unrecoverable error. Terminal.
	StateError
)

// Pair is a single tag/value pair, in source order.
type Pair struct {
	Tag   string
	Value string
}

// Loader tokenizes a generic tag:value report one line at a time.
// A Loader must not be shared across concurrent parses; Reset returns
// it to a clean state for reuse.
type Loader struct {
	state    LoaderState
	pairs    []Pair
	lineNum  int
	curTag   string
	curValue strings.Builder
	err      error
}

// NewLoader returns a Loader ready to parse a new report.
func NewLoader() *Loader {
	l := &Loader{}
	l.Reset()
	return l
}

// Reset returns the loader to its initial state, discarding any
// accumulated pairs and buffered values.
func (l *Loader) Reset() {
	l.state = StateReady
	l.pairs = nil
	l.lineNum = 0
	l.curTag = ""
	l.curValue.Reset()
	l.err = nil
}

// State reports the loader's current state.
func (l *Loader) State() LoaderState {
	return l.state
}

// IsError reports whether the loader has hit an unrecoverable error.
func (l *Loader) IsError() bool {
	return l.state == StateError
}

// ParseNextLine feeds one input line to the loader. Lines must be fed
// in source order. Once the loader is in the error state, further
// lines are ignored.
func (l *Loader) ParseNextLine(line string) {
	l.lineNum++
	switch l.state {
	case StateError:
		// unrecoverable; ignore everything after the bad line
	case StateMidtext:
		l.parseMidtext(line)
	case StateReady:
		l.parseReady(line)
	}
}

// FinalPairs returns the accumulated ordered pair list once all lines
// have been fed. If the loader is in the error state, or input ended
// while a multi-line <text> value was still open, it returns the
// error instead; no partial list is ever returned.
func (l *Loader) FinalPairs() ([]Pair, error) {
	switch l.state {
	case StateReady:
		return l.pairs, nil
	case StateError:
		log.Printf("tagvalue: requested final pair list but loader is in error state: %v", l.err)
		return nil, l.err
	default:
		// StateMidtext: input ended inside an unclosed <text> value
		log.Printf("tagvalue: input ended while parsing unclosed <text> value for tag %q", l.curTag)
		l.state = StateError
		l.err = &UnterminatedTextError{Tag: l.curTag, Line: l.lineNum}
		return nil, l.err
	}
}

func (l *Loader) parseReady(line string) {
	line = strings.TrimSpace(line)

	// blank lines and comments are skipped
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	colon := strings.Index(line, ":")
	if colon == -1 {
		log.Printf("tagvalue: no ':' found in line %d: %q", l.lineNum, line)
		l.state = StateError
		l.err = &MalformedLineError{Line: l.lineNum, Text: line}
		return
	}

	l.curTag = strings.TrimSpace(line[:colon])

	rest := strings.TrimSpace(line[colon+1:])
	open := strings.Index(rest, textOpen)
	if open == -1 {
		// plain single-line value
		l.emit(rest)
		return
	}

	// value opens a <text> block; it may still close on this line
	rest = rest[open+len(textOpen):]
	end := strings.Index(rest, textClose)
	if end == -1 {
		l.curValue.WriteString(rest)
		l.curValue.WriteString("\n")
		l.state = StateMidtext
		return
	}
	l.emit(rest[:end])
}

func (l *Loader) parseMidtext(line string) {
	end := strings.Index(line, textClose)
	if end == -1 {
		l.curValue.WriteString(line)
		l.curValue.WriteString("\n")
		return
	}
	l.curValue.WriteString(line[:end])
	l.emit(l.curValue.String())
}

// emit records the completed pair and resets per-pair state.
func (l *Loader) emit(value string) {
	l.pairs = append(l.pairs, Pair{Tag: l.curTag, Value: value})
	l.curTag = ""
	l.curValue.Reset()
	l.state = StateReady
}
