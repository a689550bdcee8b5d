package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/symld/symld/internal/errors"
)

// EventKind distinguishes the event types the scanner delivers.
type EventKind int

const (
	BeginObject EventKind = iota
	SymbolEvent
)

// Event is one unit of the ingest contract: either a BeginObject
// header or a Symbol occurrence. Fields not relevant to Kind are zero.
type Event struct {
	Kind EventKind

	// BeginObject
	DisplayName string

	// SymbolEvent
	SymbolName string
	TypeChar   byte
}

// Scanner parses a listing file into a stream of Events. The line
// grammar is whitespace-tolerant:
//
//	Object header: <library-or-file-name>[[<member>]]: (terminating
//	colon mandatory; library/member form recognized by a trailing ']'
//	before the colon)
//	Symbol line:   <name> <type-char> [<value> <size>] (fields after
//	the type are ignored)
//
// The scanner has no knowledge of the graph; it only tokenizes lines
// and reports malformed ones as errors.
type Scanner struct {
	sc      *bufio.Scanner
	lenient bool
	file    string
	line    int
}

// New creates a Scanner reading from r, identified as file in error
// messages. When lenient is true, '?' type codes are accepted as
// imports and lowercase type codes are upcased before classification;
// otherwise either condition is a fatal error.
func New(r io.Reader, file string, lenient bool) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r), lenient: lenient, file: file}
}

// Next reads and classifies the next non-blank line, returning
// (Event{}, io.EOF) once the stream is exhausted. Malformed lines are
// fatal; the returned *errors.ScanError cites file and line.
func (s *Scanner) Next() (Event, error) {
	for s.sc.Scan() {
		s.line++
		raw := strings.TrimSpace(s.sc.Text())
		if raw == "" {
			continue
		}

		if strings.HasSuffix(raw, ":") {
			return s.parseHeader(raw)
		}
		return s.parseSymbol(raw)
	}
	if err := s.sc.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

func (s *Scanner) parseHeader(raw string) (Event, error) {
	name := strings.TrimSuffix(raw, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, errors.NewScanError(s.file, s.line, "empty object header")
	}
	return Event{Kind: BeginObject, DisplayName: name}, nil
}

func (s *Scanner) parseSymbol(raw string) (Event, error) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return Event{}, errors.NewScanError(s.file, s.line, fmt.Sprintf("malformed symbol line %q: need at least name and type", raw))
	}

	name := fields[0]
	typeField := fields[1]
	if len(typeField) != 1 {
		return Event{}, errors.NewScanError(s.file, s.line, fmt.Sprintf("malformed type code %q", typeField))
	}
	t := typeField[0]

	if s.lenient {
		if t >= 'a' && t <= 'z' {
			t = t - 'a' + 'A'
		}
	}

	if !isKnownTypeChar(t, s.lenient) {
		return Event{}, errors.NewScanError(s.file, s.line, fmt.Sprintf("unrecognized type code %q", string(t)))
	}

	return Event{Kind: SymbolEvent, SymbolName: name, TypeChar: t}, nil
}

func isKnownTypeChar(t byte, lenient bool) bool {
	switch t {
	case 'T', 'D', 'B', 'R', 'G', 'S', 'A', 'C', 'W', 'V', 'U':
		return true
	case '?':
		return lenient
	}
	return false
}
