// errors.go: syntax-error aggregation and caret-snippet rendering
//
// What this file does
// -------------------
// The parser records every syntax error it meets instead of stopping at the
// first one. This file gives those records a Go `error` shape (*ParseErrors)
// and renders them as readable snippets with a caret under the column:
//
//	PARSE ERROR at 1:9: no prefix parse function for ) found
//
//	   1 | let x = );
//	     |         ^
//
// Evaluation-time errors are NOT handled here: they are ordinary *Error
// objects flowing through the evaluator (see object.go).
package monkey

import (
	"errors"
	"fmt"
	"strings"
)

/* ===========================
   PUBLIC API
   =========================== */

// ParseError is one recorded syntax error. Line and Col are 1-based.
// Incomplete is set when the offending token was EOF or an unterminated
// string, i.e. more input could still turn the unit into a valid program.
type ParseError struct {
	Msg        string
	Line       int
	Col        int
	Incomplete bool
}

func (e *ParseError) Error() string { return e.Msg }

// ParseErrors carries every syntax error of one input unit together with the
// source it came from.
type ParseErrors struct {
	Src  string
	Errs []*ParseError
}

func (e *ParseErrors) Error() string {
	return strings.Join(e.Messages(), "\n")
}

// Messages returns the bare error strings in the order they were recorded.
func (e *ParseErrors) Messages() []string {
	out := make([]string, 0, len(e.Errs))
	for _, pe := range e.Errs {
		out = append(out, pe.Msg)
	}
	return out
}

// Incomplete reports whether every recorded error is Incomplete.
func (e *ParseErrors) Incomplete() bool {
	if len(e.Errs) == 0 {
		return false
	}
	for _, pe := range e.Errs {
		if !pe.Incomplete {
			return false
		}
	}
	return true
}

// IsIncomplete reports whether err is a *ParseErrors that only failed because
// the input ended early. REPLs use it to ask for a continuation line.
func IsIncomplete(err error) bool {
	var pe *ParseErrors
	return errors.As(err, &pe) && pe.Incomplete()
}

// FormatParseErrors renders each error of err as a caret snippet. srcName, if
// non-empty, is shown in the header ("PARSE ERROR in <repl> at 2:4: ...").
func FormatParseErrors(err *ParseErrors, srcName string) string {
	var b strings.Builder
	for i, pe := range err.Errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(caretSnippet(err.Src, srcName, pe))
	}
	return b.String()
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: rendering
   =========================== */

// caretSnippet renders one error as a header, the offending source line and a
// caret under the column. Tokens never span lines, so one line is enough.
// Coordinates are 1-based and clamped to the source.
func caretSnippet(src, srcName string, pe *ParseError) string {
	lines := strings.Split(src, "\n")
	line := min(max(pe.Line, 1), len(lines))
	text := lines[line-1]
	col := min(max(pe.Col, 1), len(text)+1)

	where := ""
	if srcName != "" {
		where = " in " + srcName
	}
	return fmt.Sprintf("PARSE ERROR%s at %d:%d: %s\n\n%4d | %s\n     | %s^\n",
		where, line, col, pe.Msg, line, text, strings.Repeat(" ", col-1))
}
