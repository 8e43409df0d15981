package monkey

import (
	"fmt"
	"strings"
	"testing"
)

func Test_Errors_FormatParseErrors_Caret(t *testing.T) {
	_, perr := ParseSource("let a = 1;\nlet x = );\nlet b = 2;")
	if perr == nil {
		t.Fatal("want parse errors")
	}
	got := FormatParseErrors(perr, "<repl>")
	want := "PARSE ERROR in <repl> at 2:9: no prefix parse function for ) found\n\n" +
		"   2 | let x = );\n" +
		"     |         ^\n"
	if !strings.HasPrefix(got, want) {
		t.Fatalf("snippet mismatch\nwant prefix:\n%s\ngot:\n%s", want, got)
	}
}

func Test_Errors_FormatParseErrors_NoName(t *testing.T) {
	_, perr := ParseSource("1 @")
	got := FormatParseErrors(perr, "")
	if !strings.HasPrefix(got, "PARSE ERROR at 1:3: illegal token \"@\"\n") {
		t.Fatalf("got %q", got)
	}
}

func Test_Errors_ParseErrors_AsError(t *testing.T) {
	_, perr := ParseSource("let = 1; let y 2;")
	var err error = perr
	if !strings.Contains(err.Error(), "expected next token to be IDENT, got = instead") {
		t.Fatalf("got %q", err.Error())
	}
	if len(strings.Split(err.Error(), "\n")) != len(perr.Errs) {
		t.Fatalf("want one line per error: %q", err.Error())
	}
	wrapped := fmt.Errorf("loading: %w", err)
	if IsIncomplete(wrapped) {
		t.Fatalf("complete error reported incomplete")
	}

	_, inc := ParseSource("let f = fn() {")
	if !IsIncomplete(fmt.Errorf("wrapped: %w", inc)) {
		t.Fatalf("IsIncomplete must see through wrapping")
	}
	if IsIncomplete(fmt.Errorf("plain")) {
		t.Fatalf("non-parse error reported incomplete")
	}
}

func Test_Errors_CaretSnippet_ClampsPosition(t *testing.T) {
	got := caretSnippet("ab", "", &ParseError{Msg: "m", Line: 9, Col: 40})
	want := "PARSE ERROR at 1:3: m\n\n   1 | ab\n     |   ^\n"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
