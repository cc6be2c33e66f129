package lexer

import (
	"testing"

	"github.com/hyperdrive-technology/core-sub001/internal/token"
)

func TestBasicTokens(t *testing.T) {
	input := `:= = <> < > <= >= + - * / . .. , ; : ( ) [ ]`

	expected := []token.Kind{
		token.ASSIGN, token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.DOT, token.DOTDOT,
		token.COMMA, token.SEMICOLON, token.COLON, token.LPAREN, token.RPAREN,
		token.LBRACKET, token.RBRACKET, token.EOF,
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Kind != exp {
			t.Fatalf("test[%d] - wrong kind. expected=%s, got=%s (literal=%q)", i, exp, tok.Kind, tok.Literal)
		}
	}
	if l.Diagnostics().Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", l.Diagnostics().All())
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	input := `PROGRAM program Program IF if END_IF end_if`
	expected := []token.Kind{
		token.PROGRAM, token.PROGRAM, token.PROGRAM,
		token.IF, token.IF,
		token.END_IF, token.END_IF,
	}
	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Kind != exp {
			t.Fatalf("test[%d] - expected %s, got %s(%q)", i, exp, tok.Kind, tok.Literal)
		}
	}
}

func TestIdentifierPreservesCase(t *testing.T) {
	l := New("MyVar")
	tok := l.NextToken()
	if tok.Kind != token.IDENTIFIER || tok.Literal != "MyVar" {
		t.Fatalf("got %s(%q)", tok.Kind, tok.Literal)
	}
}

func TestTimeLiteral(t *testing.T) {
	l := New(`T#500ms TIME#1h30m`)
	tok := l.NextToken()
	if tok.Kind != token.TIME_LITERAL || tok.Literal != "T#500ms" {
		t.Fatalf("got %s(%q)", tok.Kind, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Kind != token.TIME_LITERAL || tok.Literal != "TIME#1h30m" {
		t.Fatalf("got %s(%q)", tok.Kind, tok.Literal)
	}
}

func TestEnumReference(t *testing.T) {
	l := New(`Weekday#Monday`)
	tok := l.NextToken()
	if tok.Kind != token.ENUM_REFERENCE || tok.Literal != "Weekday#Monday" {
		t.Fatalf("got %s(%q)", tok.Kind, tok.Literal)
	}
}

func TestDirectAddress(t *testing.T) {
	l := New(`%IX0.0 %QW12 %MD3`)
	expected := []string{"%IX0.0", "%QW12", "%MD3"}
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Kind != token.DIRECT_ADDRESS || tok.Literal != exp {
			t.Fatalf("test[%d] - got %s(%q)", i, tok.Kind, tok.Literal)
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	input := "VAR\n  x : INT;\nEND_VAR"
	l := New(input)

	tok := l.NextToken() // VAR
	if tok.Range.Start.Line != 0 || tok.Range.Start.Column != 0 {
		t.Fatalf("VAR: expected 0:0, got %d:%d", tok.Range.Start.Line, tok.Range.Start.Column)
	}

	tok = l.NextToken() // x
	if tok.Range.Start.Line != 1 || tok.Range.Start.Column != 2 {
		t.Fatalf("x: expected 1:2, got %d:%d", tok.Range.Start.Line, tok.Range.Start.Column)
	}
}

func TestLineComment(t *testing.T) {
	l := New("x // trailing comment\ny")
	tok := l.NextToken()
	if tok.Literal != "x" {
		t.Fatalf("got %q", tok.Literal)
	}
	tok = l.NextToken()
	if tok.Literal != "y" {
		t.Fatalf("got %q", tok.Literal)
	}
}

func TestBlockComment(t *testing.T) {
	l := New("x (* a block\ncomment *) y")
	tok := l.NextToken()
	if tok.Literal != "x" {
		t.Fatalf("got %q", tok.Literal)
	}
	tok = l.NextToken()
	if tok.Literal != "y" {
		t.Fatalf("got %q", tok.Literal)
	}
}

func TestUnterminatedBlockCommentDiagnostic(t *testing.T) {
	l := New("x (* never closed")
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	if !l.Diagnostics().HasErrors() {
		t.Fatalf("expected an unterminated-comment diagnostic")
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("x $ y")
	l.NextToken() // x
	tok := l.NextToken()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Kind)
	}
	if !l.Diagnostics().HasErrors() {
		t.Fatalf("expected a diagnostic for the illegal character")
	}
}
