package lexer

import (
	"testing"

	"github.com/cwbudde/deconst/internal/token"
)

func TestNextTokenBasic(t *testing.T) {
	input := `function f1(a, b) { return a + b; }`

	expected := []struct {
		typ     token.Type
		literal string
	}{
		{token.FUNCTION, "function"},
		{token.IDENT, "f1"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENT, "a"},
		{token.PLUS, "+"},
		{token.IDENT, "b"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ {
			t.Fatalf("token %d: type = %v, want %v (literal %q)", i, tok.Type, want.typ, tok.Literal)
		}
		if tok.Literal != want.literal {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, want.literal)
		}
	}
}

func TestNextTokenOperators(t *testing.T) {
	input := `=== !== == != <= >= && ||`
	expected := []token.Type{
		token.STRICT_EQ, token.NOT_EQ, token.EQ, token.NOT_EQ,
		token.LE, token.GE, token.AND, token.OR, token.EOF,
	}
	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: type = %v, want %v", i, tok.Type, want)
		}
	}
}

func TestNextTokenStringEscapes(t *testing.T) {
	l := New(`"hello\nworld\t\"quoted\""`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("type = %v, want STRING", tok.Type)
	}
	want := "hello\nworld\t\"quoted\""
	if tok.Literal != want {
		t.Fatalf("literal = %q, want %q", tok.Literal, want)
	}
}

func TestNextTokenNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"42", token.INT},
		{"3.14", token.FLOAT},
		{"1e10", token.FLOAT},
		{"-5", token.MINUS}, // unary minus is its own token; parser composes it
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Errorf("input %q: type = %v, want %v", tt.input, tok.Type, tt.typ)
		}
	}
}

func TestSkipsCommentsAndTracksThem(t *testing.T) {
	l := New("// leading comment\nvar x = 1; /* trailing */")
	var types []token.Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.Comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(l.Comments))
	}
}

func TestBOMStripped(t *testing.T) {
	l := New(string(rune(0xFEFF)) + "var x = 1;")
	tok := l.NextToken()
	if tok.Type != token.VAR {
		t.Fatalf("type = %v, want VAR", tok.Type)
	}
}
