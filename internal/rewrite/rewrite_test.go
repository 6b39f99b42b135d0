package rewrite

import (
	"strings"
	"testing"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/classify"
	"github.com/cwbudde/deconst/internal/config"
	"github.com/cwbudde/deconst/internal/lexer"
	"github.com/cwbudde/deconst/internal/parser"
	"github.com/cwbudde/deconst/internal/printer"
)

func parseAndClassify(t *testing.T, src string) (*ast.Program, config.Config, classify.Set) {
	t.Helper()
	cfg := config.Default()
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	h := classify.Classify(program, cfg)
	return program, cfg, h
}

func TestRunReplacesMatchedCallWithLiteral(t *testing.T) {
	program, cfg, h := parseAndClassify(t, `function f1(a,b) { return a+b; } var x = f1(1, 2);`)
	key := printer.Print(program.Statements[1].(*ast.VarStatement).Value)
	r := map[string]ast.Value{key: {Kind: ast.KindInteger, Int: 3}}

	res := Run(program, cfg, h, r)
	if res.Rewritten != 1 {
		t.Fatalf("got Rewritten=%d, want 1", res.Rewritten)
	}
	if res.PerHelper["f1"] != 1 {
		t.Errorf("got PerHelper[f1]=%d, want 1", res.PerHelper["f1"])
	}
	want := "var x = 3;"
	if got := lastLine(res.Source); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunLeavesUnkeyedCallsAlone(t *testing.T) {
	program, cfg, h := parseAndClassify(t, `function f1(a) { return a; } var x = f1(9);`)
	res := Run(program, cfg, h, map[string]ast.Value{})
	if res.Rewritten != 0 {
		t.Errorf("got Rewritten=%d, want 0 (R has no entry for this call)", res.Rewritten)
	}
}

func TestRunSkipsUnrepresentableValue(t *testing.T) {
	program, cfg, h := parseAndClassify(t, `function f1(a) { return a; } var x = f1(9);`)
	call := program.Statements[1].(*ast.VarStatement).Value
	key := printer.Print(call)
	r := map[string]ast.Value{key: {Kind: ast.KindUnrepresentable}}

	res := Run(program, cfg, h, r)
	if res.Rewritten != 0 {
		t.Errorf("got Rewritten=%d, want 0 for an unrepresentable result", res.Rewritten)
	}
}

func TestRunHonorsDisableReplace(t *testing.T) {
	program, cfg, h := parseAndClassify(t, `function f1(a) { return a; } var x = f1(9);`)
	cfg.DisableReplace = true
	call := program.Statements[1].(*ast.VarStatement).Value
	key := printer.Print(call)
	r := map[string]ast.Value{key: {Kind: ast.KindInteger, Int: 9}}

	res := Run(program, cfg, h, r)
	if res.Rewritten != 0 {
		t.Errorf("got Rewritten=%d, want 0 (DisableReplace set)", res.Rewritten)
	}
}

func TestRunRewritesNestedCallInsideAnotherExpression(t *testing.T) {
	program, cfg, h := parseAndClassify(t, `
		function f1(a) { return a; }
		function f2(a) { return a; }
		var x = f1(f2(1));
	`)
	inner := program.Statements[2].(*ast.VarStatement).Value.(*ast.CallExpression).Arguments[0]
	innerKey := printer.Print(inner)
	r := map[string]ast.Value{innerKey: {Kind: ast.KindInteger, Int: 1}}

	res := Run(program, cfg, h, r)
	if res.PerHelper["f2"] != 1 {
		t.Errorf("got PerHelper[f2]=%d, want 1", res.PerHelper["f2"])
	}
	if res.PerHelper["f1"] != 0 {
		t.Errorf("got PerHelper[f1]=%d, want 0 (its own call site wasn't keyed in R)", res.PerHelper["f1"])
	}
}

func lastLine(src string) string {
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	if len(lines) < 2 {
		return ""
	}
	return lines[1]
}
