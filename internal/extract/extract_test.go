package extract

import (
	"testing"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/classify"
	"github.com/cwbudde/deconst/internal/config"
	"github.com/cwbudde/deconst/internal/lexer"
	"github.com/cwbudde/deconst/internal/parser"
)

func setup(t *testing.T, src string, cfg config.Config) (*ast.Program, classify.Set) {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	h := classify.Classify(program, cfg)
	return program, h
}

func defaultCfg(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return cfg
}

func TestExtractAcceptsLiteralArgCall(t *testing.T) {
	cfg := defaultCfg(t)
	program, h := setup(t, `function f1(a,b) { return a+b; } var x = f1(1, 2);`, cfg)

	res := Extract(program, cfg, h)
	if len(res.P) != 1 {
		t.Fatalf("got %d call sites, want 1", len(res.P))
	}
	if res.P[0].Name != "f1" {
		t.Errorf("got name %q, want f1", res.P[0].Name)
	}
	if len(res.P[0].Args) != 2 {
		t.Errorf("got %d args, want 2", len(res.P[0].Args))
	}
}

func TestExtractRejectsNonLiteralArgument(t *testing.T) {
	cfg := defaultCfg(t)
	program, h := setup(t, `function f1(a) { return a; } function caller(n) { return f1(n); }`, cfg)

	res := Extract(program, cfg, h)
	if len(res.P) != 0 {
		t.Errorf("got %d call sites, want 0 (argument is not a literal)", len(res.P))
	}
}

func TestExtractSkipsCallsOutsideArgWindowButSeedsThem(t *testing.T) {
	cfg := config.Default()
	cfg.MinArgs = 0
	cfg.MaxArgs = 1
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	program, h := setup(t, `function f1(a,b) { return a+b; } var x = f1(1, 2);`, cfg)

	res := Extract(program, cfg, h)
	if len(res.P) != 0 {
		t.Errorf("got %d call sites, want 0 (2 args outside [0,1] window)", len(res.P))
	}
	if _, ok := res.ExtraSeeds["f1"]; !ok {
		t.Error("expected f1 to be recorded as an extra seed despite failing the arg window")
	}
}

func TestExtractIgnoresCallsInInitializerContext(t *testing.T) {
	cfg := defaultCfg(t)
	program, h := setup(t, `function f1(a) { return a; } while (f1(1)) { }`, cfg)

	res := Extract(program, cfg, h)
	if len(res.P) != 0 {
		t.Errorf("got %d call sites, want 0 (call is in an initializer context)", len(res.P))
	}
}

func TestExtractRejectsReservedWordMemberCallee(t *testing.T) {
	cfg := defaultCfg(t)
	program, h := setup(t, `function f1(a) { return a; } obj.default(1);`, cfg)

	res := Extract(program, cfg, h)
	if len(res.P) != 0 {
		t.Errorf("got %d call sites, want 0", len(res.P))
	}
}
