package sandbox

import (
	"testing"
	"time"
)

func TestRunComputesArithmeticHelper(t *testing.T) {
	src := `
		function f1(a, b) { return a + b; }
		__safe_call__(function() { return f1(1, 2); }, "f1(1, 2)");
	`
	tw := NewTreeWalker()
	outcome, ctx := tw.Run(src, time.Second)
	if outcome != OK {
		t.Fatalf("got outcome %v, want OK", outcome)
	}
	if len(ctx.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(ctx.Results))
	}
	r := ctx.Results[0]
	if r.Failed {
		t.Fatalf("unexpected failure: %s", r.FailureReason)
	}
	if r.Value.Int != 3 {
		t.Errorf("got %+v, want Int=3", r.Value)
	}
}

func TestRunHandlesStringConcatHelper(t *testing.T) {
	src := `
		function f2(a, b) { return a + b; }
		__safe_call__(function() { return f2("foo", "bar"); }, "f2");
	`
	_, ctx := NewTreeWalker().Run(src, time.Second)
	if len(ctx.Results) != 1 || ctx.Results[0].Value.Str != "foobar" {
		t.Fatalf("got %+v, want Str=foobar", ctx.Results)
	}
}

func TestRunRecoversPerCallFailureWithoutAbortingOthers(t *testing.T) {
	src := `
		function f1(a) { return a.nope(); }
		function f2(a) { return a; }
		__safe_call__(function() { return f1(1); }, "f1(1)");
		__safe_call__(function() { return f2(5); }, "f2(5)");
	`
	outcome, ctx := NewTreeWalker().Run(src, time.Second)
	if outcome != OK {
		t.Fatalf("got outcome %v, want OK", outcome)
	}
	if len(ctx.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(ctx.Results))
	}
	if !ctx.Results[0].Failed {
		t.Error("expected the first call (a.nope() on a number) to fail")
	}
	if ctx.Results[1].Failed || ctx.Results[1].Value.Int != 5 {
		t.Errorf("expected the second call to succeed with Int=5, got %+v", ctx.Results[1])
	}
}

func TestRunReturnsTimeoutOnInfiniteLoop(t *testing.T) {
	src := `
		function f1() { while (true) { } return 1; }
		__safe_call__(function() { return f1(); }, "f1()");
	`
	outcome, _ := NewTreeWalker().Run(src, 50*time.Millisecond)
	if outcome != Timeout {
		t.Fatalf("got outcome %v, want Timeout", outcome)
	}
}

func TestRunReturnsFatalOnParseError(t *testing.T) {
	outcome, ctx := NewTreeWalker().Run(`function f1( { `, time.Second)
	if outcome != Fatal {
		t.Fatalf("got outcome %v, want Fatal", outcome)
	}
	if len(ctx.Results) != 0 {
		t.Error("expected no results on a fatal parse error")
	}
}

func TestRequireReturnsItsArgumentName(t *testing.T) {
	src := `
		function f1() { return require("./helpers"); }
		__safe_call__(function() { return f1(); }, "f1()");
	`
	_, ctx := NewTreeWalker().Run(src, time.Second)
	if len(ctx.Results) != 1 || ctx.Results[0].Value.Str != "./helpers" {
		t.Fatalf("got %+v, want Str=./helpers", ctx.Results)
	}
}

func TestTryCatchRecoversThrownValue(t *testing.T) {
	src := `
		function f1(a) {
			try {
				throw "boom";
			} catch (e) {
				return e + "!";
			}
		}
		__safe_call__(function() { return f1(1); }, "f1(1)");
	`
	_, ctx := NewTreeWalker().Run(src, time.Second)
	if len(ctx.Results) != 1 || ctx.Results[0].Failed {
		t.Fatalf("got %+v, want a successful catch", ctx.Results)
	}
	if ctx.Results[0].Value.Str != "boom!" {
		t.Errorf("got %q, want boom!", ctx.Results[0].Value.Str)
	}
}

func TestStringMethodChainReversesAndJoins(t *testing.T) {
	src := `
		function f1(s) { return s.split("").reverse().join(""); }
		__safe_call__(function() { return f1("abc"); }, "f1(\"abc\")");
	`
	_, ctx := NewTreeWalker().Run(src, time.Second)
	if len(ctx.Results) != 1 || ctx.Results[0].Value.Str != "cba" {
		t.Fatalf("got %+v, want Str=cba", ctx.Results)
	}
}
