package normalizer

import "testing"

func TestNormalizeReversedStringIdiom(t *testing.T) {
	got := Normalize(`var s = "dlrow olleh".split("").reverse().join("");`)
	want := `var s = "hello world";`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeLeavesOtherCallsAlone(t *testing.T) {
	src := `var s = helper("a", "b"); var n = [1,2,3].join("-");`
	if got := Normalize(src); got != src {
		t.Errorf("got %q, want unchanged %q", got, src)
	}
}

func TestNormalizeHandlesEscapedQuotesInLiteral(t *testing.T) {
	got := Normalize(`"a\"b".split("").reverse().join("")`)
	want := `"b\"a"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeMultipleOccurrences(t *testing.T) {
	src := `f("cba".split("").reverse().join("")); g("fed".split("").reverse().join(""));`
	want := `f("abc"); g("def");`
	if got := Normalize(src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIsIdempotentOnNormalizedOutput(t *testing.T) {
	src := `var s = "dlrow olleh".split("").reverse().join("");`
	if !IsIdempotent(src) {
		t.Errorf("expected Normalize(%q) to be idempotent", src)
	}
}

func TestIsIdempotentOnPlainSource(t *testing.T) {
	if !IsIdempotent(`var x = 1;`) {
		t.Error("expected idempotent check to hold for source with no idiom to rewrite")
	}
}
