package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/sandbox"
)

func TestRenderSummarizesSuccessAndFailure(t *testing.T) {
	results := []sandbox.CallResult{
		{
			Key:     "f1(1, 2)",
			Args:    []ast.Value{{Kind: ast.KindInteger, Int: 1}, {Kind: ast.KindInteger, Int: 2}},
			Value:   ast.Value{Kind: ast.KindInteger, Int: 3},
			Elapsed: 2 * time.Millisecond,
		},
		{Key: "f2(1)", Failed: true, FailureReason: "TypeError: not a function", Elapsed: time.Millisecond},
	}
	ts := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	doc, err := Render(results, ts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("Render produced invalid JSON: %v\n%s", err, doc)
	}

	if parsed["timestamp"] != "2026-07-30T12:00:00Z" {
		t.Errorf("got timestamp %v, want 2026-07-30T12:00:00Z", parsed["timestamp"])
	}

	summary := parsed["summary"].(map[string]any)
	if summary["totalCalls"].(float64) != 2 {
		t.Errorf("got totalCalls=%v, want 2", summary["totalCalls"])
	}
	if summary["successfulCalls"].(float64) != 1 {
		t.Errorf("got successfulCalls=%v, want 1", summary["successfulCalls"])
	}
	if summary["failedCalls"].(float64) != 1 {
		t.Errorf("got failedCalls=%v, want 1", summary["failedCalls"])
	}

	callLog := parsed["callLog"].([]any)
	if len(callLog) != 2 {
		t.Fatalf("got %d callLog entries, want 2", len(callLog))
	}
	first := callLog[0].(map[string]any)
	if first["call"] != "f1(1, 2)" || first["result"].(float64) != 3 {
		t.Errorf("got %+v", first)
	}
	args := first["args"].([]any)
	if len(args) != 2 || args[0].(float64) != 1 || args[1].(float64) != 2 {
		t.Errorf("got args=%+v, want [1, 2]", args)
	}
	second := callLog[1].(map[string]any)
	if second["error"] != "TypeError: not a function" {
		t.Errorf("got %+v", second)
	}
}

func TestRenderEmptyResultsStillProducesValidDocument(t *testing.T) {
	doc, err := Render(nil, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
}

func TestWriteCreatesFileAtPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.json")
	results := []sandbox.CallResult{{Key: "f1()", Value: ast.Value{Kind: ast.KindString, Str: "hi"}}}

	if err := Write(path, results, time.Now()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written trace: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("written trace is not valid JSON: %v", err)
	}
}

func TestLiteralJSONCoversEveryKind(t *testing.T) {
	tests := []struct {
		v    ast.Value
		want any
	}{
		{ast.Value{Kind: ast.KindString, Str: "s"}, "s"},
		{ast.Value{Kind: ast.KindInteger, Int: 7}, int64(7)},
		{ast.Value{Kind: ast.KindFractional, Float: 1.5}, 1.5},
		{ast.Value{Kind: ast.KindBoolean, Bool: true}, true},
		{ast.Value{Kind: ast.KindNull}, nil},
		{ast.Value{Kind: ast.KindAbsent}, "undefined"},
	}
	for _, tt := range tests {
		got := literalJSON(tt.v)
		if got != tt.want {
			t.Errorf("literalJSON(%+v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
