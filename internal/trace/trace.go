// Package trace writes the side-channel JSON trace spec.md §6.4
// describes: one call-log entry per driven call site plus a summary
// of totals, at the configured debug_output_path.
//
// Grounded on go-dws's dependency on tidwall/sjson+gjson for its JSON
// builtin value type (internal/jsonvalue); here the same library
// builds the trace document incrementally via sjson.Set instead
// of through encoding/json struct tags, so a malformed intermediate
// value never round-trips silently.
package trace

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/sjson"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/sandbox"
)

// Write renders results as the §6.4 JSON document and writes it to
// path. timestamp is the RFC3339 instant the caller stamps the run
// with (the core itself never calls time.Now — see internal/pipeline).
func Write(path string, results []sandbox.CallResult, timestamp time.Time) error {
	doc, err := Render(results, timestamp)
	if err != nil {
		return fmt.Errorf("rendering trace: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing trace to %s: %w", path, err)
	}
	return nil
}

// Render builds the JSON document text without touching the
// filesystem, so callers (and tests) can inspect it directly.
func Render(results []sandbox.CallResult, timestamp time.Time) (string, error) {
	doc := "{}"
	var err error

	doc, err = sjson.Set(doc, "timestamp", timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}

	successful, failed := 0, 0
	for i, r := range results {
		base := fmt.Sprintf("callLog.%d", i)
		doc, err = sjson.Set(doc, base+".call", r.Key)
		if err != nil {
			return "", err
		}
		args := make([]any, len(r.Args))
		for j, a := range r.Args {
			args[j] = literalJSON(a)
		}
		doc, err = sjson.Set(doc, base+".args", args)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, base+".elapsedMs", r.Elapsed.Milliseconds())
		if err != nil {
			return "", err
		}
		if r.Failed {
			failed++
			doc, err = sjson.Set(doc, base+".error", r.FailureReason)
		} else {
			successful++
			doc, err = sjson.Set(doc, base+".result", literalJSON(r.Value))
		}
		if err != nil {
			return "", err
		}
	}

	doc, err = sjson.Set(doc, "summary.totalCalls", len(results))
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "summary.successfulCalls", successful)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "summary.failedCalls", failed)
	if err != nil {
		return "", err
	}

	return doc, nil
}

// literalJSON converts a captured literal to a plain Go value sjson
// can marshal, preferring the kind's natural JSON representation over
// exposing ast.Value's internal field layout.
func literalJSON(v ast.Value) any {
	switch v.Kind {
	case ast.KindString:
		return v.Str
	case ast.KindInteger:
		return v.Int
	case ast.KindFractional:
		return v.Float
	case ast.KindBoolean:
		return v.Bool
	case ast.KindNull:
		return nil
	case ast.KindAbsent:
		return "undefined"
	default:
		return nil
	}
}
