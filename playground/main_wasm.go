//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/hyperdrive-technology/core-sub001/internal/driver"
)

func main() {
	js.Global().Set("validateST", js.FuncOf(validateSTWrapper))
	js.Global().Set("compileST", js.FuncOf(compileSTWrapper))

	// Keep the program alive
	select {}
}

// validateSTWrapper wraps the incremental validate path (lex+parse+
// lower+validate, no AST retained) for the editor's on-keystroke call.
func validateSTWrapper(this js.Value, args []js.Value) interface{} {
	var result map[string]interface{}

	defer func() {
		if r := recover(); r != nil {
			result = map[string]interface{}{"diagnostics": []interface{}{fmt.Sprintf("panic: %v", r)}}
		}
	}()

	if len(args) != 2 {
		return js.ValueOf(map[string]interface{}{"diagnostics": []interface{}{"expected 2 arguments (uri, source)"}})
	}

	uri, source := args[0].String(), args[1].String()
	res := driver.ValidateIncremental(uri, source)

	diags := make([]interface{}, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		diags[i] = map[string]interface{}{
			"severity":  d.Severity,
			"message":   d.Message,
			"line":      d.Line,
			"column":    d.Column,
			"endLine":   d.EndLine,
			"endColumn": d.EndCol,
		}
	}

	result = map[string]interface{}{"uri": res.URI, "diagnostics": diags}
	return js.ValueOf(result)
}

// compileSTWrapper wraps the batch compile path for a single in-editor
// file: lex, parse, lower, validate, and report the aggregated
// diagnostics plus whether compilation succeeded. There is no generated
// output to return — this front end has no code-generation backend.
func compileSTWrapper(this js.Value, args []js.Value) interface{} {
	var result map[string]interface{}

	defer func() {
		if r := recover(); r != nil {
			result = map[string]interface{}{"success": false, "diagnostics": []interface{}{fmt.Sprintf("panic: %v", r)}}
		}
	}()

	if len(args) != 1 {
		return js.ValueOf(map[string]interface{}{"success": false, "diagnostics": []interface{}{"expected 1 argument (source code)"}})
	}

	source := args[0].String()
	res := driver.CompileBatch([]driver.SourceFile{{Name: "playground.st", Content: source}})

	diags := make([]interface{}, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		diags[i] = map[string]interface{}{
			"severity": d.Severity,
			"message":  d.Message,
			"line":     d.Line,
			"column":   d.Column,
		}
	}

	result = map[string]interface{}{
		"success":          res.Success,
		"diagnostics":      diags,
		"processingTimeMs": res.ProcessingTimeMs,
	}
	return js.ValueOf(result)
}
