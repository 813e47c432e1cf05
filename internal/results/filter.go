// Package results shapes Splunk search result rows before they are returned
// to MCP clients: jq filtering and truncation of long field values.
package results

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Filter is a compiled jq expression applied to the array of result rows.
type Filter struct {
	expr string
	code *gojq.Code
}

// CompileFilter parses and compiles a jq expression. It is called before
// any Splunk request so a malformed expression never costs a search job.
func CompileFilter(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, errors.New("filter expression is empty")
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return &Filter{expr: expression, code: code}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Apply runs the filter with the full row array as input, so both
// `.[] | select(...)` and `map(...)` work. A filter that emits exactly one
// array is taken as the new row set; otherwise every emitted value becomes a
// row. Runtime errors are collected rather than aborting the run.
func (f *Filter) Apply(rows []map[string]any) (out []any, errs []string) {
	input := make([]any, len(rows))
	for i, r := range rows {
		input[i] = r
	}

	out = make([]any, 0)
	iter := f.code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			errs = append(errs, formatJQError(err))
			continue
		}
		out = append(out, v)
	}

	if len(out) == 1 {
		if arr, isArr := out[0].([]any); isArr {
			return arr, errs
		}
	}
	return out, errs
}

// formatJQError decorates common runtime errors with a hint. gojq runtime
// errors are untyped, so matching is on the message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "filter halted"
		}
		return fmt.Sprintf("filter halted with: %v", haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the field may not exist in these results)"
	case strings.HasPrefix(errStr, "expected an object but got"):
		hint = " (field values are scalars, index the row instead)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (each row is an object, try .[] first)"
	}

	return errStr + hint
}
