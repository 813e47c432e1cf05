package tools

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// inputSchema infers the schema for In and lets tune add what struct tags
// cannot express: numeric bounds, enumerations and defaults. The SDK applies
// the defaults and rejects violations before a handler runs.
func inputSchema[In any](tune func(props map[string]*jsonschema.Schema)) *jsonschema.Schema {
	s, err := jsonschema.For[In](&jsonschema.ForOptions{})
	if err != nil {
		panic(fmt.Sprintf("inferring input schema: %v", err))
	}
	if tune != nil {
		tune(s.Properties)
	}
	return s
}

// intRange bounds an integer property and sets its default.
func intRange(p *jsonschema.Schema, lo, hi, def int) {
	p.Minimum = jsonschema.Ptr(float64(lo))
	p.Maximum = jsonschema.Ptr(float64(hi))
	p.Default = mustRaw(def)
}

// stringEnum restricts a string property to values and sets its default.
func stringEnum(p *jsonschema.Schema, def string, values ...string) {
	p.Enum = make([]any, len(values))
	for i, v := range values {
		p.Enum[i] = v
	}
	p.Default = mustRaw(def)
}

func mustRaw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
