package results

import (
	"fmt"
	"net/netip"
	"regexp"
	"sort"
	"strconv"

	"github.com/invopop/jsonschema"
)

// FieldStat summarizes one field across the rows of a job.
type FieldStat struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`                  // string, number or array (multivalue)
	Frequency     float64  `json:"frequency"`             // fraction of rows carrying the field
	Multivalue    bool     `json:"multivalue,omitempty"`  // at least one row holds several values
	DistinctCount int      `json:"distinct_count"`        // distinct non-empty values
	Examples      []any    `json:"examples"`              // up to maxExamples values
	Format        string   `json:"format,omitempty"`      // numeric, iso8601, ip, url, email or enum
	EnumValues    []string `json:"enum_values,omitempty"` // set when Format is enum
}

// FieldSummary is the field table of a job plus a JSON Schema for its rows.
type FieldSummary struct {
	RowCount int                `json:"row_count"`
	Fields   []FieldStat        `json:"fields"`
	Schema   *jsonschema.Schema `json:"schema"`
}

const (
	maxExamples           = 3
	minSamplesForFormat   = 5
	maxEnumDistinctValues = 10
)

var (
	iso8601Regex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)
	urlRegex     = regexp.MustCompile(`^https?://`)
	emailRegex   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Summarize computes per-field statistics over Splunk result rows. Fields are
// reported in name order. Splunk sends every scalar as a string, so numeric
// columns are recognized by format rather than by JSON type.
func Summarize(rows []map[string]any) *FieldSummary {
	names := fieldNames(rows)

	summary := &FieldSummary{
		RowCount: len(rows),
		Fields:   make([]FieldStat, 0, len(names)),
		Schema: &jsonschema.Schema{
			Type:       "object",
			Properties: jsonschema.NewProperties(),
		},
	}

	for _, name := range names {
		stat := summarizeField(name, rows)
		summary.Fields = append(summary.Fields, stat)
		summary.Schema.Properties.Set(name, fieldSchema(stat))
		if stat.Frequency == 1 {
			summary.Schema.Required = append(summary.Schema.Required, name)
		}
	}
	return summary
}

func fieldNames(rows []map[string]any) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func summarizeField(name string, rows []map[string]any) FieldStat {
	stat := FieldStat{Name: name, Type: "string", Examples: []any{}}

	present := 0
	distinct := make(map[string]struct{})
	var values []string

	observe := func(s string) {
		values = append(values, s)
		if _, ok := distinct[s]; ok {
			return
		}
		distinct[s] = struct{}{}
		if len(stat.Examples) < maxExamples {
			stat.Examples = append(stat.Examples, s)
		}
	}

	for _, row := range rows {
		val, ok := row[name]
		if !ok || val == nil {
			continue
		}
		present++

		switch v := val.(type) {
		case []any:
			if len(v) > 1 {
				stat.Multivalue = true
			}
			for _, item := range v {
				if item != nil {
					observe(fmt.Sprint(item))
				}
			}
		case string:
			if v != "" {
				observe(v)
			}
		default:
			observe(fmt.Sprint(v))
		}
	}

	if len(rows) > 0 {
		stat.Frequency = float64(present) / float64(len(rows))
	}
	stat.DistinctCount = len(distinct)

	if len(values) >= minSamplesForFormat {
		stat.Format, stat.EnumValues = detectFormat(values)
	}
	switch {
	case stat.Multivalue:
		stat.Type = "array"
	case stat.Format == "numeric":
		stat.Type = "number"
	}
	return stat
}

// detectFormat returns the first format every value matches. Enum is the
// fallback for low-cardinality fields.
func detectFormat(values []string) (string, []string) {
	if len(values) == 0 {
		return "", nil
	}

	checks := []struct {
		format string
		match  func(string) bool
	}{
		{"numeric", isNumeric},
		{"iso8601", iso8601Regex.MatchString},
		{"ip", isIP},
		{"url", urlRegex.MatchString},
		{"email", emailRegex.MatchString},
	}
	for _, c := range checks {
		if all(values, c.match) {
			return c.format, nil
		}
	}

	distinct := make(map[string]struct{})
	for _, v := range values {
		distinct[v] = struct{}{}
		if len(distinct) > maxEnumDistinctValues {
			return "", nil
		}
	}
	enum := make([]string, 0, len(distinct))
	for v := range distinct {
		enum = append(enum, v)
	}
	sort.Strings(enum)
	return "enum", enum
}

func all(values []string, match func(string) bool) bool {
	for _, v := range values {
		if !match(v) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isIP(s string) bool {
	_, err := netip.ParseAddr(s)
	return err == nil
}

// fieldSchema maps a stat to the schema of its column. Values stay typed as
// strings because that is what the rows carry; format says how to read them.
func fieldSchema(stat FieldStat) *jsonschema.Schema {
	item := &jsonschema.Schema{Type: "string"}
	switch stat.Format {
	case "iso8601":
		item.Format = "date-time"
	case "ip":
		item.Format = "ip"
	case "url":
		item.Format = "uri"
	case "email":
		item.Format = "email"
	case "numeric":
		item.Pattern = `^-?[0-9.eE+-]+$`
	case "enum":
		item.Enum = make([]any, len(stat.EnumValues))
		for i, v := range stat.EnumValues {
			item.Enum[i] = v
		}
	}
	if len(stat.Examples) > 0 {
		item.Examples = stat.Examples
	}

	if !stat.Multivalue {
		return item
	}
	// Multivalue fields hold either one value or a list of them.
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{item, {Type: "array", Items: item}},
	}
}
