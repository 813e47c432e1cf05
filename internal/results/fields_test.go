package results

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accessRows() []map[string]any {
	return []map[string]any{
		{"_time": "2024-05-01T10:00:00.000+00:00", "clientip": "10.0.0.1", "status": "200", "method": "GET", "bytes": "512"},
		{"_time": "2024-05-01T10:00:01.000+00:00", "clientip": "10.0.0.2", "status": "200", "method": "GET", "bytes": "1024"},
		{"_time": "2024-05-01T10:00:02.000+00:00", "clientip": "10.0.0.3", "status": "404", "method": "POST", "bytes": "0"},
		{"_time": "2024-05-01T10:00:03.000+00:00", "clientip": "10.0.0.1", "status": "500", "method": "GET", "bytes": "77", "tag": []any{"web", "error"}},
		{"_time": "2024-05-01T10:00:04.000+00:00", "clientip": "::1", "status": "200", "method": "PUT", "bytes": "3.5"},
	}
}

func statByName(t *testing.T, s *FieldSummary, name string) FieldStat {
	t.Helper()
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not in summary", name)
	return FieldStat{}
}

func TestSummarize_Formats(t *testing.T) {
	s := Summarize(accessRows())
	require.Equal(t, 5, s.RowCount)

	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"_time", "bytes", "clientip", "method", "status", "tag"}, names)

	bytes := statByName(t, s, "bytes")
	assert.Equal(t, "numeric", bytes.Format)
	assert.Equal(t, "number", bytes.Type)
	assert.Equal(t, 1.0, bytes.Frequency)

	assert.Equal(t, "iso8601", statByName(t, s, "_time").Format)

	ip := statByName(t, s, "clientip")
	assert.Equal(t, "ip", ip.Format)
	assert.Equal(t, 4, ip.DistinctCount)
	assert.Len(t, ip.Examples, 3)

	method := statByName(t, s, "method")
	assert.Equal(t, "enum", method.Format)
	assert.Equal(t, []string{"GET", "POST", "PUT"}, method.EnumValues)
}

func TestSummarize_Multivalue(t *testing.T) {
	s := Summarize(accessRows())

	tag := statByName(t, s, "tag")
	assert.True(t, tag.Multivalue)
	assert.Equal(t, "array", tag.Type)
	assert.InDelta(t, 0.2, tag.Frequency, 1e-9)
	assert.Equal(t, 2, tag.DistinctCount)
	// Too few values to infer a format.
	assert.Empty(t, tag.Format)
}

func TestSummarize_Schema(t *testing.T) {
	s := Summarize(accessRows())

	assert.Equal(t, []string{"_time", "bytes", "clientip", "method", "status"}, s.Schema.Required)

	data, err := json.Marshal(s.Schema)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "object", doc["type"])

	props := doc["properties"].(map[string]any)
	assert.Equal(t, "date-time", props["_time"].(map[string]any)["format"])
	assert.Equal(t, []any{"GET", "POST", "PUT"}, props["method"].(map[string]any)["enum"])
	assert.Contains(t, props["tag"], "anyOf")
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.RowCount)
	assert.NotNil(t, s.Fields)
	assert.Empty(t, s.Fields)
	assert.Equal(t, "object", s.Schema.Type)
}

func TestSummarize_HighCardinalityHasNoFormat(t *testing.T) {
	rows := make([]map[string]any, 0, 12)
	for _, v := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		rows = append(rows, map[string]any{"user": v})
	}
	stat := statByName(t, Summarize(rows), "user")
	assert.Empty(t, stat.Format)
	assert.Nil(t, stat.EnumValues)
	assert.Equal(t, 12, stat.DistinctCount)
}
