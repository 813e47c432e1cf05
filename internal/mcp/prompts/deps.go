// Package prompts contains MCP prompt implementations for Splunk.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	// ResultMaxStringLen mirrors RESULT_MAX_STRING_LEN so the guide can warn
	// that long field values are cut.
	ResultMaxStringLen int
	// JobCacheEnabled reports whether splunk://jobs/{sid}/results is served.
	JobCacheEnabled bool
}
