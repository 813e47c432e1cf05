package splunk

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Output modes accepted by the results endpoint.
const (
	OutputJSON = "json"
	OutputCSV  = "csv"
	OutputXML  = "xml"
)

// Terminal dispatch states of a search job.
const (
	DispatchDone   = "DONE"
	DispatchFailed = "FAILED"
)

// SearchOptions carries the optional time bounds of a search or dispatch.
// Values are Splunk time modifiers such as "-24h", "@d" or an ISO timestamp.
type SearchOptions struct {
	EarliestTime string
	LatestTime   string
}

// ResultsOptions controls how job results are fetched.
type ResultsOptions struct {
	Count      int    // max results, 0 = Splunk default
	OutputMode string // json, csv or xml; empty = json
}

// JobStatus is the subset of a search job's state the client reads.
type JobStatus struct {
	SID           string
	DispatchState string
	IsDone        bool
	IsFailed      bool
	ResultCount   int64
	EventCount    int64
	RunDuration   float64
	Messages      []Message
}

// Failed reports whether Splunk marked the job as failed.
func (s *JobStatus) Failed() bool {
	return s.IsFailed || s.DispatchState == DispatchFailed
}

// SavedSearch is a saved search definition.
type SavedSearch struct {
	Name         string
	Search       string
	Description  string
	EarliestTime string
	LatestTime   string
}

// Index describes one Splunk index.
type Index struct {
	Name            string
	TotalEventCount int64
	CurrentDBSizeMB int64
	MaxDataSize     string
}

// ServerInfo describes the Splunk server the client is connected to.
type ServerInfo struct {
	Version      string
	Build        string
	ServerName   string
	LicenseState string
	Mode         string
}

// ResultSet is the JSON body of the results endpoint.
type ResultSet struct {
	Preview    bool             `json:"preview"`
	InitOffset int              `json:"init_offset"`
	Results    []map[string]any `json:"results"`
}

// ParseResults decodes a JSON results body.
func ParseResults(body []byte) (*ResultSet, error) {
	var rs ResultSet
	if err := decode(body, &rs); err != nil {
		return nil, err
	}
	if rs.Results == nil {
		rs.Results = []map[string]any{}
	}
	return &rs, nil
}

// feed is the Atom-style envelope Splunk wraps collection responses in.
type feed[T any] struct {
	Entry []entry[T] `json:"entry"`
}

type entry[T any] struct {
	Name    string `json:"name"`
	Content T      `json:"content"`
}

// flexInt decodes numbers Splunk may send either bare or quoted.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt(i)
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexInt(fl)
	return nil
}

// flexString decodes scalars of any JSON type as their string form.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	raw := string(bytes.TrimSpace(b))
	if raw == "null" {
		raw = ""
	}
	*f = flexString(raw)
	return nil
}
