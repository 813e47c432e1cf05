// Package cache provides caching utilities for the MCP server.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Job is a completed search job whose JSON rows were returned to a client.
type Job struct {
	SID         string           `json:"sid"`
	Query       string           `json:"query"`
	SavedSearch string           `json:"saved_search,omitempty"`
	ResultCount int              `json:"result_count"`
	Results     []map[string]any `json:"results"`
	CompletedAt time.Time        `json:"completed_at"`
}

// JobCache provides thread-safe LRU caching of completed job results keyed by SID.
// It only serves the splunk://jobs/{sid}/results resource; tool calls always
// go to Splunk.
type JobCache struct {
	cache *lru.Cache[string, *Job]
}

// NewJobCache creates a new LRU cache with the specified maximum number of jobs.
func NewJobCache(maxItems int) (*JobCache, error) {
	c, err := lru.New[string, *Job](maxItems)
	if err != nil {
		return nil, err
	}
	return &JobCache{cache: c}, nil
}

// Get retrieves a job from the cache by its SID.
func (c *JobCache) Get(sid string) (*Job, bool) {
	return c.cache.Get(sid)
}

// Put adds or updates a job in the cache.
func (c *JobCache) Put(job *Job) {
	if job == nil || job.SID == "" {
		return
	}
	c.cache.Add(job.SID, job)
}

// SIDs returns cached job ids from oldest to newest.
func (c *JobCache) SIDs() []string {
	return c.cache.Keys()
}

// Len returns the current number of items in the cache.
func (c *JobCache) Len() int {
	return c.cache.Len()
}
