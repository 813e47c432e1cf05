package tools

import (
	"github.com/usestring/splunk-mcp/internal/cache"
	"github.com/usestring/splunk-mcp/internal/config"
	"github.com/usestring/splunk-mcp/internal/session"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Session *session.Manager
	Jobs    *cache.JobCache
	Config  *config.Config
}

// maxStringLen returns the configured field truncation length, 0 when unset.
func (d *Deps) maxStringLen() int {
	if d.Config == nil {
		return 0
	}
	return d.Config.ResultMaxStringLen
}
