package mcpsrv

import (
	"github.com/usestring/splunk-mcp/internal/cache"
	"github.com/usestring/splunk-mcp/internal/config"
	"github.com/usestring/splunk-mcp/internal/session"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same Splunk session as builtin tools.
type Deps struct {
	Session *session.Manager
	Jobs    *cache.JobCache
	Config  *config.Config
}
