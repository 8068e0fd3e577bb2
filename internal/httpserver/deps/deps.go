package deps

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/youlearn/youlearn/internal/catalog"
	"github.com/youlearn/youlearn/internal/draft"
	"github.com/youlearn/youlearn/internal/logger"
	"github.com/youlearn/youlearn/internal/search"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time   // for testing, defaults to time.Now
	AllowedOrigins []string           // CORS origins for the browser shell
	RedisClient    *goredis.Client    // nil when running a memory-only session
	Catalog        *catalog.Catalog   // the canonical ordered catalog
	Selection      *catalog.Selection // active-entry controller
	Draft          *draft.Controller  // the in-progress add-video draft
	Search         search.Lookuper    // raw metadata lookups for the proxy endpoint
}
