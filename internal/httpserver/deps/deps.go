package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/metrics"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time     // for testing, defaults to time.Now
	AllowedHosts  []string             // Host headers allowed to access the server
	AllowedCIDRS  []string             // IPs allowed to access admin endpoints
	TrustProxy    bool                 // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateBurst     int                  // per-IP burst on public endpoints
	RatePerMin    int                  // per-IP refill per minute on public endpoints
	NavFile       string               // Path to the navigation file
	RedisClient   *redis.Client        // nil when snapshot persistence is disabled
	Index         *index.RevisionIndex // Published navigation revisions
	Metrics       *metrics.Metrics     // nil disables /metrics and request metrics
	ReloadTrigger chan struct{}        // Channel to trigger a manual reload
}
