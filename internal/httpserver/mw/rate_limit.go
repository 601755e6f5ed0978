package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/sidenav/internal/utils"
)

// RateLimitConfig configures the per-IP token bucket guarding public reads.
type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int           // 0 means unbounded
	SweepInterval     time.Duration // default 1m
	IdleTTL           time.Duration // visitors idle longer than this are dropped, default 15m
	TrustProxy        bool          // resolve IP from proxy headers when true
	Now               func() time.Time
}

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// visitors maps client IPs to their limiter. Idle entries are swept
// periodically, and eagerly once MaxEntries is reached.
type visitors struct {
	cfg       RateLimitConfig
	every     rate.Limit
	mu        sync.Mutex
	byIP      map[string]*visitor
	lastSweep time.Time
}

func newVisitors(cfg RateLimitConfig) *visitors {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	cfg.Burst = max(cfg.Burst, 1)
	cfg.RefillPerIPPerMin = max(cfg.RefillPerIPPerMin, 1)
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &visitors{
		cfg:       cfg,
		every:     rate.Limit(float64(cfg.RefillPerIPPerMin) / 60.0),
		byIP:      make(map[string]*visitor, 1024),
		lastSweep: cfg.Now(),
	}
}

func (v *visitors) get(ip string, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	if now.Sub(v.lastSweep) >= v.cfg.SweepInterval ||
		(v.cfg.MaxEntries > 0 && len(v.byIP) >= v.cfg.MaxEntries) {
		v.sweepLocked(now)
	}

	vis := v.byIP[ip]
	if vis == nil {
		vis = &visitor{lim: rate.NewLimiter(v.every, v.cfg.Burst)}
		v.byIP[ip] = vis
	}
	vis.lastSeen = now
	return vis.lim
}

func (v *visitors) sweepLocked(now time.Time) {
	for ip, vis := range v.byIP {
		if now.Sub(vis.lastSeen) > v.cfg.IdleTTL {
			delete(v.byIP, ip)
		}
	}
	v.lastSweep = now
}

// allow takes one token for ip. When the bucket is empty it reports how many
// whole seconds the client should wait.
func (v *visitors) allow(ip string, now time.Time) (ok bool, remaining int, retryAfterSec int) {
	lim := v.get(ip, now)

	res := lim.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, 0, max(int(math.Ceil(delay.Seconds())), 1)
	}
	return true, max(int(math.Floor(lim.TokensAt(now))), 0), 0
}

// RateLimit rejects requests beyond the per-IP budget with 429 and a Retry-After header.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	v := newVisitors(cfg)
	limitStr := strconv.Itoa(v.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, v.cfg.TrustProxy)

			ok, remaining, retry := v.allow(ip, v.cfg.Now())
			w.Header().Set("X-RateLimit-Limit", limitStr)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
