package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	ListenPort      string        `validate:"required"` // ex: ":8080"
	ShutdownTimeout time.Duration `validate:"gt=0"`     // ex: 5s

	LogLevel  string `validate:"oneof=debug info warn error"`
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	NavFile           string        `validate:"required"` // path to the navigation YAML file
	ReloadInterval    time.Duration `validate:"gt=0"`     // interval to reload the nav file (default: 1h)
	GCInterval        time.Duration `validate:"gt=0"`     // interval to prune old revisions (default: 24h)
	RevisionRetention time.Duration `validate:"gt=0"`     // superseded revisions older than this are pruned (default: 30 days)
	MaxRevisions      int           `validate:"min=1"`    // revisions kept in memory and redis (default: 20)

	// Redis (optional, empty RedisAddr disables snapshot persistence)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password when redis is enabled
	RedisDB               int           `validate:"min=0"`
	RedisDT               time.Duration `validate:"gt=0"` // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration `validate:"gt=0"` // Redis read timeout (ex: 3s)
	RedisWT               time.Duration `validate:"gt=0"` // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration `validate:"gt=0"` // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration `validate:"gt=0"` // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           `validate:"min=1"`
	RedisConnectTimeout   time.Duration `validate:"gt=0"` // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration `validate:"gt=0"` // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           `validate:"min=0"`

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string `validate:"dive,cidr|ip"` // optional, restrict admin endpoints to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	RateBurst    int      `validate:"min=1"` // per-IP burst on public endpoints
	RatePerMin   int      `validate:"min=1"` // per-IP refill per minute
}

// RedisEnabled reports whether snapshot persistence is configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.RedisEnabled() && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("SIDENAV_REDIS_PASSWORD is required when SIDENAV_REDIS_PASSWORD_REQUIRED=true")
	}
	return nil
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SIDENAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SIDENAV_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SIDENAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SIDENAV_PRETTY_LOG", true),

		// Navigation source
		NavFile:           requireEnv("SIDENAV_NAV_FILE"),
		ReloadInterval:    mustDuration("SIDENAV_RELOAD_INTERVAL", time.Hour),
		GCInterval:        mustDuration("SIDENAV_GC_INTERVAL", 24*time.Hour),
		RevisionRetention: mustDuration("SIDENAV_REVISION_RETENTION", 30*24*time.Hour),
		MaxRevisions:      getenvInt("SIDENAV_MAX_REVISIONS", 20),

		// Redis settings
		RedisAddr:             getenv("SIDENAV_REDIS_ADDR", ""),
		RedisUser:             getenv("SIDENAV_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SIDENAV_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("SIDENAV_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SIDENAV_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SIDENAV_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("SIDENAV_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SIDENAV_TRUST_PROXY", false),
		RateBurst:    getenvInt("SIDENAV_RATE_BURST", 60),
		RatePerMin:   getenvInt("SIDENAV_RATE_PER_MIN", 600),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: invalid configuration: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
