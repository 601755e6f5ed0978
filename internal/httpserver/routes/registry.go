package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/mw"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

// Surface selects the access policy a group of routes is mounted behind.
type Surface int

const (
	// Public routes check the Host header and share one per-IP rate limiter.
	Public Surface = iota
	// Probe routes are only reachable from the allowed CIDRs.
	Probe
	// Admin routes need both an allowed CIDR and an allowed Host.
	Admin
)

func (s Surface) String() string {
	switch s {
	case Public:
		return "public"
	case Probe:
		return "probe"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

type entry struct {
	surface Surface
	reg     Registrar
}

var registry []entry

// Register adds a registrar to the given surface. Called from init().
func Register(s Surface, reg Registrar) {
	registry = append(registry, entry{surface: s, reg: reg})
}

// RegisterAll mounts every surface once, so registrars sharing a surface
// share its middleware instances (the public rate limiter in particular).
// Called once from server.New().
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, s := range []Surface{Probe, Admin, Public} {
		regs := registrarsFor(s)
		if len(regs) == 0 {
			continue
		}
		mws := middlewaresFor(s, d)
		r.Group(func(g chi.Router) {
			g.Use(mws...)
			for _, reg := range regs {
				reg(g, d)
			}
		})
	}
}

func registrarsFor(s Surface) []Registrar {
	var out []Registrar
	for _, e := range registry {
		if e.surface == s {
			out = append(out, e.reg)
		}
	}
	return out
}

func middlewaresFor(s Surface, d deps.Deps) []Middleware {
	switch s {
	case Public:
		return []Middleware{
			mw.EnforceHost(d.AllowedHosts, d.Logger),
			mw.RateLimit(mw.RateLimitConfig{
				Burst:             d.RateBurst,
				RefillPerIPPerMin: d.RatePerMin,
				MaxEntries:        10000,
				TrustProxy:        d.TrustProxy,
			}),
		}
	case Probe:
		return []Middleware{mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)}
	default:
		return []Middleware{
			mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
			mw.EnforceHost(d.AllowedHosts, d.Logger),
		}
	}
}
