package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/gateway/cache"
	"github.com/abuRizq/vegetable-shop/internal/gateway/client"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

// Router holds shared dependencies for the gateway handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	backend  *client.BackendClient
	sessions *cache.SessionCache
	cookie   cookiePolicy
	logger   *slog.Logger
}

func NewRouter(
	backend *client.BackendClient,
	sessions *cache.SessionCache,
	cookieMaxAge time.Duration,
	cookieSecure bool,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:      http.NewServeMux(),
		backend:  backend,
		sessions: sessions,
		cookie: cookiePolicy{
			maxAge: cookieMaxAge,
			secure: cookieSecure,
		},
		logger: logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(&LoginHandler{Backend: r.backend, Cookie: r.cookie},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(&RegisterHandler{Backend: r.backend, Cookie: r.cookie},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(&LogoutHandler{Backend: r.backend, Sessions: r.sessions, Cookie: r.cookie},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(&MeHandler{Backend: r.backend, Sessions: r.sessions, Cookie: r.cookie},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
