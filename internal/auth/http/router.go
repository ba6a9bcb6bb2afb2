package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
	"github.com/abuRizq/vegetable-shop/internal/auth/service"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/jwtx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"

	_ "github.com/abuRizq/vegetable-shop/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	signerReady  func() bool
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	TokenService   *service.TokenService
	UserService    *service.UserService
	ResetService   *service.PasswordResetService
	CatalogService *service.CatalogService
}

func NewRouter(
	verifier jwtx.Verifier,
	signerReady func() bool,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		signerReady:  signerReady,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerCatalog()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Vegetable Shop Auth API
//	@version		0.1.0
//	@description	Authentication and user service for the vegetable shop. Issues EdDSA-signed
//	@description	access tokens with rotating opaque refresh tokens.
//
//	@contact.name	Vegetable Shop Team
//	@contact.url	https://github.com/abuRizq/vegetable-shop
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential endpoints take authentication attempts, so they rate limit
	// strictly by IP.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(&RegisterHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(&RefreshHandler{TokenService: r.TokenService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(&LogoutHandler{AuthService: r.AuthService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	me := httpx.Chain(&MeHandler{UserService: r.UserService},
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.Mux.Handle("GET /api/auth/me", me)
	r.Mux.Handle("GET /api/users/me", me)

	resetHandler := &PasswordResetHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /api/auth/forgot-password",
		httpx.Chain(http.HandlerFunc(resetHandler.HandleForgot),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/reset-password",
		httpx.Chain(http.HandlerFunc(resetHandler.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	r.Mux.Handle("GET /api/users",
		httpx.Chain(&UsersHandler{UserService: r.UserService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCatalog() {
	catalog := &CatalogHandler{CatalogService: r.CatalogService}

	// Browsing is public; writes are admin only.
	r.Mux.Handle("GET /api/categories",
		httpx.Chain(http.HandlerFunc(catalog.HandleListCategories),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/products",
		httpx.Chain(http.HandlerFunc(catalog.HandleListProducts),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/products/{id}",
		httpx.Chain(http.HandlerFunc(catalog.HandleGetProduct),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /api/categories",
		httpx.Chain(http.HandlerFunc(catalog.HandleCreateCategory),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/products",
		httpx.Chain(http.HandlerFunc(catalog.HandleCreateProduct),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signerReady),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
