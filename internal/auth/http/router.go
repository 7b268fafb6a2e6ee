package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lumeva/authcore/internal/auth/service"
	"github.com/lumeva/authcore/internal/auth/store"
	"github.com/lumeva/authcore/pkg/httpx"
	"github.com/lumeva/authcore/pkg/jwtx"
	"github.com/lumeva/authcore/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	accessVerifier *jwtx.Verifier
	buildVersion   string
	startTime      time.Time
	logger         *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	TokenService   *service.TokenService
}

func NewRouter(
	accessVerifier *jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		accessVerifier: accessVerifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		store:          st,
		logger:         logger,
	}

	// Default middleware chain applied to every route.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerTokens()
	r.registerProtected()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	registerHandler := &RegisterHandler{SessionService: r.SessionService}
	loginHandler := &LoginHandler{SessionService: r.SessionService}

	// Credential endpoints get the strict limit: they are the brute-force
	// surface.
	r.Mux.Handle("POST /register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		))

	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
}

func (r *Router) registerTokens() {
	refreshHandler := &RefreshHandler{TokenService: r.TokenService}
	logoutHandler := &LogoutHandler{TokenService: r.TokenService}

	r.Mux.Handle("POST /refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))

	r.Mux.Handle("POST /logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
}

func (r *Router) registerProtected() {
	profileHandler := &ProfileHandler{}
	authCheckHandler := &AuthCheckHandler{}

	r.Mux.Handle("GET /profile",
		httpx.Chain(profileHandler,
			httpx.AuthnMiddleware(r.accessVerifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		))

	r.Mux.Handle("GET /auth-check",
		httpx.Chain(authCheckHandler,
			httpx.AuthnMiddleware(r.accessVerifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
