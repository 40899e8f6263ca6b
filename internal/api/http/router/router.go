package router

import (
	"net/http"

	"github.com/withbaby/auth-server/internal/api/http/handler"
	"github.com/withbaby/auth-server/internal/api/http/middleware"
	"github.com/withbaby/auth-server/internal/logger"
)

// Router assembles the HTTP routes and middleware for the auth endpoints.
type Router struct {
	authService handler.AuthService
	logger      *logger.Logger
}

// New creates a new Router instance.
func New(authService handler.AuthService, logger *logger.Logger) *Router {
	return &Router{
		authService: authService,
		logger:      logger,
	}
}

// Register builds the handler chain: routes wrapped in request logging.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", authHandler.SignUp)
	mux.HandleFunc("POST /signin", authHandler.SignIn)
	mux.HandleFunc("GET /verify", authHandler.Verify)
	mux.HandleFunc("GET /exists", authHandler.Exists)

	logging := middleware.NewLogging(r.logger)

	return logging.Handle(mux)
}
