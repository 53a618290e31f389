package api

import (
	"net/http"
	"time"

	"itemtrack/internal/api/handler"
	"itemtrack/internal/api/middleware"
	"itemtrack/internal/app/service"
	"itemtrack/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	itemService *service.ItemService,
	userService *service.UserService,
	resolver *service.SubjectResolver,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// JWT Auth Middleware Setup
	// jwtauth.Verifier searches for a token in "Authorization: Bearer T" and
	// puts the parsed claims into the request context. Route-level
	// Authenticator decides whether a valid subject is required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Public auth routes: POST /signup, POST /login
	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterRoutes(r)

	// Protected API routes
	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Use(middleware.Authenticator(resolver))

		itemHandler := handler.NewItemHandler(itemService)
		apiRouter.Route("/items", itemHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService)
		apiRouter.Route("/users", userHandler.RegisterRoutes)
	})

	return r
}
