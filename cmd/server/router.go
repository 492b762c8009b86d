package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jobportal/backend/internal/auth"
	"github.com/jobportal/backend/internal/jobs"
	"github.com/jobportal/backend/internal/middleware"
	"github.com/jobportal/backend/internal/models"
	"github.com/jobportal/backend/internal/resumes"
)

type routerDeps struct {
	logger        *zap.Logger
	corsOrigin    string
	authHandler   *auth.Handler
	jobHandler    *jobs.Handler
	resumeHandler *resumes.Handler
	requireAuth   func(http.Handler) http.Handler
	rateLimit     func(http.Handler) http.Handler
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Job Portal API is running"}`))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(d.rateLimit).Post("/register", d.authHandler.Register)
		r.With(d.rateLimit).Post("/login", d.authHandler.Login)
		r.With(d.requireAuth).Get("/profile", d.authHandler.Profile)
	})

	r.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", d.jobHandler.List)
		r.Get("/{id}", d.jobHandler.Get)
		r.With(d.requireAuth, middleware.RequireRole(models.RoleEmployer)).Post("/", d.jobHandler.Create)
		r.With(d.requireAuth, middleware.RequireRole(models.RoleEmployer)).Get("/employer/my-jobs", d.jobHandler.MyJobs)
		r.With(d.requireAuth, middleware.RequireRole(models.RoleJobseeker)).Post("/{id}/apply", d.jobHandler.Apply)
		r.With(d.requireAuth, middleware.RequireRole(models.RoleEmployer)).Put("/application/status", d.jobHandler.UpdateApplicationStatus)
	})

	r.Route("/api/resumes", func(r chi.Router) {
		r.Use(d.requireAuth)
		r.With(middleware.RequireRole(models.RoleJobseeker)).Post("/upload", d.resumeHandler.Upload)
		r.With(middleware.RequireRole(models.RoleJobseeker)).Get("/", d.resumeHandler.List)
		r.Get("/{id}/download", d.resumeHandler.Download)
		r.With(middleware.RequireRole(models.RoleJobseeker)).Delete("/{id}", d.resumeHandler.Delete)
	})

	// Raw upload surface, no auth required.
	r.Get("/uploads/*", d.resumeHandler.ServeUpload)

	return r
}
