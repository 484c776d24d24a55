package router

import (
	"net/http"

	"cateringCMS/internal/config"
	handlers "cateringCMS/internal/handler"
	"cateringCMS/internal/middleware"
	"cateringCMS/internal/models"
	"cateringCMS/internal/service"

	"github.com/gorilla/mux"
)

// New builds the HTTP surface. Admin routes run RequireAuthenticated and then
// RequireRole.
func New(h *handlers.Handlers, authService service.AuthService, metrics *middleware.Metrics, cfg *config.Config) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	authenticated := func(fn http.HandlerFunc) http.Handler {
		return middleware.Chain(fn, middleware.RequireAuthenticated(authService))
	}
	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return middleware.Chain(fn,
			middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
			middleware.RequireAuthenticated(authService),
		)
	}

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	auth.Handle("/verify", authenticated(h.Verify)).Methods(http.MethodGet)
	auth.Handle("/logout", authenticated(h.Logout)).Methods(http.MethodPost)

	gallery := api.PathPrefix("/gallery").Subrouter()
	gallery.HandleFunc("", h.ListGallery).Methods(http.MethodGet)
	gallery.Handle("", adminOnly(h.CreateGalleryItem)).Methods(http.MethodPost)
	gallery.HandleFunc("/{id}", h.GetGalleryItem).Methods(http.MethodGet)
	gallery.Handle("/{id}", adminOnly(h.UpdateGalleryItem)).Methods(http.MethodPut)
	gallery.Handle("/{id}", adminOnly(h.DeleteGalleryItem)).Methods(http.MethodDelete)

	reviews := api.PathPrefix("/reviews").Subrouter()
	reviews.HandleFunc("", h.ListReviews).Methods(http.MethodGet)
	reviews.HandleFunc("", h.SubmitReview).Methods(http.MethodPost)
	// registered before /{id} so "admin" is never read as an id
	reviews.Handle("/admin/all", adminOnly(h.ListAllReviews)).Methods(http.MethodGet)
	reviews.HandleFunc("/{id}", h.GetReview).Methods(http.MethodGet)
	reviews.Handle("/{id}/approve", adminOnly(h.ApproveReview)).Methods(http.MethodPut)
	reviews.Handle("/{id}/reject", adminOnly(h.RejectReview)).Methods(http.MethodPut)
	reviews.Handle("/{id}", adminOnly(h.DeleteReview)).Methods(http.MethodDelete)

	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.Handle("/stats", adminOnly(h.DashboardStats)).Methods(http.MethodGet)
	dashboard.Handle("/activity", adminOnly(h.RecentActivity)).Methods(http.MethodGet)

	// mux does not pass these down, and a method mismatch inside a
	// subrouter otherwise ends in the root NotFoundHandler.
	for _, router := range []*mux.Router{r, api, auth, gallery, reviews, dashboard} {
		router.NotFoundHandler = http.HandlerFunc(notFound)
		router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}

	return middleware.Chain(r,
		middleware.CORSMiddleware(cfg.CORSAllowedOrigin),
		middleware.LoggingMiddleware,
	)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, "Route not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
