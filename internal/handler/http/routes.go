package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// client-facing routes, authenticated by the license key itself
	router.Post("/verify.php", h.verify)
	router.Post("/sync_action.php", h.syncAction)

	// unauthenticated service routes
	router.Get("/status", h.health)
	router.Get("/version", h.getServerVersion)

	// operator routes behind the admin secret
	router.Route("/admin", func(r chi.Router) {
		r.Use(h.withAdminAuth)
		r.Post("/add_user", h.addUser)
		r.Post("/set_strategy", h.setStrategy)
		r.Get("/list_users", h.listUsers)
		r.Get("/user_stats/{licenseKey}", h.userStats)
		r.Delete("/delete_user/{licenseKey}", h.deleteUser)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
