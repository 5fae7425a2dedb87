package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/signup", h.signup)
		r.Post("/api/users/login", h.login)
		r.Get("/api/users/verify/{verificationToken}", h.verify)
		r.Post("/api/users/verify", h.resendVerification)
	})

	// routes behind bearer-token authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/logout", h.logout)
		r.Get("/api/users/current", h.current)
		r.Patch("/api/users", h.updateSubscription)
		r.Patch("/api/users/avatars", h.updateAvatar)
	})

	// normalized avatars are served straight from disk
	router.Handle("/avatars/*", http.StripPrefix("/avatars/", http.FileServer(http.Dir(h.avatarFiles.Dir()))))

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
