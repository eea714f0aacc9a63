package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/sessions", CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", GetSession)
			r.Delete("/", DeleteSession)
			r.Post("/events", DispatchEvent)
			r.Post("/keys", PressKey)
		})
	})
}
