package cycleweb

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the form page at / and the diagram entry points
// under the /cycle prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
	r.Route("/cycle", func(r chi.Router) {
		r.Post("/generate-ts", h.GenerateTS)
		r.Post("/generate-pv", h.GeneratePV)
		r.Get("/regions", h.Regions)
	})
}
