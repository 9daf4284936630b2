package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fieldhub/internal/platform/middleware"
)

// NewRouter wires all endpoints. Value routes require any authenticated
// session; the admin definition API additionally requires a staff token.
func NewRouter(h *Handler, admin *AdminHandler, validator middleware.TokenValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))

		r.Route("/groups/{slug}", func(r chi.Router) {
			r.Get("/", h.handleGetGroup)
			r.Get("/form", h.handleGenerateForm)
			r.Post("/values", h.handleSaveValues)
			// value wipe accompanies deletion of the owning record,
			// which only staff can trigger
			r.With(middleware.RequireStaff(logger)).Delete("/values", h.handleDeleteValues)
			r.Get("/fields/{field}/value", h.handleGetFieldValue)
			r.Put("/fields/{field}/value", h.handleSetFieldValue)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireStaff(logger))

			r.Get("/groups", admin.handleListGroups)
			r.Post("/groups", admin.handleCreateGroup)
			r.Route("/groups/{slug}", func(r chi.Router) {
				r.Put("/", admin.handleUpdateGroup)
				r.Delete("/", admin.handleDeleteGroup)
				r.Get("/fields", admin.handleListFields)
				r.Post("/fields", admin.handleCreateField)
				r.Put("/fields/{field}", admin.handleUpdateField)
				r.Delete("/fields/{field}", admin.handleDeleteField)
			})
		})
	})

	return r
}
