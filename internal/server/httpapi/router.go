package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/notezapp/notez/internal/logging"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(log logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			log.Info(context.Background(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// NewRouter wires the note endpoints onto a mux router.
func NewRouter(h *NoteHandler, log logging.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware(log))

	r.HandleFunc("/api/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/notes").Subrouter()
	api.HandleFunc("", h.List).Methods(http.MethodGet)
	api.HandleFunc("", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/{noteId}", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/{noteId}", h.Update).Methods(http.MethodPatch)
	api.HandleFunc("/{noteId}", h.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/{noteId}/pin", h.TogglePin).Methods(http.MethodPatch)
	api.HandleFunc("/{noteId}/tags", h.AddTag).Methods(http.MethodPost)
	api.HandleFunc("/{noteId}/tags", h.RemoveTag).Methods(http.MethodDelete)

	return r
}
