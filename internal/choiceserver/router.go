package choiceserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// QueryVariable is the parameter carrying the typed text.
const QueryVariable = "q"

type handlers struct {
	store  *Store
	logger *slog.Logger
}

// NewRouter serves the reference choice endpoints:
//
//	GET /countries/?q=       countries, value is the ISO code
//	GET /cities/?q=&country= cities, optionally narrowed by country code
//	GET /healthz
func NewRouter(store *Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", healthzHandler)
	r.Get("/countries/", h.countriesHandler)
	r.Get("/cities/", h.citiesHandler)
	return r
}

func (h *handlers) countriesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	choices, err := h.store.SearchCountries(r.Context(), q.Get(QueryVariable), limitParam(r))
	h.writeChoices(w, r, choices, err)
}

func (h *handlers) citiesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	choices, err := h.store.SearchCities(r.Context(), q.Get(QueryVariable), q.Get("country"), limitParam(r))
	h.writeChoices(w, r, choices, err)
}

func (h *handlers) writeChoices(w http.ResponseWriter, r *http.Request, choices []Choice, err error) {
	if err != nil {
		h.logger.Error("choice lookup failed", "path", r.URL.Path, "error", err)
		http.Error(w, "choice lookup failed", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := renderChoices(&buf, choices); err != nil {
		h.logger.Error("render choices failed", "path", r.URL.Path, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return DefaultLimit
	}
	return n
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"xhr", r.Header.Get("X-Requested-With") == "XMLHttpRequest",
				"duration", time.Since(start),
			)
		})
	}
}
