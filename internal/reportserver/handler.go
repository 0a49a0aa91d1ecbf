package reportserver

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"quizlint/internal/findings"
	"quizlint/internal/report"
)

// NewHandler builds the HTTP handler serving stored runs and the findings database file.
func NewHandler(store *findings.Store, cfg Config) (http.Handler, error) {
	if store == nil {
		return nil, errors.New("reportserver: findings store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{store: store, opts: report.Options{PDFFont: cfg.PDFFont}, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(securityHeaders)

	r.Get("/", h.index)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Route("/runs/{id}", func(r chi.Router) {
		r.Get("/", h.runPage)
		r.Get("/report.pdf", h.runPDF)
		r.Get("/report.xlsx", h.runXLSX)
	})
	r.Get("/data/findings.duckdb", h.database)
	return r, nil
}

type handler struct {
	store  *findings.Store
	opts   report.Options
	logger *zap.Logger
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	runs, err := h.store.ListRuns(r.Context())
	if err != nil {
		h.fail(w, "list runs", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.IndexPage(runs).Render(r.Context(), w); err != nil {
		h.logger.Warn("render index", zap.Error(err))
	}
}

func (h *handler) runPage(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.RenderHTML(r.Context(), &buf, run); err != nil {
		h.fail(w, "render html", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *handler) runPDF(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	data, err := report.RenderPDF(run, h.opts)
	if err != nil {
		h.fail(w, "render pdf", err)
		return
	}
	h.attachment(w, r, "application/pdf", run.ID+".pdf", run.FinishedAt, data)
}

func (h *handler) runXLSX(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	data, err := report.RenderXLSX(run)
	if err != nil {
		h.fail(w, "render xlsx", err)
		return
	}
	h.attachment(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", run.ID+".xlsx", run.FinishedAt, data)
}

// database serves the DuckDB file from disk for offline analysis.
func (h *handler) database(w http.ResponseWriter, r *http.Request) {
	path := h.store.Path()
	if path == "" {
		http.NotFound(w, r)
		return
	}
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, path)
}

func (h *handler) loadRun(w http.ResponseWriter, r *http.Request) (findings.Run, bool) {
	run, err := h.store.LoadRun(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, findings.ErrRunNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return findings.Run{}, false
	}
	if err != nil {
		h.fail(w, "load run", err)
		return findings.Run{}, false
	}
	return run, true
}

func (h *handler) attachment(w http.ResponseWriter, r *http.Request, contentType, name string, modified time.Time, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeContent(w, r, name, modified, bytes.NewReader(data))
}

func (h *handler) fail(w http.ResponseWriter, action string, err error) {
	h.logger.Error(action, zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}
