// Package http serves the local dashboard: an HTML page with HTMX-driven
// partials for the category overview, the monthly timeseries and the
// pending-vendor tagging queue, plus form endpoints to tag vendors and
// import raw export files.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/Vaillus/revolut-expense-manager/internal/cache"
	"github.com/Vaillus/revolut-expense-manager/internal/core"
	"github.com/Vaillus/revolut-expense-manager/internal/ingest"
	"github.com/Vaillus/revolut-expense-manager/internal/log"
	"github.com/Vaillus/revolut-expense-manager/internal/services"
	appweb "github.com/Vaillus/revolut-expense-manager/web"
)

// Pipeline is the slice of the expense manager the dashboard needs.
type Pipeline interface {
	ImportFile(ctx context.Context, path string) (*services.ImportSummary, error)
	TagVendor(ctx context.Context, vendor, category string) (*services.TagSummary, error)
	Dataset(ctx context.Context) ([]core.TaggedTransaction, error)
	Pending(ctx context.Context) ([]core.PendingVendor, error)
	Categories(ctx context.Context) ([]string, error)
	RawFiles(ctx context.Context) ([]ingest.FileInfo, error)
}

type Server struct {
	http.Server
	templates   *template.Template
	pipeline    Pipeline
	logger      *log.Logger
	rateLimiter *rateLimiter

	// Memoized report views, purged whenever the dataset changes.
	overviewCache *cache.LRU[overviewView]
	seriesCache   *cache.LRU[seriesView]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, pipeline Pipeline, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		pipeline:      pipeline,
		logger:        logger,
		rateLimiter:   newRateLimiter(),
		overviewCache: cache.NewLRU[overviewView](100, 5*time.Minute),
		seriesCache:   cache.NewLRU[seriesView](10, 5*time.Minute),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.overviewCache)
	s.cacheManager.Register(s.seriesCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/tag", s.withSecurityHeaders(s.handleTagVendor))
	mux.HandleFunc("/import", s.withSecurityHeaders(s.handleImport))
	// UI partials
	mux.HandleFunc("/ui/category-overview", s.withSecurityHeaders(s.handleCategoryOverview))
	mux.HandleFunc("/ui/timeseries", s.withSecurityHeaders(s.handleTimeseries))
	mux.HandleFunc("/ui/pending-vendors", s.withSecurityHeaders(s.handlePendingVendors))

	return s
}

// invalidateViews drops all memoized report views. Called after any
// mutation, since a tag or an import can move totals in every month.
func (s *Server) invalidateViews() {
	s.overviewCache.Purge()
	s.seriesCache.Purge()
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		// Rate limiting applies to mutations only.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
