// Package web serves the analytics dashboard over HTTP.
package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jasperwreed/chatgpt-stats/internal/analytics"
	"github.com/jasperwreed/chatgpt-stats/internal/config"
	"github.com/jasperwreed/chatgpt-stats/internal/loader"
)

//go:embed dashboard.html
var dashboardHTML []byte

const payloadPlaceholder = "__PAYLOAD_JSON__"

type Server struct {
	log    *slog.Logger
	cache  *Cache
	source string
	port   int
}

// NewServer wires a server that loads the export from cfg.Source on
// demand and caches the computed payload for cfg.CacheTTL.
func NewServer(cfg config.Config, log *slog.Logger) *Server {
	s := &Server{log: log, source: cfg.Source, port: cfg.Port}
	s.cache = NewCache(cfg.CacheTTL, s.buildPayload)
	return s
}

func (s *Server) buildPayload() (analytics.Payload, error) {
	conversations, err := loader.Load(s.source)
	if err != nil {
		return analytics.Payload{}, err
	}
	return analytics.Build(conversations, time.Now()).Payload, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/", s.handleIndex)
	r.Get("/api/data", s.handleData)
	r.Get("/api/refresh", s.handleRefresh)
	return r
}

// ListenAndServe blocks serving the dashboard.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("dashboard listening", "addr", addr, "source", s.source)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	raw, _, err := s.payload(false)
	if err != nil {
		s.renderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := bytes.Replace(dashboardHTML, []byte(payloadPlaceholder), escapeForScript(raw), 1)
	w.Write(page)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	raw, builtAt, err := s.payload(false)
	if err != nil {
		s.renderJSONError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Last-Modified", builtAt.UTC().Format(http.TimeFormat))
	w.Write(raw)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	raw, builtAt, err := s.payload(true)
	if err != nil {
		s.renderJSONError(w, err)
		return
	}
	s.log.Info("payload rebuilt", "built_at", builtAt)
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// payload fetches from the cache, downgrading a rebuild failure to a
// warning when a stale copy is still servable.
func (s *Server) payload(force bool) ([]byte, time.Time, error) {
	raw, builtAt, err := s.cache.Get(force)
	if err != nil && raw != nil {
		s.log.Warn("serving stale payload", "error", err)
		return raw, builtAt, nil
	}
	return raw, builtAt, err
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	s.log.Error("payload build failed", "error", err)
	http.Error(w, "failed to load conversation data: "+err.Error(), http.StatusInternalServerError)
}

func (s *Server) renderJSONError(w http.ResponseWriter, err error) {
	s.log.Error("payload build failed", "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, `{"error":%q}`, err.Error())
}

// escapeForScript makes the JSON safe to inline inside a <script> block.
func escapeForScript(raw []byte) []byte {
	return bytes.ReplaceAll(raw, []byte("</"), []byte(`<\/`))
}
