package web

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simonvc/p2pdesk/internal/logger"
)

//go:embed static/index.html
var indexHTML []byte

const cookieName = "p2pdesk_session"

// Server serves the storefront TUI to a browser terminal. Every websocket
// gets its own TUI process, so each tab has its own exchange dialog state.
type Server struct {
	addr    string
	apiAddr string
	router  chi.Router
	log     *zap.Logger
}

// NewServer creates a web terminal server whose TUI processes talk to the
// exchange API at apiAddr.
func NewServer(addr, apiAddr string) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:    addr,
		apiAddr: apiAddr,
		router:  r,
		log:     logger.L().Named("web"),
	}
	r.Use(s.accessLog)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return s
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// sessionID reads the session cookie or issues a new one. The id only
// correlates log lines of one browser.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.sessionID(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the web terminal server.
func (s *Server) ListenAndServe() error {
	s.log.Info("web terminal listening", zap.String("addr", s.addr), zap.String("api", s.apiAddr))
	return http.ListenAndServe(s.addr, s.router)
}
