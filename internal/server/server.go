package server

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/simonvc/p2pdesk/internal/client"
	"github.com/simonvc/p2pdesk/internal/logger"
	"github.com/simonvc/p2pdesk/internal/metrics"
)

// Server is a local stand-in for the exchange API, serving a fixed dataset.
// Accepted exchanges live in memory until the process exits.
type Server struct {
	data   *Dataset
	secret string
	router chi.Router
	addr   string
	log    *zap.Logger

	mu        sync.Mutex
	exchanges []Exchange
}

func New(data *Dataset, addr, secret string) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		data:   data,
		secret: secret,
		router: r,
		addr:   addr,
		log:    logger.L().Named("sandbox"),
	}
	r.Use(s.observe)

	r.Get(client.PathContractors, s.listContractors)
	r.Get(client.PathUser, s.getUser)
	r.Post(client.PathExchange, s.createExchange)
	r.Get("/exchanges", s.listExchanges)
	r.Handle("/metrics", promhttp.Handler())

	return s
}

func (s *Server) ListenAndServe() error {
	s.log.Info("sandbox listening", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("sandbox listening", zap.String("addr", ln.Addr().String()))
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// observe logs each request and counts it by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.SandboxRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.log.Debug("sandbox.request",
			zap.String("request_id", r.Header.Get(client.HeaderRequestID)),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("took", time.Since(start)),
		)
	})
}
