package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/simonvc/p2pdesk/internal/logger"
	"github.com/simonvc/p2pdesk/internal/server"
)

// apiBaseURL is the configured API, or a sandbox started in this process
// when --sandbox is set.
func apiBaseURL() (string, error) {
	if !flagSandbox {
		return cfg.APIBaseURL, nil
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("sandbox listen: %w", err)
	}
	srv := server.New(server.DefaultDataset(), ln.Addr().String(), cfg.PaymentPassword)
	go func() {
		if err := srv.Serve(ln); err != nil {
			logger.L().Error("sandbox server stopped", zap.Error(err))
		}
	}()
	base := "http://" + ln.Addr().String()

	// Wait for the sandbox to answer.
	c := newClient(base)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		if err := c.Ping(ctx); err == nil {
			break
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("timeout waiting for sandbox server")
		}
		time.Sleep(50 * time.Millisecond)
	}
	return base, nil
}

// serveMetrics exposes the Prometheus registry when an address is configured.
func serveMetrics() {
	if cfg.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.L().Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			logger.L().Error("metrics server stopped", zap.Error(err))
		}
	}()
}
