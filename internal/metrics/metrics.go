// Package metrics exposes operational counters on a small HTTP
// listener next to the bot process.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	// BroadcastRuns counts completed broadcast fan-outs.
	BroadcastRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "selenazoo_broadcast_runs_total",
		Help: "Completed broadcast runs.",
	})

	// BroadcastDeliveries counts per-recipient outcomes by result kind.
	BroadcastDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "selenazoo_broadcast_deliveries_total",
		Help: "Broadcast delivery attempts by result.",
	}, []string{"result"})

	// RelayMessages counts relayed messages by direction.
	RelayMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "selenazoo_relay_messages_total",
		Help: "Relay chat messages by direction.",
	}, []string{"direction"})

	// Backups counts created backup artifacts by type.
	Backups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "selenazoo_backups_total",
		Help: "Created backup artifacts by type.",
	}, []string{"type"})
)

// Serve starts the metrics/health listener and returns the server so
// the caller can shut it down.
func Serve(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()
	return srv
}
