// Package metrics exposes prometheus counters for the todo routes and serves
// them on a dedicated listener.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TodoListCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todo_list_total",
		Help: "List requests by result.",
	}, []string{"result"})

	TodoCreateCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todo_create_total",
		Help: "Create requests by result.",
	}, []string{"result"})

	TodoDeleteCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todo_delete_total",
		Help: "Delete-one requests by result.",
	}, []string{"result"})

	TodoDeleteAllCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todo_delete_all_total",
		Help: "Delete-all requests by result.",
	}, []string{"result"})
)

// Init starts the /metrics listener on addr. Serving metrics must not block
// or depend on the main HTTP server.
func Init(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, mux)
	}()
}
