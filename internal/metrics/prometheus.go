package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const promNamespace = "solation"

type promCounter struct {
	counter prometheus.Counter
}

func (p promCounter) Inc() {
	p.counter.Inc()
}

// Prometheus wires the protocol counters into a dedicated registry.
type Prometheus struct {
	Metrics  *Metrics
	registry *prometheus.Registry
}

func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()

	newCounter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: promNamespace,
			Name:      name,
			Help:      help,
		})
		registry.MustRegister(c)
		return c
	}

	return &Prometheus{
		registry: registry,
		Metrics: &Metrics{
			RequestsCreated: promCounter{newCounter(
				"position_requests_created_total",
				"Total number of position requests created.",
			)},
			RequestsConfirmed: promCounter{newCounter(
				"position_requests_confirmed_total",
				"Total number of position requests confirmed by makers.",
			)},
			RequestsRejected: promCounter{newCounter(
				"position_requests_rejected_total",
				"Total number of position requests rejected by makers.",
			)},
			RequestsExpired: promCounter{newCounter(
				"position_requests_expired_total",
				"Total number of position requests cancelled after expiry.",
			)},
			PositionsOpened: promCounter{newCounter(
				"positions_opened_total",
				"Total number of positions opened.",
			)},
			PositionsSettled: promCounter{newCounter(
				"positions_settled_total",
				"Total number of positions settled.",
			)},
			SettleFailures: promCounter{newCounter(
				"settle_failures_total",
				"Total number of failed settlement attempts.",
			)},
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
