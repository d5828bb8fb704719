package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the travel API.
type Metrics struct {
	registry        *prometheus.Registry
	ClientsCreated  prometheus.Counter
	Registrations   *prometheus.CounterVec
	Unregistrations *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ClientsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travel_clients_created_total",
			Help: "Total number of clients created",
		}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_registrations_total",
			Help: "Trip registration attempts by result",
		}, []string{"result"}),
		Unregistrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_unregistrations_total",
			Help: "Trip cancellation attempts by result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.ClientsCreated, m.Registrations, m.Unregistrations)
	return m
}

func (m *Metrics) IncrementClientsCreated() {
	if m == nil {
		return
	}
	m.ClientsCreated.Inc()
}

func (m *Metrics) ObserveRegistration(result string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveUnregistration(result string) {
	if m == nil {
		return
	}
	m.Unregistrations.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
