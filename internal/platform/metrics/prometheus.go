package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// MetricsManager holds the service's Prometheus metrics. A nil manager is
// valid and records nothing.
type MetricsManager struct {
	Registry             *prometheus.Registry
	RegistrationsTotal   *prometheus.CounterVec
	ActivationsTotal     *prometheus.CounterVec
	LoginsTotal          *prometheus.CounterVec
	ActivationMailsTotal *prometheus.CounterVec
	ProductsCreatedTotal prometheus.Counter
	ProductsDeletedTotal prometheus.Counter
	HTTPRequestLatency   *prometheus.HistogramVec
}

func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "registrations_total",
		Help:      "Registration requests by account kind and outcome.",
	}, []string{"kind", "outcome"})
	activations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "activations_total",
		Help:      "Activation attempts by account kind and outcome.",
	}, []string{"kind", "outcome"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "logins_total",
		Help:      "Login attempts by account kind and outcome.",
	}, []string{"kind", "outcome"})
	mails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "activation_mails_total",
		Help:      "Activation emails by account kind and delivery outcome.",
	}, []string{"kind", "outcome"})
	productsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "products_created_total",
		Help:      "Total number of products created.",
	})
	productsDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "products_deleted_total",
		Help:      "Total number of products deleted.",
	})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	registry.MustRegister(
		registrations,
		activations,
		logins,
		mails,
		productsCreated,
		productsDeleted,
		latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:             registry,
		RegistrationsTotal:   registrations,
		ActivationsTotal:     activations,
		LoginsTotal:          logins,
		ActivationMailsTotal: mails,
		ProductsCreatedTotal: productsCreated,
		ProductsDeletedTotal: productsDeleted,
		HTTPRequestLatency:   latency,
	}
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func (m *MetricsManager) ObserveRegistration(kind string, err error) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(kind, outcome(err)).Inc()
}

func (m *MetricsManager) ObserveActivation(kind string, err error) {
	if m == nil {
		return
	}
	m.ActivationsTotal.WithLabelValues(kind, outcome(err)).Inc()
}

func (m *MetricsManager) ObserveLogin(kind string, err error) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(kind, outcome(err)).Inc()
}

func (m *MetricsManager) ObserveActivationMail(kind string, err error) {
	if m == nil {
		return
	}
	m.ActivationMailsTotal.WithLabelValues(kind, outcome(err)).Inc()
}

func (m *MetricsManager) IncProductsCreated() {
	if m == nil {
		return
	}
	m.ProductsCreatedTotal.Inc()
}

func (m *MetricsManager) IncProductsDeleted() {
	if m == nil {
		return
	}
	m.ProductsDeletedTotal.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
