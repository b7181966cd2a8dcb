package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ReconciliationsTotal counts edition-ingredient reconciliations by strategy and outcome.
	ReconciliationsTotal *prometheus.CounterVec
	// SalesSettledTotal counts sale writes by operation and outcome.
	SalesSettledTotal *prometheus.CounterVec
	// SaleAmount records computed sale totals.
	SaleAmount prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ReconciliationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliations_total",
			Help:      "Count of edition ingredient reconciliations by strategy and outcome.",
		}, []string{"strategy", "outcome"})
		SalesSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_settled_total",
			Help:      "Count of sale create/update outcomes.",
		}, []string{"operation", "outcome"})
		SaleAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sale_amount",
			Help:      "Distribution of computed sale totals.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		})

		mustRegisterCollector(reg, ReconciliationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReconciliationsTotal = v
			}
		})
		mustRegisterCollector(reg, SalesSettledTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				SalesSettledTotal = v
			}
		})
		mustRegisterCollector(reg, SaleAmount, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				SaleAmount = v
			}
		})
	})
}

// ObserveReconciliation records a reconciliation outcome. It is a no-op until the metrics are registered.
func ObserveReconciliation(strategy, outcome string) {
	if ReconciliationsTotal == nil {
		return
	}
	ReconciliationsTotal.WithLabelValues(strategy, outcome).Inc()
}

// ObserveSale records a sale write and, on success, its amount.
func ObserveSale(operation, outcome string, amount float64) {
	if SalesSettledTotal != nil {
		SalesSettledTotal.WithLabelValues(operation, outcome).Inc()
	}
	if SaleAmount != nil && outcome == "ok" {
		SaleAmount.Observe(amount)
	}
}
