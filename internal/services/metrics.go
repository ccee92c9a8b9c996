package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry          *prometheus.Registry
	imports           *prometheus.CounterVec
	importedRows      *prometheus.CounterVec
	webhookDeliveries *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sway_imports_total",
			Help: "Import attempts by destination table and outcome.",
		}, []string{"table", "result"}),
		importedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sway_imported_rows_total",
			Help: "Contact rows committed by imports.",
		}, []string{"table"}),
		webhookDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sway_webhook_deliveries_total",
			Help: "Outreach webhook deliveries by outcome.",
		}, []string{"result"}),
	}
	m.Registry.MustRegister(
		m.imports,
		m.importedRows,
		m.webhookDeliveries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveImport(table string, rows int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.imports.WithLabelValues(table, "failure").Inc()
		return
	}
	m.imports.WithLabelValues(table, "success").Inc()
	m.importedRows.WithLabelValues(table).Add(float64(rows))
}

func (m *Metrics) ObserveDelivery(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.webhookDeliveries.WithLabelValues(result).Inc()
}
