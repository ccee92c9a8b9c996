package services

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.ObserveImport("journalists", 3, nil)
	m.ObserveImport("journalists", 0, assert.AnError)
	m.ObserveDelivery(true)
	m.ObserveDelivery(false)
	m.ObserveDelivery(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.imports.WithLabelValues("journalists", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.imports.WithLabelValues("journalists", "failure")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.importedRows.WithLabelValues("journalists")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.webhookDeliveries.WithLabelValues("failure")))

	var nilMetrics *Metrics
	nilMetrics.ObserveImport("journalists", 1, nil)
	nilMetrics.ObserveDelivery(true)
}
