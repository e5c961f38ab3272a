package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordSignal("BUY", "STRONG")
	r.RecordSignal("BUY", "STRONG")
	r.RecordSymbolFailure("invalid_price")
	r.RecordError("store_load")
	r.RecordLatency("pipeline_run", 0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.signalsGenerated.WithLabelValues("BUY", "STRONG")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.symbolFailures.WithLabelValues("invalid_price")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("store_load")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency))
}
