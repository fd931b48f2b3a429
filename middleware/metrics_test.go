package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/candango/interpose"
	"github.com/candango/interpose/testrunner"
)

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	h := okPipeline(Instrument(m))

	t.Run("Successful requests count under their status", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := testrunner.NewRunner(t).WithHandler(h).Get()
			assert.NoError(t, err)
		}
		assert.Equal(t, float64(3), testutil.ToFloat64(
			m.RequestsTotal.WithLabelValues(http.MethodGet, "200")))
	})

	t.Run("Failures count under error", func(t *testing.T) {
		failing := Instrument(m)(interpose.Fail[*interpose.Request,
			*interpose.Response](errors.New("boom")))
		_, err := testrunner.NewRunner(t).WithHandler(failing).Post()
		assert.Error(t, err)
		assert.Equal(t, float64(1), testutil.ToFloat64(
			m.RequestsTotal.WithLabelValues(http.MethodPost, "error")))
	})

	t.Run("Misses count under miss", func(t *testing.T) {
		missing := Instrument(m)(interpose.Unhandled[*interpose.Request,
			*interpose.Response]())
		_, err := testrunner.NewRunner(t).WithHandler(missing).Get()
		assert.True(t, interpose.IsUnhandled(err))
		assert.Equal(t, float64(1), testutil.ToFloat64(
			m.RequestsTotal.WithLabelValues(http.MethodGet, "miss")))
	})

	t.Run("Durations are observed per method", func(t *testing.T) {
		count := testutil.CollectAndCount(m.RequestDuration,
			"interpose_request_duration_seconds")
		assert.Equal(t, 2, count, "one series per method seen so far")
	})
}
