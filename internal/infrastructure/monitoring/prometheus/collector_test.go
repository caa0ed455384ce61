package prometheus

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) Collector {
	t.Helper()
	c, err := NewCollector(config.MetricsConfig{Namespace: "freontrack"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrape(t *testing.T, c Collector) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewCollector_RequiresNamespace(t *testing.T) {
	_, err := NewCollector(config.MetricsConfig{}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestNewCollector_ProcessMetrics(t *testing.T) {
	c, err := NewCollector(config.MetricsConfig{
		Namespace:            "freontrack",
		EnableProcessMetrics: true,
	}, logging.NewNopLogger())
	require.NoError(t, err)

	assert.Contains(t, scrape(t, c), "process_cpu_seconds_total")
}

func TestRegisterCounter_Namespaced(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("inspections_total", "Inspections recorded", "result").
		WithLabelValues("compliant").Add(3)

	output := scrape(t, c)
	assert.Contains(t, output, `freontrack_inspections_total{result="compliant"} 3`)
}

func TestRegisterCounter_GetOrCreate(t *testing.T) {
	c := newTestCollector(t)
	first := c.RegisterCounter("dup_total", "help")
	second := c.RegisterCounter("dup_total", "help")

	first.WithLabelValues().Inc()
	second.WithLabelValues().Inc()

	assert.Contains(t, scrape(t, c), "freontrack_dup_total 2")
}

func TestRegisterGauge_SetAndSub(t *testing.T) {
	c := newTestCollector(t)
	g := c.RegisterGauge("inventory_lbs", "Refrigerant on hand", "refrigerant")
	g.WithLabelValues("R-410A").Set(120)
	g.WithLabelValues("R-410A").Sub(20)

	assert.Contains(t, scrape(t, c), `freontrack_inventory_lbs{refrigerant="R-410A"} 100`)
}

func TestRegisterHistogram_DefaultBuckets(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterHistogram("latency_seconds", "Latency", nil).WithLabelValues().Observe(0.1)

	assert.Contains(t, scrape(t, c), "freontrack_latency_seconds_bucket")
}

func TestTypeConflict_ReturnsNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("conflict", "help").WithLabelValues().Inc()

	// Same name, different type: caller gets a no-op gauge instead of a panic.
	g := c.RegisterGauge("conflict", "help")
	g.WithLabelValues().Set(42)

	assert.Contains(t, scrape(t, c), "# TYPE freontrack_conflict counter")
}

func TestConcurrentRegistration(t *testing.T) {
	c := newTestCollector(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RegisterCounter("concurrent_total", "help", "id").WithLabelValues("1").Inc()
		}()
	}
	wg.Wait()

	assert.Contains(t, scrape(t, c), "freontrack_concurrent_total")
}

func TestTimer_ObservesDuration(t *testing.T) {
	c := newTestCollector(t)
	h := c.RegisterHistogram("timed_seconds", "Timed", nil)

	timer := NewTimer(h.WithLabelValues())
	time.Sleep(5 * time.Millisecond)
	timer.ObserveDuration()

	assert.Contains(t, scrape(t, c), "freontrack_timed_seconds_count 1")
}

func TestMustRegisterAndUnregister(t *testing.T) {
	c := newTestCollector(t)
	pc := prometheus.NewCounter(prometheus.CounterOpts{Name: "custom_total"})
	c.MustRegister(pc)
	pc.Inc()
	assert.Contains(t, scrape(t, c), "custom_total 1")

	assert.True(t, c.Unregister(pc))
	assert.NotContains(t, scrape(t, c), "custom_total")
}

//Personal.AI order the ending
