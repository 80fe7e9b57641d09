package observability_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flexmark/pkg/marker"
	"github.com/aretw0/flexmark/pkg/mdast"
	"github.com/aretw0/flexmark/pkg/observability"
)

func transform(t *testing.T, m *observability.Metrics, empty marker.EmptyAction, value string) {
	t.Helper()
	tr, err := marker.New(
		marker.WithOptions(marker.Options{EmptyAction: empty}),
		marker.WithHooks(m.Hooks()),
	)
	require.NoError(t, err)
	tr.Transform(mdast.Root(mdast.New(mdast.TypeParagraph, mdast.Text(value))))
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()

	transform(t, m, marker.EmptyMark, "==a== =r=b== ====")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Marks.WithLabelValues("single")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Marks.WithLabelValues("empty")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Removed))

	transform(t, m, marker.EmptyRemove, "a==  ==a ====")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Removed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Marks.WithLabelValues("empty")))
}

func TestMetrics_Observe(t *testing.T) {
	m := observability.NewMetrics()

	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveRender("html", 3*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(observability.CacheHit)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(observability.CacheMiss)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RenderDuration))
}

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics()

	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg), "duplicate registration")
}
