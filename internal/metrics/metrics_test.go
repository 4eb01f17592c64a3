package metrics

import (
	"errors"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memocache/internal/memoize"
)

func TestMetricsObserveCacheLookups(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("memocache", reg)

	boom := errors.New("boom")
	c := memoize.New(memoize.Config[int, int]{
		Key: strconv.Itoa,
		Value: func(n int) (int, error) {
			if n < 0 {
				return 0, boom
			}
			return n * 10, nil
		},
		Observer: m,
	})

	_, err := c.Get(1) // miss
	require.NoError(t, err)
	_, err = c.Get(1) // hit
	require.NoError(t, err)
	_, err = c.Get(-1) // miss + failure
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Lookups))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Hits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Misses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ComputeFailures))
}

func TestNewRegistersAllCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	New("memocache", reg)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"memocache_lookups_total",
		"memocache_hits_total",
		"memocache_misses_total",
		"memocache_compute_failures_total",
	}, names)
}
