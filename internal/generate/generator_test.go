package generate

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querybench/internal/perf"
)

func TestRecordsDeterministic(t *testing.T) {
	a := New(42).Records()
	b := New(42).Records()
	assert.Equal(t, a, b, "same seed must produce an identical dataset")

	c := New(43).Records()
	assert.NotEqual(t, a, c, "different seed must produce a different dataset")
}

func TestRecordsCount(t *testing.T) {
	recs := New(1).Records()

	// 8 simple and 5 complex queries across 5 backends, plus 3 CRUD
	// operations where InfluxDB only supports inserts.
	want := 8*5 + 5*5 + (3*5 - 2)
	assert.Len(t, recs, want)
}

func TestRecordsInvariants(t *testing.T) {
	for _, rec := range New(7).Records() {
		require.NoError(t, rec.Validate(), "%s/%s", rec.QueryName, rec.Database)
		assert.Greater(t, rec.ExecutionTimeMs, 0.0)
		assert.InDelta(t, rec.ExecutionTimeMs, rec.QueryTimeMs+rec.ReturnTimeMs, 0.01)

		ratio := rec.ReturnRatio()
		assert.GreaterOrEqual(t, ratio, 0.0)
		assert.LessOrEqual(t, ratio, 100.0)
	}
}

func TestInfluxSkipsMutations(t *testing.T) {
	assert.False(t, Supported(perf.InfluxDB, "D1"))
	assert.False(t, Supported(perf.InfluxDB, "U1"))
	assert.True(t, Supported(perf.InfluxDB, "I1"))
	assert.True(t, Supported(perf.PostgreSQL, "D1"))

	for _, rec := range New(3).Records() {
		if rec.Database == perf.InfluxDB {
			assert.NotContains(t, []string{"D1", "U1"}, rec.QueryName,
				"InfluxDB must not carry delete or update records")
		}
	}
}

func TestCRUDWithinModelBounds(t *testing.T) {
	for _, rec := range New(42).Records() {
		if rec.QueryType != perf.QueryCRUD || rec.Database != perf.DuckDB {
			continue
		}
		// 8..40 ms base with up to ±10% jitter.
		assert.GreaterOrEqual(t, rec.ExecutionTimeMs, 8*0.9)
		assert.LessOrEqual(t, rec.ExecutionTimeMs, 40*1.1)

		if rec.ExecutionTimeMs > 0 {
			share := rec.QueryTimeMs / rec.ExecutionTimeMs
			assert.InDelta(t, 0.9, share, 0.06, "CRUD query share should sit in 0.85..0.95")
		}
	}
}

func TestMutationRowCounts(t *testing.T) {
	for _, rec := range New(11).Records() {
		switch {
		case rec.QueryName == "I1" && rec.QueryType == perf.QueryCRUD:
			assert.GreaterOrEqual(t, rec.RowsReturned, 1)
			assert.Less(t, rec.RowsReturned, 100)
		case rec.QueryType == perf.QueryCRUD:
			assert.Equal(t, 1, rec.RowsReturned)
		}
	}
}

func TestRecordsPropertyAnySeed(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50

	properties := gopter.NewProperties(params)
	properties.Property("every seed yields a valid, bounded dataset", prop.ForAll(
		func(seed int64) bool {
			recs := New(seed).Records()
			if len(recs) != 78 {
				return false
			}
			for _, rec := range recs {
				if rec.Validate() != nil {
					return false
				}
				if math.Abs(rec.ExecutionTimeMs-(rec.QueryTimeMs+rec.ReturnTimeMs)) >= 0.01 {
					return false
				}
			}
			return true
		},
		gen.Int64(),
	))
	properties.TestingRun(t)
}
