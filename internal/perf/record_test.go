package perf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitInvariant(t *testing.T) {
	cases := []struct {
		total float64
		ratio float64
	}{
		{123.456, 0.75},
		{0.005, 0.6},
		{9999.999, 0.95},
		{42, 0.9},
		{0, 0.5},
	}

	for _, c := range cases {
		exec, query, ret := Split(c.total, c.ratio)
		assert.InDelta(t, exec, query+ret, 1e-9, "split of %.3f must sum exactly", c.total)
		assert.GreaterOrEqual(t, query, 0.0)
		assert.GreaterOrEqual(t, ret, -0.0)
	}
}

func TestSplitRoundsToTwoDecimals(t *testing.T) {
	exec, query, ret := Split(123.456789, 0.7)
	for _, v := range []float64{exec, query, ret} {
		assert.InDelta(t, v, Round2(v), 1e-12)
	}
}

func TestReturnRatioBounds(t *testing.T) {
	r := Record{ExecutionTimeMs: 100, QueryTimeMs: 70, ReturnTimeMs: 30}
	assert.InDelta(t, 30.0, r.ReturnRatio(), 1e-9)

	zero := Record{}
	assert.Equal(t, 0.0, zero.ReturnRatio(), "zero execution time must not divide by zero")
}

func TestValidate(t *testing.T) {
	good := Record{
		QueryName:       "Q1",
		Database:        DuckDB,
		ExecutionTimeMs: 100.00,
		QueryTimeMs:     75.00,
		ReturnTimeMs:    25.00,
		RowsReturned:    10,
		QueryType:       QuerySimple,
	}
	require.NoError(t, good.Validate())

	bad := good
	bad.ReturnTimeMs = 40
	assert.Error(t, bad.Validate(), "split mismatch must be rejected")

	neg := good
	neg.RowsReturned = -1
	assert.Error(t, neg.Validate())

	unnamed := good
	unnamed.QueryName = ""
	assert.Error(t, unnamed.Validate())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.2351))
	assert.Equal(t, 0.0, Round2(0.0049))
	assert.False(t, math.Signbit(Round2(0)))
}
