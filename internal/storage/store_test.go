package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querybench/internal/perf"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecords() []perf.Record {
	return []perf.Record{
		{QueryName: "Q1", Database: perf.DuckDB, ExecutionTimeMs: 40, QueryTimeMs: 30, ReturnTimeMs: 10, RowsReturned: 5, QueryType: perf.QuerySimple},
		{QueryName: "Q1", Database: perf.PostgreSQL, ExecutionTimeMs: 100, QueryTimeMs: 75, ReturnTimeMs: 25, RowsReturned: 5, QueryType: perf.QuerySimple},
	}
}

func TestNewHistoryItem(t *testing.T) {
	item := NewHistoryItem("generate", "data/sample_performance.csv", testRecords())

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "generate", item.Source)
	assert.Equal(t, 2, item.Summary.Records)
	assert.InDelta(t, 40.0, item.Summary.MeanByDatabase[perf.DuckDB], 1e-9)
	assert.WithinDuration(t, time.Now(), item.Timestamp, time.Minute)
}

func TestSaveListGet(t *testing.T) {
	s := openTestStore(t)

	first := NewHistoryItem("generate", "a.csv", testRecords())
	first.Timestamp = time.Now().Add(-time.Hour)
	second := NewHistoryItem("bench", "b.csv", testRecords())

	require.NoError(t, s.Save(first))
	require.NoError(t, s.Save(second))

	items := s.List()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID, "newest first")
	assert.Equal(t, first.ID, items[1].ID)

	got, err := s.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "generate", got.Source)
	assert.Equal(t, "a.csv", got.DataFile)
	assert.Equal(t, 2, got.Summary.Records)
}

func TestGetUnknownID(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get("no-such-run")
	assert.Error(t, err)
}

func TestListEmptyStore(t *testing.T) {
	s := openTestStore(t)
	assert.Empty(t, s.List())
}

func TestReopenKeepsItems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	item := NewHistoryItem("estimate", "real.csv", testRecords())
	require.NoError(t, s.Save(item))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	items := s2.List()
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
}
