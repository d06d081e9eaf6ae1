// Package storage keeps the run history: one item per generate, estimate or
// bench run, with enough of a summary to list and compare past datasets.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"querybench/internal/analyze"
	"querybench/internal/perf"
)

const bucketRuns = "runs"

// RunSummary is the stored digest of one dataset.
type RunSummary struct {
	Records        int                       `json:"records"`
	MeanByDatabase map[perf.Database]float64 `json:"mean_by_database"`
}

// HistoryItem ties a dataset file to its provenance.
type HistoryItem struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Source    string     `json:"source"` // generate | estimate | bench
	DataFile  string     `json:"data_file"`
	Summary   RunSummary `json:"summary"`
}

// NewHistoryItem summarizes a dataset into a history item.
func NewHistoryItem(source, dataFile string, records []perf.Record) HistoryItem {
	return HistoryItem{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Source:    source,
		DataFile:  dataFile,
		Summary: RunSummary{
			Records:        len(records),
			MeanByDatabase: analyze.GroupMeanByDatabase(records),
		},
	}
}

// Store is a bbolt-backed history store under the user's home directory.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the history database at path. An empty path uses
// $HOME/.querybench/history.db.
func Open(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".querybench", "history.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRuns))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a history item keyed by timestamp+id so cursor order is
// chronological.
func (s *Store) Save(item HistoryItem) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketRuns))

		key := []byte(item.Timestamp.UTC().Format(time.RFC3339Nano) + "/" + item.ID)
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// List returns history items, newest first.
func (s *Store) List() []HistoryItem {
	var items []HistoryItem

	s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketRuns))
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var item HistoryItem
			if err := json.Unmarshal(v, &item); err == nil {
				items = append(items, item)
			}
		}
		return nil
	})

	return items
}

// Get looks an item up by its run ID.
func (s *Store) Get(id string) (*HistoryItem, error) {
	var found *HistoryItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketRuns))
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var item HistoryItem
			if err := json.Unmarshal(v, &item); err != nil {
				continue
			}
			if item.ID == id {
				found = &item
				return nil
			}
		}
		return fmt.Errorf("run %s not found", id)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
