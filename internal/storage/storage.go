package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	uuid "github.com/satori/go.uuid"
)

// Storage keys
const (
	prefixPerft = "perft/"
	prefixRun   = "run/"
)

// ErrNotFound is returned when a run record does not exist.
var ErrNotFound = errors.New("storage: not found")

// RunRecord describes one timed perft run.
type RunRecord struct {
	ID        string          `json:"id"`
	Label     string          `json:"label,omitempty"`
	FEN       string          `json:"fen"`
	Depth     int             `json:"depth"`
	Nodes     uint64          `json:"nodes"`
	Timings   []time.Duration `json:"timings"`
	Mean      time.Duration   `json:"mean"`
	Median    time.Duration   `json:"median"`
	StdDev    time.Duration   `json:"std_dev"`
	NPS       float64         `json:"nps"`
	StartedAt time.Time       `json:"started_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (creating if needed) the database in dir. An empty dir means
// the default database directory under the data dir.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = GetDatabaseDir(); err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}
	return &Storage{db: db}, nil
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(hash uint64, depth int) []byte {
	return fmt.Appendf(nil, "%s%016x/%d", prefixPerft, hash, depth)
}

// PerftCount returns the cached node count of the position with the given
// hash at depth.
func (s *Storage) PerftCount(hash uint64, depth int) (uint64, bool, error) {
	var (
		nodes uint64
		found bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt perft entry for %016x/%d", hash, depth)
			}
			nodes, found = binary.BigEndian.Uint64(val), true
			return nil
		})
	})
	return nodes, found, err
}

// SavePerftCount caches a node count.
func (s *Storage) SavePerftCount(hash uint64, depth int, nodes uint64) error {
	val := binary.BigEndian.AppendUint64(nil, nodes)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(hash, depth), val)
	})
}

// SaveRun stores a run record, assigning it an ID if it has none.
func (s *Storage) SaveRun(r *RunRecord) error {
	if r.ID == "" {
		r.ID = uuid.NewV4().String()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixRun+r.ID), data)
	})
}

// LoadRun loads the run record with the given ID.
func (s *Storage) LoadRun(id string) (*RunRecord, error) {
	if _, err := uuid.FromString(id); err != nil {
		return nil, fmt.Errorf("run id %q: %w", id, err)
	}

	var r RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixRun + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Runs returns every stored run record, oldest first.
func (s *Storage) Runs() ([]*RunRecord, error) {
	var runs []*RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixRun)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var r RunRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			runs = append(runs, &r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt.Before(runs[j].StartedAt) })
	return runs, nil
}
