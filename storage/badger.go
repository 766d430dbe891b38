package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistence surface the rest of the server depends on.
type Store interface {
	// Generic operations
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	GetByPrefix(prefix string) (map[string][]byte, error)
	PutObject(key string, obj interface{}) error
	GetObject(key string, obj interface{}) error

	// Management operations
	Close() error
	RunGC() error
}

// DBMetrics counts storage operations since process start.
type DBMetrics struct {
	PutCount    int64
	GetCount    int64
	DeleteCount int64
	PrefixCount int64
	Errors      int64
}

// DBStorage is a BadgerDB-backed Store.
type DBStorage struct {
	db      *badger.DB
	mu      sync.Mutex
	config  BadgerConfig
	metrics DBMetrics
}

var (
	// Map of data dir -> DBStorage
	instances = make(map[string]*DBStorage)
	instMu    sync.RWMutex
)

// GetDBStorage returns the shared DB instance for a data directory.
func GetDBStorage(dataDir string) (*DBStorage, error) {
	return GetDBStorageWithConfig(DefaultConfig(dataDir))
}

// GetDBStorageWithConfig returns a DB instance with custom configuration.
func GetDBStorageWithConfig(config BadgerConfig) (*DBStorage, error) {
	instMu.RLock()
	instance, exists := instances[config.DataDir]
	instMu.RUnlock()

	if exists {
		return instance, nil
	}

	instMu.Lock()
	defer instMu.Unlock()

	// Check again in case another goroutine created it while we waited.
	instance, exists = instances[config.DataDir]
	if exists {
		return instance, nil
	}

	instance, err := newDBStorage(config)
	if err != nil {
		return nil, err
	}
	instances[config.DataDir] = instance

	if config.GCInterval > 0 {
		go instance.startGCRoutine(time.Duration(config.GCInterval) * time.Second)
	}

	return instance, nil
}

// NewInMemory opens a throwaway in-memory store, used by tests and by
// demo runs without a data directory.
func NewInMemory() (*DBStorage, error) {
	cfg := DefaultConfig("")
	cfg.InMemory = true
	cfg.GCInterval = 0
	return newDBStorage(cfg)
}

func newDBStorage(config BadgerConfig) (*DBStorage, error) {
	var opts badger.Options
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(filepath.Join(config.DataDir, "badgerdb"))
	}
	if config.DisableLogging {
		opts.Logger = nil
	}
	opts.SyncWrites = config.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	return &DBStorage{
		db:     db,
		config: config,
	}, nil
}

func (s *DBStorage) startGCRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if err := s.RunGC(); err != nil && err != badger.ErrNoRewrite {
			log.Printf("BadgerDB GC failed: %v", err)
		}
	}
}

func (s *DBStorage) logOperation(op, key string, err error) {
	if err != nil {
		log.Printf("BadgerDB %s operation failed for key %s: %v", op, key, err)
		atomic.AddInt64(&s.metrics.Errors, 1)
	}
}

// Metrics returns a snapshot of the operation counters.
func (s *DBStorage) Metrics() DBMetrics {
	return DBMetrics{
		PutCount:    atomic.LoadInt64(&s.metrics.PutCount),
		GetCount:    atomic.LoadInt64(&s.metrics.GetCount),
		DeleteCount: atomic.LoadInt64(&s.metrics.DeleteCount),
		PrefixCount: atomic.LoadInt64(&s.metrics.PrefixCount),
		Errors:      atomic.LoadInt64(&s.metrics.Errors),
	}
}

// Put stores a key-value pair.
func (s *DBStorage) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	atomic.AddInt64(&s.metrics.PutCount, 1)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	s.logOperation("put", key, err)
	return err
}

// Get retrieves a value by key. Returns ErrNotFound for missing keys.
func (s *DBStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	atomic.AddInt64(&s.metrics.GetCount, 1)
	var valCopy []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logOperation("get", key, err)
		return nil, fmt.Errorf("failed to get value: %w", err)
	}
	return valCopy, nil
}

// Delete removes a key-value pair.
func (s *DBStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	atomic.AddInt64(&s.metrics.DeleteCount, 1)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	s.logOperation("delete", key, err)
	return err
}

// GetByPrefix retrieves all key-value pairs with a given prefix.
func (s *DBStorage) GetByPrefix(prefix string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	atomic.AddInt64(&s.metrics.PrefixCount, 1)
	result := make(map[string][]byte)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result[string(item.KeyCopy(nil))] = val
		}
		return nil
	})
	if err != nil {
		s.logOperation("prefix", prefix, err)
		return nil, fmt.Errorf("failed to get values by prefix: %w", err)
	}
	return result, nil
}

// PutObject serializes and stores an object.
func (s *DBStorage) PutObject(key string, obj interface{}) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal object: %w", err)
	}
	return s.Put(key, data)
}

// GetObject retrieves and deserializes an object.
func (s *DBStorage) GetObject(key string, obj interface{}) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, obj); err != nil {
		return fmt.Errorf("failed to unmarshal object: %w", err)
	}
	return nil
}

// RunGC runs value-log garbage collection.
func (s *DBStorage) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}

// Close closes the underlying database.
func (s *DBStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CloseAll closes every cached DB instance.
func CloseAll() {
	instMu.Lock()
	defer instMu.Unlock()

	for _, instance := range instances {
		instance.Close()
	}
	instances = make(map[string]*DBStorage)
}
