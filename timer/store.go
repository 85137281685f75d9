package timer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"timelogger/bizerror"

	"github.com/patrickmn/go-cache"
	bolt "go.etcd.io/bbolt"
)

// Store keeps at most one active timer entry. Create fails with bizerror.ErrTimerRunning when
// an entry exists, Remove fails with bizerror.ErrTimerNotRunning when none does.
type Store interface {
	Get() (*Entry, error)
	Create(e Entry) error
	Remove() (*Entry, error)
	Close() error
}

const activeKey = "active"

type MemoryStore struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get() (*Entry, error) {
	v, found := s.cache.Get(activeKey)
	if !found {
		return nil, nil
	}
	e := v.(Entry)
	return &e, nil
}

func (s *MemoryStore) Create(e Entry) error {
	if err := s.cache.Add(activeKey, e, cache.NoExpiration); err != nil {
		return bizerror.ErrTimerRunning
	}
	return nil
}

func (s *MemoryStore) Remove() (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.Get()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, bizerror.ErrTimerNotRunning
	}
	s.cache.Delete(activeKey)
	return e, nil
}

func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}

// BoltStore persists the active timer in a bbolt file so it survives restarts.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

func OpenBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	bucket := []byte("timer")
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db, bucket: bucket}, nil
}

func (s *BoltStore) Get() (*Entry, error) {
	var e *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		e, err = decode(tx.Bucket(s.bucket).Get([]byte(activeKey)))
		return err
	})
	return e, err
}

func (s *BoltStore) Create(e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(activeKey)) != nil {
			return bizerror.ErrTimerRunning
		}
		return b.Put([]byte(activeKey), payload)
	})
}

func (s *BoltStore) Remove() (*Entry, error) {
	var e *Entry
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		var err error
		if e, err = decode(b.Get([]byte(activeKey))); err != nil {
			return err
		}
		if e == nil {
			return bizerror.ErrTimerNotRunning
		}
		return b.Delete([]byte(activeKey))
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func decode(raw []byte) (*Entry, error) {
	if raw == nil {
		return nil, nil
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
