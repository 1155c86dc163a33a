package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("totpvault")

// BoltStorage keeps values in a single-file bbolt database.
type BoltStorage struct {
	db *bolt.DB
}

// NewBoltStorage opens (or creates) the database at path with 0600
// permissions. Missing parent directories are created with 0700.
func NewBoltStorage(path string) (*BoltStorage, error) {
	if path == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("bolt path is empty"))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Join(ErrFailedToOpenBolt, err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenBolt, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenBolt, err)
	}

	return &BoltStorage{db: db}, nil
}

func (s *BoltStorage) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	var val string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction
		val = string(v)
		return nil
	})
	return val, mapBoltError(err)
}

func (s *BoltStorage) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return mapBoltError(s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), []byte(value))
	}))
}

func (s *BoltStorage) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return mapBoltError(s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	}))
}

// Path returns the database file location.
func (s *BoltStorage) Path() string {
	return s.db.Path()
}

func (s *BoltStorage) Close() error {
	return s.db.Close()
}

func mapBoltError(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return errors.Join(ErrClosed, err)
	}
	return err
}
