package storage

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	catalogBucket = []byte("catalog")
	productsKey   = []byte("products")
)

// Bolt stores the catalog entry as one key in a bbolt database.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database at path. Another process holding
// the database makes this fail after a short timeout instead of hanging.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database %s: %w", path, err)
	}
	return &Bolt{db: db}, nil
}

// Read returns the stored entry, or ErrNotExist if it was never written.
func (b *Bolt) Read() ([]byte, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(catalogBucket)
		if bucket == nil {
			return ErrNotExist
		}
		v := bucket.Get(productsKey)
		if v == nil {
			return ErrNotExist
		}
		// v is only valid for the life of the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if err == ErrNotExist {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read catalog database: %w", err)
	}
	return data, nil
}

// Write replaces the entry in a single transaction.
func (b *Bolt) Write(data []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(catalogBucket)
		if err != nil {
			return err
		}
		return bucket.Put(productsKey, data)
	})
	if err != nil {
		return fmt.Errorf("failed to write catalog database: %w", err)
	}
	return nil
}

// Close releases the database file lock.
func (b *Bolt) Close() error {
	return b.db.Close()
}
