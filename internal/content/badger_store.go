// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
)

// contentKeyPrefix namespaces section keys inside the shared badger DB.
const contentKeyPrefix = "content:"

// BadgerStore is the persistent Store backend.
type BadgerStore struct {
	db      *badger.DB
	ownedDB bool
}

// NewBadgerStore opens a badger database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for content: %w", err)
	}
	return &BadgerStore{db: db, ownedDB: true}, nil
}

// NewBadgerStoreFromDB wraps an existing badger connection. Close
// becomes a no-op; the caller owns the connection.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Get returns the stored payload for a section.
func (s *BadgerStore) Get(ctx context.Context, section string) (map[string]interface{}, error) {
	var data map[string]interface{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(contentKeyPrefix + section))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSectionNotFound
		}
		if err != nil {
			return fmt.Errorf("get section: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &data)
		})
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set persists a section payload.
func (s *BadgerStore) Set(ctx context.Context, section string, data map[string]interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal section: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(contentKeyPrefix+section), payload)
	})
}

// Delete removes a section's stored value.
func (s *BadgerStore) Delete(ctx context.Context, section string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(contentKeyPrefix + section))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete section: %w", err)
		}
		return nil
	})
}

// Keys lists sections with stored values.
func (s *BadgerStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(contentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			keys = append(keys, strings.TrimPrefix(key, contentKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return keys, nil
}

// RunValueLogGC triggers one badger value-log GC cycle. badger returns
// ErrNoRewrite when there is nothing to reclaim; that is not a failure.
func (s *BadgerStore) RunValueLogGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close closes the database when this store opened it.
func (s *BadgerStore) Close() error {
	if s.ownedDB {
		return s.db.Close()
	}
	return nil
}
