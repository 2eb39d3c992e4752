package storage

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

const gameKeyPrefix = "game/"

// BadgerStore keeps snapshots as JSON values in a BadgerDB database.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens or creates a BadgerDB database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir))
}

// OpenMemory opens a BadgerDB database that lives only in memory.
func OpenMemory() (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true))
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func gameKey(id string) []byte {
	return []byte(gameKeyPrefix + id)
}

// Save implements Store.
func (s *BadgerStore) Save(snap Snapshot) error {
	if err := validateID(snap.ID); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(snap.ID), data)
	})
}

// Load implements Store.
func (s *BadgerStore) Load(id string) (Snapshot, error) {
	var snap Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrGameNotFound, "%q", id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})

	return snap, err
}

// Delete implements Store.
func (s *BadgerStore) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrGameNotFound, "%q", id)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// List implements Store. Keys iterate in byte order, so ids come back sorted.
func (s *BadgerStore) List() ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(gameKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			ids = append(ids, string(key[len(gameKeyPrefix):]))
		}
		return nil
	})

	return ids, err
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
