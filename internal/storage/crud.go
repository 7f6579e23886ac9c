package storage

import (
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/manav03panchal/weekly/internal/model"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the store.
	ErrKeyNotFound = errors.New("key not found")
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// Get retrieves the string stored under key.
func (d *DB) Get(key string) (string, bool, error) {
	var value string
	found := false
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			value = string(val)
			found = true
			return nil
		})
	})
	return value, found, err
}

// Set stores value under key.
func (d *DB) Set(key, value string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// Delete removes a key. Deleting a missing key is not an error.
func (d *DB) Delete(key string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Keys lists every key with the given prefix.
func (d *DB) Keys(prefix string) ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

// GetJSON decodes the value under key into v.
func GetJSON(kv KV, key string, v model.Model) error {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrKeyNotFound
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return err
	}
	v.SetKey(key)
	return nil
}

// SetJSON encodes v and stores it under its own key.
func SetJSON(kv KV, v model.Model) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(v.GetKey(), string(data))
}
