// Package localstore keeps client side state in a key/value storage, the way the
// admin console keeps it in the browser's local storage.
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/bbolt/v2"
	"github.com/pkg/errors"
)

// Keys shared with the admin console.
const (
	KeyPalette     = "colorPalette"
	KeySettings    = "siteSettings"
	KeyCredentials = "adminCredentials"
	KeySession     = "adminSession"
	KeyBooks       = "books"
)

const bucket = "authorsite"

// Store stores JSON documents by key. It implements fiber.Storage and can back
// the palette resolver directly.
type Store struct {
	fiber.Storage
}

// New wraps storage.
func New(storage fiber.Storage) *Store {
	return &Store{Storage: storage}
}

// Open opens or creates the bbolt file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errors.Wrap(err, "create state directory")
	}

	return New(bbolt.New(bbolt.Config{
		Database: path,
		Bucket:   bucket,
	})), nil
}

// GetJSON decodes the value stored under key into v. It reports false when the key is unset.
func (s *Store) GetJSON(key string, v any) (bool, error) {
	data, err := s.Get(key)
	if err != nil {
		return false, errors.Wrapf(err, "read %s", key)
	}

	if len(data) == 0 {
		return false, nil
	}

	if err = json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "decode %s", key)
	}

	return true, nil
}

// SetJSON stores v under key without expiry.
func (s *Store) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	return errors.Wrapf(s.Set(key, data, 0), "write %s", key)
}
