// Package hashcache caches computed file digests between runs, so that
// re-verifying a large unchanged collection does not re-read every byte.
//
// Entries are invalidated by size or modification time changes. The cache
// lives in a badger database under the collection's work directory.
package hashcache

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/json-iterator/go"
	"github.com/oneconcern/datacat/pkg/convert"
	"github.com/oneconcern/datacat/pkg/storage"
)

type errorString string

func (e errorString) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss is returned when no valid entry exists for a key
	ErrCacheMiss errorString = "cache miss"

	// ErrKeyIsRequired is returned on access with an empty key
	ErrKeyIsRequired errorString = "cache key is required"
)

// Cache persists file digests between runs.
//
// A cached digest is served only while the size and modification time
// recorded with it still match.
type Cache interface {
	Initialize() error
	Close() error

	Get(key string, attr storage.Attributes) (string, error)
	Put(key string, attr storage.Attributes, digest string) error
	Invalidate(key string) error
	Clear() error
}

type cacheEntry struct {
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mtime"`
	SHA256  string    `json:"sha256"`
	_       struct{}
}

func makeBadgerDb(dir string) (*badger.DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Println("mkdir -p", dir, err)
	}
	bopts := badger.DefaultOptions
	bopts.Dir = dir
	bopts.ValueDir = dir

	return badger.Open(bopts)
}

func badgerRewriteCacheError(err error) error {
	switch err {
	case badger.ErrKeyNotFound:
		return ErrCacheMiss
	case badger.ErrEmptyKey:
		return ErrKeyIsRequired
	default:
		return err
	}
}

func badgerRewriteCacheItemError(value *badger.Item, err error) (cacheEntry, error) {
	if err != nil {
		return cacheEntry{}, badgerRewriteCacheError(err)
	}
	data, err := value.Value()
	if err != nil {
		return cacheEntry{}, badgerRewriteCacheError(err)
	}

	var result cacheEntry
	if e := jsoniter.Unmarshal(data, &result); e != nil {
		return cacheEntry{}, fmt.Errorf("json unmarshal failed: %v", e)
	}
	return result, nil
}

// New creates a digest cache persisted under dir
func New(dir string) Cache {
	if dir == "" {
		dir = filepath.Join(".datacat", "hashcache")
	}
	return &digestCache{
		dir: dir,
	}
}

type digestCache struct {
	dir   string
	db    *badger.DB
	init  sync.Once
	close sync.Once
}

func (c *digestCache) Initialize() error {
	var err error
	c.init.Do(func() {
		var db *badger.DB
		db, err = makeBadgerDb(c.dir)
		if err != nil {
			return
		}
		c.db = db
	})

	return err
}

func (c *digestCache) Close() error {
	var err error
	c.close.Do(func() {
		if c.db != nil {
			err = c.db.Close()
			if err == nil {
				c.db = nil
			}
		}
	})
	return err
}

func (c *digestCache) Get(key string, attr storage.Attributes) (string, error) {
	if key == "" {
		return "", ErrKeyIsRequired
	}
	keyb := convert.UnsafeStringToBytes(key)
	var entry cacheEntry
	verr := c.db.View(func(txn *badger.Txn) error {
		item, err := badgerRewriteCacheItemError(txn.Get(keyb))
		if err != nil {
			return err
		}
		entry = item
		return nil
	})
	if verr != nil {
		return "", verr
	}
	if entry.Size != attr.Size || !entry.ModTime.Equal(attr.ModTime) {
		return "", ErrCacheMiss
	}
	return entry.SHA256, nil
}

func (c *digestCache) Put(key string, attr storage.Attributes, digest string) error {
	if key == "" {
		return ErrKeyIsRequired
	}
	data, err := jsoniter.Marshal(cacheEntry{
		Size:    attr.Size,
		ModTime: attr.ModTime,
		SHA256:  digest,
	})
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return badgerRewriteCacheError(txn.Set(convert.UnsafeStringToBytes(key), data))
	})
}

func (c *digestCache) Invalidate(key string) error {
	if key == "" {
		return ErrKeyIsRequired
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return badgerRewriteCacheError(txn.Delete(convert.UnsafeStringToBytes(key)))
	})
}

func (c *digestCache) Clear() error {
	return c.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		var keys [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			kc := make([]byte, len(key))
			copy(kc, key)
			keys = append(keys, kc)
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return badgerRewriteCacheError(err)
			}
		}
		return nil
	})
}
