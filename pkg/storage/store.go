// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"time"
)

// Overwrite flags for Put
const (
	OverWrite   = false
	NoOverWrite = true
)

// Store implementations know how to write entries to a K/V store.
//
// Typically this is something file system-like. Examples are S3, local FS, NFS, ...
// Implementations of this interface are assumed to be fairly simple.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, source io.Reader, exclusive bool) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
	KeysPrefix(ctx context.Context, token, prefix, delimiter string, count int) ([]string, string, error)
	Clear(context.Context) error
}

// Attributes of a stored object
type Attributes struct {
	Size    int64
	ModTime time.Time
	_       struct{}
}

// StoreStat is implemented by backends which can report object attributes
// without fetching the object.
type StoreStat interface {
	Stat(context.Context, string) (Attributes, error)
}
