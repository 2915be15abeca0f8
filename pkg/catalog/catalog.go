// Copyright © 2018 One Concern

// Package catalog implements the operations that keep a curated data
// collection true to its published metadata: loading and saving the
// catalog descriptor, registering and retiring datasets, recomputing
// digests after updates, verifying the collection's properties and
// rendering the derived artifacts (readme manifest, checksum file).
package catalog

import (
	"bytes"
	"context"
	"io/ioutil"

	"github.com/oneconcern/datacat/pkg/catalog/status"
	"github.com/oneconcern/datacat/pkg/hashcache"
	"github.com/oneconcern/datacat/pkg/model"
	"github.com/oneconcern/datacat/pkg/storage"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v2"
)

// Catalog gives access to a data collection held in a storage backend
type Catalog struct {
	store storage.Store
	cache hashcache.Cache
	l     *zap.Logger
}

// Option customizes a catalog
type Option func(*Catalog)

// WithLogger overrides the default no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.l = l
		}
	}
}

// WithCache memoizes digest computations in the given cache.
// The cache must be initialized by the caller.
func WithCache(cache hashcache.Cache) Option {
	return func(c *Catalog) {
		c.cache = cache
	}
}

// New creates a catalog over a collection store
func New(store storage.Store, opts ...Option) *Catalog {
	c := &Catalog{
		store: store,
		l:     zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// Store returns the storage backend holding the collection
func (c *Catalog) Store() storage.Store {
	return c.store
}

// Load reads and validates the collection descriptor
func (c *Catalog) Load(ctx context.Context) (model.CatalogDescriptor, error) {
	desc, err := c.load(ctx)
	if err != nil {
		return desc, err
	}
	if err = model.Validate(desc); err != nil {
		return desc, err
	}
	return desc, nil
}

// load reads the descriptor without validating it, so verification can
// report problems a strict load would reject
func (c *Catalog) load(ctx context.Context) (model.CatalogDescriptor, error) {
	var desc model.CatalogDescriptor
	has, err := c.store.Has(ctx, model.GetPathToCatalog())
	if err != nil {
		return desc, err
	}
	if !has {
		return desc, status.ErrCatalogNotFound
	}

	rdr, err := c.store.Get(ctx, model.GetPathToCatalog())
	if err != nil {
		return desc, err
	}
	defer rdr.Close()

	data, err := ioutil.ReadAll(rdr)
	if err != nil {
		return desc, err
	}
	if err = yaml.Unmarshal(data, &desc); err != nil {
		return desc, err
	}
	return desc, nil
}

// Save validates and writes the collection descriptor
func (c *Catalog) Save(ctx context.Context, desc model.CatalogDescriptor) error {
	if err := model.Validate(desc); err != nil {
		return err
	}
	data, err := yaml.Marshal(desc)
	if err != nil {
		return err
	}
	if err = c.store.Put(ctx, model.GetPathToCatalog(), bytes.NewReader(data), storage.OverWrite); err != nil {
		return err
	}
	c.l.Info("catalog saved",
		zap.String("store", c.store.String()),
		zap.Int("datasets", len(desc.Datasets)))
	return nil
}

func (c *Catalog) readCurrent(ctx context.Context, key string) ([]byte, error) {
	has, err := c.store.Has(ctx, key)
	if err != nil || !has {
		return nil, err
	}
	rdr, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	return ioutil.ReadAll(rdr)
}
