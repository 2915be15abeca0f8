package datacat

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/oneconcern/datacat/pkg/catalog"
	catalogstatus "github.com/oneconcern/datacat/pkg/catalog/status"
	"github.com/oneconcern/datacat/pkg/hashcache"
	"github.com/oneconcern/datacat/pkg/model"
	"github.com/oneconcern/datacat/pkg/storage"
	"github.com/oneconcern/datacat/pkg/storage/localfs"
	"github.com/oneconcern/pipelines/pkg/log"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultWorkDir holds the tool's private state inside a collection
const DefaultWorkDir = ".datacat"

// DefaultCacheDir returns the digest cache location for a collection
func DefaultCacheDir(baseDir string) string {
	return filepath.Join(baseDir, DefaultWorkDir, "hashcache")
}

// Option customizes a collection runtime
type Option func(*Collection)

// WithLogger overrides the default no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCacheDir enables the digest cache at the given directory
func WithCacheDir(dir string) Option {
	return func(c *Collection) {
		c.cacheDir = dir
	}
}

// WithTracer instruments every store access with a tracing span
func WithTracer(tr opentracing.Tracer) Option {
	return func(c *Collection) {
		c.tracer = tr
	}
}

// Collection is the runtime handle on a curated data collection held in a
// directory on disk
type Collection struct {
	baseDir  string
	cacheDir string
	logger   *zap.Logger
	tracer   opentracing.Tracer
	store    storage.Store
	cache    hashcache.Cache
	catalog  *catalog.Catalog
}

// New opens the collection rooted at baseDir
func New(baseDir string, opts ...Option) (*Collection, error) {
	if baseDir == "" {
		baseDir = "."
	}
	c := &Collection{
		baseDir: baseDir,
		logger:  zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}

	c.store = localfs.New(afero.NewBasePathFs(afero.NewOsFs(), baseDir))
	if c.tracer != nil {
		c.store = storage.Instrument(c.tracer, log.NewFactory(c.logger), c.store)
	}

	copts := []catalog.Option{catalog.WithLogger(c.logger)}
	if c.cacheDir != "" {
		cache := hashcache.New(c.cacheDir)
		if err := cache.Initialize(); err != nil {
			return nil, err
		}
		c.cache = cache
		copts = append(copts, catalog.WithCache(cache))
	}
	c.catalog = catalog.New(c.store, copts...)
	return c, nil
}

// BaseDir returns the collection root directory
func (c *Collection) BaseDir() string {
	return c.baseDir
}

// Catalog returns the catalog operations over this collection
func (c *Collection) Catalog() *catalog.Catalog {
	return c.catalog
}

// Store returns the storage backend rooted at the collection directory
func (c *Collection) Store() storage.Store {
	return c.store
}

// Close releases the digest cache when one is open
func (c *Collection) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// Datasets lists the catalog entries of the collection
func (c *Collection) Datasets(ctx context.Context) ([]model.DatasetDescriptor, error) {
	return c.catalog.List(ctx)
}

// Dataset returns a single catalog entry
func (c *Collection) Dataset(ctx context.Context, fileName string) (model.DatasetDescriptor, error) {
	return c.catalog.Get(ctx, fileName)
}

// Check verifies the collection's published properties
func (c *Collection) Check(ctx context.Context) error {
	return c.catalog.Verify(ctx)
}

// Mirror pushes the published collection to the destination stores: the
// catalog descriptor, the rendered artifacts when present, and every
// cataloged data file.
func (c *Collection) Mirror(ctx context.Context, dests []storage.MultiStoreUnit) error {
	if len(dests) == 0 {
		return nil
	}
	desc, err := c.catalog.Load(ctx)
	if err != nil {
		return err
	}

	keys := []string{model.GetPathToCatalog()}
	for _, artifact := range []string{model.GetPathToReadme(), model.GetPathToChecksums()} {
		has, herr := c.store.Has(ctx, artifact)
		if herr != nil {
			return herr
		}
		if has {
			keys = append(keys, artifact)
		}
	}
	for _, dataset := range desc.Datasets {
		key := model.GetPathToDataset(dataset.FileName)
		has, herr := c.store.Has(ctx, key)
		if herr != nil {
			return herr
		}
		if !has {
			return catalogstatus.ErrDataMissing.Wrap(fmt.Errorf("%s", dataset.FileName))
		}
		keys = append(keys, key)
	}

	for _, key := range keys {
		rdr, gerr := c.store.Get(ctx, key)
		if gerr != nil {
			return gerr
		}
		object, rerr := ioutil.ReadAll(rdr)
		rdr.Close()
		if rerr != nil {
			return rerr
		}
		if err = storage.MultiPut(ctx, dests, key, object, storage.OverWrite); err != nil {
			return err
		}
		c.logger.Info("mirrored", zap.String("key", key), zap.Int("stores", len(dests)))
	}
	return nil
}
