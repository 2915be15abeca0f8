package catalog

import (
	"context"
	"io"

	"github.com/oneconcern/datacat/pkg/fingerprint"
	"github.com/oneconcern/datacat/pkg/storage"
	"go.uber.org/zap"
)

type countReader struct {
	r io.Reader
	n int64
}

func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// digest returns the sha256 and size of a stored object. When a cache is
// configured and the store can stat objects, unchanged objects are served
// from the cache instead of being re-read.
func (c *Catalog) digest(ctx context.Context, key string) (string, int64, error) {
	var (
		attr    storage.Attributes
		statted bool
	)
	if statter, ok := c.store.(storage.StoreStat); ok {
		a, err := statter.Stat(ctx, key)
		if err != nil {
			return "", 0, err
		}
		attr, statted = a, true

		if c.cache != nil {
			if digest, err := c.cache.Get(key, attr); err == nil {
				c.l.Debug("digest cache hit", zap.String("key", key))
				return digest, attr.Size, nil
			}
		}
	}

	rdr, err := c.store.Get(ctx, key)
	if err != nil {
		return "", 0, err
	}
	defer rdr.Close()

	counted := &countReader{r: rdr}
	digest, err := fingerprint.SHA256(counted)
	if err != nil {
		return "", 0, err
	}
	size := counted.n
	if statted {
		size = attr.Size
	}

	if c.cache != nil && statted {
		if err := c.cache.Put(key, attr, digest); err != nil {
			c.l.Debug("digest cache put failed", zap.String("key", key), zap.Error(err))
		}
	}
	return digest, size, nil
}
