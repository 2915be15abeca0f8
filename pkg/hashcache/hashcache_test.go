package hashcache

import (
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/oneconcern/datacat/pkg/storage"
	"github.com/stretchr/testify/require"
)

const knownDigest = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func TestCacheRoundtrip(t *testing.T) {
	td, err := ioutil.TempDir("", "datacat-tst")
	require.NoError(t, err)
	defer os.RemoveAll(td)

	c := New(td)
	require.NoError(t, c.Initialize())
	defer c.Close()

	attr := storage.Attributes{
		Size:    11,
		ModTime: time.Date(2019, 3, 14, 10, 30, 0, 0, time.UTC),
	}

	_, err = c.Get("data/quakes.csv", attr)
	require.Equal(t, ErrCacheMiss, err)

	require.NoError(t, c.Put("data/quakes.csv", attr, knownDigest))

	digest, err := c.Get("data/quakes.csv", attr)
	require.NoError(t, err)
	require.Equal(t, knownDigest, digest)
}

func TestCacheStaleEntry(t *testing.T) {
	td, err := ioutil.TempDir("", "datacat-tst")
	require.NoError(t, err)
	defer os.RemoveAll(td)

	c := New(td)
	require.NoError(t, c.Initialize())
	defer c.Close()

	attr := storage.Attributes{
		Size:    11,
		ModTime: time.Date(2019, 3, 14, 10, 30, 0, 0, time.UTC),
	}
	require.NoError(t, c.Put("data/quakes.csv", attr, knownDigest))

	grown := attr
	grown.Size = 12
	_, err = c.Get("data/quakes.csv", grown)
	require.Equal(t, ErrCacheMiss, err)

	touched := attr
	touched.ModTime = attr.ModTime.Add(time.Second)
	_, err = c.Get("data/quakes.csv", touched)
	require.Equal(t, ErrCacheMiss, err)

	digest, err := c.Get("data/quakes.csv", attr)
	require.NoError(t, err)
	require.Equal(t, knownDigest, digest)
}

func TestCacheInvalidate(t *testing.T) {
	td, err := ioutil.TempDir("", "datacat-tst")
	require.NoError(t, err)
	defer os.RemoveAll(td)

	c := New(td)
	require.NoError(t, c.Initialize())
	defer c.Close()

	attr := storage.Attributes{Size: 11, ModTime: time.Now().UTC()}
	require.NoError(t, c.Put("data/quakes.csv", attr, knownDigest))

	require.NoError(t, c.Invalidate("data/quakes.csv"))

	_, err = c.Get("data/quakes.csv", attr)
	require.Equal(t, ErrCacheMiss, err)
}

func TestCacheClear(t *testing.T) {
	td, err := ioutil.TempDir("", "datacat-tst")
	require.NoError(t, err)
	defer os.RemoveAll(td)

	c := New(td)
	require.NoError(t, c.Initialize())
	defer c.Close()

	attr := storage.Attributes{Size: 11, ModTime: time.Now().UTC()}
	require.NoError(t, c.Put("data/quakes.csv", attr, knownDigest))
	require.NoError(t, c.Put("data/nfip_claims.csv", attr, knownDigest))

	require.NoError(t, c.Clear())

	_, err = c.Get("data/quakes.csv", attr)
	require.Equal(t, ErrCacheMiss, err)
	_, err = c.Get("data/nfip_claims.csv", attr)
	require.Equal(t, ErrCacheMiss, err)
}

func TestCacheEmptyKey(t *testing.T) {
	td, err := ioutil.TempDir("", "datacat-tst")
	require.NoError(t, err)
	defer os.RemoveAll(td)

	c := New(td)
	require.NoError(t, c.Initialize())
	defer c.Close()

	_, err = c.Get("", storage.Attributes{})
	require.Equal(t, ErrKeyIsRequired, err)
	require.Equal(t, ErrKeyIsRequired, c.Put("", storage.Attributes{}, knownDigest))
	require.Equal(t, ErrKeyIsRequired, c.Invalidate(""))
}
