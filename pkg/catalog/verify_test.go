package catalog

import (
	"context"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/oneconcern/datacat/pkg/catalog/status"
	"github.com/oneconcern/datacat/pkg/hashcache"
	"github.com/oneconcern/datacat/pkg/model"
	"github.com/oneconcern/datacat/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestVerifyClean(t *testing.T) {
	c := setupCatalog(t)
	require.NoError(t, c.Verify(context.Background()))
}

func TestVerifyChecksumMismatch(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Store().Put(ctx, model.GetPathToDataset("quakes.csv"),
		strings.NewReader("corrupted"), storage.OverWrite))

	err := c.Verify(ctx)
	require.Error(t, err)
	assert.True(t, hasViolation(err, status.ErrChecksumMismatch))
	assert.Contains(t, err.Error(), "quakes.csv")
}

func TestVerifyDataMissing(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Store().Delete(ctx, model.GetPathToDataset("quakes.csv")))

	err := c.Verify(ctx)
	require.Error(t, err)
	assert.True(t, hasViolation(err, status.ErrDataMissing))
	assert.False(t, hasViolation(err, status.ErrChecksumMismatch))
}

func TestVerifyOrphan(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Store().Put(ctx, model.GetPathToDataset("stray.bin"),
		strings.NewReader("stray"), storage.NoOverWrite))

	err := c.Verify(ctx)
	require.Error(t, err)
	assert.True(t, hasViolation(err, status.ErrOrphanFile))
	assert.Contains(t, err.Error(), "stray.bin")
}

func TestVerifyStaleReadme(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Store().Put(ctx, model.GetPathToReadme(),
		strings.NewReader("# hand edited\n"), storage.OverWrite))

	err := c.Verify(ctx)
	require.Error(t, err)
	assert.True(t, hasViolation(err, status.ErrStaleArtifact))
}

func TestVerifyStaleSums(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Store().Put(ctx, model.GetPathToChecksums(),
		strings.NewReader("0000000000000000000000000000000000000000000000000000000000000000  patches.csv.gz\n"),
		storage.OverWrite))

	err := c.Verify(ctx)
	require.Error(t, err)
	assert.True(t, hasViolation(err, status.ErrStaleArtifact))
}

func TestVerifyDuplicateEntries(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	// a hand edited descriptor can hold duplicates Save would refuse
	desc := testDescriptor()
	desc.Datasets = append(desc.Datasets, desc.Datasets[1])
	data, err := yaml.Marshal(desc)
	require.NoError(t, err)
	require.NoError(t, c.Store().Put(ctx, model.GetPathToCatalog(),
		strings.NewReader(string(data)), storage.OverWrite))

	err = c.Verify(ctx)
	require.Error(t, err)
	assert.True(t, hasViolation(err, status.ErrDuplicateEntry))
}

func TestVerifyAccumulates(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Store().Put(ctx, model.GetPathToDataset("quakes.csv"),
		strings.NewReader("corrupted"), storage.OverWrite))
	require.NoError(t, c.Store().Put(ctx, model.GetPathToDataset("stray.bin"),
		strings.NewReader("stray"), storage.NoOverWrite))
	require.NoError(t, c.Store().Delete(ctx, model.GetPathToDataset("patches.csv.gz")))

	err := c.Verify(ctx)
	require.Error(t, err)
	assert.True(t, hasViolation(err, status.ErrChecksumMismatch))
	assert.True(t, hasViolation(err, status.ErrOrphanFile))
	assert.True(t, hasViolation(err, status.ErrDataMissing))
	assert.True(t, len(Violations(err)) >= 3)
}

func TestVerifyWithCache(t *testing.T) {
	td, err := ioutil.TempDir("", "datacat-tst")
	require.NoError(t, err)
	defer os.RemoveAll(td)

	cache := hashcache.New(td)
	require.NoError(t, cache.Initialize())
	defer cache.Close()

	c := setupCatalog(t, WithCache(cache))
	ctx := context.Background()

	require.NoError(t, c.Verify(ctx))
	// second pass is served from the cache
	require.NoError(t, c.Verify(ctx))
}

func TestCatalogRefresh(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Store().Put(ctx, model.GetPathToDataset("quakes.csv"),
		strings.NewReader(patchesContent), storage.OverWrite))

	err := c.Verify(ctx)
	require.Error(t, err)
	assert.True(t, hasViolation(err, status.ErrChecksumMismatch))

	changed, err := c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"quakes.csv"}, changed)

	dataset, err := c.Get(ctx, "quakes.csv")
	require.NoError(t, err)
	assert.Equal(t, patchesDigest, dataset.Checksum)
	assert.EqualValues(t, len(patchesContent), dataset.Size)

	require.NoError(t, c.Verify(ctx))
}

func TestCatalogRefreshNoChange(t *testing.T) {
	c := setupCatalog(t)
	ctx := context.Background()

	before, err := c.Load(ctx)
	require.NoError(t, err)

	changed, err := c.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, changed)

	after, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}
