package storage_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/oneconcern/datacat/internal/rand"
	"github.com/oneconcern/datacat/pkg/storage"
	"github.com/oneconcern/datacat/pkg/storage/localfs"
	"github.com/oneconcern/pipelines/pkg/log"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errBroken = fmt.Errorf("broken store")

type brokenStore struct{}

func (brokenStore) String() string                            { return "broken" }
func (brokenStore) Has(context.Context, string) (bool, error) { return false, errBroken }
func (brokenStore) Get(context.Context, string) (io.ReadCloser, error) {
	return nil, errBroken
}
func (brokenStore) Put(context.Context, string, io.Reader, bool) error { return errBroken }
func (brokenStore) Delete(context.Context, string) error               { return errBroken }
func (brokenStore) Keys(context.Context) ([]string, error)             { return nil, errBroken }
func (brokenStore) KeysPrefix(ctx context.Context, token, prefix, delimiter string, count int) ([]string, string, error) {
	return nil, "", errBroken
}
func (brokenStore) Clear(context.Context) error { return errBroken }

func TestMultiPut(t *testing.T) {
	ctx := context.Background()
	s1 := localfs.New(afero.NewMemMapFs())
	s2 := localfs.New(afero.NewMemMapFs())
	payload := rand.Bytes(1024)

	units := []storage.MultiStoreUnit{{Store: s1}, {Store: s2}}
	require.NoError(t, storage.MultiPut(ctx, units, "data/blob.bin", payload, storage.OverWrite))

	for _, s := range []storage.Store{s1, s2} {
		rdr, err := s.Get(ctx, "data/blob.bin")
		require.NoError(t, err)
		b, err := ioutil.ReadAll(rdr)
		require.NoError(t, err)
		require.NoError(t, rdr.Close())
		assert.Equal(t, payload, b)
	}
}

func TestMultiPutFailure(t *testing.T) {
	ctx := context.Background()
	good := localfs.New(afero.NewMemMapFs())

	units := []storage.MultiStoreUnit{
		{Store: good},
		{Store: brokenStore{}, TolerateFailure: true},
	}
	require.NoError(t, storage.MultiPut(ctx, units, "k", []byte("v"), storage.OverWrite))

	units[1].TolerateFailure = false
	require.Error(t, storage.MultiPut(ctx, units, "k", []byte("v"), storage.OverWrite))
}

func TestReadTee(t *testing.T) {
	ctx := context.Background()
	src := localfs.New(afero.NewMemMapFs())
	dst := localfs.New(afero.NewMemMapFs())
	payload := rand.Bytes(512)
	require.NoError(t, src.Put(ctx, "a/b", bytes.NewReader(payload), storage.OverWrite))

	object, err := storage.ReadTee(ctx, src, "a/b", dst, "c/d")
	require.NoError(t, err)
	assert.Equal(t, payload, object)

	ok, err := dst.Has(ctx, "c/d")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogged(t *testing.T) {
	ctx := context.Background()
	wrapped := storage.Logged(zap.NewNop(), localfs.New(afero.NewMemMapFs()))

	require.NoError(t, wrapped.Put(ctx, "k", strings.NewReader("v"), storage.OverWrite))
	ok, err := wrapped.Has(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	// stat capability of the backend is preserved by the wrapper
	_, isStat := wrapped.(storage.StoreStat)
	assert.True(t, isStat)
}

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	tr := mocktracer.New()
	logs := log.NewFactory(zap.NewNop())
	wrapped := storage.Instrument(tr, logs, localfs.New(afero.NewMemMapFs()))

	require.NoError(t, wrapped.Put(ctx, "data/blob.bin", bytes.NewReader(rand.Bytes(64)), storage.OverWrite))
	ok, err := wrapped.Has(ctx, "data/blob.bin")
	require.NoError(t, err)
	assert.True(t, ok)

	keys, err := wrapped.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"data/blob.bin"}, keys)

	_, isStat := wrapped.(storage.StoreStat)
	assert.True(t, isStat)

	names := make([]string, 0, 8)
	for _, span := range tr.FinishedSpans() {
		names = append(names, span.OperationName)
	}
	assert.Contains(t, names, "storage.localfs.Put")
	assert.Contains(t, names, "storage.localfs.Has")
	assert.Contains(t, names, "storage.localfs.Keys")
}
