// Copyright © 2018 One Concern

package localfs

import (
	"bytes"
	"context"
	"io/ioutil"
	"strconv"
	"testing"
	"time"

	"github.com/oneconcern/datacat/pkg/errors"
	"github.com/oneconcern/datacat/pkg/storage"
	"github.com/oneconcern/datacat/pkg/storage/status"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHas(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	has, err := bs.Has(context.Background(), "sixteentons")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(context.Background(), "seventeentons")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(context.Background(), "fifteentons")
	require.NoError(t, err)
	require.False(t, has)
}

func TestGet(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	rdr, err := bs.Get(context.Background(), "sixteentons")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	assert.Equal(t, "this is the text", string(b))

	rdr, err = bs.Get(context.Background(), "seventeentons")
	require.NoError(t, err)
	b, err = ioutil.ReadAll(rdr)
	require.NoError(t, err)
	assert.Equal(t, "this is the text for another thing", string(b))

	_, err = bs.Get(context.Background(), "fifteentons")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotExists))
}

func TestKeys(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	keys, err := bs.Keys(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 2)
}

func TestDelete(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	require.NoError(t, bs.Delete(context.Background(), "seventeentons"))
	k, _ := bs.Keys(context.Background())
	assert.Len(t, k, 1)
}

func TestClear(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	require.NoError(t, bs.Clear(context.Background()))
	k, _ := bs.Keys(context.Background())
	require.Empty(t, k)
}

func TestPut(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	content := bytes.NewBufferString("here we go once again")
	err := bs.Put(context.Background(), "eighteentons", content, storage.NoOverWrite)
	require.NoError(t, err)

	rdr, err := bs.Get(context.Background(), "eighteentons")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())

	assert.Equal(t, "here we go once again", string(b))

	k, _ := bs.Keys(context.Background())
	assert.Len(t, k, 3)
}

func TestPutExclusive(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	err := bs.Put(context.Background(), "sixteentons", bytes.NewBufferString("no trespassing"), storage.NoOverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))

	// the overwrite truncates what was there before
	err = bs.Put(context.Background(), "sixteentons", bytes.NewBufferString("ok"), storage.OverWrite)
	require.NoError(t, err)

	rdr, err := bs.Get(context.Background(), "sixteentons")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(b))
}

func TestStat(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	st, ok := bs.(storage.StoreStat)
	require.True(t, ok)

	attr, err := st.Stat(context.Background(), "sixteentons")
	require.NoError(t, err)
	assert.EqualValues(t, len("this is the text"), attr.Size)
	assert.WithinDuration(t, time.Now(), attr.ModTime, time.Minute)

	_, err = st.Stat(context.Background(), "fifteentons")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotExists))
}

func setupStore(t testing.TB) (storage.Store, func()) {
	t.Helper()

	fs := afero.NewMemMapFs()
	f, err := fs.Create("sixteentons")
	require.NoError(t, err)
	_, err = f.WriteString("this is the text")
	require.NoError(t, err)
	f.Close()

	ff, err := fs.Create("seventeentons")
	require.NoError(t, err)
	_, err = ff.WriteString("this is the text for another thing")
	require.NoError(t, err)
	ff.Close()

	return New(fs), func() {}
}

func fakeFile(t testing.TB, fs afero.Fs, file string) {
	f, err := fs.Create(file)
	require.NoError(t, err)
	_, err = f.WriteString("this is the text")
	require.NoError(t, err)
	err = f.Close()
	require.NoError(t, err)
}

func TestKeysPrefix(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := fs.MkdirAll("a/b/c", 0777)
	require.NoError(t, err)
	err = fs.MkdirAll("a/d", 0777)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		fakeFile(t, fs, "a/b/c/e"+strconv.Itoa(i))
		fakeFile(t, fs, "a/d/f"+strconv.Itoa(i))
	}

	store := New(fs)

	var (
		keys []string
		next string
	)

	i := 0
	search := "a"
	for keys, next, err = store.KeysPrefix(context.Background(), "", search, "", 3); next != ""; keys, next, err = store.KeysPrefix(context.Background(), next, search, "", 3) {
		require.NoError(t, err)
		assert.Len(t, keys, 3)
		i++
	}
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.Equal(t, 6, i)

	i = 0
	search = "a/d/f"
	for keys, next, err = store.KeysPrefix(context.Background(), "", search, "", 4); next != ""; keys, next, err = store.KeysPrefix(context.Background(), next, search, "", 4) {
		require.NoError(t, err)
		assert.Len(t, keys, 4)
		i++
	}
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.Equal(t, 2, i)
}

func TestAtomicPut(t *testing.T) {
	fs := afero.NewMemMapFs()
	bs, err := NewAtomic(fs)
	require.NoError(t, err)

	err = bs.Put(context.Background(), "nineteentons", bytes.NewBufferString("staged then renamed"), storage.NoOverWrite)
	require.NoError(t, err)

	rdr, err := bs.Get(context.Background(), "nineteentons")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	assert.Equal(t, "staged then renamed", string(b))

	// the staging area is not addressable
	err = bs.Put(context.Background(), ".put-stage/sneaky", bytes.NewBufferString("x"), storage.OverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidResource))

	// and does not leak into key listings
	keys, err := bs.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"nineteentons"}, keys)

	// exclusive mode still refuses to overwrite
	err = bs.Put(context.Background(), "nineteentons", bytes.NewBufferString("x"), storage.NoOverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))
}
