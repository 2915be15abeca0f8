// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Logged decorates a store with debug logging on every access
func Logged(l *zap.Logger, store Store) Store {
	if l == nil {
		l = zap.NewNop()
	}
	wrapped := &loggedStore{
		store: store,
		l:     l.With(zap.String("store", store.String())),
	}
	if _, ok := store.(StoreStat); ok {
		return &loggedStatStore{loggedStore: wrapped}
	}
	return wrapped
}

type loggedStore struct {
	store Store
	l     *zap.Logger
}

func (s *loggedStore) String() string {
	return s.store.String()
}

func (s *loggedStore) Has(ctx context.Context, key string) (bool, error) {
	s.l.Debug("storage has", zap.String("key", key))
	return s.store.Has(ctx, key)
}

func (s *loggedStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.l.Debug("storage get", zap.String("key", key))
	return s.store.Get(ctx, key)
}

func (s *loggedStore) Put(ctx context.Context, key string, source io.Reader, exclusive bool) error {
	s.l.Debug("storage put", zap.String("key", key), zap.Bool("exclusive", exclusive))
	return s.store.Put(ctx, key, source, exclusive)
}

func (s *loggedStore) Delete(ctx context.Context, key string) error {
	s.l.Debug("storage delete", zap.String("key", key))
	return s.store.Delete(ctx, key)
}

func (s *loggedStore) Keys(ctx context.Context) ([]string, error) {
	s.l.Debug("storage keys")
	return s.store.Keys(ctx)
}

func (s *loggedStore) KeysPrefix(ctx context.Context, token, prefix, delimiter string, count int) ([]string, string, error) {
	s.l.Debug("storage keys with prefix", zap.String("prefix", prefix))
	return s.store.KeysPrefix(ctx, token, prefix, delimiter, count)
}

func (s *loggedStore) Clear(ctx context.Context) error {
	s.l.Debug("storage clear")
	return s.store.Clear(ctx)
}

// loggedStatStore preserves the StoreStat capability of the decorated store
type loggedStatStore struct {
	*loggedStore
}

func (s *loggedStatStore) Stat(ctx context.Context, key string) (Attributes, error) {
	s.l.Debug("storage stat", zap.String("key", key))
	return s.store.(StoreStat).Stat(ctx, key)
}
