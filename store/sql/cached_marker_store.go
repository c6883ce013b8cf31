package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-session/core"
)

const markerCacheKeyPrefix = "go-session::markers::v1"

// CachedMarkerStore fronts a marker store with a read-through cache.
// Marker reads happen on every logout and on some provider adapters'
// hot paths; writes invalidate the cached entry rather than update it.
type CachedMarkerStore struct {
	base  core.MarkerStore
	cache repositorycache.CacheService
}

func NewCachedMarkerStore(base core.MarkerStore, cacheService repositorycache.CacheService) (*CachedMarkerStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base marker store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: marker cache service is required")
	}
	return &CachedMarkerStore{base: base, cache: cacheService}, nil
}

// MarkerCacheKey returns the deterministic cache key contract for
// marker reads: go-session::markers::v1::<key> with the marker key
// URL-path escaped.
func MarkerCacheKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: marker key is required")
	}
	return markerCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

type cachedMarkerValue struct {
	Value string
	Found bool
}

func (s *CachedMarkerStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return "", false, fmt.Errorf("sqlstore: cached marker store is not configured")
	}
	cacheKey, err := MarkerCacheKey(key)
	if err != nil {
		return "", false, err
	}

	cached, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (cachedMarkerValue, error) {
		value, found, fetchErr := s.base.Get(ctx, key)
		if fetchErr != nil {
			return cachedMarkerValue{}, fetchErr
		}
		return cachedMarkerValue{Value: value, Found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	return cached.Value, cached.Found, nil
}

func (s *CachedMarkerStore) Set(ctx context.Context, key string, value string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached marker store is not configured")
	}
	if err := s.base.Set(ctx, key, value); err != nil {
		return err
	}
	return s.invalidate(ctx, key)
}

func (s *CachedMarkerStore) Keys(ctx context.Context) ([]string, error) {
	if s == nil || s.base == nil {
		return nil, fmt.Errorf("sqlstore: cached marker store is not configured")
	}
	return s.base.Keys(ctx)
}

func (s *CachedMarkerStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached marker store is not configured")
	}
	if err := s.base.Delete(ctx, key); err != nil {
		return err
	}
	return s.invalidate(ctx, key)
}

func (s *CachedMarkerStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return 0, fmt.Errorf("sqlstore: cached marker store is not configured")
	}
	keys, err := s.base.Keys(ctx)
	if err != nil {
		return 0, err
	}
	removed, err := s.base.DeleteByPrefix(ctx, prefix)
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if invalidateErr := s.invalidate(ctx, key); invalidateErr != nil {
			return removed, invalidateErr
		}
	}
	return removed, nil
}

func (s *CachedMarkerStore) invalidate(ctx context.Context, key string) error {
	cacheKey, err := MarkerCacheKey(key)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

var _ core.MarkerStore = (*CachedMarkerStore)(nil)
