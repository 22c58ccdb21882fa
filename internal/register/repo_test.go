package register

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoFindFromFreshCache(t *testing.T) {
	s := newLoaderStore(t)
	ctx := context.Background()

	f := &fakeFetcher{payload: zipPayload(t, "feed.json",
		`[{"ariregistri_kood": 11043099, "nimi": "Näidis OÜ"}]`)}
	loader := NewLoader(f, s)
	_, err := loader.Load(ctx, "https://example.test/feed.json.zip")
	require.NoError(t, err)

	// Break the fetcher: a fresh cache must not trigger a reload.
	f.err = assert.AnError

	repo := NewRepo(s, loader, "https://example.test/feed.json.zip", 24*time.Hour)
	got, err := repo.Find(ctx, "11043099")
	require.NoError(t, err)
	assert.Equal(t, "Näidis OÜ", got.Name)
}

func TestRepoFindNotFound(t *testing.T) {
	s := newLoaderStore(t)
	ctx := context.Background()

	f := &fakeFetcher{payload: zipPayload(t, "feed.json",
		`[{"ariregistri_kood": 1, "nimi": "X"}]`)}
	loader := NewLoader(f, s)
	repo := NewRepo(s, loader, "https://example.test/feed.json.zip", 24*time.Hour)

	_, err := repo.Find(ctx, "99999999")
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestRepoLoadsFeedWhenCacheEmpty(t *testing.T) {
	s := newLoaderStore(t)
	ctx := context.Background()

	f := &fakeFetcher{payload: zipPayload(t, "feed.json",
		`[{"ariregistri_kood": 2, "nimi": "Laetud OÜ"}]`)}
	repo := NewRepo(s, NewLoader(f, s), "https://example.test/feed.json.zip", 24*time.Hour)

	got, err := repo.Find(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Laetud OÜ", got.Name)
}

func TestRepoServesStaleCacheWhenRefreshFails(t *testing.T) {
	s := newLoaderStore(t)
	ctx := context.Background()

	f := &fakeFetcher{payload: zipPayload(t, "feed.json",
		`[{"ariregistri_kood": 3, "nimi": "Aegunud OÜ"}]`)}
	loader := NewLoader(f, s)
	_, err := loader.Load(ctx, "https://example.test/feed.json.zip")
	require.NoError(t, err)

	// Age the cache past its ttl, then break the fetcher.
	require.NoError(t, s.SetLoadedAt(ctx, time.Now().Add(-48*time.Hour)))
	f.err = assert.AnError

	repo := NewRepo(s, loader, "https://example.test/feed.json.zip", 24*time.Hour)
	got, err := repo.Find(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Aegunud OÜ", got.Name)
}

func TestRepoFailsWhenRefreshFailsOverEmptyCache(t *testing.T) {
	s := newLoaderStore(t)
	f := &fakeFetcher{err: assert.AnError}
	repo := NewRepo(s, NewLoader(f, s), "https://example.test/feed.json.zip", 24*time.Hour)

	_, err := repo.Find(context.Background(), "1")
	require.Error(t, err)
}

func TestRepoZeroTTLNeverRefreshes(t *testing.T) {
	s := newLoaderStore(t)
	ctx := context.Background()

	f := &fakeFetcher{payload: zipPayload(t, "feed.json",
		`[{"ariregistri_kood": 4, "nimi": "Igavene OÜ"}]`)}
	loader := NewLoader(f, s)
	_, err := loader.Load(ctx, "https://example.test/feed.json.zip")
	require.NoError(t, err)

	require.NoError(t, s.SetLoadedAt(ctx, time.Now().Add(-365*24*time.Hour)))
	f.err = assert.AnError

	repo := NewRepo(s, loader, "https://example.test/feed.json.zip", 0)
	got, err := repo.Find(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, "Igavene OÜ", got.Name)
}
