package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type feedEntry struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func TestAsideFetchesOnMissThenServesFromCache(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *[]feedEntry) func() error {
		return func() error {
			fetches++
			*dest = []feedEntry{{Slug: "hello", Title: "Hello"}}
			return nil
		}
	}

	var first []feedEntry
	require.NoError(t, Aside(ctx, PublishedFeedKey, &first, FeedTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	require.Len(t, first, 1)

	var second []feedEntry
	require.NoError(t, Aside(ctx, PublishedFeedKey, &second, FeedTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read must be served from cache")
	assert.Equal(t, first, second)
}

func TestAsidePropagatesFetchErrorAndCachesNothing(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	var dest []feedEntry
	err := Aside(ctx, TagUniverseKey, &dest, TagUniverseTTL, func() error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, mr.Exists(TagUniverseKey))
}

func TestAsideWithoutClientAlwaysFetches(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	for i := 0; i < 3; i++ {
		var dest []feedEntry
		require.NoError(t, Aside(ctx, PublishedFeedKey, &dest, FeedTTL, func() error {
			fetches++
			dest = append(dest, feedEntry{Slug: "s"})
			return nil
		}))
	}
	assert.Equal(t, 3, fetches)
}

func TestGetJSONMissAndHit(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	var dest feedEntry
	found, err := GetJSON(ctx, PostSlugKey("nope"), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, PostSlugKey("yep"), feedEntry{Slug: "yep", Title: "Yep"}, PostTTL))
	found, err = GetJSON(ctx, PostSlugKey("yep"), &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "yep", dest.Slug)
}

func TestSetJSONAppliesTTL(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PublishedFeedKey, []feedEntry{}, 2*time.Minute))
	require.True(t, mr.Exists(PublishedFeedKey))

	mr.FastForward(3 * time.Minute)
	assert.False(t, mr.Exists(PublishedFeedKey))
}

func TestInvalidatePostReadsDropsDerivedKeys(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	for _, key := range []string{
		PublishedFeedKey,
		TagUniverseKey,
		ActivePostCatsKey,
		ActiveCategoriesKey,
		PostSlugKey("hello"),
		PostSlugKey("other"),
	} {
		require.NoError(t, SetJSON(ctx, key, "x", time.Minute))
	}

	InvalidatePostReads(ctx, "hello", "")

	assert.False(t, mr.Exists(PublishedFeedKey))
	assert.False(t, mr.Exists(TagUniverseKey))
	assert.False(t, mr.Exists(ActivePostCatsKey))
	assert.False(t, mr.Exists(PostSlugKey("hello")))
	// untouched: categories listing and unrelated slugs
	assert.True(t, mr.Exists(ActiveCategoriesKey))
	assert.True(t, mr.Exists(PostSlugKey("other")))
}

func TestInvalidateTaxonomyReads(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ActiveCategoriesKey, "x", time.Minute))
	require.NoError(t, SetJSON(ctx, ActivePostCatsKey, "x", time.Minute))
	require.NoError(t, SetJSON(ctx, PublishedFeedKey, "x", time.Minute))

	InvalidateTaxonomyReads(ctx)

	assert.False(t, mr.Exists(ActiveCategoriesKey))
	assert.False(t, mr.Exists(ActivePostCatsKey))
	assert.True(t, mr.Exists(PublishedFeedKey))
}
