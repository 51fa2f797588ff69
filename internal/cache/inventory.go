package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PublishedFeedKey    = "posts:published"
	TagUniverseKey      = "posts:tags"
	PostSlugKeyPrefix   = "post:slug:%s"
	ActiveCategoriesKey = "categories:active"
	ActivePostCatsKey   = "postcategories:active"
)

const (
	FeedTTL        = 2 * time.Minute
	PostTTL        = 10 * time.Minute
	TagUniverseTTL = 5 * time.Minute
	TaxonomyTTL    = 10 * time.Minute
)

func PostSlugKey(slug string) string {
	return fmt.Sprintf(PostSlugKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePostReads drops every cached public read derived from posts.
// Called on any post write; slug entries are dropped individually.
func InvalidatePostReads(ctx context.Context, slugs ...string) {
	Invalidate(ctx, PublishedFeedKey)
	Invalidate(ctx, TagUniverseKey)
	Invalidate(ctx, ActivePostCatsKey)
	for _, s := range slugs {
		if s != "" {
			Invalidate(ctx, PostSlugKey(s))
		}
	}
}

// InvalidateTaxonomyReads drops cached public taxonomy listings.
func InvalidateTaxonomyReads(ctx context.Context) {
	Invalidate(ctx, ActiveCategoriesKey)
	Invalidate(ctx, ActivePostCatsKey)
}
