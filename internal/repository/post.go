// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. Each public
// access pattern gets its own named method so the visibility rules it carries
// are explicit and testable in isolation.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	GetBySlugPublished(ctx context.Context, slug string) (*models.Post, error)
	ListPublished(ctx context.Context) ([]*models.Post, error)
	ListPublishedByTag(ctx context.Context, tag string) ([]*models.Post, error)
	ListPublishedByPostCategory(ctx context.Context, postCategoryID uint) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error)
	GetByIDForAuthor(ctx context.Context, id, authorID uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	PublishedTagStrings(ctx context.Context) ([]string, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Slug already in use")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePostReads(ctx, post.Slug)
	return nil
}

// SlugExists reports whether any post, published or not, carries the slug.
func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// GetBySlugPublished resolves the public detail path. Drafts are
// indistinguishable from absent rows.
func (r *postRepository) GetBySlugPublished(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostSlugKey(slug), &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Author").
			Where("slug = ? AND published = ?", slug, true).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.PublishedFeedKey, &posts, cache.FeedTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Author").
			Where("published = ?", true).
			Order("created_at DESC").
			Find(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedByTag is a raw case-insensitive substring match against the
// comma-separated tags column. A short tag can over-match ("a" matches
// "java"); that behavior is intentional and covered by tests.
func (r *postRepository) ListPublishedByTag(ctx context.Context, tag string) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + tag + "%"
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("published = ? AND LOWER(tags) LIKE LOWER(?)", true, like).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListPublishedByPostCategory(ctx context.Context, postCategoryID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("PostCategory").
		Where("published = ? AND post_category_id = ?", true, postCategoryID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListByAuthor backs the admin list: every post of the author, drafts included.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// GetByIDForAuthor scopes the lookup by author so "exists but not yours" and
// "does not exist" collapse into the same not-found outcome.
func (r *postRepository) GetByIDForAuthor(ctx context.Context, id, authorID uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("PostCategory").
		Where("id = ? AND author_id = ?", id, authorID).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Slug already in use")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePostReads(ctx, post.Slug)
	return nil
}

// Delete removes the row permanently; the schema has no soft-delete state.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	var post models.Post
	if err := r.db.WithContext(ctx).Select("slug").First(&post, id).Error; err == nil {
		defer cache.InvalidatePostReads(ctx, post.Slug)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// PublishedTagStrings returns the raw tags column of every published post.
// The tag universe is derived from these in the service layer.
func (r *postRepository) PublishedTagStrings(ctx context.Context) ([]string, error) {
	var tags []string
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("published = ?", true).
		Pluck("tags", &tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
