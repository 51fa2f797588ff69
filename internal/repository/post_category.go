package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostCategoryRepository defines persistence operations for post-categories.
type PostCategoryRepository interface {
	Create(ctx context.Context, pc *models.PostCategory) error
	GetByID(ctx context.Context, id uint) (*models.PostCategory, error)
	GetActiveByID(ctx context.Context, id uint) (*models.PostCategory, error)
	List(ctx context.Context, filter TaxonomyFilter) ([]*models.PostCategory, error)
	ListActiveWithCounts(ctx context.Context) ([]*models.PostCategory, error)
	Update(ctx context.Context, pc *models.PostCategory) error
	Delete(ctx context.Context, id uint) error
}

type postCategoryRepository struct {
	db *gorm.DB
}

// NewPostCategoryRepository returns a new PostCategoryRepository implementation.
func NewPostCategoryRepository(db *gorm.DB) PostCategoryRepository {
	return &postCategoryRepository{db: db}
}

func (r *postCategoryRepository) Create(ctx context.Context, pc *models.PostCategory) error {
	if err := r.db.WithContext(ctx).Create(pc).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTaxonomyReads(ctx)
	return nil
}

func (r *postCategoryRepository) GetByID(ctx context.Context, id uint) (*models.PostCategory, error) {
	var pc models.PostCategory
	if err := r.db.WithContext(ctx).First(&pc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &pc, nil
}

// GetActiveByID is the public by-id path: an inactive post-category yields the
// same not-found outcome as a missing one.
func (r *postCategoryRepository) GetActiveByID(ctx context.Context, id uint) (*models.PostCategory, error) {
	var pc models.PostCategory
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, true).
		First(&pc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &pc, nil
}

func (r *postCategoryRepository) List(ctx context.Context, filter TaxonomyFilter) ([]*models.PostCategory, error) {
	var pcs []*models.PostCategory
	if err := applyTaxonomyFilter(r.db.WithContext(ctx), filter).
		Find(&pcs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return pcs, nil
}

// ListActiveWithCounts returns active post-categories, each carrying the count
// of its published posts as a SELECT alias.
func (r *postCategoryRepository) ListActiveWithCounts(ctx context.Context) ([]*models.PostCategory, error) {
	var pcs []*models.PostCategory
	err := cache.Aside(ctx, cache.ActivePostCatsKey, &pcs, cache.TaxonomyTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.PostCategory{}).
			Select("post_categories.*, " +
				"(SELECT COUNT(*) FROM posts WHERE posts.post_category_id = post_categories.id AND posts.published = true) as post_count").
			Where("status = ?", true).
			Order("created_at DESC").
			Find(&pcs).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pcs, nil
}

func (r *postCategoryRepository) Update(ctx context.Context, pc *models.PostCategory) error {
	if err := r.db.WithContext(ctx).Save(pc).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTaxonomyReads(ctx)
	return nil
}

func (r *postCategoryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.PostCategory{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTaxonomyReads(ctx)
	return nil
}
