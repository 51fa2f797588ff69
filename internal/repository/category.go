package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// TaxonomyFilter holds the optional admin list filters shared by both
// taxonomies. Zero values mean "no filter".
type TaxonomyFilter struct {
	Query  string // case-insensitive substring on name or description
	Status *bool  // exact match
	SortBy string // "name" or "" (created_at DESC)
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context, filter TaxonomyFilter) ([]*models.Category, error)
	ListActive(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTaxonomyReads(ctx)
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

// List backs the admin view: inactive categories are included unless the
// filter excludes them.
func (r *categoryRepository) List(ctx context.Context, filter TaxonomyFilter) ([]*models.Category, error) {
	var categories []*models.Category
	if err := applyTaxonomyFilter(r.db.WithContext(ctx), filter).
		Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// ListActive is the public path: status=true forced, no override.
func (r *categoryRepository) ListActive(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := cache.Aside(ctx, cache.ActiveCategoriesKey, &categories, cache.TaxonomyTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("status = ?", true).
			Order("created_at DESC").
			Find(&categories).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTaxonomyReads(ctx)
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Category{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTaxonomyReads(ctx)
	return nil
}

// applyTaxonomyFilter appends the shared WHERE/ORDER BY clauses for admin
// taxonomy listings.
func applyTaxonomyFilter(db *gorm.DB, filter TaxonomyFilter) *gorm.DB {
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		db = db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.SortBy == "name" {
		return db.Order("name ASC")
	}
	return db.Order("created_at DESC")
}
