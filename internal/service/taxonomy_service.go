package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// TaxonomyService handles both classification axes. Public paths force
// status=true; admin paths see everything.
type TaxonomyService struct {
	categoryRepo repository.CategoryRepository
	postCatRepo  repository.PostCategoryRepository
	postRepo     repository.PostRepository
}

// CategoryInput is the admin create/update payload for a category.
type CategoryInput struct {
	Name        string
	Description string
	Status      *bool
}

// PostCategoryInput is the admin create/update payload for a post-category.
type PostCategoryInput struct {
	Name        string
	Description string
	Image       string
	Status      *bool
}

// PostCategoryDetail bundles an active post-category with its published posts
// for the public by-id page.
type PostCategoryDetail struct {
	PostCategory *models.PostCategory `json:"post_category"`
	Posts        []*models.Post       `json:"posts"`
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(
	categoryRepo repository.CategoryRepository,
	postCatRepo repository.PostCategoryRepository,
	postRepo repository.PostRepository,
) *TaxonomyService {
	return &TaxonomyService{
		categoryRepo: categoryRepo,
		postCatRepo:  postCatRepo,
		postRepo:     postRepo,
	}
}

// ListActiveCategories is the public category listing: status=true forced.
func (s *TaxonomyService) ListActiveCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

// ListActivePostCategories is the public post-category listing with published
// post counts.
func (s *TaxonomyService) ListActivePostCategories(ctx context.Context) ([]*models.PostCategory, error) {
	return s.postCatRepo.ListActiveWithCounts(ctx)
}

// GetPostCategoryDetail resolves the public by-id page: an inactive or missing
// post-category yields not found, never the payload.
func (s *TaxonomyService) GetPostCategoryDetail(ctx context.Context, id uint) (*PostCategoryDetail, error) {
	pc, err := s.postCatRepo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListPublishedByPostCategory(ctx, pc.ID)
	if err != nil {
		return nil, err
	}
	return &PostCategoryDetail{PostCategory: pc, Posts: posts}, nil
}

// ListCategories is the admin listing with optional filters.
func (s *TaxonomyService) ListCategories(ctx context.Context, filter repository.TaxonomyFilter) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, filter)
}

// ListPostCategories is the admin listing with optional filters.
func (s *TaxonomyService) ListPostCategories(ctx context.Context, filter repository.TaxonomyFilter) ([]*models.PostCategory, error) {
	return s.postCatRepo.List(ctx, filter)
}

// GetCategory returns a category by id regardless of status (admin path).
func (s *TaxonomyService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// GetPostCategory returns a post-category by id regardless of status (admin path).
func (s *TaxonomyService) GetPostCategory(ctx context.Context, id uint) (*models.PostCategory, error) {
	return s.postCatRepo.GetByID(ctx, id)
}

// CreateCategory validates and persists a new category. Status defaults to
// active when omitted.
func (s *TaxonomyService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := validateTaxonomyName(in.Name); err != nil {
		return nil, err
	}
	category := &models.Category{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status == nil || *in.Status,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory replaces the mutable fields of a category.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateTaxonomyName(in.Name); err != nil {
		return nil, err
	}
	category.Name = in.Name
	category.Description = in.Description
	if in.Status != nil {
		category.Status = *in.Status
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory hard-deletes a category after confirming it exists.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

// CreatePostCategory validates and persists a new post-category.
func (s *TaxonomyService) CreatePostCategory(ctx context.Context, in PostCategoryInput) (*models.PostCategory, error) {
	if err := validateTaxonomyName(in.Name); err != nil {
		return nil, err
	}
	pc := &models.PostCategory{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Status:      in.Status == nil || *in.Status,
	}
	if err := s.postCatRepo.Create(ctx, pc); err != nil {
		return nil, err
	}
	return pc, nil
}

// UpdatePostCategory replaces the mutable fields of a post-category.
func (s *TaxonomyService) UpdatePostCategory(ctx context.Context, id uint, in PostCategoryInput) (*models.PostCategory, error) {
	pc, err := s.postCatRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateTaxonomyName(in.Name); err != nil {
		return nil, err
	}
	pc.Name = in.Name
	pc.Description = in.Description
	pc.Image = in.Image
	if in.Status != nil {
		pc.Status = *in.Status
	}
	if err := s.postCatRepo.Update(ctx, pc); err != nil {
		return nil, err
	}
	return pc, nil
}

// DeletePostCategory hard-deletes a post-category after confirming it exists.
func (s *TaxonomyService) DeletePostCategory(ctx context.Context, id uint) error {
	if _, err := s.postCatRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.postCatRepo.Delete(ctx, id)
}

func validateTaxonomyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("Name is required")
	}
	if len(name) > 100 {
		return models.NewValidationError("Name too long (max 100 characters)")
	}
	return nil
}
