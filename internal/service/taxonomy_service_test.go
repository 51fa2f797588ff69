package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn     func(context.Context, *models.Category) error
	getByIDFn    func(context.Context, uint) (*models.Category, error)
	listFn       func(context.Context, repository.TaxonomyFilter) ([]*models.Category, error)
	listActiveFn func(context.Context) ([]*models.Category, error)
	updateFn     func(context.Context, *models.Category) error
	deleteFn     func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, c *models.Category) error {
	return s.createFn(ctx, c)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) List(ctx context.Context, f repository.TaxonomyFilter) ([]*models.Category, error) {
	return s.listFn(ctx, f)
}
func (s *categoryRepoStub) ListActive(ctx context.Context) ([]*models.Category, error) {
	return s.listActiveFn(ctx)
}
func (s *categoryRepoStub) Update(ctx context.Context, c *models.Category) error {
	return s.updateFn(ctx, c)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// postCategoryRepoStub is a stub for repository.PostCategoryRepository.
type postCategoryRepoStub struct {
	createFn          func(context.Context, *models.PostCategory) error
	getByIDFn         func(context.Context, uint) (*models.PostCategory, error)
	getActiveByIDFn   func(context.Context, uint) (*models.PostCategory, error)
	listFn            func(context.Context, repository.TaxonomyFilter) ([]*models.PostCategory, error)
	listActiveCountFn func(context.Context) ([]*models.PostCategory, error)
	updateFn          func(context.Context, *models.PostCategory) error
	deleteFn          func(context.Context, uint) error
}

func (s *postCategoryRepoStub) Create(ctx context.Context, pc *models.PostCategory) error {
	return s.createFn(ctx, pc)
}
func (s *postCategoryRepoStub) GetByID(ctx context.Context, id uint) (*models.PostCategory, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postCategoryRepoStub) GetActiveByID(ctx context.Context, id uint) (*models.PostCategory, error) {
	return s.getActiveByIDFn(ctx, id)
}
func (s *postCategoryRepoStub) List(ctx context.Context, f repository.TaxonomyFilter) ([]*models.PostCategory, error) {
	return s.listFn(ctx, f)
}
func (s *postCategoryRepoStub) ListActiveWithCounts(ctx context.Context) ([]*models.PostCategory, error) {
	return s.listActiveCountFn(ctx)
}
func (s *postCategoryRepoStub) Update(ctx context.Context, pc *models.PostCategory) error {
	return s.updateFn(ctx, pc)
}
func (s *postCategoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn:  func(_ context.Context, _ *models.Category) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) { return &models.Category{ID: id}, nil },
		listFn: func(_ context.Context, _ repository.TaxonomyFilter) ([]*models.Category, error) {
			return nil, nil
		},
		listActiveFn: func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

func noopPostCategoryRepo() *postCategoryRepoStub {
	return &postCategoryRepoStub{
		createFn: func(_ context.Context, _ *models.PostCategory) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.PostCategory, error) {
			return &models.PostCategory{ID: id}, nil
		},
		getActiveByIDFn: func(_ context.Context, id uint) (*models.PostCategory, error) {
			return &models.PostCategory{ID: id, Status: true}, nil
		},
		listFn: func(_ context.Context, _ repository.TaxonomyFilter) ([]*models.PostCategory, error) {
			return nil, nil
		},
		listActiveCountFn: func(_ context.Context) ([]*models.PostCategory, error) { return nil, nil },
		updateFn:          func(_ context.Context, _ *models.PostCategory) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
	}
}

func newTaxonomyServiceForTest(catRepo *categoryRepoStub, pcRepo *postCategoryRepoStub, postRepo *postRepoStub) *TaxonomyService {
	if catRepo == nil {
		catRepo = noopCategoryRepo()
	}
	if pcRepo == nil {
		pcRepo = noopPostCategoryRepo()
	}
	if postRepo == nil {
		postRepo = noopPostRepo()
	}
	return NewTaxonomyService(catRepo, pcRepo, postRepo)
}

func TestTaxonomyService_CreateCategory_StatusDefaultsActive(t *testing.T) {
	t.Parallel()

	catRepo := noopCategoryRepo()
	var created *models.Category
	catRepo.createFn = func(_ context.Context, c *models.Category) error {
		created = c
		return nil
	}
	svc := newTaxonomyServiceForTest(catRepo, nil, nil)

	_, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "News"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.Status)

	// explicit false survives
	inactive := false
	_, err = svc.CreateCategory(context.Background(), CategoryInput{Name: "Old", Status: &inactive})
	require.NoError(t, err)
	assert.False(t, created.Status)
}

func TestTaxonomyService_CreateCategory_NameRequired(t *testing.T) {
	t.Parallel()

	svc := newTaxonomyServiceForTest(nil, nil, nil)

	_, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "   "})
	assertValidationError(t, err)
}

func TestTaxonomyService_GetPostCategoryDetail_InactiveIsNotFound(t *testing.T) {
	t.Parallel()

	pcRepo := noopPostCategoryRepo()
	pcRepo.getActiveByIDFn = func(_ context.Context, id uint) (*models.PostCategory, error) {
		return nil, models.NewNotFoundError("Post category", id)
	}
	listCalled := false
	postRepo := noopPostRepo()
	postRepo.listByPostCatFn = func(_ context.Context, _ uint) ([]*models.Post, error) {
		listCalled = true
		return nil, nil
	}
	svc := newTaxonomyServiceForTest(nil, pcRepo, postRepo)

	_, err := svc.GetPostCategoryDetail(context.Background(), 42)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.False(t, listCalled, "posts must not be fetched for an inactive entry")
}

func TestTaxonomyService_GetPostCategoryDetail_BundlesPublishedPosts(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.listByPostCatFn = func(_ context.Context, id uint) ([]*models.Post, error) {
		return []*models.Post{{ID: 1, PostCategoryID: &id, Published: true}}, nil
	}
	svc := newTaxonomyServiceForTest(nil, nil, postRepo)

	detail, err := svc.GetPostCategoryDetail(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, detail.PostCategory)
	assert.Equal(t, uint(7), detail.PostCategory.ID)
	require.Len(t, detail.Posts, 1)
}

func TestTaxonomyService_UpdateCategory_MissingIsNotFound(t *testing.T) {
	t.Parallel()

	catRepo := noopCategoryRepo()
	catRepo.getByIDFn = func(_ context.Context, id uint) (*models.Category, error) {
		return nil, models.NewNotFoundError("Category", id)
	}
	svc := newTaxonomyServiceForTest(catRepo, nil, nil)

	_, err := svc.UpdateCategory(context.Background(), 9, CategoryInput{Name: "x"})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestTaxonomyService_DeleteChecksExistence(t *testing.T) {
	t.Parallel()

	pcRepo := noopPostCategoryRepo()
	pcRepo.getByIDFn = func(_ context.Context, id uint) (*models.PostCategory, error) {
		return nil, models.NewNotFoundError("Post category", id)
	}
	deleteCalled := false
	pcRepo.deleteFn = func(_ context.Context, _ uint) error {
		deleteCalled = true
		return nil
	}
	svc := newTaxonomyServiceForTest(nil, pcRepo, nil)

	err := svc.DeletePostCategory(context.Background(), 3)
	require.Error(t, err)
	assert.False(t, deleteCalled)
}
