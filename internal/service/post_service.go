package service

import (
	"context"
	"sort"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const (
	maxTitleLen   = 300
	maxContentLen = 100000
	maxTagsLen    = 500
)

// PostService enforces the content-addressing rules: slug uniqueness at write
// time, published-only public reads, and author-scoped admin access.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the admin create payload. AuthorID comes from the
// authenticated identity, never from the request body.
type CreatePostInput struct {
	AuthorID       uint
	Title          string
	Content        string
	Slug           string
	Tags           string
	Image          string
	Published      bool
	CategoryID     *uint
	PostCategoryID *uint
}

// UpdatePostInput carries the admin PATCH payload. Nil pointers mean "leave
// unchanged"; a zero CategoryID/PostCategoryID clears the link.
type UpdatePostInput struct {
	AuthorID       uint
	PostID         uint
	Title          *string
	Content        *string
	Slug           *string
	Tags           *string
	Image          *string
	Published      *bool
	CategoryID     *uint
	PostCategoryID *uint
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPublicFeed returns published posts, newest first. A non-empty tag
// filters by raw substring match against the tags column (over-match on short
// tags is deliberate, inherited behavior).
func (s *PostService) ListPublicFeed(ctx context.Context, tag string) ([]*models.Post, error) {
	if tag != "" {
		return s.postRepo.ListPublishedByTag(ctx, tag)
	}
	return s.postRepo.ListPublished(ctx)
}

// GetPublishedBySlug resolves the public detail page. Drafts report not found.
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, models.NewValidationError("Slug is required")
	}
	return s.postRepo.GetBySlugPublished(ctx, slug)
}

// TagUniverse derives the browsable tag set from published posts: split on
// commas, trim, dedupe, sort. The computation is idempotent and independent
// of row order.
func (s *PostService) TagUniverse(ctx context.Context) ([]string, error) {
	tags := []string{}
	err := cache.Aside(ctx, cache.TagUniverseKey, &tags, cache.TagUniverseTTL, func() error {
		raw, err := s.postRepo.PublishedTagStrings(ctx)
		if err != nil {
			return err
		}
		seen := map[string]struct{}{}
		tags = tags[:0]
		for _, line := range raw {
			for _, t := range strings.Split(line, ",") {
				t = strings.TrimSpace(t)
				if t == "" {
					continue
				}
				if _, dup := seen[t]; dup {
					continue
				}
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
		sort.Strings(tags)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// ListOwn returns every post of the author, drafts included, newest first.
func (s *PostService) ListOwn(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID)
}

// GetOwn returns the post only when the caller authored it; any other outcome
// is the uniform not-found.
func (s *PostService) GetOwn(ctx context.Context, postID, authorID uint) (*models.Post, error) {
	return s.postRepo.GetByIDForAuthor(ctx, postID, authorID)
}

// Create validates and persists a new post. Published defaults to the zero
// value (false) unless the caller asks otherwise. Slug uniqueness is enforced
// both by pre-check and by the unique index.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 100000 characters)")
	}
	if len(in.Tags) > maxTagsLen {
		return nil, models.NewValidationError("Tags too long (max 500 characters)")
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = validation.Slugify(in.Title)
	}
	if err := validation.ValidateSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	exists, err := s.postRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("Slug already in use")
	}

	post := &models.Post{
		Title:          in.Title,
		Content:        in.Content,
		Slug:           slug,
		Tags:           in.Tags,
		Image:          in.Image,
		Published:      in.Published,
		AuthorID:       in.AuthorID,
		CategoryID:     normalizeRef(in.CategoryID),
		PostCategoryID: normalizeRef(in.PostCategoryID),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByIDForAuthor(ctx, post.ID, in.AuthorID)
}

// UpdateOwn applies a partial update after the ownership check passes. A slug
// change re-runs format and uniqueness validation; the old slug's cached
// detail entry is dropped alongside the new one.
func (s *PostService) UpdateOwn(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByIDForAuthor(ctx, in.PostID, in.AuthorID)
	if err != nil {
		return nil, err
	}
	oldSlug := post.Slug

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content is required")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 100000 characters)")
		}
		post.Content = *in.Content
	}
	if in.Slug != nil && *in.Slug != post.Slug {
		slug := strings.TrimSpace(*in.Slug)
		if err := validation.ValidateSlug(slug); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		exists, err := s.postRepo.SlugExists(ctx, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, models.NewValidationError("Slug already in use")
		}
		post.Slug = slug
	}
	if in.Tags != nil {
		if len(*in.Tags) > maxTagsLen {
			return nil, models.NewValidationError("Tags too long (max 500 characters)")
		}
		post.Tags = *in.Tags
	}
	if in.Image != nil {
		post.Image = *in.Image
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if in.CategoryID != nil {
		post.CategoryID = normalizeRef(in.CategoryID)
		post.Category = nil
	}
	if in.PostCategoryID != nil {
		post.PostCategoryID = normalizeRef(in.PostCategoryID)
		post.PostCategory = nil
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	if oldSlug != post.Slug {
		cache.InvalidatePostReads(ctx, oldSlug)
	}
	return s.postRepo.GetByIDForAuthor(ctx, post.ID, in.AuthorID)
}

// DeleteOwn hard-deletes the post after the ownership check passes.
func (s *PostService) DeleteOwn(ctx context.Context, postID, authorID uint) error {
	post, err := s.postRepo.GetByIDForAuthor(ctx, postID, authorID)
	if err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, post.ID)
}

// normalizeRef maps a zero id to nil so "0" clears an optional taxonomy link.
func normalizeRef(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}
