package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
	"github.com/inkwell-blog/inkwell/internal/core/ports"
)

const thumbnailFolder = "thumbnails"

// BlogCache abstracts the read cache for blog detail lookups (Redis).
// A nil-result, nil-error Get means cache miss.
type BlogCache interface {
	Get(ctx context.Context, id string) (*domain.Blog, error)
	Set(ctx context.Context, blog *domain.Blog) error
	Invalidate(ctx context.Context, id string) error
}

// BlogService implements blog CRUD over the repository, the asset host, and
// a read-through cache.
type BlogService struct {
	repo     ports.BlogRepository
	uploader ports.Uploader
	cache    BlogCache
	log      zerolog.Logger
}

func NewBlogService(repo ports.BlogRepository, uploader ports.Uploader, cache BlogCache, log zerolog.Logger) *BlogService {
	return &BlogService{repo: repo, uploader: uploader, cache: cache, log: log}
}

func (s *BlogService) Create(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
	if in.Title == "" || in.Content == "" {
		return nil, domain.ErrValidation
	}
	if in.Thumbnail.Reader == nil {
		return nil, fmt.Errorf("%w: thumbnail file is required", domain.ErrValidation)
	}

	thumbnailURL, err := s.uploader.Upload(ctx, thumbnailFolder, in.Thumbnail)
	if err != nil {
		s.log.Error().Err(err).Str("author_id", in.AuthorID).Msg("thumbnail upload failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}

	now := time.Now().UTC()
	blog := &domain.Blog{
		Title:        in.Title,
		Content:      in.Content,
		ThumbnailURL: thumbnailURL,
		AuthorID:     in.AuthorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("blog_id", created.ID).Str("author_id", created.AuthorID).Msg("blog created")
	return created, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("blog_id", id).Msg("cache lookup failed, reading store")
	} else if cached != nil {
		return cached, nil
	}

	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, blog); err != nil {
		s.log.Warn().Err(err).Str("blog_id", id).Msg("cache fill failed")
	}
	return blog, nil
}

func (s *BlogService) List(ctx context.Context, query string) ([]domain.Blog, error) {
	return s.repo.Search(ctx, query)
}

func (s *BlogService) Update(ctx context.Context, in ports.UpdateBlogInput) (*domain.Blog, error) {
	patch := ports.BlogPatch{Title: in.Title, Content: in.Content}

	if in.Thumbnail != nil {
		url, err := s.uploader.Upload(ctx, thumbnailFolder, *in.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpload, err)
		}
		patch.ThumbnailURL = url
	}

	if patch.Title == "" && patch.Content == "" && patch.ThumbnailURL == "" {
		return nil, fmt.Errorf("%w: at least one field is required", domain.ErrValidation)
	}

	updated, err := s.repo.Update(ctx, in.ID, patch)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, in.ID); err != nil {
		s.log.Warn().Err(err).Str("blog_id", in.ID).Msg("cache invalidation failed")
	}
	return updated, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) (*domain.Blog, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("blog_id", id).Msg("cache invalidation failed")
	}

	s.log.Info().Str("blog_id", id).Msg("blog deleted")
	return deleted, nil
}
