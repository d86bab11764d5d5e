package ports

import (
	"context"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

// CreateBlogInput carries the validated creation form. The thumbnail is
// required and is uploaded to the asset host before the record is written.
type CreateBlogInput struct {
	AuthorID  string
	Title     string
	Content   string
	Thumbnail FileUpload
}

// UpdateBlogInput carries a partial edit; at least one of Title, Content, or
// Thumbnail must be present.
type UpdateBlogInput struct {
	ID        string
	Title     string
	Content   string
	Thumbnail *FileUpload
}

// BlogService implements blog CRUD on top of the repository, asset host, and
// read cache.
type BlogService interface {
	Create(ctx context.Context, in CreateBlogInput) (*domain.Blog, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context, query string) ([]domain.Blog, error)
	Update(ctx context.Context, in UpdateBlogInput) (*domain.Blog, error)
	Delete(ctx context.Context, id string) (*domain.Blog, error)
}
