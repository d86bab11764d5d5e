package ports

import (
	"context"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

// BlogPatch carries a partial update; empty fields are left untouched.
type BlogPatch struct {
	Title        string
	Content      string
	ThumbnailURL string
}

// BlogRepository defines persistence for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	// Search returns posts whose title contains query (case-insensitive),
	// newest update first. An empty query matches everything.
	Search(ctx context.Context, query string) ([]domain.Blog, error)
	Update(ctx context.Context, id string, patch BlogPatch) (*domain.Blog, error)
	// Delete removes the post and returns the removed record.
	Delete(ctx context.Context, id string) (*domain.Blog, error)
}
