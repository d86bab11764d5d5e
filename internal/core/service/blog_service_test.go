package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
	"github.com/inkwell-blog/inkwell/internal/core/ports"
)

type stubBlogRepo struct {
	blogs  map[string]*domain.Blog
	nextID int
	finds  int
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{blogs: make(map[string]*domain.Blog)}
}

func cloneBlog(b *domain.Blog) *domain.Blog {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBlogRepo) Create(_ context.Context, blog *domain.Blog) (*domain.Blog, error) {
	r.nextID++
	created := cloneBlog(blog)
	created.ID = fmt.Sprintf("blog-%d", r.nextID)
	r.blogs[created.ID] = cloneBlog(created)
	return created, nil
}

func (r *stubBlogRepo) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	r.finds++
	if b, ok := r.blogs[id]; ok {
		return cloneBlog(b), nil
	}
	return nil, domain.ErrBlogNotFound
}

func (r *stubBlogRepo) Search(_ context.Context, query string) ([]domain.Blog, error) {
	out := []domain.Blog{}
	for _, b := range r.blogs {
		if query == "" || strings.Contains(strings.ToLower(b.Title), strings.ToLower(query)) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBlogRepo) Update(_ context.Context, id string, patch ports.BlogPatch) (*domain.Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	if patch.Title != "" {
		b.Title = patch.Title
	}
	if patch.Content != "" {
		b.Content = patch.Content
	}
	if patch.ThumbnailURL != "" {
		b.ThumbnailURL = patch.ThumbnailURL
	}
	b.UpdatedAt = time.Now().UTC()
	return cloneBlog(b), nil
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) (*domain.Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return b, nil
}

type stubBlogCache struct {
	entries     map[string]*domain.Blog
	hits        int
	sets        int
	invalidated []string
	failLookups bool
}

func newStubBlogCache() *stubBlogCache {
	return &stubBlogCache{entries: make(map[string]*domain.Blog)}
}

func (c *stubBlogCache) Get(_ context.Context, id string) (*domain.Blog, error) {
	if c.failLookups {
		return nil, errors.New("cache unavailable")
	}
	if b, ok := c.entries[id]; ok {
		c.hits++
		return cloneBlog(b), nil
	}
	return nil, nil
}

func (c *stubBlogCache) Set(_ context.Context, blog *domain.Blog) error {
	c.sets++
	c.entries[blog.ID] = cloneBlog(blog)
	return nil
}

func (c *stubBlogCache) Invalidate(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	delete(c.entries, id)
	return nil
}

type blogServiceFixture struct {
	svc      *BlogService
	repo     *stubBlogRepo
	uploader *stubUploader
	cache    *stubBlogCache
}

func newBlogServiceFixture() *blogServiceFixture {
	repo := newStubBlogRepo()
	uploader := &stubUploader{}
	cache := newStubBlogCache()
	return &blogServiceFixture{
		svc:      NewBlogService(repo, uploader, cache, zerolog.Nop()),
		repo:     repo,
		uploader: uploader,
		cache:    cache,
	}
}

func createBlogInput(title string) ports.CreateBlogInput {
	return ports.CreateBlogInput{
		Title:     title,
		Content:   "some content",
		AuthorID:  "user-1",
		Thumbnail: ports.FileUpload{Filename: "thumb.png", Reader: strings.NewReader("img")},
	}
}

func TestBlogService_Create_Success(t *testing.T) {
	f := newBlogServiceFixture()

	blog, err := f.svc.Create(context.Background(), createBlogInput("Hello"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if blog.ID == "" || blog.AuthorID != "user-1" {
		t.Fatalf("unexpected blog: %+v", blog)
	}
	if blog.ThumbnailURL == "" {
		t.Fatalf("thumbnail URL not set")
	}
}

func TestBlogService_Create_MissingFields(t *testing.T) {
	f := newBlogServiceFixture()

	in := createBlogInput("")
	if _, err := f.svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	in = createBlogInput("Hello")
	in.Thumbnail = ports.FileUpload{}
	if _, err := f.svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing thumbnail, got %v", err)
	}
	if f.uploader.calls != 0 {
		t.Fatalf("uploader must not be called without a file")
	}
}

func TestBlogService_Create_UploadFailure(t *testing.T) {
	f := newBlogServiceFixture()
	f.uploader.fail = true

	if _, err := f.svc.Create(context.Background(), createBlogInput("Hello")); !errors.Is(err, domain.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
}

func TestBlogService_Get_ReadThrough(t *testing.T) {
	f := newBlogServiceFixture()
	created, _ := f.svc.Create(context.Background(), createBlogInput("Hello"))

	// First read misses the cache, hits the store, and fills the cache.
	got, err := f.svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title != "Hello" {
		t.Fatalf("unexpected blog: %+v", got)
	}
	if f.cache.sets != 1 || f.repo.finds != 1 {
		t.Fatalf("expected one store read and one cache fill, got finds=%d sets=%d", f.repo.finds, f.cache.sets)
	}

	// Second read is served from the cache.
	if _, err := f.svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("cached Get returned error: %v", err)
	}
	if f.cache.hits != 1 || f.repo.finds != 1 {
		t.Fatalf("expected cache hit without store read, got hits=%d finds=%d", f.cache.hits, f.repo.finds)
	}
}

func TestBlogService_Get_CacheFailureFallsThrough(t *testing.T) {
	f := newBlogServiceFixture()
	created, _ := f.svc.Create(context.Background(), createBlogInput("Hello"))
	f.cache.failLookups = true

	got, err := f.svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get must survive a cache outage: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("unexpected blog: %+v", got)
	}
}

func TestBlogService_Get_NotFound(t *testing.T) {
	f := newBlogServiceFixture()

	if _, err := f.svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
}

func TestBlogService_List(t *testing.T) {
	f := newBlogServiceFixture()
	_, _ = f.svc.Create(context.Background(), createBlogInput("Go Patterns"))
	_, _ = f.svc.Create(context.Background(), createBlogInput("Cooking"))

	all, err := f.svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(all))
	}

	filtered, err := f.svc.List(context.Background(), "patterns")
	if err != nil {
		t.Fatalf("filtered List returned error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Title != "Go Patterns" {
		t.Fatalf("unexpected search result: %+v", filtered)
	}
}

func TestBlogService_Update(t *testing.T) {
	f := newBlogServiceFixture()
	created, _ := f.svc.Create(context.Background(), createBlogInput("Hello"))
	_, _ = f.svc.Get(context.Background(), created.ID) // warm the cache

	empty := ports.UpdateBlogInput{ID: created.ID}
	if _, err := f.svc.Update(context.Background(), empty); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty patch, got %v", err)
	}

	updated, err := f.svc.Update(context.Background(), ports.UpdateBlogInput{ID: created.ID, Title: "Renamed"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Renamed" || updated.Content != "some content" {
		t.Fatalf("unexpected blog after patch: %+v", updated)
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != created.ID {
		t.Fatalf("stale cache entry not invalidated: %v", f.cache.invalidated)
	}
}

func TestBlogService_Update_WithThumbnail(t *testing.T) {
	f := newBlogServiceFixture()
	created, _ := f.svc.Create(context.Background(), createBlogInput("Hello"))

	updated, err := f.svc.Update(context.Background(), ports.UpdateBlogInput{
		ID:        created.ID,
		Thumbnail: &ports.FileUpload{Filename: "new.png", Reader: strings.NewReader("img2")},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !strings.HasSuffix(updated.ThumbnailURL, "new.png") {
		t.Fatalf("thumbnail not replaced: %q", updated.ThumbnailURL)
	}
}

func TestBlogService_Delete(t *testing.T) {
	f := newBlogServiceFixture()
	created, _ := f.svc.Create(context.Background(), createBlogInput("Hello"))
	_, _ = f.svc.Get(context.Background(), created.ID)

	deleted, err := f.svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("unexpected deleted blog: %+v", deleted)
	}
	if len(f.cache.invalidated) != 1 {
		t.Fatalf("cache entry not invalidated")
	}
	if _, err := f.svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound after delete, got %v", err)
	}
}
