package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
	"github.com/inkwell-blog/inkwell/internal/core/ports"
)

const blogsCollection = "blogs"

type BlogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{coll: db.Collection(blogsCollection)}
}

type mongoBlog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Content      string             `bson:"content"`
	ThumbnailURL string             `bson:"thumbnail_url"`
	AuthorID     string             `bson:"author_id"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (mb *mongoBlog) toDomain() *domain.Blog {
	return &domain.Blog{
		ID:           mb.ID.Hex(),
		Title:        mb.Title,
		Content:      mb.Content,
		ThumbnailURL: mb.ThumbnailURL,
		AuthorID:     mb.AuthorID,
		CreatedAt:    mb.CreatedAt,
		UpdatedAt:    mb.UpdatedAt,
	}
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBlog{
		Title:        blog.Title,
		Content:      blog.Content,
		ThumbnailURL: blog.ThumbnailURL,
		AuthorID:     blog.AuthorID,
		CreatedAt:    blog.CreatedAt,
		UpdatedAt:    blog.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}

	created := *blog
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBlog
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return mb.toDomain(), nil
}

// Search lists posts with an optional case-insensitive title filter, newest
// update first.
func (r *BlogRepository) Search(ctx context.Context, query string) ([]domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search blogs: %w", err)
	}
	defer cursor.Close(ctx)

	blogs := []domain.Blog{}
	for cursor.Next(ctx) {
		var mb mongoBlog
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode blog: %w", err)
		}
		blogs = append(blogs, *mb.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("search blogs: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) Update(ctx context.Context, id string, patch ports.BlogPatch) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBlogNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != "" {
		set["title"] = patch.Title
	}
	if patch.Content != "" {
		set["content"] = patch.Content
	}
	if patch.ThumbnailURL != "" {
		set["thumbnail_url"] = patch.ThumbnailURL
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mb mongoBlog
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBlog
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("delete blog: %w", err)
	}
	return mb.toDomain(), nil
}

// EnsureIndexes creates the lookup indexes for the blogs collection.
func (r *BlogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
