package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Username         string             `bson:"username"`
	Email            string             `bson:"email"`
	FullName         string             `bson:"full_name"`
	PasswordHash     string             `bson:"password_hash"`
	AvatarURL        string             `bson:"avatar_url,omitempty"`
	RefreshToken     string             `bson:"refresh_token,omitempty"`
	ResetTokenHash   string             `bson:"reset_token_hash,omitempty"`
	ResetTokenExpiry time.Time          `bson:"reset_token_expiry,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:               mu.ID.Hex(),
		Username:         mu.Username,
		Email:            mu.Email,
		FullName:         mu.FullName,
		PasswordHash:     mu.PasswordHash,
		AvatarURL:        mu.AvatarURL,
		RefreshToken:     mu.RefreshToken,
		ResetTokenHash:   mu.ResetTokenHash,
		ResetTokenExpiry: mu.ResetTokenExpiry,
		CreatedAt:        mu.CreatedAt,
		UpdatedAt:        mu.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		PasswordHash: user.PasswordHash,
		AvatarURL:    user.AvatarURL,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByResetTokenHash resolves a pending reset. The expiry filter is strict:
// a token is unusable at and after its expiry instant.
func (r *UserRepository) FindByResetTokenHash(ctx context.Context, digest string, now time.Time) (*domain.User, error) {
	return r.findOne(ctx, bson.M{
		"reset_token_hash":   digest,
		"reset_token_expiry": bson.M{"$gt": now},
	})
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return r.updateByID(ctx, userID, bson.M{
			"$unset": bson.M{"refresh_token": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		})
	}
	return r.updateByID(ctx, userID, bson.M{
		"$set": bson.M{"refresh_token": token, "updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, userID, hash string) error {
	return r.updateByID(ctx, userID, bson.M{
		"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID, digest string, expiry time.Time) error {
	return r.updateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"reset_token_hash":   digest,
			"reset_token_expiry": expiry,
			"updated_at":         time.Now().UTC(),
		},
	})
}

func (r *UserRepository) ClearResetToken(ctx context.Context, userID string) error {
	return r.updateByID(ctx, userID, bson.M{
		"$unset": bson.M{"reset_token_hash": "", "reset_token_expiry": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID, fullName, email string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{
		"$set": bson.M{"full_name": fullName, "email": email, "updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{
		"$set": bson.M{"avatar_url": avatarURL, "updated_at": time.Now().UTC()},
	})
}

// EnsureIndexes creates the unique indexes backing the username/email
// uniqueness invariant.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reset_token_hash", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) updateByID(ctx context.Context, userID string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, userID string, update bson.M) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mu mongoUser
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}
