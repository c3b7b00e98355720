package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/pantrypal/backend/internal/apperrors"
	"github.com/pantrypal/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations. The
// relationship mutations are atomic set primitives: adding a member that is
// already present and removing one that is absent are both no-ops, never
// errors, so every caller retry converges.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error)
	AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) (*models.User, error)
	RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) (*models.User, error)
	AddFollowing(ctx context.Context, userID, followeeID primitive.ObjectID) error
	RemoveFollowing(ctx context.Context, userID, followeeID primitive.ObjectID) error
	IncrementPoints(ctx context.Context, id primitive.ObjectID, amount int) error
	GetLeaderboard(ctx context.Context, limit int64) ([]models.User, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser creates a new user with empty relationship sets and zero points
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.Points = 0
	user.Followers = []primitive.ObjectID{}
	user.Following = []primitive.ObjectID{}
	user.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by ID from MongoDB
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from MongoDB
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs retrieves all users whose id is in ids
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var users []models.User
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile updates the mutable profile fields of a user
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	set := bson.M{}
	if req.Username != "" {
		set["username"] = req.Username
	}
	if req.Bio != "" {
		set["bio"] = req.Bio
	}
	if req.ProfilePic != "" {
		set["profile_pic"] = req.ProfilePic
	}
	if len(set) == 0 {
		return r.GetUserByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AddFollower adds followerID to the user's followers set ($addToSet, so a
// duplicate request is a no-op) and returns the updated user.
func (r *MongoUserRepository) AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) (*models.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{"$addToSet": bson.M{"followers": followerID}})
}

// RemoveFollower removes followerID from the user's followers set ($pull,
// absent member is a no-op) and returns the updated user.
func (r *MongoUserRepository) RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) (*models.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{"$pull": bson.M{"followers": followerID}})
}

// AddFollowing adds followeeID to the user's following set
func (r *MongoUserRepository) AddFollowing(ctx context.Context, userID, followeeID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$addToSet": bson.M{"following": followeeID}})
}

// RemoveFollowing removes followeeID from the user's following set
func (r *MongoUserRepository) RemoveFollowing(ctx context.Context, userID, followeeID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$pull": bson.M{"following": followeeID}})
}

// IncrementPoints atomically adds amount to the user's points
func (r *MongoUserRepository) IncrementPoints(ctx context.Context, id primitive.ObjectID, amount int) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"points": amount}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetLeaderboard retrieves the top users by points. Ties break by account
// creation time so the ordering is stable across requests.
func (r *MongoUserRepository) GetLeaderboard(ctx context.Context, limit int64) ([]models.User, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}, {Key: "created_at", Value: 1}}).
		SetLimit(limit).
		SetProjection(bson.M{"username": 1, "points": 1, "profile_pic": 1, "followers": 1, "created_at": 1})

	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
