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

// RecipeRepository defines the interface for recipe data operations.
// Engagement mutations are single atomic updates; the like counter is
// recomputed from the liked_by set inside the same update, so likes always
// equals len(liked_by) and can never go negative, no matter how requests
// race or duplicate.
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipeByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	GetAllRecipes(ctx context.Context, skip, limit int64) ([]models.Recipe, error)
	GetRecipesByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, id primitive.ObjectID, req *models.UpdateRecipeRequest) error
	DeleteRecipe(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error)
	RemoveLike(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error)
	AddSave(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error)
	RemoveSave(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error)
	AppendComment(ctx context.Context, recipeID primitive.ObjectID, comment models.Comment) (*models.Recipe, error)
}

// MongoRecipeRepository implements RecipeRepository for MongoDB
type MongoRecipeRepository struct {
	collection *mongo.Collection
}

// NewMongoRecipeRepository creates a new MongoRecipeRepository
func NewMongoRecipeRepository(db *mongo.Database) *MongoRecipeRepository {
	return &MongoRecipeRepository{collection: db.Collection("recipes")}
}

// CreateRecipe creates a new recipe with empty engagement state
func (r *MongoRecipeRepository) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	recipe.ID = primitive.NewObjectID()
	recipe.Likes = 0
	recipe.LikedBy = []primitive.ObjectID{}
	recipe.Saves = []primitive.ObjectID{}
	recipe.Comments = []models.Comment{}
	recipe.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, recipe)
	return err
}

// GetRecipeByID retrieves a recipe by ID from MongoDB
func (r *MongoRecipeRepository) GetRecipeByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetAllRecipes retrieves recipes newest first with pagination
func (r *MongoRecipeRepository) GetAllRecipes(ctx context.Context, skip, limit int64) ([]models.Recipe, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err = cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipesByAuthor retrieves all recipes published by author, newest first
func (r *MongoRecipeRepository) GetRecipesByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Recipe, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author": author}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err = cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe updates the content fields of a recipe. Engagement fields are
// never touched here.
func (r *MongoRecipeRepository) UpdateRecipe(ctx context.Context, id primitive.ObjectID, req *models.UpdateRecipeRequest) error {
	set := bson.M{}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Description != "" {
		set["description"] = req.Description
	}
	if req.Ingredients != nil {
		set["ingredients"] = req.Ingredients
	}
	if req.Instructions != nil {
		set["instructions"] = req.Instructions
	}
	if req.Image != "" {
		set["image"] = req.Image
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe record. No cascading cleanup of other users'
// state is performed.
func (r *MongoRecipeRepository) DeleteRecipe(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddLike adds userID to liked_by and recomputes the like counter, all in one
// atomic pipeline update. Adding a user who already likes the recipe leaves
// the document unchanged.
func (r *MongoRecipeRepository) AddLike(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return r.findOneAndUpdate(ctx, recipeID, likePipeline("$setUnion", userID))
}

// RemoveLike removes userID from liked_by and recomputes the like counter in
// the same atomic update. Removing an absent user is a no-op.
func (r *MongoRecipeRepository) RemoveLike(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return r.findOneAndUpdate(ctx, recipeID, likePipeline("$setDifference", userID))
}

// AddSave adds userID to the saves set. Saved state is pure set membership;
// there is no counter to maintain.
func (r *MongoRecipeRepository) AddSave(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return r.findOneAndUpdate(ctx, recipeID, bson.M{"$addToSet": bson.M{"saves": userID}})
}

// RemoveSave removes userID from the saves set
func (r *MongoRecipeRepository) RemoveSave(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return r.findOneAndUpdate(ctx, recipeID, bson.M{"$pull": bson.M{"saves": userID}})
}

// AppendComment appends comment to the end of the recipe's comment sequence
// and returns the updated recipe.
func (r *MongoRecipeRepository) AppendComment(ctx context.Context, recipeID primitive.ObjectID, comment models.Comment) (*models.Recipe, error) {
	return r.findOneAndUpdate(ctx, recipeID, bson.M{"$push": bson.M{"comments": comment}})
}

// likePipeline builds a two-stage update: mutate the liked_by set with the
// given set operator, then derive likes from the set's new size. Both stages
// apply within a single atomic document update.
func likePipeline(setOp string, userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "liked_by", Value: bson.D{{Key: setOp, Value: bson.A{"$liked_by", bson.A{userID}}}}},
		}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "likes", Value: bson.D{{Key: "$size", Value: "$liked_by"}}},
		}}},
	}
}

func (r *MongoRecipeRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update interface{}) (*models.Recipe, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var recipe models.Recipe
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}
