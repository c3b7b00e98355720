package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pantrypal/backend/internal/apperrors"
	"github.com/pantrypal/backend/internal/models"
	"github.com/pantrypal/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementService toggles likes and saves on recipes and appends comments.
// Every mutation it issues is a single atomic store primitive; it never
// writes back a document it mutated in memory, so racing toggles cannot lose
// each other's updates.
type EngagementService struct {
	users   repositories.UserRepository
	recipes repositories.RecipeRepository
	timeout time.Duration
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(users repositories.UserRepository, recipes repositories.RecipeRepository, timeout time.Duration) *EngagementService {
	return &EngagementService{users: users, recipes: recipes, timeout: timeout}
}

// LikeResult is the outcome of a like toggle
type LikeResult struct {
	Likes        int
	IsLiked      bool
	LikedBy      []primitive.ObjectID
	RecipeAuthor primitive.ObjectID
}

// SaveResult is the outcome of a save toggle
type SaveResult struct {
	Saves   []primitive.ObjectID
	IsSaved bool
}

// ToggleLike flips whether userID likes the recipe. The like counter is
// derived from the liked_by set inside the same atomic update, so a
// duplicate like never double-counts and the counter never goes negative.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, recipeID primitive.ObjectID) (*LikeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe: %w", err)
	}

	isLiked := containsID(recipe.LikedBy, userID)
	if isLiked {
		recipe, err = s.recipes.RemoveLike(ctx, recipeID, userID)
	} else {
		recipe, err = s.recipes.AddLike(ctx, recipeID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	return &LikeResult{
		Likes:        recipe.Likes,
		IsLiked:      !isLiked,
		LikedBy:      recipe.LikedBy,
		RecipeAuthor: recipe.Author,
	}, nil
}

// ToggleSave flips whether userID has the recipe saved. Saved state is set
// membership only; liking never touches saves and saving never touches likes.
func (s *EngagementService) ToggleSave(ctx context.Context, userID, recipeID primitive.ObjectID) (*SaveResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe: %w", err)
	}

	isSaved := containsID(recipe.Saves, userID)
	if isSaved {
		recipe, err = s.recipes.RemoveSave(ctx, recipeID, userID)
	} else {
		recipe, err = s.recipes.AddSave(ctx, recipeID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle save: %w", err)
	}

	return &SaveResult{
		Saves:   recipe.Saves,
		IsSaved: !isSaved,
	}, nil
}

// AddComment appends a comment to the recipe and returns the full updated
// comment sequence, in insertion order. The username is snapshotted at
// posting time.
func (s *EngagementService) AddComment(ctx context.Context, userID primitive.ObjectID, username string, recipeID primitive.ObjectID, text string) ([]models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", apperrors.ErrInvalidOperation)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Username:  username,
		Text:      text,
		CreatedAt: time.Now(),
	}

	recipe, err := s.recipes.AppendComment(ctx, recipeID, comment)
	if err != nil {
		return nil, fmt.Errorf("append comment: %w", err)
	}
	return recipe.Comments, nil
}
