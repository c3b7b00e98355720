package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe represents a published recipe stored in MongoDB. Likes is a derived
// counter: the engagement repository recomputes it from LikedBy inside the
// same atomic update that mutates the set, so the two can never disagree.
type Recipe struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Author       primitive.ObjectID   `json:"author" bson:"author"`
	Title        string               `json:"title" bson:"title"`
	Description  string               `json:"description" bson:"description"`
	Ingredients  []string             `json:"ingredients" bson:"ingredients"`
	Instructions []string             `json:"instructions" bson:"instructions"`
	Image        string               `json:"image" bson:"image"`
	Likes        int                  `json:"likes" bson:"likes"`
	LikedBy      []primitive.ObjectID `json:"liked_by" bson:"liked_by"`
	Saves        []primitive.ObjectID `json:"saves" bson:"saves"`
	Comments     []Comment            `json:"comments" bson:"comments"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
}

// Comment is immutable once appended. Username is a display snapshot taken
// at posting time and is not re-synced if the author later renames.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Username  string             `json:"username" bson:"username"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// FeedRecipe is a recipe joined with its author's username for the feed.
type FeedRecipe struct {
	Recipe
	AuthorUsername string `json:"author_username"`
}

// CreateRecipeRequest defines the request body for publishing a recipe
type CreateRecipeRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	Description  string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Ingredients  []string `json:"ingredients,omitempty" validate:"omitempty,dive,min=1"`
	Instructions []string `json:"instructions,omitempty" validate:"omitempty,dive,min=1"`
	Image        string   `json:"image,omitempty" validate:"omitempty,url"`
}

// UpdateRecipeRequest defines the request body for updating an existing recipe
type UpdateRecipeRequest struct {
	Title        string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description  string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Ingredients  []string `json:"ingredients,omitempty" validate:"omitempty,dive,min=1"`
	Instructions []string `json:"instructions,omitempty" validate:"omitempty,dive,min=1"`
	Image        string   `json:"image,omitempty" validate:"omitempty,url"`
}

// CreateCommentRequest defines the request body for commenting on a recipe
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}
