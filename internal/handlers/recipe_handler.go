package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pantrypal/backend/internal/models"
	"github.com/pantrypal/backend/internal/repositories"
	"github.com/pantrypal/backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeHandler handles recipe CRUD and the fresh feed
type RecipeHandler struct {
	recipeRepository repositories.RecipeRepository
	userRepository   repositories.UserRepository
	scoringService   *services.ScoringService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeRepo repositories.RecipeRepository, userRepo repositories.UserRepository, scoringService *services.ScoringService) *RecipeHandler {
	return &RecipeHandler{
		recipeRepository: recipeRepo,
		userRepository:   userRepo,
		scoringService:   scoringService,
	}
}

// RegisterPublicRecipeRoutes registers the routes readable without auth
func (h *RecipeHandler) RegisterPublicRecipeRoutes(g *echo.Group) {
	g.GET("/recipes", h.GetFeed)
	g.GET("/recipes/:id", h.GetRecipe)
	g.GET("/users/:id/recipes", h.GetUserRecipes)
}

// RegisterRecipeRoutes registers the authenticated recipe routes
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group) {
	g.POST("/recipes", h.CreateRecipe)
	g.PUT("/recipes/:id", h.UpdateRecipe)
	g.DELETE("/recipes/:id", h.DeleteRecipe)
}

// CreateRecipe publishes a new recipe and awards points to the author
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	authorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe := &models.Recipe{
		Author:       authorID,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Image:        req.Image,
	}

	if err := h.recipeRepository.CreateRecipe(c.Request().Context(), recipe); err != nil {
		return httpError(err)
	}

	// Best-effort: a failed award never rolls back the published recipe.
	if err := h.scoringService.AwardPoints(c.Request().Context(), authorID, services.PointsPerRecipe); err != nil {
		log.Printf("failed to award publish points to %s: %v", authorID.Hex(), err)
	}

	return c.JSON(http.StatusCreated, recipe)
}

// GetFeed returns recipes newest first, with author usernames joined in
func (h *RecipeHandler) GetFeed(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	recipes, err := h.recipeRepository.GetAllRecipes(c.Request().Context(), (page-1)*limit, limit)
	if err != nil {
		return httpError(err)
	}

	feed, err := h.withAuthorNames(c, recipes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, feed)
}

// GetRecipe returns a single recipe by id
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}

	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recipe)
}

// GetUserRecipes returns all recipes published by a user, newest first
func (h *RecipeHandler) GetUserRecipes(c echo.Context) error {
	author, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	recipes, err := h.recipeRepository.GetRecipesByAuthor(c.Request().Context(), author)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recipes)
}

// UpdateRecipe updates the content of the caller's own recipe
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}

	var req models.UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	if recipe.Author != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only update your own recipes")
	}

	if err := h.recipeRepository.UpdateRecipe(c.Request().Context(), id, &req); err != nil {
		return httpError(err)
	}

	updated, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteRecipe removes the caller's own recipe
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}

	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	if recipe.Author != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own recipes")
	}

	if err := h.recipeRepository.DeleteRecipe(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RecipeHandler) withAuthorNames(c echo.Context, recipes []models.Recipe) ([]models.FeedRecipe, error) {
	authorIDs := make([]primitive.ObjectID, 0, len(recipes))
	seen := make(map[primitive.ObjectID]bool)
	for _, r := range recipes {
		if !seen[r.Author] {
			seen[r.Author] = true
			authorIDs = append(authorIDs, r.Author)
		}
	}

	names := make(map[primitive.ObjectID]string, len(authorIDs))
	if len(authorIDs) > 0 {
		authors, err := h.userRepository.GetUsersByIDs(c.Request().Context(), authorIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range authors {
			names[a.ID] = a.Username
		}
	}

	feed := make([]models.FeedRecipe, 0, len(recipes))
	for _, r := range recipes {
		feed = append(feed, models.FeedRecipe{Recipe: r, AuthorUsername: names[r.Author]})
	}
	return feed, nil
}
