package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pantrypal/backend/internal/models"
	"github.com/pantrypal/backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	engagementService *services.EngagementService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(engagementService *services.EngagementService) *CommentHandler {
	return &CommentHandler{engagementService: engagementService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/recipes/:id/comments", h.AddComment)
}

// AddComment appends a comment to a recipe and returns the updated comment
// sequence.
func (h *CommentHandler) AddComment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	recipeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comments, err := h.engagementService.AddComment(c.Request().Context(), userID, claims.Username, recipeID, req.Text)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"comments": comments})
}
