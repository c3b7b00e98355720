package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pantrypal/backend/internal/models"
	"github.com/pantrypal/backend/internal/repositories"
	"github.com/pantrypal/backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementHandler handles like and save toggles on recipes
type EngagementHandler struct {
	engagementService      *services.EngagementService
	notificationRepository repositories.NotificationRepository
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(engagementService *services.EngagementService, notifRepo repositories.NotificationRepository) *EngagementHandler {
	return &EngagementHandler{
		engagementService:      engagementService,
		notificationRepository: notifRepo,
	}
}

// RegisterEngagementRoutes registers like/save routes
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.PUT("/recipes/:id/like", h.ToggleLike)
	g.PUT("/recipes/:id/save", h.ToggleSave)
}

// ToggleLike likes the recipe, or unlikes if already liked
func (h *EngagementHandler) ToggleLike(c echo.Context) error {
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

	result, err := h.engagementService.ToggleLike(c.Request().Context(), userID, recipeID)
	if err != nil {
		return httpError(err)
	}

	// Notify the author on like, never on unlike. Self-likes stay quiet.
	if result.IsLiked && h.notificationRepository != nil && result.RecipeAuthor != userID {
		notif := &models.Notification{
			Type:        "like",
			ActorID:     userID.Hex(),
			RecipientID: result.RecipeAuthor.Hex(),
			Message:     claims.Username + " liked your recipe",
		}
		if err := h.notificationRepository.CreateNotification(notif); err != nil {
			log.Printf("failed to create like notification: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"likes":   result.Likes,
		"isLiked": result.IsLiked,
		"likedBy": result.LikedBy,
	})
}

// ToggleSave saves the recipe, or unsaves if already saved
func (h *EngagementHandler) ToggleSave(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	recipeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipe ID")
	}

	result, err := h.engagementService.ToggleSave(c.Request().Context(), userID, recipeID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"saves":   result.Saves,
		"isSaved": result.IsSaved,
	})
}
