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

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService          *services.FollowService
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followService:          followService,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow follows the target user, or unfollows if already following
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	result, err := h.followService.ToggleFollow(c.Request().Context(), actorID, targetID)
	if err != nil {
		return httpError(err)
	}

	if result.IsFollowing && h.notificationRepository != nil {
		notif := &models.Notification{
			Type:        "follow",
			ActorID:     actorID.Hex(),
			RecipientID: targetID.Hex(),
			Message:     claims.Username + " started following you",
		}
		if err := h.notificationRepository.CreateNotification(notif); err != nil {
			log.Printf("failed to create follow notification: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"isFollowing": result.IsFollowing,
		"followers":   result.Followers,
	})
}
