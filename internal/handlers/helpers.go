package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pantrypal/backend/internal/apperrors"
	"github.com/pantrypal/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentClaims extracts the JWT claims stored by the auth middleware.
func currentClaims(c echo.Context) (*models.JwtCustomClaims, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return claims, nil
}

// currentUserID extracts the authenticated user's id from the JWT claims.
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Invalid user identity in token")
	}
	return id, nil
}

// httpError maps a service error onto an HTTP status. Transient store
// failures become 503 so clients know the toggle is safe to retry.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidOperation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperrors.IsTransient(err):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Temporary storage failure, please retry")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
