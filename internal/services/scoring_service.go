package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pantrypal/backend/internal/apperrors"
	"github.com/pantrypal/backend/internal/models"
	"github.com/pantrypal/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointsPerRecipe is awarded to the author once per successfully published
// recipe.
const PointsPerRecipe = 10

// ScoringService awards points for qualifying actions and assembles the
// leaderboard. Awards are best-effort: a missing user is logged, not
// propagated, so the triggering action is never rolled back.
type ScoringService struct {
	users   repositories.UserRepository
	timeout time.Duration
}

// NewScoringService creates a new ScoringService
func NewScoringService(users repositories.UserRepository, timeout time.Duration) *ScoringService {
	return &ScoringService{users: users, timeout: timeout}
}

// AwardPoints adds amount to the user's points via an atomic increment.
func (s *ScoringService) AwardPoints(ctx context.Context, userID primitive.ObjectID, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: award amount must be positive", apperrors.ErrInvalidOperation)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.users.IncrementPoints(ctx, userID, amount); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("points award skipped, user %s not found", userID.Hex())
			return nil
		}
		return fmt.Errorf("award points: %w", err)
	}
	return nil
}

// Leaderboard returns the top limit users by points descending. Follower
// sets are exposed only as counts.
func (s *ScoringService) Leaderboard(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	users, err := s.users.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			ID:            u.ID,
			Username:      u.Username,
			Points:        u.Points,
			ProfilePic:    u.ProfilePic,
			FollowerCount: len(u.Followers),
		})
	}
	return entries, nil
}
