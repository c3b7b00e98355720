package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pantrypal/backend/internal/apperrors"
	"github.com/pantrypal/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FollowService toggles follow relationships between two users. The target
// user's followers set is the authoritative side: state is decided by reading
// it alone, and both sides are then written with idempotent set primitives,
// target side first. A stale opposite side therefore self-heals in the same
// pass instead of surfacing as an error.
type FollowService struct {
	users   repositories.UserRepository
	timeout time.Duration
}

// NewFollowService creates a new FollowService
func NewFollowService(users repositories.UserRepository, timeout time.Duration) *FollowService {
	return &FollowService{users: users, timeout: timeout}
}

// FollowResult is the outcome of a follow toggle
type FollowResult struct {
	IsFollowing bool
	Followers   []primitive.ObjectID
}

// ToggleFollow flips the follow state between actor and target. Invoking it
// again with the same arguments undoes the previous invocation; duplicate or
// racing invocations converge because both underlying writes are
// add-if-absent / remove-if-present.
func (s *FollowService) ToggleFollow(ctx context.Context, actorID, targetID primitive.ObjectID) (*FollowResult, error) {
	if actorID == targetID {
		return nil, fmt.Errorf("%w: cannot follow yourself", apperrors.ErrInvalidOperation)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("load actor: %w", err)
	}
	target, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("load target: %w", err)
	}

	isFollowing := containsID(target.Followers, actorID)
	if isFollowing != containsID(actor.Following, targetID) {
		// The two sides disagree, likely a crash between the half-writes of
		// an earlier toggle. The followers side wins; writing both sides
		// below repairs the stale one.
		log.Printf("follow state mismatch between %s and %s, repairing from followers side", actorID.Hex(), targetID.Hex())
	}

	if isFollowing {
		target, err = s.users.RemoveFollower(ctx, targetID, actorID)
		if err != nil {
			return nil, fmt.Errorf("remove follower: %w", err)
		}
		if err := s.users.RemoveFollowing(ctx, actorID, targetID); err != nil {
			return nil, fmt.Errorf("remove following: %w", err)
		}
	} else {
		target, err = s.users.AddFollower(ctx, targetID, actorID)
		if err != nil {
			return nil, fmt.Errorf("add follower: %w", err)
		}
		if err := s.users.AddFollowing(ctx, actorID, targetID); err != nil {
			return nil, fmt.Errorf("add following: %w", err)
		}
	}

	return &FollowResult{
		IsFollowing: !isFollowing,
		Followers:   target.Followers,
	}, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
