package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/pantrypal/backend/internal/apperrors"
	"github.com/pantrypal/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memUserRepo is a minimal in-memory UserRepository for handler tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *memUserRepo) seed(username string) *models.User {
	u := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     username + "@example.com",
		Followers: []primitive.ObjectID{},
		Following: []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}
	f.mu.Lock()
	f.users[u.ID] = u
	f.mu.Unlock()
	return u
}

func (f *memUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = primitive.NewObjectID()
	user.Followers = []primitive.ObjectID{}
	user.Following = []primitive.ObjectID{}
	f.users[user.ID] = user
	return nil
}

func (f *memUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *memUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *memUserRepo) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *memUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	return f.GetUserByID(ctx, id)
}

func (f *memUserRepo) AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) (*models.User, error) {
	return f.mutate(userID, func(u *models.User) { u.Followers = addIfAbsent(u.Followers, followerID) })
}

func (f *memUserRepo) RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) (*models.User, error) {
	return f.mutate(userID, func(u *models.User) { u.Followers = removeIfPresent(u.Followers, followerID) })
}

func (f *memUserRepo) AddFollowing(ctx context.Context, userID, followeeID primitive.ObjectID) error {
	_, err := f.mutate(userID, func(u *models.User) { u.Following = addIfAbsent(u.Following, followeeID) })
	return err
}

func (f *memUserRepo) RemoveFollowing(ctx context.Context, userID, followeeID primitive.ObjectID) error {
	_, err := f.mutate(userID, func(u *models.User) { u.Following = removeIfPresent(u.Following, followeeID) })
	return err
}

func (f *memUserRepo) IncrementPoints(ctx context.Context, id primitive.ObjectID, amount int) error {
	_, err := f.mutate(id, func(u *models.User) { u.Points += amount })
	return err
}

func (f *memUserRepo) GetLeaderboard(ctx context.Context, limit int64) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *memUserRepo) mutate(id primitive.ObjectID, fn func(*models.User)) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	fn(u)
	c := *u
	c.Followers = append([]primitive.ObjectID{}, u.Followers...)
	c.Following = append([]primitive.ObjectID{}, u.Following...)
	return &c, nil
}

// memRecipeRepo is a minimal in-memory RecipeRepository for handler tests.
type memRecipeRepo struct {
	mu      sync.Mutex
	recipes map[primitive.ObjectID]*models.Recipe
}

func newMemRecipeRepo() *memRecipeRepo {
	return &memRecipeRepo{recipes: make(map[primitive.ObjectID]*models.Recipe)}
}

func (f *memRecipeRepo) seed(author primitive.ObjectID, title string) *models.Recipe {
	r := &models.Recipe{
		ID:        primitive.NewObjectID(),
		Author:    author,
		Title:     title,
		LikedBy:   []primitive.ObjectID{},
		Saves:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		CreatedAt: time.Now(),
	}
	f.mu.Lock()
	f.recipes[r.ID] = r
	f.mu.Unlock()
	return r
}

func (f *memRecipeRepo) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	recipe.ID = primitive.NewObjectID()
	recipe.LikedBy = []primitive.ObjectID{}
	recipe.Saves = []primitive.ObjectID{}
	recipe.Comments = []models.Comment{}
	recipe.CreatedAt = time.Now()
	f.recipes[recipe.ID] = recipe
	return nil
}

func (f *memRecipeRepo) GetRecipeByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.recipes[id]; ok {
		c := *r
		return &c, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *memRecipeRepo) GetAllRecipes(ctx context.Context, skip, limit int64) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Recipe
	for _, r := range f.recipes {
		out = append(out, *r)
	}
	return out, nil
}

func (f *memRecipeRepo) GetRecipesByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Recipe, error) {
	return nil, nil
}

func (f *memRecipeRepo) UpdateRecipe(ctx context.Context, id primitive.ObjectID, req *models.UpdateRecipeRequest) error {
	return nil
}

func (f *memRecipeRepo) DeleteRecipe(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.recipes, id)
	return nil
}

func (f *memRecipeRepo) AddLike(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) {
		r.LikedBy = addIfAbsent(r.LikedBy, userID)
		r.Likes = len(r.LikedBy)
	})
}

func (f *memRecipeRepo) RemoveLike(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) {
		r.LikedBy = removeIfPresent(r.LikedBy, userID)
		r.Likes = len(r.LikedBy)
	})
}

func (f *memRecipeRepo) AddSave(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) { r.Saves = addIfAbsent(r.Saves, userID) })
}

func (f *memRecipeRepo) RemoveSave(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) { r.Saves = removeIfPresent(r.Saves, userID) })
}

func (f *memRecipeRepo) AppendComment(ctx context.Context, recipeID primitive.ObjectID, comment models.Comment) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) { r.Comments = append(r.Comments, comment) })
}

func (f *memRecipeRepo) mutate(id primitive.ObjectID, fn func(*models.Recipe)) (*models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	fn(r)
	c := *r
	c.LikedBy = append([]primitive.ObjectID{}, r.LikedBy...)
	c.Saves = append([]primitive.ObjectID{}, r.Saves...)
	c.Comments = append([]models.Comment{}, r.Comments...)
	return &c, nil
}

// memNotificationRepo records notifications in memory.
type memNotificationRepo struct {
	mu      sync.Mutex
	created []*models.Notification
}

func (f *memNotificationRepo) CreateNotification(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, n)
	return nil
}

func (f *memNotificationRepo) GetByRecipientID(recipientID string, page, limit int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

func (f *memNotificationRepo) GetUnreadCount(recipientID string) (int64, error) { return 0, nil }

func (f *memNotificationRepo) MarkAsRead(notificationID uint, recipientID string) error { return nil }

func (f *memNotificationRepo) MarkAllAsRead(recipientID string) error { return nil }

func addIfAbsent(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeIfPresent(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
