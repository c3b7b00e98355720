package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pantrypal/backend/internal/apperrors"
	"github.com/pantrypal/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory UserRepository whose mutations mirror the
// store primitives: add-if-absent, remove-if-present, atomic increment.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) addUser(username string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     username + "@example.com",
		Followers: []primitive.ObjectID{},
		Following: []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}
	f.users[u.ID] = u
	return cloneUser(u)
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = primitive.NewObjectID()
	user.Followers = []primitive.ObjectID{}
	user.Following = []primitive.ObjectID{}
	user.CreatedAt = time.Now()
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneUser(u), nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if req.Username != "" {
		u.Username = req.Username
	}
	if req.Bio != "" {
		u.Bio = req.Bio
	}
	if req.ProfilePic != "" {
		u.ProfilePic = req.ProfilePic
	}
	return cloneUser(u), nil
}

func (f *fakeUserRepo) AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) (*models.User, error) {
	return f.mutate(userID, func(u *models.User) {
		u.Followers = addToSet(u.Followers, followerID)
	})
}

func (f *fakeUserRepo) RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) (*models.User, error) {
	return f.mutate(userID, func(u *models.User) {
		u.Followers = pull(u.Followers, followerID)
	})
}

func (f *fakeUserRepo) AddFollowing(ctx context.Context, userID, followeeID primitive.ObjectID) error {
	_, err := f.mutate(userID, func(u *models.User) {
		u.Following = addToSet(u.Following, followeeID)
	})
	return err
}

func (f *fakeUserRepo) RemoveFollowing(ctx context.Context, userID, followeeID primitive.ObjectID) error {
	_, err := f.mutate(userID, func(u *models.User) {
		u.Following = pull(u.Following, followeeID)
	})
	return err
}

func (f *fakeUserRepo) IncrementPoints(ctx context.Context, id primitive.ObjectID, amount int) error {
	_, err := f.mutate(id, func(u *models.User) {
		u.Points += amount
	})
	return err
}

func (f *fakeUserRepo) GetLeaderboard(ctx context.Context, limit int64) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, *cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUserRepo) mutate(id primitive.ObjectID, fn func(*models.User)) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	fn(u)
	return cloneUser(u), nil
}

// fakeRecipeRepo is an in-memory RecipeRepository. Like the Mongo
// implementation, the like counter is derived from the liked_by set inside
// the same mutation.
type fakeRecipeRepo struct {
	mu      sync.Mutex
	recipes map[primitive.ObjectID]*models.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[primitive.ObjectID]*models.Recipe)}
}

func (f *fakeRecipeRepo) addRecipe(author primitive.ObjectID, title string) *models.Recipe {
	r := &models.Recipe{Author: author, Title: title}
	_ = f.CreateRecipe(context.Background(), r)
	return cloneRecipe(r)
}

func (f *fakeRecipeRepo) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	recipe.ID = primitive.NewObjectID()
	recipe.Likes = 0
	recipe.LikedBy = []primitive.ObjectID{}
	recipe.Saves = []primitive.ObjectID{}
	recipe.Comments = []models.Comment{}
	recipe.CreatedAt = time.Now()
	f.recipes[recipe.ID] = cloneRecipe(recipe)
	return nil
}

func (f *fakeRecipeRepo) GetRecipeByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneRecipe(r), nil
}

func (f *fakeRecipeRepo) GetAllRecipes(ctx context.Context, skip, limit int64) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Recipe
	for _, r := range f.recipes {
		out = append(out, *cloneRecipe(r))
	}
	return out, nil
}

func (f *fakeRecipeRepo) GetRecipesByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Recipe
	for _, r := range f.recipes {
		if r.Author == author {
			out = append(out, *cloneRecipe(r))
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) UpdateRecipe(ctx context.Context, id primitive.ObjectID, req *models.UpdateRecipeRequest) error {
	_, err := f.mutate(id, func(r *models.Recipe) {
		if req.Title != "" {
			r.Title = req.Title
		}
		if req.Description != "" {
			r.Description = req.Description
		}
	})
	return err
}

func (f *fakeRecipeRepo) DeleteRecipe(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) AddLike(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) {
		r.LikedBy = addToSet(r.LikedBy, userID)
		r.Likes = len(r.LikedBy)
	})
}

func (f *fakeRecipeRepo) RemoveLike(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) {
		r.LikedBy = pull(r.LikedBy, userID)
		r.Likes = len(r.LikedBy)
	})
}

func (f *fakeRecipeRepo) AddSave(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) {
		r.Saves = addToSet(r.Saves, userID)
	})
}

func (f *fakeRecipeRepo) RemoveSave(ctx context.Context, recipeID, userID primitive.ObjectID) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) {
		r.Saves = pull(r.Saves, userID)
	})
}

func (f *fakeRecipeRepo) AppendComment(ctx context.Context, recipeID primitive.ObjectID, comment models.Comment) (*models.Recipe, error) {
	return f.mutate(recipeID, func(r *models.Recipe) {
		r.Comments = append(r.Comments, comment)
	})
}

func (f *fakeRecipeRepo) mutate(id primitive.ObjectID, fn func(*models.Recipe)) (*models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	fn(r)
	return cloneRecipe(r), nil
}

func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func pull(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Followers = append([]primitive.ObjectID{}, u.Followers...)
	c.Following = append([]primitive.ObjectID{}, u.Following...)
	return &c
}

func cloneRecipe(r *models.Recipe) *models.Recipe {
	c := *r
	c.LikedBy = append([]primitive.ObjectID{}, r.LikedBy...)
	c.Saves = append([]primitive.ObjectID{}, r.Saves...)
	c.Comments = append([]models.Comment{}, r.Comments...)
	return &c
}
