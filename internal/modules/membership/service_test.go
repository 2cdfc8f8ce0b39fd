package membership

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

func setupMembership(t *testing.T) (*Service, int64, int64) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := domain.User{Email: "u@example.com", Username: "u", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	rec := domain.Recipe{AuthorID: user.ID, Name: "Soup", Image: "/static/recipes/s.png", Text: "boil", CookingTime: 30}
	require.NoError(t, db.Create(&rec).Error)

	svc := NewService(
		repository.NewFavoriteRepository(db),
		repository.NewShoppingCartRepository(db),
		repository.NewRecipeRepository(db),
	)
	return svc, user.ID, rec.ID
}

func TestFavorite_AddRemove(t *testing.T) {
	svc, userID, recipeID := setupMembership(t)
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, userID, recipeID))
	assert.ErrorIs(t, svc.AddFavorite(ctx, userID, recipeID), ErrAlreadyExists)

	require.NoError(t, svc.RemoveFavorite(ctx, userID, recipeID))
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, userID, recipeID), ErrMembershipGone)
}

func TestCart_AddRemove(t *testing.T) {
	svc, userID, recipeID := setupMembership(t)
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, userID, recipeID))
	assert.ErrorIs(t, svc.AddToCart(ctx, userID, recipeID), ErrAlreadyExists)

	require.NoError(t, svc.RemoveFromCart(ctx, userID, recipeID))
	assert.ErrorIs(t, svc.RemoveFromCart(ctx, userID, recipeID), ErrMembershipGone)
}

func TestMembership_SetsAreIndependent(t *testing.T) {
	svc, userID, recipeID := setupMembership(t)
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, userID, recipeID))
	require.NoError(t, svc.AddToCart(ctx, userID, recipeID))

	require.NoError(t, svc.RemoveFavorite(ctx, userID, recipeID))
	assert.NoError(t, svc.RemoveFromCart(ctx, userID, recipeID))
}

func TestMembership_UnknownRecipe(t *testing.T) {
	svc, userID, _ := setupMembership(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddFavorite(ctx, userID, 9999), ErrRecipeNotFound)
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, userID, 9999), ErrRecipeNotFound)
	assert.ErrorIs(t, svc.AddToCart(ctx, userID, 9999), ErrRecipeNotFound)
	assert.ErrorIs(t, svc.RemoveFromCart(ctx, userID, 9999), ErrRecipeNotFound)
}
