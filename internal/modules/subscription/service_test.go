package subscription

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

type subFixture struct {
	db      *gorm.DB
	service *Service
	reader  domain.User
	author  domain.User
}

func setupSubFixture(t *testing.T) *subFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	f := &subFixture{
		db:     db,
		reader: domain.User{Email: "reader@example.com", Username: "reader", PasswordHash: "x"},
		author: domain.User{Email: "author@example.com", Username: "author", FirstName: "Ann", PasswordHash: "x"},
	}
	require.NoError(t, db.Create(&f.reader).Error)
	require.NoError(t, db.Create(&f.author).Error)

	f.service = NewService(
		repository.NewFollowRepository(db),
		repository.NewUserRepository(db),
		repository.NewRecipeRepository(db),
	)
	return f
}

func (f *subFixture) addRecipes(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		rec := domain.Recipe{
			AuthorID:    f.author.ID,
			Name:        fmt.Sprintf("Dish %d", i),
			Image:       "/i.png",
			Text:        "t",
			CookingTime: 10,
		}
		require.NoError(t, f.db.Create(&rec).Error)
	}
}

func TestSubscribe(t *testing.T) {
	f := setupSubFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Subscribe(ctx, f.reader.ID, f.author.ID))
	assert.ErrorIs(t, f.service.Subscribe(ctx, f.reader.ID, f.author.ID), ErrAlreadySubscribed)

	assert.ErrorIs(t, f.service.Subscribe(ctx, f.reader.ID, f.reader.ID), ErrSelfSubscribe)
	assert.ErrorIs(t, f.service.Subscribe(ctx, f.reader.ID, 9999), ErrAuthorNotFound)
}

func TestUnsubscribe(t *testing.T) {
	f := setupSubFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.service.Unsubscribe(ctx, f.reader.ID, f.author.ID), ErrNotSubscribed)
	assert.ErrorIs(t, f.service.Unsubscribe(ctx, f.reader.ID, 9999), ErrAuthorNotFound)

	require.NoError(t, f.service.Subscribe(ctx, f.reader.ID, f.author.ID))
	require.NoError(t, f.service.Unsubscribe(ctx, f.reader.ID, f.author.ID))
	assert.ErrorIs(t, f.service.Unsubscribe(ctx, f.reader.ID, f.author.ID), ErrNotSubscribed)
}

func TestList_RecipesLimit(t *testing.T) {
	f := setupSubFixture(t)
	ctx := context.Background()

	f.addRecipes(t, 4)
	require.NoError(t, f.service.Subscribe(ctx, f.reader.ID, f.author.ID))

	subs, err := f.service.List(ctx, f.reader.ID, "2")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "author", subs[0].Username)
	assert.True(t, subs[0].IsSubscribed)
	assert.Len(t, subs[0].Recipes, 2)
	assert.EqualValues(t, 4, subs[0].RecipesCount)

	// unparseable limit means no cap, never an error
	for _, raw := range []string{"", "abc", "-3", "0"} {
		subs, err := f.service.List(ctx, f.reader.ID, raw)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Len(t, subs[0].Recipes, 4)
	}
}

func TestList_Empty(t *testing.T) {
	f := setupSubFixture(t)

	subs, err := f.service.List(context.Background(), f.reader.ID, "")
	require.NoError(t, err)
	assert.Empty(t, subs)
}
