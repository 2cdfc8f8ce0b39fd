package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/middleware"
	"foodgram/internal/modules/auth"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/membership"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/modules/shoppinglist"
	"foodgram/internal/modules/subscription"
	"foodgram/internal/pkg/images"
	jwtsvc "foodgram/internal/pkg/jwt"
	"foodgram/internal/repository"
)

type apiSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorDetail    `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupSuite(t *testing.T) *apiSuite {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	followRepo := repository.NewFollowRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	imageStore := images.NewStore(t.TempDir(), "/static/recipes")

	authHandler := auth.NewHandler(auth.NewService(userRepo, followRepo, j))
	catalogHandler := catalog.NewHandler(catalog.NewService(ingredientRepo, tagRepo))
	recipeHandler := recipe.NewHandler(recipe.NewService(
		recipeRepo, ingredientRepo, tagRepo, favoriteRepo, cartRepo, followRepo,
		imageStore, config.DefaultLimits(),
	))
	membershipHandler := membership.NewHandler(membership.NewService(favoriteRepo, cartRepo, recipeRepo))
	shoppingHandler := shoppinglist.NewHandler(shoppinglist.NewService(cartRepo))
	subscriptionHandler := subscription.NewHandler(subscription.NewService(followRepo, userRepo, recipeRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		optional := v1.Group("/")
		optional.Use(middleware.OptionalAuth(j))
		{
			recipeHandler.RegisterRoutes(optional)
			authHandler.RegisterUserRoutes(optional)
		}

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			authHandler.RegisterMeRoutes(protected)
			recipeHandler.RegisterAuthRoutes(protected)
			membershipHandler.RegisterRoutes(protected)
			shoppingHandler.RegisterRoutes(protected)
			subscriptionHandler.RegisterRoutes(protected)
		}

		admin := v1.Group("/")
		admin.Use(middleware.RequireAuth(j), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
		}
	}

	return &apiSuite{router: r, db: db}
}

func (s *apiSuite) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, *apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var parsed apiResponse
	if len(w.Body.Bytes()) > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, &parsed
}

func (s *apiSuite) registerAndLogin(t *testing.T, email, username string) string {
	t.Helper()

	w, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      email,
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "Qwerty123!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "Qwerty123!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var token struct {
		AuthToken string `json:"auth_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &token))
	require.NotEmpty(t, token.AuthToken)
	return token.AuthToken
}

func (s *apiSuite) seedCatalog(t *testing.T) (flourID, tagID int64) {
	t.Helper()

	flour := domain.Ingredient{Name: "flour", MeasurementUnit: "g"}
	require.NoError(t, s.db.Create(&flour).Error)
	tag := domain.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}
	require.NoError(t, s.db.Create(&tag).Error)
	return flour.ID, tag.ID
}

func recipePayload(flourID, tagID int64, name string) gin.H {
	return gin.H{
		"name":         name,
		"text":         "Mix and bake.",
		"cooking_time": 25,
		"image":        "data:image/png;base64,aGVsbG8=",
		"ingredients":  []gin.H{{"id": flourID, "amount": 200}},
		"tags":         []int64{tagID},
	}
}

func TestRecipeLifecycle(t *testing.T) {
	s := setupSuite(t)
	flourID, tagID := s.seedCatalog(t)
	token := s.registerAndLogin(t, "author@example.com", "author")

	// unauthenticated create is rejected
	w, _ := s.do(t, http.MethodPost, "/api/v1/recipes", "", recipePayload(flourID, tagID, "Bread"))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := s.do(t, http.MethodPost, "/api/v1/recipes", token, recipePayload(flourID, tagID, "Bread"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID     int64 `json:"id"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "author", created.Author.Username)

	// a second identical recipe is a conflict
	w, resp = s.do(t, http.MethodPost, "/api/v1/recipes", token, recipePayload(flourID, tagID, "Bread"))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)

	// anonymous listing works
	w, resp = s.do(t, http.MethodGet, "/api/v1/recipes?tags=breakfast", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Recipes []json.RawMessage `json:"recipes"`
		Total   int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &listing))
	assert.EqualValues(t, 1, listing.Total)

	// strangers may not delete
	otherToken := s.registerAndLogin(t, "other@example.com", "other")
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/recipes/%d", created.ID), otherToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/recipes/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestFavoriteAndShoppingCartFlow(t *testing.T) {
	s := setupSuite(t)
	flourID, tagID := s.seedCatalog(t)
	token := s.registerAndLogin(t, "author@example.com", "author")

	w, resp := s.do(t, http.MethodPost, "/api/v1/recipes", token, recipePayload(flourID, tagID, "Bread"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	favPath := fmt.Sprintf("/api/v1/recipes/%d/favorite", created.ID)
	w, _ = s.do(t, http.MethodPost, favPath, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// the second add is a conflict, not a second row
	w, resp = s.do(t, http.MethodPost, favPath, token, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/recipes?is_favorited=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &listing))
	assert.EqualValues(t, 1, listing.Total)

	cartPath := fmt.Sprintf("/api/v1/recipes/%d/shopping_cart", created.ID)
	w, _ = s.do(t, http.MethodPost, cartPath, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_cart.txt")
	assert.Contains(t, w.Body.String(), "flour - 200 g")

	w, _ = s.do(t, http.MethodDelete, favPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodDelete, favPath, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionFlow(t *testing.T) {
	s := setupSuite(t)
	flourID, tagID := s.seedCatalog(t)

	authorToken := s.registerAndLogin(t, "author@example.com", "author")
	readerToken := s.registerAndLogin(t, "reader@example.com", "reader")

	for i := 0; i < 3; i++ {
		payload := recipePayload(flourID, tagID, fmt.Sprintf("Dish %d", i))
		payload["ingredients"] = []gin.H{{"id": flourID, "amount": 100 + i}}
		w, _ := s.do(t, http.MethodPost, "/api/v1/recipes", authorToken, payload)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var author domain.User
	require.NoError(t, s.db.Where("username = ?", "author").First(&author).Error)
	subPath := fmt.Sprintf("/api/v1/users/%d/subscribe", author.ID)

	w, _ := s.do(t, http.MethodPost, subPath, readerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := s.do(t, http.MethodPost, subPath, readerToken, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)

	// self-subscription is a validation error
	w, _ = s.do(t, http.MethodPost, subPath, authorToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/users/subscriptions?recipes_limit=2", readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []struct {
		Username     string            `json:"username"`
		Recipes      []json.RawMessage `json:"recipes"`
		RecipesCount int64             `json:"recipes_count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "author", subs[0].Username)
	assert.Len(t, subs[0].Recipes, 2)
	assert.EqualValues(t, 3, subs[0].RecipesCount)

	w, _ = s.do(t, http.MethodDelete, subPath, readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodDelete, subPath, readerToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogAdminGate(t *testing.T) {
	s := setupSuite(t)
	token := s.registerAndLogin(t, "user@example.com", "plainuser")

	payload := gin.H{"name": "Supper", "color": "#123456", "slug": "supper"}

	w, _ := s.do(t, http.MethodPost, "/api/v1/tags", token, payload)
	require.Equal(t, http.StatusForbidden, w.Code)

	// promote and re-login so the token carries the admin role
	require.NoError(t, s.db.Model(&domain.User{}).
		Where("username = ?", "plainuser").
		Update("role", domain.RoleAdmin).Error)
	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "user@example.com",
		"password": "Qwerty123!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var tok struct {
		AuthToken string `json:"auth_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &tok))

	w, _ = s.do(t, http.MethodPost, "/api/v1/tags", tok.AuthToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	// duplicate slug conflicts
	w, resp = s.do(t, http.MethodPost, "/api/v1/tags", tok.AuthToken, payload)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)

	// tags are publicly readable
	w, _ = s.do(t, http.MethodGet, "/api/v1/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	s := setupSuite(t)
	token := s.registerAndLogin(t, "vasya@example.com", "vasya")

	w, _ := s.do(t, http.MethodGet, "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := s.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, "vasya", me.Username)

	// the reserved username is rejected at registration
	w, resp = s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      "me@example.com",
		"username":   "me",
		"first_name": "Me",
		"last_name":  "Me",
		"password":   "Qwerty123!",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
