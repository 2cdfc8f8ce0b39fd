package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"foodgram/internal/config"
	"foodgram/internal/database"
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

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	followRepo := repository.NewFollowRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.TokenTTL)
	imageStore := images.NewStore(cfg.UploadDir, cfg.StaticBase)

	authService := auth.NewService(userRepo, followRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(ingredientRepo, tagRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	recipeService := recipe.NewService(
		recipeRepo,
		ingredientRepo,
		tagRepo,
		favoriteRepo,
		cartRepo,
		followRepo,
		imageStore,
		cfg.Limits,
	)
	recipeHandler := recipe.NewHandler(recipeService)

	membershipService := membership.NewService(favoriteRepo, cartRepo, recipeRepo)
	membershipHandler := membership.NewHandler(membershipService)

	shoppingService := shoppinglist.NewService(cartRepo)
	shoppingHandler := shoppinglist.NewHandler(shoppingService)

	subscriptionService := subscription.NewService(followRepo, userRepo, recipeRepo)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static(cfg.StaticBase, cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// reads that annotate per-viewer fields when a token is present
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

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
