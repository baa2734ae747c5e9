package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	_ "github.com/plateful/recipe-api/docs"
	"github.com/plateful/recipe-api/internal/api/handler"
	"github.com/plateful/recipe-api/internal/api/middleware"
	"github.com/plateful/recipe-api/internal/core/service"
	"github.com/plateful/recipe-api/internal/infrastructure/db/postgres"
	"github.com/plateful/recipe-api/internal/infrastructure/storage"
	"github.com/plateful/recipe-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *redis.Client, media *storage.DiskStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recipeapi"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	recipeRepo := postgres.NewRecipeRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	ingredientRepo := postgres.NewIngredientRepository(db)

	userService := service.NewUserService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, log)
	tagService := service.NewTagService(tagRepo, log)
	ingredientService := service.NewIngredientService(ingredientRepo, log)
	imageService := service.NewImageService(recipeRepo, media, log)

	userHandler := handler.NewUserHandler(userService)
	recipeHandler := handler.NewRecipeHandler(recipeService, imageService)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	rateLimited := middleware.RateLimit(rdb)

	// --- Public user routes (rate limited; they take raw credentials) ---
	e.POST("/api/user/", userHandler.Create, rateLimited)
	e.POST("/api/user/token", userHandler.Token, rateLimited)

	// --- Self profile ---
	me := e.Group("/api/user/me", authRequired)
	me.GET("", userHandler.Me)
	me.PUT("", userHandler.UpdateMe)
	me.PATCH("", userHandler.UpdateMe)

	// --- Recipes ---
	recipes := e.Group("/api/recipes", authRequired)
	recipes.GET("", recipeHandler.List)
	recipes.POST("", recipeHandler.Create)
	recipes.GET("/:id", recipeHandler.Get)
	recipes.PUT("/:id", recipeHandler.Update)
	recipes.PATCH("/:id", recipeHandler.Update)
	recipes.DELETE("/:id", recipeHandler.Delete)
	recipes.POST("/:id/upload-image", recipeHandler.UploadImage)

	// --- Tags ---
	tags := e.Group("/api/tags", authRequired)
	tags.GET("", tagHandler.List)
	tags.PUT("/:id", tagHandler.Update)
	tags.PATCH("/:id", tagHandler.Update)
	tags.DELETE("/:id", tagHandler.Delete)

	// --- Ingredients ---
	ingredients := e.Group("/api/ingredients", authRequired)
	ingredients.GET("", ingredientHandler.List)
	ingredients.PUT("/:id", ingredientHandler.Update)
	ingredients.PATCH("/:id", ingredientHandler.Update)
	ingredients.DELETE("/:id", ingredientHandler.Delete)

	// --- Uploaded media ---
	e.Static("/media", media.Root())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
