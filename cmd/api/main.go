package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"habitflow/internal/cache"
	"habitflow/internal/config"
	"habitflow/internal/database"
	"habitflow/internal/middleware"
	"habitflow/internal/modules/auth"
	"habitflow/internal/modules/cacheops"
	"habitflow/internal/modules/habit"
	"habitflow/internal/modules/health"
	jwtsvc "habitflow/internal/pkg/jwt"
	"habitflow/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	backend, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("cache connect: %v", err)
	}
	store := cache.NewStore(backend)
	invalidator := cache.NewInvalidator(store)

	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.AccessTokenTTL)
	googleVerifier := auth.NewGoogleVerifier(os.Getenv("GOOGLE_CLIENT_ID"))

	authService := auth.NewService(userRepo, tokenRepo, jwtService, googleVerifier, cfg.RefreshTokenTTL)
	habitService := habit.NewService(habitRepo, checkInRepo, store, invalidator)
	warmer := habit.NewWarmer(habitRepo, checkInRepo, store)

	ctx := context.Background()
	authService.StartSweeper(ctx, cfg.TokenSweepInterval)
	if cfg.CacheWarmEnabled {
		warmer.Start(ctx, cfg.CacheWarmInterval)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	health.NewHandler(db, store).RegisterRoutes(v1)

	authHandler := auth.NewHandler(authService)
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	authHandler.RegisterProtectedRoutes(protected)
	habit.NewHandler(habitService).RegisterRoutes(protected)
	cacheops.NewHandler(store).RegisterRoutes(protected)

	log.Printf("listening on :%s env=%s", cfg.Port, cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
