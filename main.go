package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/delight-cuisine/config"
	"github.com/yeremiapane/delight-cuisine/database"
	"github.com/yeremiapane/delight-cuisine/kds"
	"github.com/yeremiapane/delight-cuisine/router"
	"github.com/yeremiapane/delight-cuisine/services"
	"github.com/yeremiapane/delight-cuisine/utils"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.SetLogLevel(cfg.LogLevel)
	if cfg.UsingDefaultSecret() {
		utils.InfoLogger.Warn("JWT_SECRET not set, using the development secret")
	}

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err := prepareDatabase(db, cfg, tokens); err != nil {
		utils.ErrorLogger.Fatalf("Failed to prepare database: %v", err)
	}

	r := router.SetupRouter(db, router.Options{
		Tokens:     tokens,
		Hub:        kds.NewHub(),
		CORSOrigin: cfg.CORSOrigin,
		RateLimit:  cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
}

// prepareDatabase migrates the schema and seeds the default admin and menu.
func prepareDatabase(db *gorm.DB, cfg *config.Config, tokens *utils.TokenManager) error {
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	ctx := context.Background()
	users := services.NewUserService(db, tokens)
	admin, created, err := users.EnsureAdmin(ctx, cfg.Seed.AdminName, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		utils.InfoLogger.Printf("Default admin created: %s", admin.Email)
	}

	if cfg.Seed.Menu {
		if _, err := database.SeedMenu(db); err != nil {
			return err
		}
	}

	_, err = services.NewRestaurantStatusService(db, nil).Get(ctx)
	return err
}
