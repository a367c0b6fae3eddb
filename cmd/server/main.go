package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"banwatch/internal/bot"
	"banwatch/internal/config"
	"banwatch/internal/credstore"
	"banwatch/internal/database"
	"banwatch/internal/domain"
	"banwatch/internal/middleware"
	"banwatch/internal/modules/admin"
	"banwatch/internal/modules/auth"
	"banwatch/internal/modules/ban"
	jwtsvc "banwatch/internal/pkg/jwt"
	"banwatch/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	if cfg.Server.SessionSecret == config.DefaultSessionSecret {
		log.Println("WARNING: SESSION_SECRET not set, using the insecure development default")
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	staffRepo := repository.NewStaffRepository(db)
	banRepo := repository.NewBanRepository(db)

	admins, err := credstore.New(cfg.CredStore.AdminFile, cfg.CredStore.AuditFile, credstore.Options{
		BootstrapUser:     cfg.CredStore.BootstrapUser,
		BootstrapPassword: cfg.CredStore.BootstrapPassword,
	})
	if err != nil {
		log.Fatal(err)
	}

	if cfg.CredStore.SeedDefaultStaff {
		seedDefaultStaff(staffRepo)
	}

	j := jwtsvc.New(cfg.Server.SessionSecret, 24*time.Hour)

	authService := auth.NewService(admins, staffRepo)
	authHandler := auth.NewHandler(authService, j)

	banService := ban.NewService(banRepo, staffRepo)
	banHandler := ban.NewHandler(banService)

	adminHandler := admin.NewHandler(admins, staffRepo)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	// public
	authHandler.RegisterRoutes(&r.RouterGroup)

	// authenticated console + API
	protected := r.Group("/")
	protected.Use(middleware.Auth(j))
	{
		banHandler.RegisterRoutes(protected)

		adminOnly := protected.Group("/")
		adminOnly.Use(middleware.AdminOnly())
		adminHandler.RegisterRoutes(adminOnly)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Bot.Token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, bot disabled")
	} else {
		b, err := bot.New(cfg.Bot.Token, banService, admins)
		if err != nil {
			log.Printf("Failed to start bot: %v", err)
		} else {
			go b.Start(ctx)
		}
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}

// seedDefaultStaff creates the stock admin/admin123 staff row when the
// table is empty. Gated behind SEED_DEFAULT_STAFF and loudly logged.
func seedDefaultStaff(staff *repository.StaffRepository) {
	ctx := context.Background()

	n, err := staff.Count(ctx)
	if err != nil {
		log.Printf("Failed to count staff: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash default staff password: %v", err)
		return
	}
	if err := staff.Create(ctx, &domain.StaffAccount{
		Username:     "admin",
		Email:        "admin@game.com",
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsActive:     true,
	}); err != nil {
		log.Printf("Failed to seed default staff: %v", err)
		return
	}
	log.Println("WARNING: created default staff account admin/admin123; change this password")
}
