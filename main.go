package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"city-game-backend/handlers"
	"city-game-backend/middleware"
	"city-game-backend/models"
	"city-game-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	// Only Gateway requests allowed — no exceptions.
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-User-ID",
		AllowCredentials: true,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Building{},
		&models.UserProfile{},
		&models.UserPoints{},
		&models.League{},
		&models.LeagueStats{},
		&models.UserAsset{},
		&models.Challenge{},
		&models.ChallengeProgress{},
		&models.Notification{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := seedBuildings(db); err != nil {
		log.Fatal("failed to seed building catalog:", err)
	}

	userService := services.NewUserService(db)
	leagueService := services.NewLeagueService(db)
	pointsService := services.NewPointsService(db)
	notificationService := services.NewNotificationService(db)
	challengeService := services.NewChallengeService(db, notificationService)

	scheduler, err := services.NewScheduler(pointsService, challengeService, nil)
	if err != nil {
		log.Fatal("failed to build scheduler:", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal("failed to start scheduler:", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("scheduler shutdown: %v", err)
		}
	}()

	handlers.SetupUserRoutes(app, userService)
	handlers.SetupLeagueRoutes(app, leagueService)
	handlers.SetupAssetRoutes(app, pointsService)
	handlers.SetupPointsRoutes(app, pointsService, notificationService)
	handlers.SetupChallengeRoutes(app, challengeService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)
	log.Println("Daily points update scheduled at 03:00 Europe/London")
	log.Printf("Random challenge times drawn: %v", scheduler.ChallengeTimes())

	<-ctx.Done()
	log.Println("Shutting down server...")
}

// seedBuildings loads the default catalog on first boot; existing rows win.
func seedBuildings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Building{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.DefaultCatalog).Error
}
