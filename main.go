package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/saludmexfood/saluds-mx-food/cache"
	"github.com/saludmexfood/saluds-mx-food/config"
	systemcontroller "github.com/saludmexfood/saluds-mx-food/controllers/system"
	"github.com/saludmexfood/saluds-mx-food/events"
	"github.com/saludmexfood/saluds-mx-food/models"
	"github.com/saludmexfood/saluds-mx-food/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.MenuWeek{},
		&models.MenuItem{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Optional infrastructure: Redis menu cache, Kafka order events
	redisClient := cfg.MustInitRedis()
	menuCache := cache.NewMenuCache(redisClient, 5*time.Minute)
	pause := cache.NewPauseState(redisClient)
	publisher := events.NewPublisher(cfg.NewKafkaWriter())

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve pickup QR codes and other uploads
	r.Static("/uploads", cfg.UploadsDir)

	// Background sweep of stale pending orders, driven by the system controls
	sweeper := systemcontroller.NewSweeper(db, pause, time.Hour, 24*time.Hour)
	go sweeper.Start()

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:        db,
		Cfg:       cfg,
		MenuCache: menuCache,
		Pause:     pause,
		Publisher: publisher,
		Sweeper:   sweeper,
	})

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config) *gorm.DB {
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
