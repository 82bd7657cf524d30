package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"veloshop/internal/handlers"
	"veloshop/internal/middleware"
	"veloshop/internal/models"
	"veloshop/internal/repositories"
	"veloshop/internal/services"
	"veloshop/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATA_FILE", "data.txt")
	viper.SetDefault("JWT_SECRET", "veloshop_dev_secret")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("DB_DRIVER", "")
	viper.SetDefault("DB_DSN", "veloshop.db")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dataFile := viper.GetString("DATA_FILE")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	dbDriver := viper.GetString("DB_DRIVER")
	dbDSN := viper.GetString("DB_DSN")

	// --- Optional RabbitMQ client ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, shipment events disabled")
	}

	// --- Repositories ---
	// The in-memory stores are the default; DB_DRIVER switches the
	// inventory and user stores to GORM-backed ones.
	var inventoryRepo repositories.InventoryRepository
	var userRepo repositories.UserRepository
	switch dbDriver {
	case "sqlite", "postgres":
		db, err := openDatabase(dbDriver, dbDSN)
		if err != nil {
			log.Fatalf("Failed to open %s database: %v", dbDriver, err)
		}
		gormInventory := repositories.NewGORMInventoryRepository(db)
		if err := gormInventory.Migrate(); err != nil {
			log.Fatalf("Failed to migrate inventory table: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Fatalf("Failed to migrate user table: %v", err)
		}
		inventoryRepo = gormInventory
		userRepo = repositories.NewGORMUserRepository(db)
	case "":
		inventoryRepo = repositories.NewMemoryInventoryRepository()
		userRepo = repositories.NewMemoryUserRepository()
	default:
		log.Fatalf("Unknown DB_DRIVER %q (want sqlite, postgres or empty)", dbDriver)
	}
	orderRepo := repositories.NewMemoryOrderRepository()

	// --- Services ---
	stats := &models.Statistics{}
	catalogService := services.NewCatalogService(inventoryRepo)
	orderService := services.NewOrderService(inventoryRepo, orderRepo, stats, mqClient)
	shopService := services.NewShopService(inventoryRepo, orderRepo, stats)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// Restore state from the data file when present; otherwise seed a
	// small demo catalog.
	if _, err := os.Stat(dataFile); err == nil {
		if err := shopService.LoadAll(dataFile); err != nil {
			log.Printf("Could not load shop data from %s: %v (starting empty)", dataFile, err)
		} else {
			log.Printf("Loaded shop data from %s", dataFile)
		}
	} else {
		shopService.SeedDemoInventory()
	}

	// --- Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	shopHandler := handlers.NewShopHandler(shopService, orderService, dataFile)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Everything else requires a staff token
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	catalogHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	shopHandler.RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Shipment event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for shipment events...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Received shipment event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if err := mqClient.ConsumeShipmentEvents(handler); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
