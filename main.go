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
	"gorm.io/gorm"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/handlers"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/repositories"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/services"
	"github.com/samuelkabedi/SHOP-KABEDI/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=shop port=5432 sslmode=disable")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// A missing signing secret is a fatal misconfiguration.
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	var publisher services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, order event publishing disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	credentialService := services.NewCredentialService(jwtSecret)
	userService := services.NewUserService(userRepo, credentialService)
	productService := services.NewProductService(productRepo, userRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, publisher)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, credentialService)
	productHandler := handlers.NewProductHandler(productService, credentialService)
	orderHandler := handlers.NewOrderHandler(orderService, credentialService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")
	userHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received order event %s (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
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
