package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"porto/internal/handlers"
	"porto/internal/middleware"
	"porto/internal/models"
	"porto/internal/repositories"
	"porto/internal/services"
	"porto/pkg/identity"
	"porto/pkg/notify"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	authURL := viper.GetString("AUTH_URL")
	authServiceKey := viper.GetString("AUTH_SERVICE_KEY")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if authURL == "" || authServiceKey == "" {
		log.Fatal("AUTH_URL and AUTH_SERVICE_KEY are required")
	}

	// --- Backend store ---
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.AdminEntry{},
		&models.Project{},
		&models.Image{},
		&models.Message{},
		&models.Comment{},
		&models.Experience{},
		&models.BlogPost{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Identity provider ---
	identityClient := identity.NewClient(identity.Config{
		BaseURL:    authURL,
		ServiceKey: authServiceKey,
	})

	// --- Notifications (optional) ---
	var publisher services.Publisher
	if rabbitMQURL != "" {
		mqClient, err := notify.NewClient(notify.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		// Log incoming notification events; a real deployment would fan
		// these out to mail or chat.
		go func() {
			err := mqClient.Consume(func(msg amqp.Delivery) error {
				log.Printf("Notification event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Failed to start notification consumer: %v", err)
			}
		}()
	} else {
		log.Println("RABBITMQ_URL not set, notification events disabled")
	}

	// --- Repositories ---
	adminRepo := repositories.NewGORMAdminRepository(db)
	projectRepo := repositories.NewGORMProjectRepository(db)
	imageRepo := repositories.NewGORMImageRepository(db)
	messageRepo := repositories.NewGORMMessageRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)
	experienceRepo := repositories.NewGORMExperienceRepository(db)
	blogRepo := repositories.NewGORMBlogRepository(db)

	// --- Services ---
	authService := services.NewAuthService(identityClient, adminRepo)
	projectService := services.NewProjectService(projectRepo)
	imageService := services.NewImageService(imageRepo)
	messageService := services.NewMessageService(messageRepo, publisher)
	commentService := services.NewCommentService(commentRepo, publisher)
	experienceService := services.NewExperienceService(experienceRepo)
	blogService := services.NewBlogService(blogRepo)
	statsService := services.NewStatsService(projectRepo, imageRepo, messageRepo, commentRepo, experienceRepo, blogRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	imageHandler := handlers.NewImageHandler(imageService)
	messageHandler := handlers.NewMessageHandler(messageService)
	commentHandler := handlers.NewCommentHandler(commentService)
	experienceHandler := handlers.NewExperienceHandler(experienceService)
	blogHandler := handlers.NewBlogHandler(blogService, authService)
	statsHandler := handlers.NewStatsHandler(statsService)
	healthHandler := handlers.NewHealthHandler(map[string]bool{
		"DATABASE_URL":     databaseURL != "",
		"AUTH_URL":         authURL != "",
		"AUTH_SERVICE_KEY": authServiceKey != "",
		"RABBITMQ_URL":     rabbitMQURL != "",
	})

	// --- Fiber app ---
	// The default 4MiB body limit would reject editor uploads before the
	// application-level cap sees them; leave room for multipart framing.
	app := fiber.New(fiber.Config{
		BodyLimit: services.MaxEditorUploadBytes + 1024*1024,
	})
	app.Use(logger.New())

	optionalIdentity := middleware.OptionalIdentity(authService)
	requireAdmin := middleware.RequireAdmin(authService)

	healthHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app, optionalIdentity)
	projectHandler.RegisterRoutes(app, requireAdmin)
	imageHandler.RegisterRoutes(app, requireAdmin)
	messageHandler.RegisterRoutes(app, requireAdmin)
	commentHandler.RegisterRoutes(app, requireAdmin)
	experienceHandler.RegisterRoutes(app, requireAdmin)
	blogHandler.RegisterRoutes(app, optionalIdentity, requireAdmin)
	statsHandler.RegisterRoutes(app, requireAdmin)

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", appPort)

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
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
