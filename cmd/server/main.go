package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/domain/fiber/handler"
	"github.com/jobtrackr/jobtrackr/internal/events"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/reminder"
	"github.com/jobtrackr/jobtrackr/internal/repository"
	"github.com/jobtrackr/jobtrackr/internal/service"
	"github.com/jobtrackr/jobtrackr/internal/session"
	"github.com/jobtrackr/jobtrackr/internal/storage"
	"github.com/jobtrackr/jobtrackr/internal/usecase"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			var authErr *util.AuthError
			if errors.As(err, &authErr) {
				code = fiber.StatusUnauthorized
			}
			var validationErr *util.ValidationError
			if errors.As(err, &validationErr) {
				code = fiber.StatusBadRequest
			}
			var notFoundErr *util.NotFoundError
			if errors.As(err, &notFoundErr) {
				code = fiber.StatusNotFound
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()
	rdb := ConnectRedis(ctx)

	storageConfig := config.LoadStorageConfig()
	signer := storage.NewSigner(storageConfig.SigningSecret)

	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	resumeRepo := repository.NewResumeRepository(db)

	tokens := session.NewRedisStore(rdb)
	mailer := service.NewMailService()
	manager := session.NewManager(userRepo, tokens, mailer, config.LoadAuthConfig())

	publisher := events.NewRedisPublisher(rdb)
	uc := usecase.NewTrackerUsecase(appRepo, resumeRepo, publisher, signer)

	handler.NewAuthHandler(manager).RegisterRoutes(app)
	handler.NewApplicationHandler(uc, manager).RegisterRoutes(app)
	handler.NewResumeHandler(uc, manager, signer, storageConfig.UploadDir).RegisterRoutes(app)
	handler.NewDashboardHandler(uc, manager).RegisterRoutes(app)

	scheduler := reminder.New(appRepo, publisher, "@every 1h")
	if err := scheduler.Start(ctx); err != nil {
		log.Fatal("could not start follow-up scheduler: ", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down")
		scheduler.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Application{}, &model.ResumeVersion{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}

func ConnectRedis(ctx context.Context) *redis.Client {
	opts, err := redis.ParseURL(config.LoadRedisConfig().URL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to redis: %v", err)
	}
	return rdb
}
