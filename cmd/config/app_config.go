package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/internal/api/handlers"
	"worthy-waste/internal/api/routes"
	"worthy-waste/internal/cache"
	"worthy-waste/internal/events"
	"worthy-waste/internal/middleware"
	"worthy-waste/internal/utils"
	"worthy-waste/internal/utils/mailing"
	"worthy-waste/internal/utils/storage"
	"worthy-waste/pkg/analytics"
	"worthy-waste/pkg/classify"
	"worthy-waste/pkg/food"
	"worthy-waste/pkg/jwt"
	"worthy-waste/pkg/marketplace"
	"worthy-waste/pkg/midtrans"
	"worthy-waste/pkg/user"
)

// multipart framing on top of the largest accepted image
const multipartOverhead = 512 * 1024

func newFiberConfig() fiber.Config {
	return fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         domain.MaxWasteImageSize + multipartOverhead,
	}
}

// NewApp wires every repository, service and handler onto a fiber app. The
// returned publisher must be closed on shutdown to flush pending events.
func NewApp(db *gorm.DB) (*fiber.App, events.Publisher, error) {
	utils.InitValidator()
	app := fiber.New(newFiberConfig())
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()
	redisCache := cache.New(utils.GetConfig("REDIS_ADDR"), utils.GetConfig("REDIS_PASSWORD"))
	publisher := events.NewPublisher(utils.GetKafkaBrokers(), utils.GetConfig("KAFKA_TOPIC"))

	// Repository
	userRepository := analytics.NewInvalidatingUserRepository(user.NewUserRepository(db), redisCache)
	foodRepository := food.NewFoodRepository(db)
	transactionRepository := marketplace.NewTransactionRepository(db)
	analyticsRepository := analytics.NewAnalyticsRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	foodService := food.NewFoodService(foodRepository, userRepository, s3)
	classifyService := classify.NewClassifyService(s3)
	marketplaceService := marketplace.NewMarketplaceService(
		transactionRepository,
		userRepository,
		marketplace.NewBuyerCatalog(utils.GetBuyers()),
		midtrans.NewMidtransService(),
		publisher,
		mailer,
	)
	analyticsService := analytics.NewAnalyticsService(
		analyticsRepository,
		userRepository,
		foodRepository,
		foodService,
		transactionRepository,
		redisCache,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	classifyHandler := handlers.NewClassifyHandler(classifyService)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceService, validator)
	midtransHandler := handlers.NewMidtransHandler(marketplaceService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		FoodHandler:        foodHandler,
		ClassifyHandler:    classifyHandler,
		MarketplaceHandler: marketplaceHandler,
		MidtransHandler:    midtransHandler,
		AnalyticsHandler:   analyticsHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, publisher, nil
}
