package routes

import (
	"github.com/gofiber/fiber/v2"

	"worthy-waste/internal/api/handlers"
	"worthy-waste/internal/middleware"
	"worthy-waste/pkg/jwt"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	FoodHandler        handlers.FoodHandler
	ClassifyHandler    handlers.ClassifyHandler
	MarketplaceHandler handlers.MarketplaceHandler
	MidtransHandler    handlers.MidtransHandler
	AnalyticsHandler   handlers.AnalyticsHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.FoodItems()
	c.Classify()
	c.Marketplace()
	c.Analytics()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Get("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetUser)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.MidtransHandler.MidtransWebhookHandler)
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))
	foodItems.Get("/dashboard", c.FoodHandler.GetDashboardStats)
	foodItems.Post("/image", c.FoodHandler.UploadFoodImage)

	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)
}

func (c *Config) Classify() {
	classify := c.App.Group("/api/v1/classify")
	classify.Get("/categories", c.ClassifyHandler.GetCategories)
	classify.Post("/image", c.Middleware.AuthMiddleware(c.JWTService), c.ClassifyHandler.ClassifyImage)
	classify.Delete("/image/:filename", c.Middleware.AuthMiddleware(c.JWTService), c.ClassifyHandler.DeleteImage)
}

func (c *Config) Marketplace() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	marketplace := c.App.Group("/api/v1/marketplace")
	marketplace.Get("/buyers", c.MarketplaceHandler.GetBuyers)
	marketplace.Post("/sell", auth, c.MarketplaceHandler.Sell)
	marketplace.Get("/transactions", auth, c.MarketplaceHandler.GetTransactions)
	marketplace.Put("/transactions/:id/status", auth, c.MarketplaceHandler.UpdateTransactionStatus)
	marketplace.Get("/transactions/:id/impact", auth, c.MarketplaceHandler.GetTransactionImpact)
	marketplace.Post("/transactions/:id/payment", auth, c.MarketplaceHandler.CreatePayment)
}

func (c *Config) Analytics() {
	analytics := c.App.Group("/api/v1/analytics")
	analytics.Get("/leaderboard", c.AnalyticsHandler.GetLeaderboard)
	analytics.Get("/global-stats", c.AnalyticsHandler.GetGlobalStats)
	analytics.Get("/summary", c.Middleware.AuthMiddleware(c.JWTService), c.AnalyticsHandler.GetSummary)
	analytics.Get("/impact", c.Middleware.AuthMiddleware(c.JWTService), c.AnalyticsHandler.GetImpact)
}
