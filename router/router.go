package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/parkpal/parkpal-backend/config"
	"github.com/parkpal/parkpal-backend/handlers"
	"github.com/parkpal/parkpal-backend/middleware"
	"github.com/parkpal/parkpal-backend/services"
)

// Dependencies holds everything SetupRouter needs to wire the routes.
// RateLimiter is optional; without it the chat endpoint is not rate limited.
type Dependencies struct {
	Config         *config.Config
	ChatHandler    *handlers.ChatHandler
	SpaceHandler   *handlers.SpaceHandler
	BookingHandler *handlers.BookingHandler
	UserHandler    *handlers.UserHandler
	VehicleHandler *handlers.VehicleHandler
	HealthHandler  *handlers.HealthHandler
	RateLimiter    services.RateLimiterInterface
}

// SetupRouter configures and returns the main Gin engine with all routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")
	{
		chatRoutes := v1.Group("/chat")
		if deps.RateLimiter != nil {
			chatRoutes.Use(middleware.ChatRateLimiter(deps.RateLimiter))
		}
		chatRoutes.POST("", deps.ChatHandler.HandleChatMessage)

		spaceRoutes := v1.Group("/spaces")
		{
			spaceRoutes.GET("", deps.SpaceHandler.ListSpaces)
			spaceRoutes.POST("/search", deps.SpaceHandler.SearchSpaces)
			spaceRoutes.GET("/:id", deps.SpaceHandler.GetSpace)
		}

		bookingRoutes := v1.Group("/bookings")
		{
			bookingRoutes.POST("", deps.BookingHandler.CreateBooking)
			bookingRoutes.POST("/:id/confirm", deps.BookingHandler.ConfirmBooking)
			bookingRoutes.POST("/:id/cancel", deps.BookingHandler.CancelBooking)
		}

		userRoutes := v1.Group("/users")
		{
			userRoutes.POST("", deps.UserHandler.CreateUser)
			userRoutes.GET("/:id", deps.UserHandler.GetUser)
			userRoutes.GET("/:id/bookings", deps.BookingHandler.ListUserBookings)
			userRoutes.GET("/:id/vehicles", deps.VehicleHandler.ListUserVehicles)
		}

		v1.POST("/vehicles", deps.VehicleHandler.CreateVehicle)
	}

	return r
}
