package routes

import (
	"time"

	"skiply/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterQueueRoutes registers booking and queue endpoints.
func RegisterQueueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/queue")
	{
		// Public
		api.GET("/metrics/:businessId", hb.Queue.GetBusinessQueueMetrics)

		customer := api.Group("")
		customer.Use(hb.UserAuth)
		customer.POST("/book", hb.Queue.BookQueue)
		customer.GET("/my-bookings", hb.Queue.GetUserBookings)
		customer.GET("/next-token", hb.Queue.GetNextToken)
		customer.GET("/status/:id", hb.Queue.GetQueueStatus)

		business := api.Group("")
		business.Use(hb.UserAuth, hb.BusinessOnly)
		business.PATCH("/:id/status", hb.Queue.UpdateBookingStatus)
		business.GET("/business/:businessId", hb.Queue.GetBusinessBookings)
	}
}

// RegisterUserRoutes registers profile and directory endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.GET("/businesses/open", hb.User.GetOpenBusinesses)

		// Protected routes (Require Authentication)
		api.GET("/profile", hb.UserAuth, hb.User.GetProfile)
		api.PUT("/profile", hb.UserAuth, hb.User.UpdateProfile)
		api.GET("", hb.UserAuth, hb.AdminOnly, hb.User.GetAllUsers)
	}
}

// RegisterUploadRoutes registers the image upload endpoint.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/upload", hb.UserAuth, hb.Storage.UploadImage)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	RegisterQueueRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
