package routes

import (
	"os"

	"studiobook-backend/config"
	"studiobook-backend/controllers"
	"studiobook-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.Use(config.PerformanceLogger())

	cache := services.NewSlotCache(config.Redis, config.SlotCacheTTL())
	controllers.Init(config.DB, cache, os.Getenv("BOOKING_LAX_TRANSITIONS") == "true")

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	{
		// Studio routes
		studios := api.Group("/studios")
		{
			studios.POST("", controllers.CreateStudio)
			studios.GET("/:studioId", controllers.GetStudio)
			studios.PUT("/:studioId", controllers.UpdateStudio)
			studios.GET("/:studioId/dashboard", controllers.GetDashboardOverview)

			// Employee routes
			studios.POST("/:studioId/employees", controllers.CreateEmployee)
			studios.GET("/:studioId/employees", controllers.GetEmployees)

			// Service routes
			studios.POST("/:studioId/services", controllers.CreateService)
			studios.GET("/:studioId/services", controllers.GetServices)
		}

		employees := api.Group("/employees")
		{
			employees.GET("/:id", controllers.GetEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)

			employees.GET("/:id/slots", controllers.GetAvailableSlots)

			employees.POST("/:id/services", controllers.AssignService)
			employees.GET("/:id/services", controllers.GetEmployeeServices)
			employees.PUT("/:id/services/:assignmentId", controllers.UpdateAssignment)

			employees.POST("/:id/time-off", controllers.CreateTimeOff)
			employees.GET("/:id/time-off", controllers.GetTimeOff)
			employees.DELETE("/:id/time-off/:timeOffId", controllers.DeleteTimeOff)
		}

		services := api.Group("/services")
		{
			services.PUT("/:id", controllers.UpdateService)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PATCH("/:id/status", controllers.UpdateBookingStatus)
		}
	}

	return r
}
