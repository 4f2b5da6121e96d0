package main

import (
	"fmt"
	"os"

	"studiobook-backend/config"
	"studiobook-backend/metrics"
	"studiobook-backend/models"
	"studiobook-backend/routes"
	"studiobook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	config.ConnectDB()
	config.ConnectRedis()

	config.DB.AutoMigrate(
		&models.Studio{},
		&models.Employee{},
		&models.EmployeeTimeOff{},
		&models.Service{},
		&models.EmployeeService{},
		&models.Booking{},
	)
	config.EnsureBookingConstraints(config.DB)

	metrics.Register()
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	sweeper := services.NewCompletionService(config.DB, services.NewBookingService(config.DB, nil))
	sweeper.StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
