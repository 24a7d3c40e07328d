// childcare-crm/main.go
package main

import (
	"log/slog"
	"os"

	"childcare-crm/config"
	"childcare-crm/internal/routes"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables")
	}

	config.LoadJWTKey()
	config.ConnectDB()
	config.ConnectRedis()

	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.Classroom{},
		&models.AlternativeCapacity{},
		&models.Child{},
		&models.Transition{},
		&models.Withdrawal{},
		&models.CalendarDay{},
		&models.SubsidyRate{},
		&models.Attendance{},
		&models.Payment{},
		&models.Deposit{},
		&models.Invoice{},
		&models.GovernmentFunding{},
	)
	if err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	slog.Info("Starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
