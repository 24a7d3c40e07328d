// childcare-crm/cmd/seed/main.go
//
// Seeds the reference data a fresh deployment needs: the centre calendar
// with statutory holidays for one year, the provincial subsidy rates and an
// initial admin account.
//
//	go run ./cmd/seed -year 2025 -admin-password <password>
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"childcare-crm/config"
	"childcare-crm/internal/handlers"
	"childcare-crm/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func main() {
	year := flag.Int("year", time.Now().Year(), "calendar year to populate")
	adminLogin := flag.String("admin-login", "admin", "login for the initial admin account")
	adminPassword := flag.String("admin-password", "", "password for the initial admin account (skipped when empty)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables")
	}
	config.ConnectDB()

	if err := handlers.GenerateCalendarYear(config.DB, *year); err != nil {
		slog.Error("Failed to generate calendar", "year", *year, "error", err)
		os.Exit(1)
	}
	slog.Info("Calendar populated", "year", *year)

	// Current provincial daily rates. Government portion = tuition - parent cap.
	rates := []models.SubsidyRate{
		{ProgramType: models.ProgramInfant, DailyTuitionRate: 110.19, DailyParentRate: 22},
		{ProgramType: models.ProgramToddler, DailyTuitionRate: 92.31, DailyParentRate: 22},
		{ProgramType: models.ProgramPreschool, DailyTuitionRate: 74.36, DailyParentRate: 22},
	}
	for i := range rates {
		rates[i].DailyGovernmentRate = handlers.DeriveGovernmentRate(rates[i].DailyTuitionRate, rates[i].DailyParentRate)
	}
	err := config.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "program_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"daily_tuition_rate", "daily_parent_rate", "daily_government_rate",
		}),
	}).Create(&rates).Error
	if err != nil {
		slog.Error("Failed to seed subsidy rates", "error", err)
		os.Exit(1)
	}
	slog.Info("Subsidy rates seeded", "count", len(rates))

	if *adminPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("Failed to hash admin password", "error", err)
			os.Exit(1)
		}
		admin := models.User{
			Login:        *adminLogin,
			PasswordHash: string(hashed),
			FullName:     "Administrator",
		}
		err = config.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "login"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
		}).Create(&admin).Error
		if err != nil {
			slog.Error("Failed to seed admin account", "error", err)
			os.Exit(1)
		}
		slog.Info("Admin account ready", "login", *adminLogin)
	}
}
