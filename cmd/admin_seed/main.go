// Command admin_seed creates the initial admin user and a starter set
// of classification rules.
package main

import (
	"log"
	"os"

	"vigil/internal/config"
	"vigil/internal/models"
	"vigil/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var starterRules = []models.Rule{
	{
		Name:      "Large transfer",
		Type:      models.RuleTypeAmount,
		Condition: "> 10000",
		Action:    models.RuleActionFlag,
		Status:    models.RuleStatusActive,
	},
	{
		Name:      "Critical risk score",
		Type:      models.RuleTypeRiskScore,
		Condition: "> 90",
		Action:    models.RuleActionBlock,
		Status:    models.RuleStatusActive,
	},
	{
		Name:      "Velocity anomaly",
		Type:      models.RuleTypeIndicator,
		Condition: "Velocity",
		Action:    models.RuleActionFlag,
		Status:    models.RuleStatusActive,
	},
}

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("failed to close database connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("failed to close Redis connection: %v", err)
			}
		}
	}()

	var existing models.User
	if err := repositories.DB.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashed),
		Name:     "Administrator",
		Role:     models.RoleAdmin,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	log.Printf("Created admin user %s", admin.Email)

	for i := range starterRules {
		r := starterRules[i]
		r.CreatedBy = admin.ID

		var count int64
		repositories.DB.Model(&models.Rule{}).Where("name = ?", r.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := repositories.DB.Create(&r).Error; err != nil {
			log.Fatalf("Failed to create rule %q: %v", r.Name, err)
		}
		log.Printf("Created rule %q", r.Name)
	}
}
