package main

import (
	"log"
	"os"

	"tkbet/internal/config"
	"tkbet/internal/models"
	"tkbet/internal/repositories"
	"tkbet/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")

	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	// Re-running the seed resets the admin password and invalidates old
	// sessions instead of failing.
	var existingAdmin models.User
	result := repositories.DB.Where("email = ?", adminEmail).First(&existingAdmin)
	if result.Error == nil {
		existingAdmin.Password = string(hashedPassword)
		existingAdmin.TokenVersion++
		if err := repositories.DB.Save(&existingAdmin).Error; err != nil {
			log.Fatal("Failed to reset admin password:", err)
		}
		log.Println("Admin user already exists, password reset")
		return
	}

	adminUser := models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		Password:     string(hashedPassword),
		Phone:        adminPhone,
		PlayerID:     utils.GeneratePlayerID(),
		Role:         models.RoleAdmin,
		Status:       "active",
		ReferralCode: utils.GenerateReferralCode(),
		TokenVersion: 1,
	}

	if err := repositories.DB.Create(&adminUser).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Println("Admin account created successfully")
}
