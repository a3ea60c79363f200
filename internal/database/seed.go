package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"banking_backend/internal/models"
	"banking_backend/internal/repositories"
	"banking_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdminUser creates the initial back-office administrator if it does not
// exist yet. It only runs when ADMIN_EMAIL and ADMIN_PASSWORD are both set, so
// nothing is seeded by accident in production.
func SeedAdminUser(db *sql.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	authRepo := repositories.NewAuthRepository(db)
	if _, err := authRepo.GetUserByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check for existing admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		FirstName:    utils.Getenv("ADMIN_FIRST_NAME", "System"),
		LastName:     utils.Getenv("ADMIN_LAST_NAME", "Administrator"),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if _, err := authRepo.CreateUser(db, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	utils.LogInfo("Seeded admin user " + email)
	return nil
}
