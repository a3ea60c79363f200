package router

import (
	"database/sql"

	"banking_backend/internal/handlers"
	"banking_backend/internal/middleware"
	"banking_backend/internal/repositories"
	"banking_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and registers all routes.
func Setup(engine *gin.Engine, db *sql.DB, uploadDir, uploadBaseURL string) error {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	accountRepo := repositories.NewAccountRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	clientService := services.NewClientService(clientRepo, accountRepo, db)
	accountService := services.NewAccountService(accountRepo, clientRepo, db)
	fileService, err := services.NewFileStorageService(uploadDir, uploadBaseURL)
	if err != nil {
		return err
	}

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService)
	accountHandler := handlers.NewAccountHandler(accountService)
	uploadHandler := handlers.NewUploadHandler(fileService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupClientRoutes(authenticated, clientHandler, accountHandler)
		SetupAccountRoutes(authenticated, accountHandler)
		SetupUploadRoutes(authenticated, uploadHandler)
	}

	return nil
}
