package router

import (
	"banking_backend/internal/handlers"
	"banking_backend/internal/middleware"
	"banking_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up the unauthenticated auth routes.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)
}

// SetupAuthenticatedAuthRoutes sets up the auth routes that require a token.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupClientRoutes sets up the client routes. The deleted (audit) view and
// restore are admin-only.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler, accountHandler *handlers.AccountHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.ListClients)
		clientRoutes.GET("/deleted", middleware.RoleAuthMiddleware(models.RoleAdmin), clientHandler.ListDeletedClients)
		clientRoutes.GET("/deleted/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), clientHandler.GetDeletedClientByID)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.PATCH("/:id", clientHandler.PatchClient)
		clientRoutes.PATCH("/:id/profile-picture", clientHandler.UpdateProfilePicture)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
		clientRoutes.POST("/:id/restore", middleware.RoleAuthMiddleware(models.RoleAdmin), clientHandler.RestoreClient)
		clientRoutes.GET("/:id/accounts", accountHandler.GetClientAccounts)
	}
}

// SetupAccountRoutes sets up the account routes.
func SetupAccountRoutes(authenticatedGroup *gin.RouterGroup, accountHandler *handlers.AccountHandler) {
	accountRoutes := authenticatedGroup.Group("/accounts")
	{
		accountRoutes.POST("", accountHandler.CreateAccount)
		accountRoutes.GET("", accountHandler.GetAccounts)
		accountRoutes.GET("/:rib", accountHandler.GetAccountByRIB)
		accountRoutes.PUT("/:rib", accountHandler.UpdateAccount)
		accountRoutes.DELETE("/:rib", accountHandler.DeleteAccount)
	}
}

// SetupUploadRoutes sets up the file upload routes.
func SetupUploadRoutes(authenticatedGroup *gin.RouterGroup, uploadHandler *handlers.UploadHandler) {
	uploadRoutes := authenticatedGroup.Group("/upload")
	{
		uploadRoutes.POST("/profile-picture", uploadHandler.UploadProfilePicture)
	}
}
