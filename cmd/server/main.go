package main

import (
	"time"

	"banking_backend/internal/database"
	"banking_backend/internal/router"
	"banking_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real deployments set variables in the environment
	if err := godotenv.Load(); err != nil {
		utils.LogInfo("No .env file found, using environment variables")
	}

	utils.InitLogger()
	utils.LogInfo("Starting banking backend server...")

	db, err := database.InitDB()
	if err != nil {
		utils.LogError(err, "Failed to initialize database")
		panic(err)
	}
	defer database.CloseDB()

	if err := database.SeedAdminUser(db); err != nil {
		utils.LogError(err, "Failed to seed admin user")
		panic(err)
	}

	if utils.Getenv("GIN_MODE", "") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{utils.Getenv("CORS_ALLOW_ORIGIN", "*")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	uploadDir := utils.Getenv("UPLOAD_DIR", "./uploads")
	uploadBaseURL := utils.Getenv("UPLOAD_BASE_URL", "/uploads")
	engine.Static("/uploads", uploadDir)

	if err := router.Setup(engine, db, uploadDir, uploadBaseURL); err != nil {
		utils.LogError(err, "Failed to set up router")
		panic(err)
	}

	port := utils.Getenv("SERVER_PORT", "8080")
	utils.LogInfo("Server listening on port " + port)
	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Server failed to start")
		panic(err)
	}
}
