package main

import (
	"log"
	"os"
	"time"

	"construction-management-backend/internal/config"
	"construction-management-backend/internal/models"
	"construction-management-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	db := config.InitDB()
	config.InitRedis()

	db.AutoMigrate(
		&models.Project{},
		&models.BillItem{},
		&models.IssueDecision{},
		&models.ConstructionLogSituation{},
		&models.ConstructionLogSheet{},
		&models.ConstructionLogPosition{},
		&models.Expense{},
		&models.Task{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.Photo{},
	)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
