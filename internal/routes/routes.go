package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"construction-management-backend/internal/config"
	handler "construction-management-backend/internal/handlers"
	"construction-management-backend/internal/repository"
	"construction-management-backend/internal/services/boq"
	"construction-management-backend/internal/services/constructionlog"
	"construction-management-backend/internal/storage"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	projectRepo := repository.NewProjectRepository(db)
	billRepo := repository.NewBillItemRepository(db)
	logRepo := repository.NewConstructionLogRepository(db)

	boqService := boq.NewService(billRepo)
	logService := constructionlog.NewService(logRepo, billRepo, constructionlog.OrdinalMatcher{}, config.GetRedisLock())

	storageClient, err := storage.NewClientFromEnv()
	if err != nil {
		config.GetLogger().Warnf("file storage disabled: %v", err)
	}

	projectHandler := handler.NewProjectHandler(projectRepo)
	billHandler := handler.NewBillHandler(boqService)
	logHandler := handler.NewConstructionLogHandler(logService)
	expenseHandler := handler.NewExpenseHandler(db)
	taskHandler := handler.NewTaskHandler(db)
	orderHandler := handler.NewPurchaseOrderHandler(db)
	photoHandler := handler.NewPhotoHandler(db, storageClient)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Project routes
	projects := api.Group("/projects")
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:projectId", projectHandler.Get)
	projects.PUT("/:projectId", projectHandler.Update)
	projects.DELETE("/:projectId", projectHandler.Delete)
	projects.GET("/:projectId/summary", projectHandler.Summary)

	// Bill of quantities
	bill := projects.Group("/:projectId/bill")
	bill.GET("/items", billHandler.ListItems)
	bill.POST("/items", billHandler.CreateItem)
	bill.POST("/import", billHandler.ImportCSV)
	bill.GET("/export", billHandler.ExportXLSX)
	bill.GET("/validate", billHandler.Validate)

	items := api.Group("/bill-items")
	items.PUT("/:itemId", billHandler.UpdateItem)
	items.DELETE("/:itemId", billHandler.DeleteItem)
	items.POST("/:itemId/apply-fix", billHandler.ApplyFix)

	// Construction log
	projects.POST("/:projectId/situations", logHandler.CreateSituation)
	projects.GET("/:projectId/situations", logHandler.ListSituations)

	situations := api.Group("/situations")
	situations.PUT("/:situationId/status", logHandler.UpdateSituationStatus)
	situations.DELETE("/:situationId", logHandler.DeleteSituation)
	situations.POST("/:situationId/sheets", logHandler.UploadSheet)
	situations.GET("/:situationId/sheets", logHandler.ListSheets)
	situations.GET("/:situationId/positions", logHandler.ListPositions)

	// Expenses
	projects.POST("/:projectId/expenses", expenseHandler.Create)
	projects.GET("/:projectId/expenses", expenseHandler.List)
	api.DELETE("/expenses/:expenseId", expenseHandler.Delete)

	// Tasks
	projects.POST("/:projectId/tasks", taskHandler.Create)
	projects.GET("/:projectId/tasks", taskHandler.List)
	tasks := api.Group("/tasks")
	tasks.PUT("/:taskId/status", taskHandler.UpdateStatus)
	tasks.DELETE("/:taskId", taskHandler.Delete)

	// Purchase orders
	projects.POST("/:projectId/purchase-orders", orderHandler.Create)
	projects.GET("/:projectId/purchase-orders", orderHandler.List)
	orders := api.Group("/purchase-orders")
	orders.PUT("/:orderId/status", orderHandler.UpdateStatus)
	orders.DELETE("/:orderId", orderHandler.Delete)

	// Photos
	projects.POST("/:projectId/photos/sign", photoHandler.SignUpload)
	projects.GET("/:projectId/photos", photoHandler.List)
	photos := api.Group("/photos")
	photos.POST("/:photoId/complete", photoHandler.CompleteUpload)
	photos.GET("/:photoId/download", photoHandler.Download)
	photos.DELETE("/:photoId", photoHandler.Delete)
}
