package api

import (
	"github.com/gin-gonic/gin"

	"github.com/staffdesk/employee-manager/internal/database"
	"github.com/staffdesk/employee-manager/internal/handler"
	"github.com/staffdesk/employee-manager/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	employeeHandler *handler.EmployeeHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		if db := database.GetDatabase(); db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.Ping()
			}
			if err != nil {
				c.JSON(503, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/update-password", authMiddleware.RequireAuth(), authHandler.UpdatePassword)
	}

	employees := r.Group("/api/employees")
	{
		employees.GET("", employeeHandler.List)
		employees.POST("", employeeHandler.Create)
		employees.GET("/:id", employeeHandler.Get)
		employees.PUT("/:id", employeeHandler.Update)
		employees.DELETE("/:id", employeeHandler.Delete)
	}

	return r
}
