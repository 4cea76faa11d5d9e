package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"society-backend-go/internal/core"
	"society-backend-go/internal/db"
	"society-backend-go/internal/middleware"
)

// SetupRoutes configures the application routes. Global middleware
// (logging, recovery, CORS) is applied to the router before this is called,
// in main.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	userService core.UserService,
	flatService core.FlatService,
	ownerService core.OwnerService,
	occupancyService core.OccupancyService,
	vehicleService core.VehicleService,
	reportService core.ReportService,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; routes cannot be secured.")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient)
	adminMW := middleware.NewAdminMiddleware(userService)

	userHandler := NewUserHandler(userService)
	flatHandler := NewFlatHandler(flatService)
	ownerHandler := NewOwnerHandler(ownerService, occupancyService)
	vehicleHandler := NewVehicleHandler(vehicleService)
	reportHandler := NewReportHandler(reportService, occupancyService)

	apiV1 := router.Group("/api/v1")
	{
		usersGroup := apiV1.Group("/users")
		{
			usersGroup.POST("/initialize", authMW.VerifyToken(), userHandler.InitializeProfile)
			usersGroup.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentProfile)
			usersGroup.DELETE("/me", authMW.VerifyToken(), userHandler.DeleteCurrentProfile)
			usersGroup.PUT("/:userId/role", authMW.VerifyToken(), adminMW.RequireAdmin(), userHandler.UpdateUserRole)
		}

		flatsGroup := apiV1.Group("/flats", authMW.VerifyToken())
		{
			flatsGroup.GET("", flatHandler.ListFlats)
			flatsGroup.GET("/:flatId", flatHandler.GetFlat)
			flatsGroup.GET("/:flatId/owners", ownerHandler.ListFlatOwners)

			// Mutations are admin-only.
			flatsGroup.POST("", adminMW.RequireAdmin(), flatHandler.CreateFlat)
			flatsGroup.PUT("/:flatId", adminMW.RequireAdmin(), flatHandler.UpdateFlat)
			flatsGroup.DELETE("/:flatId", adminMW.RequireAdmin(), flatHandler.DeleteFlat)

			// Occupancy mutations.
			flatsGroup.POST("/:flatId/owner", adminMW.RequireAdmin(), ownerHandler.AssignOwner)
			flatsGroup.POST("/:flatId/transfer", adminMW.RequireAdmin(), ownerHandler.TransferOwnership)
		}

		ownersGroup := apiV1.Group("/owners", authMW.VerifyToken())
		{
			ownersGroup.GET("", ownerHandler.ListOwners)
			ownersGroup.GET("/:ownerId", ownerHandler.GetOwner)
			ownersGroup.DELETE("/:ownerId", adminMW.RequireAdmin(), ownerHandler.RemoveOwner)
		}

		vehiclesGroup := apiV1.Group("/vehicles")
		{
			// Stateless and public: used by the registration form before
			// the user is necessarily signed in.
			vehiclesGroup.POST("/validate-number", vehicleHandler.ValidateVehicleNumber)

			vehiclesGroup.GET("", authMW.VerifyToken(), vehicleHandler.ListVehicles)
			vehiclesGroup.GET("/lookup", authMW.VerifyToken(), vehicleHandler.LookupVehicle)
			vehiclesGroup.GET("/:vehicleId", authMW.VerifyToken(), vehicleHandler.GetVehicle)
			vehiclesGroup.POST("", authMW.VerifyToken(), adminMW.RequireAdmin(), vehicleHandler.CreateVehicle)
			vehiclesGroup.PUT("/:vehicleId", authMW.VerifyToken(), adminMW.RequireAdmin(), vehicleHandler.UpdateVehicle)
			vehiclesGroup.DELETE("/:vehicleId", authMW.VerifyToken(), adminMW.RequireAdmin(), vehicleHandler.DeleteVehicle)
		}

		reportsGroup := apiV1.Group("/reports", authMW.VerifyToken(), adminMW.RequireAdmin())
		{
			reportsGroup.GET("/:reportType", reportHandler.GenerateReport)
		}

		dashboardGroup := apiV1.Group("/dashboard", authMW.VerifyToken(), adminMW.RequireAdmin())
		{
			dashboardGroup.GET("/stats", reportHandler.GetDashboardStats)
			dashboardGroup.GET("/drift", reportHandler.GetOccupancyDrift)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured under /api/v1 and /health.")
}
