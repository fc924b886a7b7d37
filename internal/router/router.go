package router

import (
	"nyumbani/internal/database"
	"nyumbani/internal/handlers"
	"nyumbani/internal/middleware"
	"nyumbani/internal/services"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware, handlers and routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerRoutes(router)
	return router
}

func registerRoutes(router *gin.Engine) {
	db := database.GetDB()

	userService := services.NewUserService(db)
	blacklist := services.NewTokenBlacklist(database.GetRedis())
	auth := middleware.NewAuthMiddleware(userService, blacklist)

	api := router.Group("/api/v1")
	{
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// auth routes
		authHandler := handlers.NewAuthHandler(userService, blacklist)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/refresh", authHandler.RefreshToken)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// caretaker accounts (landlord only)
		userHandler := handlers.NewUserHandler(userService)
		caretakers := api.Group("/caretakers", auth.RequireLogin(), auth.RequireLandlord())
		{
			caretakers.POST("", userHandler.CreateCaretaker)
			caretakers.GET("", userHandler.ListCaretakers)
		}

		// apartments
		apartmentHandler := handlers.NewApartmentHandler(services.NewApartmentService(db))
		unitHandler := handlers.NewUnitHandler(services.NewUnitService(db))
		apartments := api.Group("/apartments", auth.RequireLogin())
		{
			apartments.POST("", auth.RequireLandlord(), apartmentHandler.Create)
			apartments.GET("", apartmentHandler.List)
			apartments.GET("/:id", apartmentHandler.GetByID)
			apartments.PUT("/:id", auth.RequireLandlord(), apartmentHandler.Update)
			apartments.PUT("/:id/caretaker", auth.RequireLandlord(), apartmentHandler.AssignCaretaker)
			apartments.GET("/:id/units", unitHandler.ListByApartment)
			apartments.POST("/:id/units", auth.RequireLandlord(), unitHandler.Create)
		}

		// units and tenancies
		tenancyHandler := handlers.NewTenancyHandler(services.NewTenancyService(db))
		rentRecordHandler := handlers.NewRentRecordHandler(services.NewRentRecordService(db))
		units := api.Group("/units", auth.RequireLogin())
		{
			units.GET("/:id", unitHandler.GetByID)
			units.PUT("/:id", auth.RequireLandlord(), unitHandler.Update)
			units.POST("/:id/assign", tenancyHandler.Assign)
			units.GET("/:id/tenancies", tenancyHandler.ListByUnit)
		}

		tenancies := api.Group("/tenancies", auth.RequireLogin())
		{
			tenancies.GET("/:id", tenancyHandler.GetByID)
			tenancies.POST("/:id/vacate", tenancyHandler.Vacate)
			tenancies.GET("/:id/rent-records", rentRecordHandler.ListByTenancy)
		}

		// tenants
		tenantHandler := handlers.NewTenantHandler(services.NewTenantService(db))
		tenants := api.Group("/tenants", auth.RequireLogin())
		{
			tenants.POST("", tenantHandler.Create)
			tenants.GET("", tenantHandler.List)
			tenants.GET("/:id", tenantHandler.GetByID)
			tenants.PUT("/:id", tenantHandler.Update)
		}

		// rent records and payments
		paymentHandler := handlers.NewPaymentHandler(services.NewPaymentService(db))
		rentRecords := api.Group("/rent-records", auth.RequireLogin())
		{
			rentRecords.POST("/ensure", auth.RequireLandlord(), rentRecordHandler.Ensure)
			rentRecords.GET("/:id", rentRecordHandler.GetByID)
			rentRecords.POST("/:id/payments", paymentHandler.Create)
			rentRecords.GET("/:id/payments", paymentHandler.ListByRecord)
		}

		payments := api.Group("/payments", auth.RequireLogin())
		{
			payments.DELETE("/:id", paymentHandler.Delete)
		}

		// reports
		reportHandler := handlers.NewReportHandler(services.NewReportService(db), services.NewRentRecordService(db))
		reports := api.Group("/reports", auth.RequireLogin())
		{
			reports.GET("/summary", reportHandler.Summary)
			reports.GET("/summary/export", reportHandler.ExportCSV)
		}
	}
}

func healthCheck(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

func ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}
