// internal/router/router.go
package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/javajoker/school-sales-backend/internal/config"
	"github.com/javajoker/school-sales-backend/internal/handlers"
	"github.com/javajoker/school-sales-backend/internal/i18n"
	"github.com/javajoker/school-sales-backend/internal/middleware"
	"github.com/javajoker/school-sales-backend/internal/repository"
	"github.com/javajoker/school-sales-backend/internal/services"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

const version = "1.0.0"

// Initialize wires services and handlers over store. ctx bounds background
// work started for the router, such as rate limiter cleanup.
func Initialize(ctx context.Context, store repository.Store, cfg *config.Config) *gin.Engine {
	// Initialize services
	teamSalesService := services.NewTeamSalesService(store, cfg.Sales.RepairConcurrency)
	orderService := services.NewOrderService(store, teamSalesService)
	orderItemService := services.NewOrderItemService(store, teamSalesService)
	productService := services.NewProductService(store)
	teamService := services.NewTeamService(store)
	classroomService := services.NewClassroomService(store)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	orderItemHandler := handlers.NewOrderItemHandler(orderItemService)
	productHandler := handlers.NewProductHandler(productService)
	teamHandler := handlers.NewTeamHandler(teamService, teamSalesService)
	classroomHandler := handlers.NewClassroomHandler(classroomService)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	go limiter.Run(ctx)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND",
			i18n.T(utils.GetLangFromContext(c), i18n.KeyRouteNotFound), nil)
	})

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(limiter.Middleware())
	{
		orders := v1.Group("/orders")
		{
			orders.GET("", orderHandler.GetOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id", orderHandler.UpdateOrder)
			orders.PATCH("/:id", orderHandler.UpdateOrder)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
		}

		orderItems := v1.Group("/order-items")
		{
			orderItems.GET("", orderItemHandler.GetOrderItems)
			orderItems.POST("", orderItemHandler.CreateOrderItem)
			orderItems.GET("/order/:orderId", orderItemHandler.GetOrderItemsByOrder)
			orderItems.GET("/:id", orderItemHandler.GetOrderItem)
			orderItems.PUT("/:id", orderItemHandler.UpdateOrderItem)
			orderItems.PATCH("/:id", orderItemHandler.UpdateOrderItem)
			orderItems.DELETE("/:id", orderItemHandler.DeleteOrderItem)
		}

		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.PATCH("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		teams := v1.Group("/teams")
		{
			teams.GET("", teamHandler.GetTeams)
			teams.POST("", teamHandler.CreateTeam)
			teams.POST("/recalculate", teamHandler.RecalculateAllTeams)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.PUT("/:id", teamHandler.UpdateTeam)
			teams.PATCH("/:id", teamHandler.UpdateTeam)
			teams.DELETE("/:id", teamHandler.DeleteTeam)
			teams.POST("/:id/recalculate", teamHandler.RecalculateTeam)
		}

		classrooms := v1.Group("/classrooms")
		{
			classrooms.GET("", classroomHandler.GetClassrooms)
			classrooms.POST("", classroomHandler.CreateClassroom)
			classrooms.GET("/:id", classroomHandler.GetClassroom)
			classrooms.PUT("/:id", classroomHandler.UpdateClassroom)
			classrooms.PATCH("/:id", classroomHandler.UpdateClassroom)
			classrooms.DELETE("/:id", classroomHandler.DeleteClassroom)
		}
	}

	return r
}
