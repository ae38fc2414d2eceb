// Package server exposes the nursery services over HTTP with gin.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	contactports "github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
	inventoryports "github.com/Apurer/plant-nursery-api/internal/domains/inventory/ports"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	statsports "github.com/Apurer/plant-nursery-api/internal/domains/stats/ports"
	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/plant-nursery-api/internal/shared/errors"
)

// Services are the application ports the HTTP layer drives.
type Services struct {
	Catalog   catalogports.Service
	Inventory inventoryports.Service
	Orders    orderports.Service
	Placement orderports.PlacementOrchestrator
	Stats     statsports.Service
	Users     userports.Service
	Contact   contactports.Service
}

// Options tune router behaviour.
type Options struct {
	// ServiceName enables otelgin tracing when set.
	ServiceName string
	Logger      *slog.Logger
	// Debug exposes wrapped error chains in problem details.
	Debug          bool
	AllowedOrigins []string
}

type api struct {
	services  Services
	responder *apierrors.ChainedResponder
	logger    *slog.Logger
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(services Services, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	a := &api{
		services:  services,
		responder: newResponder(opts.Debug),
		logger:    logger,
	}

	router := gin.New()
	router.Use(requestID(), requestLogger(logger), a.recovery())
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(corsMiddleware(opts.AllowedOrigins))
	router.HandleMethodNotAllowed = false
	router.NoRoute(func(c *gin.Context) {
		a.responder.NotFound(c, "Route not found")
	})

	root := router.Group("/api")
	root.GET("/health", a.health)
	root.GET("/plants", a.listPlants)
	root.GET("/plants/:id", a.getPlant)
	root.GET("/categories", a.categories)
	root.POST("/orders", a.authenticate(false), a.placeOrder)
	root.POST("/contact", a.submitContact)
	root.POST("/register", a.register)
	root.POST("/login", a.login)

	user := root.Group("", a.authenticate(true))
	user.POST("/logout", a.logout)
	user.GET("/user/orders", a.userOrders)

	admin := root.Group("/admin", a.authenticate(true), a.requireAdmin())
	admin.GET("/orders", a.adminOrders)
	admin.PUT("/orders/:id/status", a.updateOrderStatus)
	admin.GET("/plants", a.adminPlants)
	admin.POST("/plants", a.addPlant)
	admin.GET("/users", a.adminUsers)
	admin.GET("/stats", a.stats)
	admin.GET("/inventory/low-stock", a.lowStock)
	admin.GET("/inventory/:id/transactions", a.stockHistory)
	admin.POST("/inventory/:id", a.applyStock)
	admin.GET("/messages", a.messages)
	admin.PATCH("/messages/:id/read", a.markMessageRead)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader, idempotencyKeyHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func (a *api) health(c *gin.Context) {
	a.responder.OK(c, http.StatusOK, "Plant Nursery API is running", gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
