package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/productsuite/productsuite-api/config"
	"github.com/productsuite/productsuite-api/controllers"
	"github.com/productsuite/productsuite-api/middleware"
	"github.com/productsuite/productsuite-api/services"
)

func main() {
	log.Println("Starting ProductSuite API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The store is opened, migrated and seeded before the server accepts
	// any request, so handlers never race on initialization.
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.ArchiveEnabled() {
		if _, err := services.InitArchiveService(); err != nil {
			log.Fatalf("Failed to initialize export archive: %v", err)
		}
		log.Printf("Export archive enabled on bucket %s", cfg.AWSS3Bucket)
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with the CORS policy and every API route
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/", healthCheck)

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.GET("/profile", middleware.RequireAuth(), controllers.GetProfile)
	}

	pedidos := router.Group("/api/pedidos", middleware.RequireAuth())
	{
		pedidos.GET("", controllers.GetPedidos)
		pedidos.POST("", controllers.CreatePedido)
		pedidos.PUT("/:id", controllers.UpdatePedido)
		pedidos.DELETE("/:id", controllers.DeletePedido)
		pedidos.DELETE("", middleware.RequireAdmin(), controllers.DeleteAllPedidos)
		pedidos.GET("/export", controllers.ExportPedidos)
	}

	incidencias := router.Group("/api/incidencias", middleware.RequireAuth())
	{
		incidencias.GET("", controllers.GetIncidencias)
		incidencias.GET("/estadisticas", controllers.GetEstadisticas)
		incidencias.POST("", controllers.CreateIncidencia)
		incidencias.PATCH("/:id/estado", controllers.UpdateIncidenciaEstado)
		incidencias.PATCH("/:id/contestacion", controllers.UpdateIncidenciaContestacion)
		incidencias.DELETE("/:id", controllers.DeleteIncidencia)
	}

	return router
}

// healthCheck handles the root probe endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API ProductSuite funcionando correctamente",
	})
}
