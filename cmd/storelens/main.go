package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/storelens/storelens/internal/config"
	"github.com/storelens/storelens/internal/dashboard"
	"github.com/storelens/storelens/internal/geo"
	"github.com/storelens/storelens/internal/superstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[main] No .env file found, falling back to system env vars")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}

	loader := superstore.NewLoader(settings.GetVariableValue("SUPERSTORE_FILE"))
	geoClient := geo.NewClient(settings.GetVariableValue("STATE_CODES_URL"))

	svc := dashboard.NewService(loader, geoClient, settings)
	if err := svc.RebuildCache(); err != nil {
		// Only a broken data source is fatal; everything downstream recovers
		log.Fatalf("load dataset: %v", err)
	}

	router := gin.Default()
	api := router.Group("/api")
	{
		api.GET("/view", svc.HandleView)
		api.GET("/options", svc.HandleOptions)
		api.GET("/settings", svc.HandleGetSettings)
		api.PUT("/settings", svc.HandleUpdateSettings)
		api.GET("/cache/status", svc.HandleCacheStatus)
		api.POST("/cache/refresh", svc.HandleCacheRefresh)
	}

	port := settings.GetVariableValue("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Storelens listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
