package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"smarthome-store/internal/cache"
	"smarthome-store/internal/config"
	"smarthome-store/internal/database"
	"smarthome-store/internal/routes"
)

func main() {
	cfg := config.LoadConfig()
	cache.Init(cfg.CacheTTL)

	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	router := gin.Default()
	routes.RegisterRoutes(router, db, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	log.Println("🚀 Server running on port", port)
	router.Run(":" + port)
}
