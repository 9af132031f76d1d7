package main

import (
	"log"
	"time"

	"github.com/mattbolt/math-hack/internal/config"
	"github.com/mattbolt/math-hack/internal/database"
	"github.com/mattbolt/math-hack/internal/handlers"
	"github.com/mattbolt/math-hack/internal/services"
	"github.com/mattbolt/math-hack/internal/storage"
	"github.com/mattbolt/math-hack/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title           Math Hack API
// @version         1.0
// @description     Timed multiplayer arithmetic contest with credit-based power-ups and hack duels
// @host            localhost:8080
// @BasePath        /

func main() {
	cfg := config.Load()

	var store storage.Store
	switch cfg.StorageBackend {
	case "postgres":
		db := database.Connect(cfg)
		database.AutoMigrate(db)
		store = storage.NewGormStore(db)
	default:
		log.Println("using in-memory store")
		store = storage.NewMemoryStore()
	}

	hub := ws.NewHub()
	manager := services.NewGameManager(store, hub, cfg.SkipCountsAsWrong)

	stopHeartbeat := hub.StartHeartbeat(time.Duration(cfg.HeartbeatSeconds) * time.Second)
	defer stopHeartbeat()
	stopSweeper := manager.StartSweeper(time.Duration(cfg.EffectSweepSeconds) * time.Second)
	defer stopSweeper()

	gameHandler := handlers.NewGameHandler(manager)
	wsHandler := handlers.NewWSHandler(hub, manager)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/ws", wsHandler.HandleWebSocket)

	api := r.Group("/api")
	{
		game := api.Group("/game")
		{
			game.POST("/create", gameHandler.CreateGame)
			game.POST("/join", gameHandler.JoinGame)
			game.GET("/:sessionId/state", gameHandler.GetState)
		}
		api.GET("/powerups", gameHandler.ListPowerUps)
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
