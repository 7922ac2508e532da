package main

import (
	"log"

	"github.com/mateolarreaferro/Icebreakers/internal/config"
	"github.com/mateolarreaferro/Icebreakers/internal/database"
	"github.com/mateolarreaferro/Icebreakers/internal/handlers"
	"github.com/mateolarreaferro/Icebreakers/internal/middleware"
	"github.com/mateolarreaferro/Icebreakers/internal/oracle"
	"github.com/mateolarreaferro/Icebreakers/internal/room"
	"github.com/mateolarreaferro/Icebreakers/internal/services"
	"github.com/mateolarreaferro/Icebreakers/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	registry := room.NewRegistry(room.DefaultSessionTTL)

	llm := oracle.NewClient(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMModel)
	if !llm.IsAvailable() {
		log.Println("LLM_API_KEY not set, narrative turns will fail and topics will use fallbacks")
	}

	authService := services.NewAuthService(db, cfg.JWTSecret)
	profileService := services.NewProfileService(db)
	memoryService := services.NewMemoryService(db)
	statsService := services.NewStatsService(db)

	authHandler := handlers.NewAuthHandler(authService)
	storyHandler := handlers.NewStoryHandler(registry, llm, profileService, memoryService, statsService, hub)
	roomHandler := handlers.NewRoomHandler(registry, llm, statsService, hub)
	profileHandler := handlers.NewProfileHandler(profileService, statsService)
	memoryHandler := handlers.NewMemoryHandler(memoryService)
	wsHandler := handlers.NewWSHandler(registry, hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/ws/rooms/:id", wsHandler.HandleRoomWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.GET("/scenarios", storyHandler.ListScenarios)
		api.GET("/gms", storyHandler.ListGMs)

		stories := api.Group("/stories")
		stories.Use(middleware.JWTAuth(authService))
		{
			stories.POST("", storyHandler.CreateStory)
			stories.GET("", storyHandler.ListStories)
			stories.GET("/:id", storyHandler.GetStory)
			stories.POST("/:id/join", storyHandler.JoinStory)
			stories.POST("/:id/turn", storyHandler.SubmitTurn)
			stories.GET("/:id/export", storyHandler.ExportStory)
			stories.POST("/:id/end", storyHandler.EndStory)
		}

		rooms := api.Group("/rooms")
		rooms.Use(middleware.JWTAuth(authService))
		{
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("", roomHandler.ListRooms)
			rooms.GET("/:id", roomHandler.GetRoom)
			rooms.POST("/:id/join", roomHandler.JoinRoom)
			rooms.POST("/:id/leave", roomHandler.LeaveRoom)
			rooms.POST("/:id/messages", roomHandler.SendMessage)
			rooms.POST("/:id/ready", roomHandler.SetReady)
			rooms.POST("/:id/votekick", roomHandler.StartVotekick)
			rooms.POST("/:id/votekick/:target/vote", roomHandler.VoteOnKick)
			rooms.POST("/:id/close", roomHandler.CloseRoom)
		}

		profiles := api.Group("/profiles")
		profiles.Use(middleware.JWTAuth(authService))
		{
			profiles.POST("", profileHandler.UpsertProfile)
			profiles.GET("", profileHandler.ListProfiles)
			profiles.GET("/:name", profileHandler.GetProfile)
		}

		memories := api.Group("/memories")
		memories.Use(middleware.JWTAuth(authService))
		{
			memories.POST("", memoryHandler.AddMemory)
			memories.GET("/:name", memoryHandler.ListMemories)
		}

		users := api.Group("/users")
		users.Use(middleware.JWTAuth(authService))
		{
			users.GET("/me/stats", profileHandler.GetMyStats)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
