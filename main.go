package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"chat-app-server/config"
	"chat-app-server/controllers"
	"chat-app-server/event"
	"chat-app-server/repositories/impl"
	"chat-app-server/routes"
	"chat-app-server/services"
	"chat-app-server/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	config.InitDatabase()
	config.InitRedis()

	userRepo := impl.NewUserRepository(config.DB)
	groupRepo := impl.NewGroupRepository(config.DB)
	fileRepo := impl.NewFileRepository(config.DB)
	chatRoomRepo := impl.NewChatRoomRepository(config.DB)
	messageRepo := impl.NewMessageRepository(config.DB)

	authService := services.NewAuthService(userRepo)
	presenceService := services.NewPresenceService(userRepo, config.Redis)
	chatRoomService := services.NewChatRoomService(chatRoomRepo, userRepo, groupRepo)
	messageService := services.NewMessageService(messageRepo, userRepo, fileRepo, chatRoomService)
	groupService := services.NewGroupService(groupRepo, userRepo, chatRoomService)
	fileService := services.NewFileService(fileRepo, userRepo)
	userService := services.NewUserService(userRepo, presenceService)

	hub := websocket.NewHub(messageService, presenceService)
	messageService.Events = hub
	go hub.Run()

	// The broker path is optional; without AMQP_URL the hub alone fans out.
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		bridge, err := event.NewBridge(amqpURL)
		if err != nil {
			log.Printf("event bridge disabled: %v", err)
		} else {
			defer bridge.Close()
			messageService.Bridge = bridge
		}
	}

	controllers.SetAuthService(authService)
	controllers.SetChatRoomService(chatRoomService)
	controllers.SetMessageService(messageService)
	controllers.SetGroupService(groupService)
	controllers.SetFileService(fileService)
	controllers.SetUserService(userService)
	controllers.SetHub(hub)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	r.Run(":" + port)
}
