package routes

import (
	"github.com/gin-gonic/gin"

	"chat-app-server/controllers"
	"chat-app-server/middlewares"
)

func RegisterRoutes(r *gin.Engine) {
	// Public routes
	r.POST("/auth/register", controllers.Register)
	r.POST("/auth/login", controllers.Login)
	r.POST("/auth/refresh", controllers.RefreshToken)

	r.GET("/ws", middlewares.AuthMiddleware(), controllers.ServeWs)

	chatrooms := r.Group("/chatrooms")
	chatrooms.Use(middlewares.AuthMiddleware())
	{
		chatrooms.POST("/personal", controllers.ResolvePersonalChatRoom)
		chatrooms.POST("/group", controllers.ResolveGroupChatRoom)
		chatrooms.GET("", controllers.ListChatRooms)
		chatrooms.GET("/:chatroom_id", controllers.GetChatRoom)
		chatrooms.GET("/:chatroom_id/messages", controllers.GetChatRoomMessages)
	}

	messages := r.Group("/messages")
	messages.Use(middlewares.AuthMiddleware())
	{
		messages.POST("/personal", controllers.SendPersonalMessage)
		messages.POST("/group", controllers.SendGroupMessage)
		messages.POST("/:message_id/reply", controllers.ReplyToMessage)
		messages.POST("/:message_id/forward", controllers.ForwardMessage)
		messages.GET("/:message_id", controllers.GetMessage)
		messages.PATCH("/:message_id/status", controllers.UpdateMessageStatus)
		messages.PATCH("/:message_id", controllers.EditMessage)
		messages.DELETE("/:message_id", controllers.DeleteMessage)
	}

	groups := r.Group("/groups")
	groups.Use(middlewares.AuthMiddleware())
	{
		groups.POST("", controllers.CreateGroup)
		groups.GET("/:group_id", controllers.GetGroup)
		groups.POST("/:group_id/members", controllers.AddGroupMember)
		groups.DELETE("/:group_id/members/:user_id", controllers.RemoveGroupMember)
	}

	files := r.Group("/files")
	files.Use(middlewares.AuthMiddleware())
	{
		files.POST("", controllers.RegisterFile)
		files.GET("/:file_id", controllers.GetFile)
	}

	users := r.Group("/users")
	users.Use(middlewares.AuthMiddleware())
	{
		users.GET("/:user_id", controllers.GetUser)
	}
}
