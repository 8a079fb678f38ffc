package routes

import (
	"dummyblog/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func PublicApi(router *gin.Engine) *gin.RouterGroup {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	publicEndpoints := router.Group("/api/v1/")
	{
		// Посты
		publicEndpoints.GET("posts", handlers.ListPosts)
		publicEndpoints.GET("posts/:id", handlers.GetPost)
		// Отдельный сегмент, чтобы не конфликтовать с posts/:id
		publicEndpoints.GET("search", handlers.SearchPosts)
		publicEndpoints.POST("posts", handlers.CreatePost)
		publicEndpoints.PUT("posts/:id", handlers.UpdatePost)
		publicEndpoints.DELETE("posts/:id", handlers.DeletePost)

		// Консоль запросов
		publicEndpoints.POST("query", handlers.ExecuteQuery)
		publicEndpoints.GET("query/history", handlers.GetQueryHistory)
		publicEndpoints.DELETE("query/history", handlers.ClearQueryHistory)
		publicEndpoints.DELETE("query/history/:id", handlers.RemoveQueryHistoryItem)

		// Чат
		publicEndpoints.GET("ws/chat", handlers.WSChatHandler)
		publicEndpoints.GET("chat/archive", handlers.GetChatArchive)
	}
	return publicEndpoints
}
