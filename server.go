package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"dummyblog/api/handlers"
	"dummyblog/api/middleware"
	"dummyblog/api/routes"
	"dummyblog/config"
	"dummyblog/db"
	"dummyblog/services"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting gateway...", config.AppConfig.Remote.APIBaseURL)

	// Redis и RabbitMQ необязательны: без них шлюз работает напрямую с API
	if err := services.InitRedis(); err != nil {
		log.Printf("Warning: Redis initialization failed: %v", err)
	}
	if err := services.InitRabbitMQ(); err != nil {
		log.Printf("Warning: RabbitMQ initialization failed: %v", err)
	} else {
		if err := services.StartPostEventConsumer(context.Background(), "post_events_gateway"); err != nil {
			log.Printf("Warning: Failed to start post event consumer: %v", err)
		}
	}

	var archive *services.ChatArchive
	if config.AppConfig.Archive.Path != "" {
		if err := db.ConnectDB(config.AppConfig.Archive.Path); err != nil {
			log.Printf("Warning: Chat archive initialization failed: %v", err)
		} else {
			archive = services.NewChatArchive(db.ORM)
		}
	}

	postClient := services.NewPostClient(config.AppConfig.Remote.APIBaseURL)
	history := services.NewQueryHistory(config.AppConfig.Query.HistorySize)

	handlers.InitHandlers(handlers.Deps{
		PostClient:     postClient,
		FilterSvc:      services.NewFilterService(),
		PageCache:      services.NewPageCache(services.RedisClient),
		QueryService:   services.NewQueryService(postClient, history),
		ChatArchive:    archive,
		ChatURL:        config.AppConfig.Remote.ChatURL,
		ChatPolicy:     config.AppConfig.Chat.ReconnectPolicy,
		ChatPendingTTL: time.Duration(config.AppConfig.Chat.PendingEchoTTL) * time.Second,
	})

	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware("gateway"))

	routes.PublicApi(router)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
