package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MyALF-Z/AI-Agent/config"
	"github.com/MyALF-Z/AI-Agent/controller"
	"github.com/MyALF-Z/AI-Agent/dao"
	"github.com/MyALF-Z/AI-Agent/logic"
	"github.com/MyALF-Z/AI-Agent/middleware"
	"github.com/MyALF-Z/AI-Agent/models"
	"github.com/MyALF-Z/AI-Agent/pkg"
)

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <config.yaml>")
	}
	configFile := os.Args[1]
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}

	// Initialize logging (text to stderr, JSON to file)
	logger, closeLog := config.SetupLogger(cfg.Log.File, config.ParseLevel(cfg.Log.Level))
	defer closeLog()

	// Initialize database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Conversation{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize upstream clients
	chatClient := pkg.NewChatClient(cfg.Chat.BaseURL, cfg.Chat.APIKey, cfg.Chat.Model, logger)
	searchClient := pkg.NewSearchClient(cfg.Search.Endpoint, cfg.Search.APIKey, logger)

	// Initialize DAOs
	convoDAO := dao.NewConversationDAO(db)
	messageDAO := dao.NewMessageDAO(db)

	// Initialize Logics
	turnLogic := logic.NewTurnLogic(convoDAO, messageDAO, chatClient, searchClient, logger)
	convoLogic := logic.NewConversationLogic(convoDAO, messageDAO, logger)

	// Initialize Controllers
	chatCtrl := controller.NewChatController(turnLogic, logger)
	convoCtrl := controller.NewConversationController(convoLogic)
	messageCtrl := controller.NewMessageController(convoLogic)

	// Setup Gin router
	r := gin.Default()
	r.Use(middleware.CORS())
	r.POST("/api/chat", chatCtrl.Chat)
	r.GET("/api/conversations", convoCtrl.List)
	r.POST("/api/conversations", convoCtrl.Create)
	r.PUT("/api/conversations", convoCtrl.Rename)
	r.DELETE("/api/conversations", convoCtrl.Delete)
	r.GET("/api/messages", messageCtrl.GetMessages)

	// Run server
	logger.Info("starting server", "port", cfg.Server.Port, "model", chatClient.Model())
	if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
