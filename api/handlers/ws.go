package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"dummyblog/api/middleware"
	"dummyblog/models"
	"dummyblog/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSChatHandler - WebSocket endpoint чата.
// Каждое клиентское подключение владеет одной сессией к echo-серверу:
// текст от клиента уходит в сессию, видимые сообщения сессии - клиенту.
func WSChatHandler(c *gin.Context) {
	username := c.DefaultQuery("username", "Guest")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	services.GlobalWSConnManager.Add(sessionID, conn)
	defer services.GlobalWSConnManager.Remove(sessionID)
	log.Printf("Chat session %s connected, active sessions: %d", sessionID, services.GlobalWSConnManager.Count())

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	transport := services.NewChatTransport(chatURL, chatPolicy)
	session := services.NewChatSession(transport, username, chatArchive)
	session.SetPendingTTL(chatPendingTTL)
	session.OnAppend(func(msg models.ChatMessage) {
		data, err := json.Marshal(msg)
		if err != nil {
			return
		}
		middleware.RecordChatMessage("received", "ok", "gateway")
		services.GlobalWSConnManager.Send(sessionID, data)
	})

	if err := session.Start(ctx); err != nil {
		log.Println("Chat session connect error:", err)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"error","message":"Failed to connect to chat"}`))
		return
	}
	defer session.Stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Println("WebSocket read error:", err)
			break
		}

		var req struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &req); err != nil || req.Text == "" {
			// Неструктурированный кадр трактуем как сырой текст
			req.Text = string(data)
		}
		if strings.TrimSpace(req.Text) == "" {
			middleware.RecordChatMessage("dropped", "empty", "gateway")
			continue
		}

		if err := session.Send(req.Text); err != nil {
			middleware.RecordChatMessage("sent", "error", "gateway")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"error","message":"Cannot send message: not connected"}`))
			continue
		}
		middleware.RecordChatMessage("sent", "ok", "gateway")
	}
}

// GetChatArchive отдает последние сообщения локального архива чата
func GetChatArchive(c *gin.Context) {
	if chatArchive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat archive is disabled"})
		return
	}

	limit := parseIntQuery(c, "limit", services.ARCHIVE_PAGE_SIZE)
	messages, err := chatArchive.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat archive"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
