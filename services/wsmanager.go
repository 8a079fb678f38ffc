package services

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WSConnManager хранит WebSocket-соединения активных сессий чата
type WSConnManager struct {
	mu       sync.RWMutex
	sessions map[string]*websocket.Conn
}

func NewWSConnManager() *WSConnManager {
	return &WSConnManager{
		sessions: make(map[string]*websocket.Conn),
	}
}

func (m *WSConnManager) Add(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = conn
}

func (m *WSConnManager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Send отправляет сообщение одной сессии.
// Запись идет под полной блокировкой: у websocket-соединения
// может быть только один писатель одновременно.
func (m *WSConnManager) Send(sessionID string, message []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.sessions[sessionID]; ok {
		_ = conn.WriteMessage(websocket.TextMessage, message)
	}
}

// Broadcast отправляет сообщение всем подключенным сессиям
func (m *WSConnManager) Broadcast(message []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, conn := range m.sessions {
		_ = conn.WriteMessage(websocket.TextMessage, message)
	}
}

// Count возвращает количество активных сессий
func (m *WSConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var GlobalWSConnManager = NewWSConnManager()
