package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"dummyblog/models"

	"github.com/google/uuid"
)

const PENDING_ECHO_TTL = 30 * time.Second // TTL ожидания эха отправленного сообщения

// ChatSession - одна сессия чата поверх echo-сервера.
// Свое сообщение показывается сразу (оптимистичный вывод), а эхо от сервера
// с тем же идентификатором гасится, чтобы не было дубля в видимом списке.
type ChatSession struct {
	transport *ChatTransport
	username  string
	userID    string
	archive   *ChatArchive

	mu       sync.Mutex
	messages []models.ChatMessage
	// id отправленных сообщений, чье эхо еще не пришло, со временем отправки
	pending    map[string]time.Time
	pendingTTL time.Duration

	onAppend func(models.ChatMessage)
}

func NewChatSession(transport *ChatTransport, username string, archive *ChatArchive) *ChatSession {
	s := &ChatSession{
		transport:  transport,
		username:   username,
		userID:     "user-" + uuid.NewString()[:8],
		archive:    archive,
		pending:    make(map[string]time.Time),
		pendingTTL: PENDING_ECHO_TTL,
	}
	transport.OnMessage(s.handleInbound)
	transport.OnStateChange(s.handleState)
	return s
}

// Start открывает соединение сессии
func (s *ChatSession) Start(ctx context.Context) error {
	return s.transport.Connect(ctx)
}

// Stop закрывает соединение, ожидание эха при этом сбрасывается
func (s *ChatSession) Stop() {
	s.transport.Close()

	s.mu.Lock()
	s.pending = make(map[string]time.Time)
	s.mu.Unlock()
}

// OnAppend устанавливает обработчик добавления сообщения в видимый список
func (s *ChatSession) OnAppend(handler func(models.ChatMessage)) {
	s.onAppend = handler
}

// SetUsername меняет имя для последующих сообщений
func (s *ChatSession) SetUsername(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
}

// SetPendingTTL меняет время ожидания эха, неположительные значения игнорируются
func (s *ChatSession) SetPendingTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingTTL = ttl
}

// IsConnected сообщает, открыто ли соединение сессии
func (s *ChatSession) IsConnected() bool {
	return s.transport.IsConnected()
}

// Err возвращает последнюю ошибку транспорта
func (s *ChatSession) Err() error {
	return s.transport.Err()
}

// Send отправляет текст в чат.
// Порядок важен: сначала регистрируем id в ожидании эха, затем показываем
// сообщение, и только потом передаем кадр - эхо может вернуться сразу.
func (s *ChatSession) Send(text string) error {
	if !s.transport.IsConnected() {
		return ErrNotConnected
	}

	s.mu.Lock()
	username := s.username
	s.mu.Unlock()

	msg := models.ChatMessage{
		ID:        uuid.NewString()[:12],
		UserID:    s.userID,
		Username:  username,
		Text:      text,
		Timestamp: time.Now(),
		Kind:      models.KindMessage,
	}

	s.mu.Lock()
	s.purgeExpiredLocked()
	s.pending[msg.ID] = time.Now()
	s.mu.Unlock()

	s.append(msg)

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.transport.Send(data)
}

// Messages возвращает копию видимого списка сообщений
func (s *ChatSession) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]models.ChatMessage, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// handleInbound обрабатывает входящий кадр.
// Нечитаемые кадры просто логируются и отбрасываются, это не ошибка сессии.
func (s *ChatSession) handleInbound(data []byte) {
	var msg models.ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.ID == "" {
		log.Printf("Failed to parse chat message: %v", err)
		return
	}

	s.mu.Lock()
	s.purgeExpiredLocked()
	if _, ok := s.pending[msg.ID]; ok {
		// Эхо уже показанного сообщения - гасим дубль
		delete(s.pending, msg.ID)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.append(msg)
}

// handleState добавляет системное сообщение при открытии соединения
func (s *ChatSession) handleState(state string) {
	if state != StateOpen {
		return
	}
	s.append(models.ChatMessage{
		ID:        uuid.NewString()[:12],
		UserID:    "system",
		Username:  "System",
		Text:      "Connected to chat",
		Timestamp: time.Now(),
		Kind:      models.KindSystem,
	})
}

// append добавляет сообщение в видимый список и архив
func (s *ChatSession) append(msg models.ChatMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	handler := s.onAppend
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.Save(msg); err != nil {
			log.Printf("ERROR: Failed to archive chat message: %v", err)
		}
	}
	if handler != nil {
		handler(msg)
	}
}

// purgeExpiredLocked выбрасывает просроченные ожидания эха.
// Потерянное эхо не должно копить множество бесконечно; если эхо все же
// придет после TTL, сообщение отобразится повторно как обычное входящее.
func (s *ChatSession) purgeExpiredLocked() {
	now := time.Now()
	for id, sentAt := range s.pending {
		if now.Sub(sentAt) > s.pendingTTL {
			delete(s.pending, id)
		}
	}
}
