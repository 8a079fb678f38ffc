package models

import (
	"time"
)

// Виды сообщений чата
const (
	KindMessage = "message"
	KindSystem  = "system"
	KindJoin    = "join"
	KindLeave   = "leave"
)

// ChatMessage представляет сообщение в чате, после создания не изменяется
type ChatMessage struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"userId"`
	Username  string    `json:"username"`
	Text      string    `gorm:"type:text" json:"text"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Kind      string    `gorm:"column:kind" json:"type"`
}

// TableName возвращает имя таблицы архива для модели ChatMessage
func (ChatMessage) TableName() string {
	return "chat_messages"
}
