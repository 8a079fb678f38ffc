package services

import (
	"context"
	"fmt"

	"dummyblog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ARCHIVE_PAGE_SIZE = 100 // Максимум сообщений в одной выборке архива

// ChatArchive - локальный архив сообщений чата в sqlite.
// Необязательная часть: без базы сессии работают только в памяти.
type ChatArchive struct {
	db *gorm.DB
}

func NewChatArchive(db *gorm.DB) *ChatArchive {
	return &ChatArchive{db: db}
}

// Save сохраняет сообщение, повторная запись того же id игнорируется
func (a *ChatArchive) Save(msg models.ChatMessage) error {
	err := a.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&msg).Error
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// Recent возвращает последние сообщения архива в хронологическом порядке
func (a *ChatArchive) Recent(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > ARCHIVE_PAGE_SIZE {
		limit = ARCHIVE_PAGE_SIZE
	}

	var messages []models.ChatMessage
	err := a.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat archive: %w", err)
	}

	// Выборка шла от новых к старым, разворачиваем для отображения
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
