package services

import (
	"sync"

	"dummyblog/models"
)

const DEFAULT_HISTORY_SIZE = 50 // Вместимость истории запросов по умолчанию

// QueryHistory - ограниченная история выполненных запросов консоли.
// Создается явно и передается владельцу, никакого глобального состояния.
// Новые записи впереди, при переполнении вытесняется самая старая.
type QueryHistory struct {
	mu       sync.RWMutex
	items    []models.QueryHistoryItem
	capacity int
}

func NewQueryHistory(capacity int) *QueryHistory {
	if capacity <= 0 {
		capacity = DEFAULT_HISTORY_SIZE
	}
	return &QueryHistory{capacity: capacity}
}

// Add записывает выполненный запрос в начало истории
func (h *QueryHistory) Add(item models.QueryHistoryItem) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append([]models.QueryHistoryItem{item}, h.items...)
	if len(h.items) > h.capacity {
		h.items = h.items[:h.capacity]
	}
}

// Items возвращает копию истории, от новых записей к старым
func (h *QueryHistory) Items() []models.QueryHistoryItem {
	h.mu.RLock()
	defer h.mu.RUnlock()

	items := make([]models.QueryHistoryItem, len(h.items))
	copy(items, h.items)
	return items
}

// Remove удаляет одну запись по идентификатору
func (h *QueryHistory) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, item := range h.items {
		if item.ID == id {
			h.items = append(h.items[:i], h.items[i+1:]...)
			return
		}
	}
}

// Clear очищает историю
func (h *QueryHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
}

// Len возвращает текущее количество записей
func (h *QueryHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}
