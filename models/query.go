package models

import "time"

// Статусы выполнения запроса в истории
const (
	QueryStatusSuccess = "success"
	QueryStatusError   = "error"
)

// PostsRequest - разобранный запрос консоли, ровно один вариант не nil
type PostsRequest struct {
	List   *ListPosts   `json:"list,omitempty"`
	Get    *GetPost     `json:"get,omitempty"`
	Search *SearchPosts `json:"search,omitempty"`
}

// ListPosts - запрос страницы постов
type ListPosts struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

// GetPost - запрос одного поста по идентификатору
type GetPost struct {
	ID int64 `json:"id"`
}

// SearchPosts - полнотекстовый поиск постов
type SearchPosts struct {
	Query string `json:"query"`
}

// QueryHistoryItem - запись об однажды выполненном запросе консоли
type QueryHistoryItem struct {
	ID        string                 `json:"id"`
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	// Длительность выполнения в миллисекундах
	Duration int64       `json:"duration"`
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
}
