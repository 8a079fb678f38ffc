package models

// PostReactions - счетчики реакций на пост
type PostReactions struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// Post - модель поста удаленного API
type Post struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	UserID    int64          `json:"userId"`
	Tags      []string       `json:"tags"`
	Reactions *PostReactions `json:"reactions,omitempty"`
}

// Likes возвращает количество лайков, отсутствующие реакции считаются нулевыми
func (p *Post) Likes() int {
	if p.Reactions == nil {
		return 0
	}
	return p.Reactions.Likes
}

// PostsResponse - ответ API для страницы постов
type PostsResponse struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// CreatePostRequest - запрос на создание поста
type CreatePostRequest struct {
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	UserID    int64          `json:"userId"`
	Tags      []string       `json:"tags,omitempty"`
	Reactions *PostReactions `json:"reactions,omitempty"`
}

// UpdatePostRequest - частичное обновление поста, nil-поля не отправляются
type UpdatePostRequest struct {
	Title     *string        `json:"title,omitempty"`
	Body      *string        `json:"body,omitempty"`
	UserID    *int64         `json:"userId,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Reactions *PostReactions `json:"reactions,omitempty"`
}
