package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dummyblog/models"

	"github.com/google/uuid"
)

// QueryService - консоль запросов поверх REST-клиента.
// Текст запроса разбирается один раз в тегированный models.PostsRequest,
// дальше работает обычная диспетчеризация без повторных проверок строк.
type QueryService struct {
	posts   *PostClient
	history *QueryHistory
}

func NewQueryService(posts *PostClient, history *QueryHistory) *QueryService {
	return &QueryService{posts: posts, history: history}
}

// ParsePostsRequest разбирает текст запроса в один из вариантов.
// Порядок проверки фиксирован: searchPosts, post(, posts - поэтому запрос,
// содержащий несколько ключевых слов, трактуется однозначно.
func ParsePostsRequest(query string, variables map[string]interface{}) (*models.PostsRequest, error) {
	switch {
	case strings.Contains(query, "searchPosts"):
		q, err := stringVariable(variables, "query", "q")
		if err != nil {
			return nil, err
		}
		return &models.PostsRequest{Search: &models.SearchPosts{Query: q}}, nil

	case strings.Contains(query, "post("):
		id, err := intVariable(variables, "id")
		if err != nil {
			return nil, err
		}
		return &models.PostsRequest{Get: &models.GetPost{ID: id}}, nil

	case strings.Contains(query, "posts"):
		limit, _ := intVariable(variables, "limit")
		skip, _ := intVariable(variables, "skip")
		return &models.PostsRequest{List: &models.ListPosts{Limit: int(limit), Skip: int(skip)}}, nil

	default:
		return nil, fmt.Errorf("unsupported query")
	}
}

// Execute выполняет запрос консоли и записывает результат в историю.
// Ошибка выполнения тоже попадает в историю со статусом error.
func (qs *QueryService) Execute(ctx context.Context, query string, variables map[string]interface{}) (interface{}, error) {
	start := time.Now()

	item := models.QueryHistoryItem{
		ID:        uuid.NewString(),
		Query:     query,
		Variables: variables,
		Timestamp: start,
	}

	data, err := qs.dispatch(ctx, query, variables)
	item.Duration = time.Since(start).Milliseconds()

	if err != nil {
		item.Status = models.QueryStatusError
		item.Error = err.Error()
		qs.history.Add(item)
		return nil, err
	}

	item.Status = models.QueryStatusSuccess
	item.Data = data
	qs.history.Add(item)
	return data, nil
}

func (qs *QueryService) dispatch(ctx context.Context, query string, variables map[string]interface{}) (interface{}, error) {
	req, err := ParsePostsRequest(query, variables)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Search != nil:
		return qs.posts.Search(ctx, req.Search.Query)
	case req.Get != nil:
		return qs.posts.GetByID(ctx, req.Get.ID)
	case req.List != nil:
		return qs.posts.GetAll(ctx, req.List.Limit, req.List.Skip)
	default:
		return nil, fmt.Errorf("unsupported query")
	}
}

// History возвращает историю, которой владеет консоль
func (qs *QueryService) History() *QueryHistory {
	return qs.history
}

// stringVariable достает первую непустую строковую переменную из перечисленных имен
func stringVariable(variables map[string]interface{}, names ...string) (string, error) {
	for _, name := range names {
		if v, ok := variables[name]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, nil
			}
		}
	}
	return "", fmt.Errorf("missing string variable %q", names[0])
}

// intVariable достает целочисленную переменную, JSON-числа приходят как float64
func intVariable(variables map[string]interface{}, name string) (int64, error) {
	v, ok := variables[name]
	if !ok {
		return 0, fmt.Errorf("missing variable %q", name)
	}
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("variable %q is not a number", name)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("variable %q is not a number", name)
	}
}
