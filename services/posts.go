package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dummyblog/models"
)

const (
	DEFAULT_PAGE_LIMIT = 10  // Дефолтный размер страницы постов
	MAX_PAGE_LIMIT     = 100 // Максимальный размер страницы
	REQUEST_TIMEOUT    = 15 * time.Second
)

// PostClient - клиент удаленного REST API с постами.
// Само API для нас черный ящик, вся персистентность на его стороне.
type PostClient struct {
	baseURL string
	client  *http.Client
}

func NewPostClient(baseURL string) *PostClient {
	return &PostClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: REQUEST_TIMEOUT},
	}
}

// GetAll получает страницу постов с пагинацией limit/skip
func (pc *PostClient) GetAll(ctx context.Context, limit, skip int) (*models.PostsResponse, error) {
	if limit <= 0 || limit > MAX_PAGE_LIMIT {
		limit = DEFAULT_PAGE_LIMIT
	}
	if skip < 0 {
		skip = 0
	}

	var resp models.PostsResponse
	endpoint := fmt.Sprintf("/posts?limit=%d&skip=%d", limit, skip)
	if err := pc.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	return &resp, nil
}

// GetByID получает один пост по идентификатору
func (pc *PostClient) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	endpoint := fmt.Sprintf("/posts/%d", id)
	if err := pc.doJSON(ctx, http.MethodGet, endpoint, nil, &post); err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return &post, nil
}

// Create создает новый пост, теги и реакции нормализуются заранее
func (pc *PostClient) Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	if req.Tags == nil {
		req.Tags = []string{}
	}
	if req.Reactions == nil {
		req.Reactions = &models.PostReactions{}
	}

	var post models.Post
	if err := pc.doJSON(ctx, http.MethodPost, "/posts/add", req, &post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

// Update частично обновляет пост, nil-поля остаются нетронутыми
func (pc *PostClient) Update(ctx context.Context, id int64, req models.UpdatePostRequest) (*models.Post, error) {
	var post models.Post
	endpoint := fmt.Sprintf("/posts/%d", id)
	if err := pc.doJSON(ctx, http.MethodPut, endpoint, req, &post); err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return &post, nil
}

// Delete удаляет пост по идентификатору
func (pc *PostClient) Delete(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/posts/%d", id)
	if err := pc.doJSON(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return nil
}

// Search выполняет полнотекстовый поиск на стороне API
func (pc *PostClient) Search(ctx context.Context, query string) (*models.PostsResponse, error) {
	var resp models.PostsResponse
	endpoint := "/posts/search?q=" + url.QueryEscape(query)
	if err := pc.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return &resp, nil
}

// doJSON выполняет запрос с JSON-телом и разбирает JSON-ответ в out
func (pc *PostClient) doJSON(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, pc.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := pc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
