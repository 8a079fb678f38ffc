package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dummyblog/models"
	"dummyblog/services"

	"github.com/gin-gonic/gin"
)

var (
	postClient     *services.PostClient
	filterService  *services.FilterService
	pageCache      *services.PageCache
	queryService   *services.QueryService
	chatArchive    *services.ChatArchive
	chatURL        string
	chatPolicy     string
	chatPendingTTL time.Duration
)

// Deps - зависимости обработчиков, собираются в main
type Deps struct {
	PostClient     *services.PostClient
	FilterSvc      *services.FilterService
	PageCache      *services.PageCache
	QueryService   *services.QueryService
	ChatArchive    *services.ChatArchive
	ChatURL        string
	ChatPolicy     string
	ChatPendingTTL time.Duration
}

// InitHandlers связывает обработчики с сервисами
func InitHandlers(deps Deps) {
	postClient = deps.PostClient
	filterService = deps.FilterSvc
	pageCache = deps.PageCache
	queryService = deps.QueryService
	chatArchive = deps.ChatArchive
	chatURL = deps.ChatURL
	chatPolicy = deps.ChatPolicy
	chatPendingTTL = deps.ChatPendingTTL
}

// ListPosts отдает страницу постов с опциональной фильтрацией и сортировкой.
// Фильтры применяются к первым 50 постам страницы - фиксированная политика ленты.
func ListPosts(c *gin.Context) {
	limit := parseIntQuery(c, "limit", services.DEFAULT_PAGE_LIMIT)
	skip := parseIntQuery(c, "skip", 0)

	resp := pageCache.Get(c.Request.Context(), limit, skip)
	if resp == nil {
		var err error
		resp, err = postClient.GetAll(c.Request.Context(), limit, skip)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load posts"})
			return
		}
		pageCache.Set(c.Request.Context(), limit, skip, resp)
	}

	filters := filterStateFromQuery(c)
	limited := services.LimitPosts(resp.Posts)
	filtered := filterService.Apply(limited, filters)

	c.JSON(http.StatusOK, gin.H{
		"posts":              filtered,
		"total":              resp.Total,
		"skip":               resp.Skip,
		"limit":              resp.Limit,
		"filtered_count":     len(filtered),
		"has_active_filters": filters.HasActiveFilters(),
	})
}

// GetPost отдает один пост по идентификатору
func GetPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := postClient.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost создает пост через удаленное API.
// Теги принимаются и списком, и строкой через запятую.
func CreatePost(c *gin.Context) {
	var req struct {
		Title     string                `json:"title" binding:"required"`
		Body      string                `json:"body" binding:"required"`
		UserID    int64                 `json:"userId"`
		Tags      interface{}           `json:"tags"`
		Reactions *models.PostReactions `json:"reactions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	post, err := postClient.Create(c.Request.Context(), models.CreatePostRequest{
		Title:     req.Title,
		Body:      req.Body,
		UserID:    req.UserID,
		Tags:      normalizeTags(req.Tags),
		Reactions: req.Reactions,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create post"})
		return
	}

	afterPostMutation(c, "created", post)
	c.JSON(http.StatusCreated, post)
}

// UpdatePost частично обновляет пост
func UpdatePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	post, err := postClient.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update post"})
		return
	}

	afterPostMutation(c, "updated", post)
	c.JSON(http.StatusOK, post)
}

// DeletePost удаляет пост
func DeletePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if err := postClient.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete post"})
		return
	}

	afterPostMutation(c, "deleted", &models.Post{ID: id})
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// SearchPosts выполняет поиск на стороне удаленного API
func SearchPosts(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	resp, err := postClient.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to search posts"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// afterPostMutation сбрасывает кеш страниц и публикует событие об изменении.
// Отказ очереди ленту не ломает, только логируется.
func afterPostMutation(c *gin.Context, action string, post *models.Post) {
	pageCache.Invalidate(c.Request.Context())
	err := services.PublishPostEvent(c.Request.Context(), services.PostEvent{
		Action:    action,
		PostID:    post.ID,
		Title:     post.Title,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Printf("Warning: Failed to publish post event: %v", err)
	}
}

// filterStateFromQuery собирает FilterState из query-параметров
func filterStateFromQuery(c *gin.Context) models.FilterState {
	filters := models.FilterState{
		SearchTerm: c.Query("search"),
		SortMode:   c.DefaultQuery("sort", models.SortNewest),
	}
	if categories := c.Query("categories"); categories != "" {
		for _, category := range strings.Split(categories, ",") {
			if category = strings.TrimSpace(category); category != "" {
				filters.SelectedCategories = append(filters.SelectedCategories, category)
			}
		}
	}
	return filters
}

// normalizeTags приводит теги к списку строк
func normalizeTags(raw interface{}) []string {
	switch v := raw.(type) {
	case string:
		var tags []string
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	case []interface{}:
		var tags []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
