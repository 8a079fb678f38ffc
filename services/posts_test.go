package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"dummyblog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakePostsAPI поднимает заглушку удаленного API с постами
func newFakePostsAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		posts := make([]models.Post, 0, limit)
		for i := 0; i < limit; i++ {
			posts = append(posts, models.Post{
				ID:    int64(skip + i + 1),
				Title: "Post " + strconv.Itoa(skip+i+1),
				Tags:  []string{"history"},
			})
		}
		_ = json.NewEncoder(w).Encode(models.PostsResponse{
			Posts: posts, Total: 251, Skip: skip, Limit: limit,
		})
	})

	mux.HandleFunc("/posts/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode(models.PostsResponse{
			Posts: []models.Post{{ID: 42, Title: "Found: " + q}},
			Total: 1,
		})
	})

	mux.HandleFunc("/posts/add", func(w http.ResponseWriter, r *http.Request) {
		var req models.CreatePostRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Post{
			ID:        252,
			Title:     req.Title,
			Body:      req.Body,
			UserID:    req.UserID,
			Tags:      req.Tags,
			Reactions: req.Reactions,
		})
	})

	mux.HandleFunc("/posts/", func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/posts/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if id == 404 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			_ = json.NewEncoder(w).Encode(models.Post{ID: id, Title: "Post " + idStr})
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestPostClientGetAll(t *testing.T) {
	server := newFakePostsAPI(t)
	client := NewPostClient(server.URL)

	resp, err := client.GetAll(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 5)
	assert.Equal(t, int64(11), resp.Posts[0].ID)
	assert.Equal(t, 251, resp.Total)
}

func TestPostClientGetAllClampsLimit(t *testing.T) {
	server := newFakePostsAPI(t)
	client := NewPostClient(server.URL)

	// Нулевой и завышенный лимит заменяются дефолтным
	resp, err := client.GetAll(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Posts, DEFAULT_PAGE_LIMIT)

	resp, err = client.GetAll(context.Background(), MAX_PAGE_LIMIT+1, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Posts, DEFAULT_PAGE_LIMIT)
}

func TestPostClientGetByID(t *testing.T) {
	server := newFakePostsAPI(t)
	client := NewPostClient(server.URL)

	post, err := client.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), post.ID)
}

func TestPostClientErrorStatus(t *testing.T) {
	server := newFakePostsAPI(t)
	client := NewPostClient(server.URL)

	_, err := client.GetByID(context.Background(), 404)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestPostClientCreateNormalizesDefaults(t *testing.T) {
	server := newFakePostsAPI(t)
	client := NewPostClient(server.URL)

	post, err := client.Create(context.Background(), models.CreatePostRequest{
		Title: "New post", Body: "body", UserID: 1,
	})
	require.NoError(t, err)
	assert.NotNil(t, post.Tags)
	require.NotNil(t, post.Reactions)
	assert.Equal(t, 0, post.Reactions.Likes)
	assert.Equal(t, 0, post.Reactions.Dislikes)
}

func TestPostClientSearchEscapesQuery(t *testing.T) {
	server := newFakePostsAPI(t)
	client := NewPostClient(server.URL)

	resp, err := client.Search(context.Background(), "love & peace")
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "Found: love & peace", resp.Posts[0].Title)
}

func TestPostClientDelete(t *testing.T) {
	server := newFakePostsAPI(t)
	client := NewPostClient(server.URL)

	require.NoError(t, client.Delete(context.Background(), 3))
}
