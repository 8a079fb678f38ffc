package services

import (
	"testing"

	"dummyblog/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePosts() []models.Post {
	return []models.Post{
		{ID: 1, Title: "A", Body: "first body", Tags: []string{"history"}, Reactions: &models.PostReactions{Likes: 5}},
		{ID: 2, Title: "B", Body: "second body", Tags: []string{"fiction", "love"}, Reactions: &models.PostReactions{Likes: 10}},
		{ID: 3, Title: "C", Body: "third body", Tags: []string{"category-a"}},
	}
}

func TestApplyIdentity(t *testing.T) {
	fs := NewFilterService()
	posts := makePosts()

	// Пустые фильтры с sort=newest не дают тождество, поэтому
	// тождество проверяется для уже убывающих id
	filters := models.FilterState{SortMode: models.SortNewest}
	ordered := []models.Post{posts[2], posts[1], posts[0]}

	result := fs.Apply(ordered, filters)
	require.Len(t, result, 3)
	assert.Equal(t, ordered, result)
}

func TestApplyDefaultStateIsIdentity(t *testing.T) {
	fs := NewFilterService()
	posts := makePosts()

	result := fs.Apply(posts, models.FilterState{})
	assert.Equal(t, posts, result)
}

func TestApplyUnknownSortKeepsOrder(t *testing.T) {
	fs := NewFilterService()
	posts := makePosts()

	result := fs.Apply(posts, models.FilterState{SortMode: "disliked"})
	require.Len(t, result, 3)
	for i := range posts {
		assert.Equal(t, posts[i].ID, result[i].ID)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	fs := NewFilterService()
	posts := makePosts()

	_ = fs.Apply(posts, models.FilterState{SortMode: models.SortLiked})

	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, int64(2), posts[1].ID)
	assert.Equal(t, int64(3), posts[2].ID)
}

func TestSearchMatchesTagSubstring(t *testing.T) {
	fs := NewFilterService()
	posts := makePosts()

	// "cat" входит в тег "category-a"
	result := fs.Apply(posts, models.FilterState{SearchTerm: "cat"})
	require.Len(t, result, 1)
	assert.Equal(t, int64(3), result[0].ID)
}

func TestSearchMatchesTitleAndBody(t *testing.T) {
	fs := NewFilterService()
	posts := makePosts()

	result := fs.Apply(posts, models.FilterState{SearchTerm: "SECOND"})
	require.Len(t, result, 1)
	assert.Equal(t, int64(2), result[0].ID)

	// Термин обрезается по краям: "b" находится в заголовке B и в телах
	result = fs.Apply(posts, models.FilterState{SearchTerm: "  b  "})
	require.Len(t, result, 3)
}

func TestSearchEmptyTermIsNoop(t *testing.T) {
	fs := NewFilterService()
	posts := makePosts()

	result := fs.Apply(posts, models.FilterState{SearchTerm: "   "})
	assert.Len(t, result, 3)
}

func TestCategoriesAreConjunctive(t *testing.T) {
	fs := NewFilterService()
	posts := []models.Post{
		{ID: 1, Title: "Love story", Tags: []string{"love story"}},
		{ID: 2, Title: "Fiction love", Tags: []string{"fiction", "love story"}},
	}

	// Пост только с "love story" не проходит фильтр fiction+love
	result := fs.Apply(posts, models.FilterState{SelectedCategories: []string{"fiction", "love"}})
	require.Len(t, result, 1)
	assert.Equal(t, int64(2), result[0].ID)
}

func TestCategoriesExcludeUntaggedPosts(t *testing.T) {
	fs := NewFilterService()
	posts := []models.Post{
		{ID: 1, Title: "No tags"},
		{ID: 2, Title: "Tagged", Tags: []string{"history"}},
	}

	result := fs.Apply(posts, models.FilterState{SelectedCategories: []string{"history"}})
	require.Len(t, result, 1)
	assert.Equal(t, int64(2), result[0].ID)
}

func TestCategoryFilterIsIdempotent(t *testing.T) {
	fs := NewFilterService()

	var posts []models.Post
	for i := 1; i <= 30; i++ {
		post := models.Post{
			ID:    int64(i),
			Title: gofakeit.Sentence(3),
			Body:  gofakeit.Paragraph(1, 2, 5, " "),
		}
		if i%2 == 0 {
			post.Tags = []string{"fiction", gofakeit.Word()}
		}
		posts = append(posts, post)
	}

	filters := models.FilterState{SelectedCategories: []string{"fiction"}}
	once := fs.Apply(posts, filters)
	twice := fs.Apply(once, filters)
	assert.Equal(t, once, twice)
}

func TestSortLiked(t *testing.T) {
	fs := NewFilterService()
	posts := []models.Post{
		{ID: 1, Title: "A", Reactions: &models.PostReactions{Likes: 5}},
		{ID: 2, Title: "B", Reactions: &models.PostReactions{Likes: 10}},
	}

	result := fs.Apply(posts, models.FilterState{SortMode: models.SortLiked})
	require.Len(t, result, 2)
	assert.Equal(t, int64(2), result[0].ID)
	assert.Equal(t, int64(1), result[1].ID)
}

func TestSortLikedTreatsMissingReactionsAsZero(t *testing.T) {
	fs := NewFilterService()
	posts := []models.Post{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B", Reactions: &models.PostReactions{Likes: 1}},
	}

	result := fs.Apply(posts, models.FilterState{SortMode: models.SortPopular})
	assert.Equal(t, int64(2), result[0].ID)
}

func TestSortIsPureFunctionOfFilteredSet(t *testing.T) {
	fs := NewFilterService()
	posts := makePosts()

	liked := fs.Apply(posts, models.FilterState{SortMode: models.SortLiked})
	_ = fs.Apply(posts, models.FilterState{SortMode: models.SortNewest})
	likedAgain := fs.Apply(posts, models.FilterState{SortMode: models.SortLiked})
	assert.Equal(t, liked, likedAgain)
}

func TestSortStabilityOnTies(t *testing.T) {
	fs := NewFilterService()
	posts := []models.Post{
		{ID: 10, Title: "X", Reactions: &models.PostReactions{Likes: 3}},
		{ID: 20, Title: "Y", Reactions: &models.PostReactions{Likes: 3}},
		{ID: 30, Title: "Z", Reactions: &models.PostReactions{Likes: 3}},
	}

	result := fs.Apply(posts, models.FilterState{SortMode: models.SortLiked})
	assert.Equal(t, int64(10), result[0].ID)
	assert.Equal(t, int64(20), result[1].ID)
	assert.Equal(t, int64(30), result[2].ID)
}

func TestSortByTitle(t *testing.T) {
	fs := NewFilterService()
	posts := []models.Post{
		{ID: 1, Title: "banana"},
		{ID: 2, Title: "Apple"},
		{ID: 3, Title: "cherry"},
	}

	asc := fs.Apply(posts, models.FilterState{SortMode: models.SortTitleAsc})
	assert.Equal(t, "Apple", asc[0].Title)
	assert.Equal(t, "banana", asc[1].Title)
	assert.Equal(t, "cherry", asc[2].Title)

	desc := fs.Apply(posts, models.FilterState{SortMode: models.SortTitleDesc})
	assert.Equal(t, "cherry", desc[0].Title)
	assert.Equal(t, "Apple", desc[2].Title)
}

func TestSortOldestAndNewest(t *testing.T) {
	fs := NewFilterService()
	posts := makePosts()

	oldest := fs.Apply(posts, models.FilterState{SortMode: models.SortOldest})
	assert.Equal(t, int64(1), oldest[0].ID)

	newest := fs.Apply(posts, models.FilterState{SortMode: models.SortNewest})
	assert.Equal(t, int64(3), newest[0].ID)
}

func TestSearchAndCategoriesCombineWithAnd(t *testing.T) {
	fs := NewFilterService()
	posts := []models.Post{
		{ID: 1, Title: "magic castle", Tags: []string{"fiction"}},
		{ID: 2, Title: "magic forest", Tags: []string{"history"}},
		{ID: 3, Title: "plain story", Tags: []string{"fiction"}},
	}

	result := fs.Apply(posts, models.FilterState{
		SearchTerm:         "magic",
		SelectedCategories: []string{"fiction"},
	})
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].ID)
}

func TestLimitPosts(t *testing.T) {
	var posts []models.Post
	for i := 1; i <= 80; i++ {
		posts = append(posts, models.Post{ID: int64(i)})
	}

	limited := LimitPosts(posts)
	require.Len(t, limited, MAX_FILTERED_POSTS)
	assert.Equal(t, int64(1), limited[0].ID)
	assert.Equal(t, int64(50), limited[49].ID)

	short := LimitPosts(posts[:10])
	assert.Len(t, short, 10)
}

func TestHasActiveFilters(t *testing.T) {
	assert.False(t, models.FilterState{SortMode: models.SortNewest}.HasActiveFilters())
	assert.False(t, models.FilterState{SearchTerm: "   "}.HasActiveFilters())
	assert.True(t, models.FilterState{SearchTerm: "cat"}.HasActiveFilters())
	assert.True(t, models.FilterState{SelectedCategories: []string{"love"}}.HasActiveFilters())
	assert.True(t, models.FilterState{SortMode: models.SortOldest}.HasActiveFilters())
}
