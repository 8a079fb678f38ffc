package services

import (
	"sort"
	"strings"

	"dummyblog/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ограничение количества постов, попадающих в фильтрацию.
// Это фиксированная политика ленты, а не настройка.
const MAX_FILTERED_POSTS = 50

// FilterService - чистый движок фильтрации и сортировки ленты постов.
// Никакого I/O, результат зависит только от входного списка и фильтров.
type FilterService struct{}

func NewFilterService() *FilterService {
	return &FilterService{}
}

// LimitPosts обрезает страницу до первых MAX_FILTERED_POSTS постов
func LimitPosts(posts []models.Post) []models.Post {
	if len(posts) > MAX_FILTERED_POSTS {
		return posts[:MAX_FILTERED_POSTS]
	}
	return posts
}

// Apply возвращает отфильтрованное и отсортированное представление списка.
// Входной список и его элементы не изменяются.
func (fs *FilterService) Apply(posts []models.Post, filters models.FilterState) []models.Post {
	filtered := make([]models.Post, 0, len(posts))

	term := strings.ToLower(strings.TrimSpace(filters.SearchTerm))
	categories := make([]string, 0, len(filters.SelectedCategories))
	for _, c := range filters.SelectedCategories {
		categories = append(categories, strings.ToLower(c))
	}

	for _, post := range posts {
		if term != "" && !matchesSearch(post, term) {
			continue
		}
		if len(categories) > 0 && !matchesCategories(post, categories) {
			continue
		}
		filtered = append(filtered, post)
	}

	fs.sortPosts(filtered, filters.SortMode)
	return filtered
}

// matchesSearch проверяет вхождение термина в заголовок, тело или любой тег
func matchesSearch(post models.Post, term string) bool {
	if strings.Contains(strings.ToLower(post.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Body), term) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// matchesCategories требует совпадения по каждой выбранной категории (AND).
// Пост без тегов не проходит ни один категорийный фильтр.
func matchesCategories(post models.Post, categories []string) bool {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, strings.ToLower(tag))
	}

	for _, category := range categories {
		found := false
		for _, tag := range tags {
			if strings.Contains(tag, category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sortPosts сортирует на месте уже отфильтрованный срез.
// Стабильная сортировка: посты без вторичного ключа сохраняют исходный порядок.
func (fs *FilterService) sortPosts(posts []models.Post, sortMode string) {
	switch sortMode {
	case models.SortNewest:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].ID > posts[j].ID
		})
	case models.SortOldest:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].ID < posts[j].ID
		})
	case models.SortLiked, models.SortPopular:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Likes() > posts[j].Likes()
		})
	case models.SortTitleAsc:
		// Коллатор не потокобезопасен, создаем на время сортировки
		collator := collate.New(language.English)
		sort.SliceStable(posts, func(i, j int) bool {
			return collator.CompareString(posts[i].Title, posts[j].Title) < 0
		})
	case models.SortTitleDesc:
		collator := collate.New(language.English)
		sort.SliceStable(posts, func(i, j int) bool {
			return collator.CompareString(posts[i].Title, posts[j].Title) > 0
		})
	default:
		// Неизвестный режим (в том числе disliked) оставляет порядок фильтрации
	}
}
