package models

import "strings"

// Режимы сортировки ленты постов
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortLiked     = "liked"
	SortPopular   = "popular"
	SortDisliked  = "disliked"
	SortTitleAsc  = "title-asc"
	SortTitleDesc = "title-desc"
)

// FilterState - состояние фильтров ленты, живет только внутри сессии
type FilterState struct {
	SearchTerm string `json:"search_term"`
	// Порядок выбора категорий сохраняется для отображения
	SelectedCategories []string `json:"selected_categories"`
	SortMode           string   `json:"sort_mode"`
}

// HasActiveFilters сообщает, отличается ли состояние от состояния по умолчанию
func (f FilterState) HasActiveFilters() bool {
	return strings.TrimSpace(f.SearchTerm) != "" ||
		len(f.SelectedCategories) > 0 ||
		(f.SortMode != "" && f.SortMode != SortNewest)
}

// ToggleCategory добавляет категорию или убирает уже выбранную
func (f *FilterState) ToggleCategory(category string) {
	for i, c := range f.SelectedCategories {
		if c == category {
			f.SelectedCategories = append(f.SelectedCategories[:i], f.SelectedCategories[i+1:]...)
			return
		}
	}
	f.SelectedCategories = append(f.SelectedCategories, category)
}

// Clear сбрасывает фильтры в состояние по умолчанию
func (f *FilterState) Clear() {
	f.SearchTerm = ""
	f.SelectedCategories = nil
	f.SortMode = SortNewest
}
