package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleCategoryKeepsInsertionOrder(t *testing.T) {
	var f FilterState

	f.ToggleCategory("fiction")
	f.ToggleCategory("history")
	f.ToggleCategory("love")
	assert.Equal(t, []string{"fiction", "history", "love"}, f.SelectedCategories)

	// Повторный выбор снимает категорию, порядок остальных сохраняется
	f.ToggleCategory("history")
	assert.Equal(t, []string{"fiction", "love"}, f.SelectedCategories)

	f.ToggleCategory("history")
	assert.Equal(t, []string{"fiction", "love", "history"}, f.SelectedCategories)
}

func TestClearResetsToDefaultState(t *testing.T) {
	f := FilterState{
		SearchTerm:         "magic",
		SelectedCategories: []string{"fiction"},
		SortMode:           SortLiked,
	}
	assert.True(t, f.HasActiveFilters())

	f.Clear()
	assert.False(t, f.HasActiveFilters())
	assert.Empty(t, f.SearchTerm)
	assert.Empty(t, f.SelectedCategories)
	assert.Equal(t, SortNewest, f.SortMode)
}
