package catalog

import (
	"strings"

	"github.com/chrisapx/farm-to-table-fav/internal/domain"
)

// CategoryAll is the sentinel category that matches every item.
const CategoryAll = "All"

// Filter returns the items visible for the given search string and category.
// The search is a case-insensitive substring match on the item name; the
// empty string matches everything. The category is either CategoryAll or an
// exact match. Both predicates must hold. Input order is preserved.
func Filter(items []*domain.GroceryItem, search, category string) []*domain.GroceryItem {
	search = strings.ToLower(search)

	filtered := make([]*domain.GroceryItem, 0, len(items))
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if category != "" && category != CategoryAll && item.Category != category {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// Categories derives the category list offered to the user: the distinct
// categories present in the loaded items, in first-seen order, with
// CategoryAll prepended. A category with no loaded items never appears.
func Categories(items []*domain.GroceryItem) []string {
	categories := []string{CategoryAll}
	seen := make(map[string]bool)
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	return categories
}
