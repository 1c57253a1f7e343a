// Package entity defines the core business entities for the domain layer.
package entity

import "strings"

// Category is the closed set of expense categories.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// DefaultCategoryColor is the color used when a category has no explicit color.
const DefaultCategoryColor = "#6366F1"

// CategoryInfo carries display metadata for a category.
type CategoryInfo struct {
	Category Category
	Name     string
	Color    string
	Icon     string
}

// categoryCatalog is ordered the way categories are presented to clients.
var categoryCatalog = []CategoryInfo{
	{Category: CategoryFood, Name: "Food", Color: "#F97316", Icon: "utensils"},
	{Category: CategoryTransport, Name: "Transport", Color: "#0EA5E9", Icon: "car"},
	{Category: CategoryEntertainment, Name: "Entertainment", Color: "#A855F7", Icon: "film"},
	{Category: CategoryShopping, Name: "Shopping", Color: "#EC4899", Icon: "shopping-bag"},
	{Category: CategoryBills, Name: "Bills", Color: "#EAB308", Icon: "receipt"},
	{Category: CategoryHealth, Name: "Health", Color: "#22C55E", Icon: "heart"},
	{Category: CategoryEducation, Name: "Education", Color: "#3B82F6", Icon: "book"},
	{Category: CategoryOther, Name: "Other", Color: DefaultCategoryColor, Icon: "tag"},
}

// AllCategories returns every valid category in presentation order.
func AllCategories() []Category {
	categories := make([]Category, len(categoryCatalog))
	for i, info := range categoryCatalog {
		categories[i] = info.Category
	}
	return categories
}

// CategoryCatalog returns a copy of the category display metadata.
func CategoryCatalog() []CategoryInfo {
	catalog := make([]CategoryInfo, len(categoryCatalog))
	copy(catalog, categoryCatalog)
	return catalog
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, info := range categoryCatalog {
		if info.Category == c {
			return true
		}
	}
	return false
}

// ParseCategory normalizes s and returns the matching category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", false
	}
	return c, true
}
