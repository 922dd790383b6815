// Package models provides the data structures shared by the categorizer, the
// analysis layer and the I/O surface.
package models

// Category is a spending or income bucket label.
type Category string

// The closed set of category labels, in matching priority order.
const (
	CategoryFoodDining     Category = "Food & Dining"
	CategoryTransportation Category = "Transportation"
	CategoryUtilities      Category = "Utilities"
	CategoryShopping       Category = "Shopping"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealthcare     Category = "Healthcare"
	CategoryIncome         Category = "Income"
	CategoryEducation      Category = "Education"
	CategoryBanking        Category = "Banking"
	CategoryOthers         Category = "Others"
)

// AllCategories lists every label in priority order, catch-all last.
func AllCategories() []Category {
	return []Category{
		CategoryFoodDining,
		CategoryTransportation,
		CategoryUtilities,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryIncome,
		CategoryEducation,
		CategoryBanking,
		CategoryOthers,
	}
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsKnown reports whether c belongs to the fixed label set.
func (c Category) IsKnown() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryStyle holds presentation hints for a category.
type CategoryStyle struct {
	Emoji string `json:"emoji" yaml:"emoji"`
	Color string `json:"color" yaml:"color"`
}

var categoryStyles = map[Category]CategoryStyle{
	CategoryFoodDining:     {Emoji: "🍔", Color: "#FF6B6B"},
	CategoryTransportation: {Emoji: "🚗", Color: "#4ECDC4"},
	CategoryUtilities:      {Emoji: "🏠", Color: "#45B7D1"},
	CategoryShopping:       {Emoji: "🛍️", Color: "#96CEB4"},
	CategoryEntertainment:  {Emoji: "🎬", Color: "#FFEAA7"},
	CategoryHealthcare:     {Emoji: "🏥", Color: "#DDA0DD"},
	CategoryIncome:         {Emoji: "💰", Color: "#98D8C8"},
	CategoryEducation:      {Emoji: "📚", Color: "#F7DC6F"},
	CategoryBanking:        {Emoji: "🏦", Color: "#BB8FCE"},
	CategoryOthers:         {Emoji: "❓", Color: "#AED6F1"},
}

// Style returns the emoji and colour for c. Unknown labels get the Others style.
func (c Category) Style() CategoryStyle {
	if style, ok := categoryStyles[c]; ok {
		return style
	}
	return categoryStyles[CategoryOthers]
}
