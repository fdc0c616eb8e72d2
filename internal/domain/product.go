package domain

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	FlavorNotes *string   `json:"flavorNotes"`
	IsSpecial   bool      `json:"isSpecial"`
	IsTrending  bool      `json:"isTrending"`
	IsFavorite  bool      `json:"isFavorite"`
	Badge       *string   `json:"badge"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter";
// the category "All" is treated the same as an empty category.
type ProductFilter struct {
	Category string
	Special  bool
	Trending bool
}

func (f ProductFilter) HasCategory() bool {
	return f.Category != "" && f.Category != "All"
}
