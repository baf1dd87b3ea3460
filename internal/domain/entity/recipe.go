package entity

import "time"

// Recipe is the content aggregate. Ingredient and instruction order is
// significant; Gallery holds additional image URLs beyond the primary Image.
type Recipe struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Image           string    `json:"image,omitempty"`
	Gallery         []string  `json:"gallery,omitempty"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags,omitempty"`
	PreparationTime string    `json:"preparation_time,omitempty"`
	CookingTime     string    `json:"cooking_time,omitempty"`
	Servings        int       `json:"servings,omitempty"`
	Ingredients     []string  `json:"ingredients"`
	Instructions    []string  `json:"instructions"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
