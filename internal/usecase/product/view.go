package product

import (
	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
)

// Card is a product in the listing grid.
type Card struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	CategoryID   string `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

// CategoryOption is an entry of the category filter.
type CategoryOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected,omitempty"`
}

// ListView is the product listing for one locale, page and category.
type ListView struct {
	Locale           entity.Locale       `json:"locale"`
	Direction        string              `json:"dir"`
	Products         []Card              `json:"products"`
	Categories       []CategoryOption    `json:"categories"`
	SelectedCategory string              `json:"selectedCategory,omitempty"`
	Pagination       pagination.Metadata `json:"pagination"`
	Buttons          []pagination.Button `json:"buttons"`
	Nav              pagination.Nav      `json:"nav"`
	Empty            bool                `json:"empty"`
}

// DetailView is a single product. Description is raw HTML.
type DetailView struct {
	Locale       entity.Locale `json:"locale"`
	Direction    string        `json:"dir"`
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Image        string        `json:"image"`
	CategoryID   string        `json:"categoryId,omitempty"`
	CategoryName string        `json:"categoryName,omitempty"`
}
