package handler

import (
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

type Genre struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" example:"Fantasy"`
	URL  string    `json:"url"`
}

// GenreOption is a genre as offered by book forms.
type GenreOption struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Checked bool      `json:"checked"`
}

type GenreListResponse struct {
	Title string  `json:"title"`
	Data  []Genre `json:"data"`
}

type GenreDetailResponse struct {
	Title string        `json:"title"`
	Data  Genre         `json:"data"`
	Books []BookSummary `json:"books"`
}

type GenreFormResponse struct {
	Title  string                  `json:"title"`
	Data   *validation.GenreForm   `json:"data,omitempty"`
	Errors []validation.FieldError `json:"errors,omitempty"`
}

type GenreDeleteResponse struct {
	Title  string        `json:"title"`
	Status string        `json:"status" example:"permitted"`
	Data   *Genre        `json:"data"`
	Books  []BookSummary `json:"books"`
}
