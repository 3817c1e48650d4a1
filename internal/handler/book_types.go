package handler

import (
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

// Book.Author is null when the referenced author no longer exists.
type Book struct {
	ID      uuid.UUID      `json:"id"`
	Title   string         `json:"title" example:"Emma"`
	Author  *AuthorSummary `json:"author"`
	Summary string         `json:"summary"`
	ISBN    string         `json:"isbn"`
	Genres  []Genre        `json:"genre"`
	URL     string         `json:"url"`
}

type BookSummary struct {
	ID      uuid.UUID      `json:"id"`
	Title   string         `json:"title"`
	Author  *AuthorSummary `json:"author,omitempty"`
	Summary string         `json:"summary,omitempty"`
	URL     string         `json:"url"`
}

type BookListResponse struct {
	Title string        `json:"title"`
	Data  []BookSummary `json:"data"`
}

type BookDetailResponse struct {
	Title     string         `json:"title"`
	Data      Book           `json:"data"`
	Instances []BookInstance `json:"book_instances"`
}

// BookFormResponse lists every author and genre; genres on the submitted
// book are checked.
type BookFormResponse struct {
	Title   string                  `json:"title"`
	Data    *validation.BookForm    `json:"data,omitempty"`
	Authors []AuthorSummary         `json:"authors"`
	Genres  []GenreOption           `json:"genres"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

type BookDeleteResponse struct {
	Title     string         `json:"title"`
	Status    string         `json:"status"`
	Data      *Book          `json:"data"`
	Instances []BookInstance `json:"book_instances"`
}
