package handler

import (
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

type BookInstance struct {
	ID               uuid.UUID        `json:"id"`
	Book             *BookSummary     `json:"book"`
	Imprint          string           `json:"imprint"`
	Status           model.BookStatus `json:"status" example:"Available"`
	DueBack          *model.Date      `json:"due_back,omitempty" swaggertype:"string" example:"2026-01-31"`
	DueBackFormatted string           `json:"due_back_formatted" example:"Jan 31st, 2026"`
	URL              string           `json:"url"`
}

type BookInstanceListResponse struct {
	Title string         `json:"title"`
	Data  []BookInstance `json:"data"`
}

type BookInstanceDetailResponse struct {
	Title string       `json:"title"`
	Data  BookInstance `json:"data"`
}

// BookInstanceFormResponse offers books by title only.
type BookInstanceFormResponse struct {
	Title    string                       `json:"title"`
	Data     *validation.BookInstanceForm `json:"data,omitempty"`
	Books    []BookSummary                `json:"book_list"`
	Statuses []model.BookStatus           `json:"statuses"`
	Errors   []validation.FieldError      `json:"errors,omitempty"`
}

type BookInstanceDeleteResponse struct {
	Title  string        `json:"title"`
	Status string        `json:"status"`
	Data   *BookInstance `json:"data"`
}
