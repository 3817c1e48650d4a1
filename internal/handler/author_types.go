package handler

import (
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

type Author struct {
	ID          uuid.UUID   `json:"id"`
	FirstName   string      `json:"first_name"`
	FamilyName  string      `json:"family_name"`
	DateOfBirth *model.Date `json:"date_of_birth,omitempty" swaggertype:"string" example:"1775-12-16"`
	DateOfDeath *model.Date `json:"date_of_death,omitempty" swaggertype:"string" example:"1817-07-18"`
	Name        string      `json:"name" example:"Jane Austen"`
	Lifespan    string      `json:"lifespan" example:"December 16th, 1775 - July 18th, 1817"`
	URL         string      `json:"url"`
}

type AuthorSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	URL  string    `json:"url"`
}

type AuthorListResponse struct {
	Title string   `json:"title"`
	Data  []Author `json:"data"`
}

type AuthorDetailResponse struct {
	Title string        `json:"title"`
	Data  Author        `json:"data"`
	Books []BookSummary `json:"books"`
}

// AuthorFormResponse carries the submission back with its errors on 422.
type AuthorFormResponse struct {
	Title  string                  `json:"title"`
	Data   *validation.AuthorForm  `json:"data,omitempty"`
	Errors []validation.FieldError `json:"errors,omitempty"`
}

type AuthorDeleteResponse struct {
	Title  string        `json:"title"`
	Status string        `json:"status" example:"blocked"`
	Data   *Author       `json:"data"`
	Books  []BookSummary `json:"books"`
}
