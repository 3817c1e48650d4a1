package validation

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
)

type AuthorForm struct {
	FirstName   string `form:"first_name" json:"first_name" validate:"min=1,max=100,alphanum"`
	FamilyName  string `form:"family_name" json:"family_name" validate:"min=1,max=100,alphanum"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth" validate:"omitempty,iso8601"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death" validate:"omitempty,iso8601"`
}

type AuthorRecord struct {
	FirstName   string
	FamilyName  string
	DateOfBirth *time.Time
	DateOfDeath *time.Time
}

var authorMessages = map[string]string{
	"first_name.min":       "First name length must be in the range of 1~100",
	"first_name.max":       "First name length must be in the range of 1~100",
	"first_name.alphanum":  "First name has non-alphanumeric characters.",
	"family_name.min":      "Family name length must be in the range of 1~100",
	"family_name.max":      "Family name length must be in the range of 1~100",
	"family_name.alphanum": "Family name has non-alphanumeric characters.",
	"date_of_birth":        "Invalid date of birth",
	"date_of_death":        "Invalid date of death",
}

func CheckAuthor(f AuthorForm) Result[AuthorRecord, AuthorForm] {
	clean := AuthorForm{
		FirstName:   strings.TrimSpace(f.FirstName),
		FamilyName:  strings.TrimSpace(f.FamilyName),
		DateOfBirth: strings.TrimSpace(f.DateOfBirth),
		DateOfDeath: strings.TrimSpace(f.DateOfDeath),
	}

	if errs := check(clean, authorMessages); len(errs) > 0 {
		return Result[AuthorRecord, AuthorForm]{Errors: errs, Original: f}
	}

	return Result[AuthorRecord, AuthorForm]{
		Record: AuthorRecord{
			FirstName:   clean.FirstName,
			FamilyName:  clean.FamilyName,
			DateOfBirth: optionalDate(clean.DateOfBirth),
			DateOfDeath: optionalDate(clean.DateOfDeath),
		},
		Original: f,
	}
}

type GenreForm struct {
	Name string `form:"name" json:"name" validate:"min=3,max=100"`
}

type GenreRecord struct {
	Name string
}

var genreMessages = map[string]string{
	"name.min": "Genre name at least 3 characters",
	"name.max": "Genre name at most 100 characters",
}

func CheckGenre(f GenreForm) Result[GenreRecord, GenreForm] {
	clean := GenreForm{Name: strings.TrimSpace(f.Name)}

	if errs := check(clean, genreMessages); len(errs) > 0 {
		return Result[GenreRecord, GenreForm]{Errors: errs, Original: f}
	}

	return Result[GenreRecord, GenreForm]{
		Record:   GenreRecord{Name: clean.Name},
		Original: f,
	}
}

// BookForm.Genre is always a list once bound, whatever shape was submitted.
type BookForm struct {
	Title   string     `form:"title" json:"title" validate:"required"`
	Author  string     `form:"author" json:"author" validate:"required,identifier"`
	Summary string     `form:"summary" json:"summary" validate:"required"`
	ISBN    string     `form:"isbn" json:"isbn" validate:"required"`
	Genre   StringList `form:"genre" json:"genre" validate:"dive,identifier"`
}

type BookRecord struct {
	Title    string
	AuthorID uuid.UUID
	Summary  string
	ISBN     string
	GenreIDs []uuid.UUID
}

var bookMessages = map[string]string{
	"title.required":    "Title must not be empty.",
	"author.required":   "Author must not be empty.",
	"author.identifier": "Author must be a valid identifier.",
	"summary.required":  "Summary must not be empty.",
	"isbn.required":     "ISBN must not be empty.",
	"genre":             "Genre must be a list of valid identifiers.",
}

func CheckBook(f BookForm) Result[BookRecord, BookForm] {
	f.Genre = NormalizeList(f.Genre)

	clean := BookForm{
		Title:   strings.TrimSpace(f.Title),
		Author:  strings.TrimSpace(f.Author),
		Summary: strings.TrimSpace(f.Summary),
		ISBN:    strings.TrimSpace(f.ISBN),
		Genre:   f.Genre,
	}

	if errs := check(clean, bookMessages); len(errs) > 0 {
		return Result[BookRecord, BookForm]{Errors: errs, Original: f}
	}

	genreIDs := make([]uuid.UUID, 0, len(clean.Genre))
	for _, g := range clean.Genre {
		genreIDs = append(genreIDs, uuid.MustParse(g))
	}

	return Result[BookRecord, BookForm]{
		Record: BookRecord{
			Title:    clean.Title,
			AuthorID: uuid.MustParse(clean.Author),
			Summary:  clean.Summary,
			ISBN:     clean.ISBN,
			GenreIDs: genreIDs,
		},
		Original: f,
	}
}

type BookInstanceForm struct {
	Book    string `form:"book" json:"book" validate:"required,identifier"`
	Imprint string `form:"imprint" json:"imprint" validate:"required"`
	Status  string `form:"status" json:"status" validate:"omitempty,bookstatus"`
	DueBack string `form:"due_back" json:"due_back" validate:"omitempty,iso8601"`
}

type BookInstanceRecord struct {
	BookID  uuid.UUID
	Imprint string
	Status  model.BookStatus
	DueBack *time.Time
}

var bookInstanceMessages = map[string]string{
	"book.required":    "Book must be specified.",
	"book.identifier":  "Book must be a valid identifier.",
	"imprint.required": "Imprint must not be empty.",
	"status":           "Invalid status.",
	"due_back":         "Invalid date",
}

func CheckBookInstance(f BookInstanceForm) Result[BookInstanceRecord, BookInstanceForm] {
	clean := BookInstanceForm{
		Book:    strings.TrimSpace(f.Book),
		Imprint: strings.TrimSpace(f.Imprint),
		Status:  strings.TrimSpace(f.Status),
		DueBack: strings.TrimSpace(f.DueBack),
	}

	if errs := check(clean, bookInstanceMessages); len(errs) > 0 {
		return Result[BookInstanceRecord, BookInstanceForm]{Errors: errs, Original: f}
	}

	status := model.BookStatus(clean.Status)
	if status == "" {
		status = model.StatusMaintenance
	}

	return Result[BookInstanceRecord, BookInstanceForm]{
		Record: BookInstanceRecord{
			BookID:  uuid.MustParse(clean.Book),
			Imprint: clean.Imprint,
			Status:  status,
			DueBack: optionalDate(clean.DueBack),
		},
		Original: f,
	}
}

// optionalDate expects s to have passed the iso8601 rule already.
func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := model.ParseISODate(s)
	if err != nil {
		return nil
	}
	return &t
}
