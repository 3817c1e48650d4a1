package testutil

import (
	"testing"
	"time"

	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"gorm.io/gorm"
)

func SeedAuthor(t *testing.T, db *gorm.DB, first, family string) model.Author {
	t.Helper()

	author := model.Author{
		FirstName:  first,
		FamilyName: family,
	}

	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", first+" "+family, err)
	}

	return author
}

func SeedGenre(t *testing.T, db *gorm.DB, name string) model.Genre {
	t.Helper()

	genre := model.Genre{Name: name}
	if err := db.Create(&genre).Error; err != nil {
		t.Fatalf("failed to seed genre %q: %v", name, err)
	}

	return genre
}

func SeedBook(t *testing.T, db *gorm.DB, author model.Author, title string, genres ...model.Genre) model.Book {
	t.Helper()

	book := model.Book{
		Title:    title,
		AuthorID: author.ID,
		Summary:  "Summary of " + title,
		ISBN:     "978-" + title,
		Genres:   genres,
	}

	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}

func SeedInstance(t *testing.T, db *gorm.DB, book model.Book, imprint string, status model.BookStatus, due *time.Time) model.BookInstance {
	t.Helper()

	inst := model.BookInstance{
		BookID:  book.ID,
		Imprint: imprint,
		Status:  status,
		DueBack: due,
	}

	if err := db.Create(&inst).Error; err != nil {
		t.Fatalf("failed to seed book instance %q: %v", imprint, err)
	}

	return inst
}
