package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"gorm.io/gorm"
)

const (
	authorsTable       = "authors"
	genresTable        = "genres"
	booksTable         = "books"
	bookGenresTable    = "book_genres"
	bookInstancesTable = "book_instances"
)

// Store bundles the four catalog collections over one connection.
type Store struct {
	db        *gorm.DB
	Authors   *Collection[model.Author]
	Genres    *Collection[model.Genre]
	Books     *Collection[model.Book]
	Instances *Collection[model.BookInstance]
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Authors:   NewCollection[model.Author](db, authorsTable),
		Genres:    NewCollection[model.Genre](db, genresTable),
		Books:     NewCollection[model.Book](db, booksTable),
		Instances: NewCollection[model.BookInstance](db, bookInstancesTable),
	}
}

// Transaction runs fn against a Store bound to one database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storeErr("ping", "", err)
	}
	return storeErr("ping", "", sqlDB.PingContext(ctx))
}

// SetBookGenres replaces the genre links of a stored book.
func (s *Store) SetBookGenres(ctx context.Context, bookID uuid.UUID, genres []model.Genre) error {
	assoc := s.db.WithContext(ctx).Model(&model.Book{ID: bookID}).Association("Genres")
	if len(genres) == 0 {
		return storeErr("set_genres", booksTable, assoc.Clear())
	}
	return storeErr("set_genres", booksTable, assoc.Replace(genres))
}

// ClearBookGenres drops the join rows of a book that is being deleted.
func (s *Store) ClearBookGenres(ctx context.Context, bookID uuid.UUID) error {
	return storeErr("clear_genres", bookGenresTable,
		s.db.WithContext(ctx).
			Exec("DELETE FROM "+bookGenresTable+" WHERE book_id = ?", bookID).Error,
	)
}

// Dependent predicates, one per guarded parent.

func BooksByAuthor(authorID uuid.UUID) Query {
	return Eq(booksTable+".author_id", authorID)
}

func InstancesOfBook(bookID uuid.UUID) Query {
	return Eq(bookInstancesTable+".book_id", bookID)
}

func AuthorUnreferenced() Query {
	return NotReferencedBy(booksTable, "author_id", authorsTable)
}

func GenreUnreferenced() Query {
	return NotReferencedBy(bookGenresTable, "genre_id", genresTable)
}

func BookUnreferenced() Query {
	return NotReferencedBy(bookInstancesTable, "book_id", booksTable)
}
