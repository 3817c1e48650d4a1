package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/compose"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

type BookDetail struct {
	Book      model.Book
	Instances []model.BookInstance
}

// BookOptions are the reference lists a book form offers.
type BookOptions struct {
	Authors []model.Author
	Genres  []model.Genre
}

type BookEdit struct {
	Book model.Book
	BookOptions
}

type BookDeletion = Deletion[model.Book, model.BookInstance]

// errNothingRemoved rolls back the genre unlinking when the book stays.
var errNothingRemoved = errors.New("catalog: book not removed")

// ListBooks returns titles with their authors expanded.
func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.store.Books.Find(ctx,
		repository.Fields("id", "title", "author_id"),
		repository.Preload("Author"),
		repository.OrderBy("title ASC"),
	)
}

func (s *Service) BookDetail(ctx context.Context, id uuid.UUID) (BookDetail, error) {
	var (
		book      *model.Book
		instances []model.BookInstance
	)

	err := compose.All(ctx,
		compose.Bind("book", &book, s.expandedBook(id)),
		compose.Bind("book_instances", &instances, s.bookInstances(id)),
	)
	if err != nil {
		return BookDetail{}, err
	}
	if book == nil {
		return BookDetail{}, ErrNotFound
	}
	return BookDetail{Book: *book, Instances: instances}, nil
}

func (s *Service) BookOptions(ctx context.Context) (BookOptions, error) {
	var opts BookOptions

	err := compose.All(ctx,
		compose.Bind("authors", &opts.Authors, find(s.store.Authors, repository.OrderBy("family_name ASC"))),
		compose.Bind("genres", &opts.Genres, find(s.store.Genres, repository.OrderBy("name ASC"))),
	)
	if err != nil {
		return BookOptions{}, err
	}
	return opts, nil
}

// BookEdit loads a book together with everything its update form offers.
func (s *Service) BookEdit(ctx context.Context, id uuid.UUID) (BookEdit, error) {
	var (
		book *model.Book
		edit BookEdit
	)

	err := compose.All(ctx,
		compose.Bind("book", &book, s.expandedBook(id)),
		compose.Bind("authors", &edit.Authors, find(s.store.Authors, repository.OrderBy("family_name ASC"))),
		compose.Bind("genres", &edit.Genres, find(s.store.Genres, repository.OrderBy("name ASC"))),
	)
	if err != nil {
		return BookEdit{}, err
	}
	if book == nil {
		return BookEdit{}, ErrNotFound
	}
	edit.Book = *book
	return edit, nil
}

// CreateBook links only the submitted genres that exist.
func (s *Service) CreateBook(ctx context.Context, rec validation.BookRecord) (*model.Book, error) {
	genres, err := s.genresByID(ctx, rec.GenreIDs)
	if err != nil {
		return nil, err
	}

	book := bookFromRecord(rec)
	book.Genres = genres
	if err := s.store.Books.Insert(ctx, &book); err != nil {
		return nil, err
	}

	s.logger.Info("book created", slog.String("book_id", book.ID.String()))
	return &book, nil
}

// UpdateBook replaces the book and its genre links under the same identifier.
func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, rec validation.BookRecord) (*model.Book, error) {
	genres, err := s.genresByID(ctx, rec.GenreIDs)
	if err != nil {
		return nil, err
	}

	var updated *model.Book
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		book := bookFromRecord(rec)
		book.ID = id

		b, err := tx.Books.ReplaceByID(ctx, id, &book)
		if err != nil {
			return err
		}
		if err := tx.SetBookGenres(ctx, id, genres); err != nil {
			return err
		}
		b.Genres = genres
		updated = b
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}

	s.logger.Info("book updated", slog.String("book_id", id.String()))
	return updated, nil
}

func (s *Service) BookDeletion(ctx context.Context, id uuid.UUID) (BookDeletion, error) {
	return s.bookGuard(id).inspect(ctx)
}

func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) (BookDeletion, error) {
	d, err := s.bookGuard(id).execute(ctx)
	if err == nil {
		s.logDeletion("book", id, d.Status, len(d.Dependents))
	}
	return d, err
}

func (s *Service) bookGuard(id uuid.UUID) guard[model.Book, model.BookInstance] {
	return guard[model.Book, model.BookInstance]{
		parentName:    "book",
		dependentName: "book_instances",
		parent:        s.expandedBook(id),
		dependents:    s.bookInstances(id),
		remove: func(ctx context.Context) (bool, error) {
			err := s.store.Transaction(ctx, func(tx *repository.Store) error {
				if err := tx.ClearBookGenres(ctx, id); err != nil {
					return err
				}
				removed, err := tx.Books.DeleteByID(ctx, id, repository.BookUnreferenced())
				if err != nil {
					return err
				}
				if !removed {
					return errNothingRemoved
				}
				return nil
			})
			if errors.Is(err, errNothingRemoved) {
				return false, nil
			}
			return err == nil, err
		},
	}
}

func (s *Service) expandedBook(id uuid.UUID) func(ctx context.Context) (*model.Book, error) {
	return byID(s.store.Books, id,
		repository.Preload("Author"),
		repository.Preload("Genres", repository.OrderBy("name ASC")),
	)
}

func (s *Service) bookInstances(id uuid.UUID) func(ctx context.Context) ([]model.BookInstance, error) {
	return find(s.store.Instances, repository.InstancesOfBook(id), repository.OrderBy("imprint ASC"))
}

func (s *Service) genresByID(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error) {
	if len(ids) == 0 {
		return []model.Genre{}, nil
	}
	return s.store.Genres.Find(ctx, repository.In("id", ids), repository.OrderBy("name ASC"))
}

func bookFromRecord(rec validation.BookRecord) model.Book {
	return model.Book{
		Title:    rec.Title,
		AuthorID: rec.AuthorID,
		Summary:  rec.Summary,
		ISBN:     rec.ISBN,
	}
}
