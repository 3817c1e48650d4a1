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

type GenreDetail struct {
	Genre model.Genre
	Books []model.Book
}

type GenreDeletion = Deletion[model.Genre, model.Book]

func (s *Service) ListGenres(ctx context.Context) ([]model.Genre, error) {
	return s.store.Genres.Find(ctx, repository.OrderBy("name ASC"))
}

func (s *Service) GenreDetail(ctx context.Context, id uuid.UUID) (GenreDetail, error) {
	var (
		genre *model.Genre
		books []model.Book
	)

	err := compose.All(ctx,
		compose.Bind("genre", &genre, byID(s.store.Genres, id)),
		compose.Bind("genre_books", &books, s.genreBooks(id)),
	)
	if err != nil {
		return GenreDetail{}, err
	}
	if genre == nil {
		return GenreDetail{}, ErrNotFound
	}
	return GenreDetail{Genre: *genre, Books: books}, nil
}

func (s *Service) Genre(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	g, err := s.store.Genres.FindByID(ctx, id)
	return g, notFound(err)
}

// CreateGenre reuses a genre with exactly the same name instead of inserting
// a duplicate; created reports which happened. The name check and the insert
// are separate statements.
func (s *Service) CreateGenre(ctx context.Context, rec validation.GenreRecord) (genre *model.Genre, created bool, err error) {
	existing, err := s.store.Genres.FindOne(ctx, repository.Eq("name", rec.Name))
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, err
	}

	g := model.Genre{Name: rec.Name}
	if err := s.store.Genres.Insert(ctx, &g); err != nil {
		return nil, false, err
	}

	s.logger.Info("genre created", slog.String("genre_id", g.ID.String()))
	return &g, true, nil
}

func (s *Service) UpdateGenre(ctx context.Context, id uuid.UUID, rec validation.GenreRecord) (*model.Genre, error) {
	g := model.Genre{ID: id, Name: rec.Name}

	updated, err := s.store.Genres.ReplaceByID(ctx, id, &g)
	if err != nil {
		return nil, notFound(err)
	}

	s.logger.Info("genre updated", slog.String("genre_id", id.String()))
	return updated, nil
}

func (s *Service) GenreDeletion(ctx context.Context, id uuid.UUID) (GenreDeletion, error) {
	return s.genreGuard(id).inspect(ctx)
}

func (s *Service) DeleteGenre(ctx context.Context, id uuid.UUID) (GenreDeletion, error) {
	d, err := s.genreGuard(id).execute(ctx)
	if err == nil {
		s.logDeletion("genre", id, d.Status, len(d.Dependents))
	}
	return d, err
}

func (s *Service) genreGuard(id uuid.UUID) guard[model.Genre, model.Book] {
	return guard[model.Genre, model.Book]{
		parentName:    "genre",
		dependentName: "genre_books",
		parent:        byID(s.store.Genres, id),
		dependents:    s.genreBooks(id),
		remove: func(ctx context.Context) (bool, error) {
			return s.store.Genres.DeleteByID(ctx, id, repository.GenreUnreferenced())
		},
	}
}

func (s *Service) genreBooks(id uuid.UUID) func(ctx context.Context) ([]model.Book, error) {
	return find(s.store.Books, repository.InGenre(id), repository.OrderBy("books.title ASC"))
}
