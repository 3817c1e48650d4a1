package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/compose"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

type AuthorDetail struct {
	Author model.Author
	Books  []model.Book
}

type AuthorDeletion = Deletion[model.Author, model.Book]

func (s *Service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.store.Authors.Find(ctx, repository.OrderBy("family_name ASC"))
}

func (s *Service) AuthorDetail(ctx context.Context, id uuid.UUID) (AuthorDetail, error) {
	var (
		author *model.Author
		books  []model.Book
	)

	err := compose.All(ctx,
		compose.Bind("author", &author, byID(s.store.Authors, id)),
		compose.Bind("author_books", &books, s.authorBooks(id)),
	)
	if err != nil {
		return AuthorDetail{}, err
	}
	if author == nil {
		return AuthorDetail{}, ErrNotFound
	}
	return AuthorDetail{Author: *author, Books: books}, nil
}

func (s *Service) Author(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	a, err := s.store.Authors.FindByID(ctx, id)
	return a, notFound(err)
}

func (s *Service) CreateAuthor(ctx context.Context, rec validation.AuthorRecord) (*model.Author, error) {
	author := authorFromRecord(rec)
	if err := s.store.Authors.Insert(ctx, &author); err != nil {
		return nil, err
	}

	s.logger.Info("author created", slog.String("author_id", author.ID.String()))
	return &author, nil
}

// UpdateAuthor replaces the stored author under the same identifier.
func (s *Service) UpdateAuthor(ctx context.Context, id uuid.UUID, rec validation.AuthorRecord) (*model.Author, error) {
	author := authorFromRecord(rec)
	author.ID = id

	updated, err := s.store.Authors.ReplaceByID(ctx, id, &author)
	if err != nil {
		return nil, notFound(err)
	}

	s.logger.Info("author updated", slog.String("author_id", id.String()))
	return updated, nil
}

func (s *Service) AuthorDeletion(ctx context.Context, id uuid.UUID) (AuthorDeletion, error) {
	return s.authorGuard(id).inspect(ctx)
}

func (s *Service) DeleteAuthor(ctx context.Context, id uuid.UUID) (AuthorDeletion, error) {
	d, err := s.authorGuard(id).execute(ctx)
	if err == nil {
		s.logDeletion("author", id, d.Status, len(d.Dependents))
	}
	return d, err
}

func (s *Service) authorGuard(id uuid.UUID) guard[model.Author, model.Book] {
	return guard[model.Author, model.Book]{
		parentName:    "author",
		dependentName: "author_books",
		parent:        byID(s.store.Authors, id),
		dependents:    s.authorBooks(id),
		remove: func(ctx context.Context) (bool, error) {
			return s.store.Authors.DeleteByID(ctx, id, repository.AuthorUnreferenced())
		},
	}
}

func (s *Service) authorBooks(id uuid.UUID) func(ctx context.Context) ([]model.Book, error) {
	return find(s.store.Books, repository.BooksByAuthor(id), repository.OrderBy("title ASC"))
}

func authorFromRecord(rec validation.AuthorRecord) model.Author {
	return model.Author{
		FirstName:   rec.FirstName,
		FamilyName:  rec.FamilyName,
		DateOfBirth: rec.DateOfBirth,
		DateOfDeath: rec.DateOfDeath,
	}
}

func (s *Service) logDeletion(entity string, id uuid.UUID, status DeleteStatus, dependents int) {
	s.logger.Info("delete requested",
		slog.String("entity", entity),
		slog.String("id", id.String()),
		slog.String("outcome", status.String()),
		slog.Int("dependents", dependents),
	)
}
