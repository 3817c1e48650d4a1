package catalog

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/compose"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

type InstanceEdit struct {
	Instance model.BookInstance
	Books    []model.Book
}

// Book instances have no dependents; the dependent type is a placeholder.
type InstanceDeletion = Deletion[model.BookInstance, struct{}]

// ListInstances orders copies by book title, ignoring case. Copies whose
// book is gone sort first.
func (s *Service) ListInstances(ctx context.Context) ([]model.BookInstance, error) {
	instances, err := s.store.Instances.Find(ctx, repository.Preload("Book"))
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(instances, func(a, b model.BookInstance) int {
		return strings.Compare(upperTitle(a.Book), upperTitle(b.Book))
	})
	return instances, nil
}

func (s *Service) Instance(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	bi, err := s.store.Instances.FindByID(ctx, id, repository.Preload("Book"))
	return bi, notFound(err)
}

// InstanceBooks is the book list instance forms choose from.
func (s *Service) InstanceBooks(ctx context.Context) ([]model.Book, error) {
	return s.store.Books.Find(ctx, repository.Fields("id", "title"), repository.OrderBy("title ASC"))
}

func (s *Service) InstanceEdit(ctx context.Context, id uuid.UUID) (InstanceEdit, error) {
	var (
		instance *model.BookInstance
		edit     InstanceEdit
	)

	err := compose.All(ctx,
		compose.Bind("book_instance", &instance, byID(s.store.Instances, id, repository.Preload("Book"))),
		compose.Bind("books", &edit.Books, s.InstanceBooks),
	)
	if err != nil {
		return InstanceEdit{}, err
	}
	if instance == nil {
		return InstanceEdit{}, ErrNotFound
	}
	edit.Instance = *instance
	return edit, nil
}

func (s *Service) CreateInstance(ctx context.Context, rec validation.BookInstanceRecord) (*model.BookInstance, error) {
	bi := instanceFromRecord(rec)
	if err := s.store.Instances.Insert(ctx, &bi); err != nil {
		return nil, err
	}

	s.logger.Info("book instance created", slog.String("book_instance_id", bi.ID.String()))
	return &bi, nil
}

func (s *Service) UpdateInstance(ctx context.Context, id uuid.UUID, rec validation.BookInstanceRecord) (*model.BookInstance, error) {
	bi := instanceFromRecord(rec)
	bi.ID = id

	updated, err := s.store.Instances.ReplaceByID(ctx, id, &bi)
	if err != nil {
		return nil, notFound(err)
	}

	s.logger.Info("book instance updated", slog.String("book_instance_id", id.String()))
	return updated, nil
}

func (s *Service) InstanceDeletion(ctx context.Context, id uuid.UUID) (InstanceDeletion, error) {
	return s.instanceGuard(id).inspect(ctx)
}

func (s *Service) DeleteInstance(ctx context.Context, id uuid.UUID) (InstanceDeletion, error) {
	d, err := s.instanceGuard(id).execute(ctx)
	if err == nil {
		s.logDeletion("bookinstance", id, d.Status, 0)
	}
	return d, err
}

func (s *Service) instanceGuard(id uuid.UUID) guard[model.BookInstance, struct{}] {
	return guard[model.BookInstance, struct{}]{
		parentName: "book_instance",
		parent:     byID(s.store.Instances, id, repository.Preload("Book")),
		remove: func(ctx context.Context) (bool, error) {
			return s.store.Instances.DeleteByID(ctx, id)
		},
	}
}

func upperTitle(b *model.Book) string {
	if b == nil {
		return ""
	}
	return strings.ToUpper(b.Title)
}

func instanceFromRecord(rec validation.BookInstanceRecord) model.BookInstance {
	return model.BookInstance{
		BookID:  rec.BookID,
		Imprint: rec.Imprint,
		Status:  rec.Status,
		DueBack: rec.DueBack,
	}
}
