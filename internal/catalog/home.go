package catalog

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/catalog/internal/compose"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
)

type Counts struct {
	Books                  int64
	BookInstances          int64
	AvailableBookInstances int64
	Authors                int64
	Genres                 int64
}

// Counts returns all five counts or an error, never a partial set.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var c Counts

	err := compose.All(ctx,
		compose.Bind("book_count", &c.Books, count(s.store.Books)),
		compose.Bind("book_instance_count", &c.BookInstances, count(s.store.Instances)),
		compose.Bind("book_instance_available_count", &c.AvailableBookInstances,
			count(s.store.Instances, repository.Eq("status", model.StatusAvailable))),
		compose.Bind("author_count", &c.Authors, count(s.store.Authors)),
		compose.Bind("genre_count", &c.Genres, count(s.store.Genres)),
	)
	if err != nil {
		return Counts{}, err
	}
	return c, nil
}
