package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/testutil"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewService(repository.NewStore(db), nil), db
}

func mustAuthor(t *testing.T, s *Service, first, family string) *model.Author {
	t.Helper()
	res := validation.CheckAuthor(validation.AuthorForm{FirstName: first, FamilyName: family})
	require.True(t, res.Valid(), res.Errors)

	a, err := s.CreateAuthor(context.Background(), res.Record)
	require.NoError(t, err)
	return a
}

func mustBook(t *testing.T, s *Service, author uuid.UUID, title string, genres ...string) *model.Book {
	t.Helper()
	res := validation.CheckBook(validation.BookForm{
		Title:   title,
		Author:  author.String(),
		Summary: "About " + title,
		ISBN:    "isbn-" + title,
		Genre:   genres,
	})
	require.True(t, res.Valid(), res.Errors)

	b, err := s.CreateBook(context.Background(), res.Record)
	require.NoError(t, err)
	return b
}

func TestCreateAuthor_DerivedName(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	a := mustAuthor(t, s, "Jane", "Austen")
	require.NotEqual(t, uuid.Nil, a.ID)

	stored, err := s.Author(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Austen", stored.Name())
	assert.Equal(t, "/catalog/author/"+a.ID.String(), stored.URL())
}

func TestAuthor_NotFound(t *testing.T) {
	s, _ := newService(t)

	_, err := s.Author(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AuthorDetail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAuthors_SortedByFamilyName(t *testing.T) {
	s, _ := newService(t)

	mustAuthor(t, s, "Leo", "Tolstoy")
	mustAuthor(t, s, "Jane", "Austen")
	mustAuthor(t, s, "Fyodor", "Dostoevsky")

	authors, err := s.ListAuthors(context.Background())
	require.NoError(t, err)

	got := make([]string, 0, len(authors))
	for _, a := range authors {
		got = append(got, a.FamilyName)
	}
	assert.Equal(t, []string{"Austen", "Dostoevsky", "Tolstoy"}, got)
}

func TestAuthorDetail_IncludesBooks(t *testing.T) {
	s, _ := newService(t)
	a := mustAuthor(t, s, "Jane", "Austen")
	other := mustAuthor(t, s, "Leo", "Tolstoy")
	mustBook(t, s, a.ID, "Persuasion")
	mustBook(t, s, a.ID, "Emma")
	mustBook(t, s, other.ID, "Resurrection")

	d, err := s.AuthorDetail(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, d.Author.ID)
	require.Len(t, d.Books, 2)
	assert.Equal(t, "Emma", d.Books[0].Title)
	assert.Equal(t, "Persuasion", d.Books[1].Title)
}

func TestDeleteAuthor_WithoutBooks(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	a := mustAuthor(t, s, "Jane", "Austen")

	d, err := s.DeleteAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, Deleted, d.Status)

	_, err = s.Author(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAuthor_BlockedByBooks(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	a := mustAuthor(t, s, "Jane", "Austen")
	emma := mustBook(t, s, a.ID, "Emma")
	persuasion := mustBook(t, s, a.ID, "Persuasion")
	mustBook(t, s, mustAuthor(t, s, "Leo", "Tolstoy").ID, "Resurrection")

	d, err := s.DeleteAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteBlocked, d.Status)
	require.NotNil(t, d.Parent)
	assert.Equal(t, a.ID, d.Parent.ID)

	ids := []uuid.UUID{}
	for _, b := range d.Dependents {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{emma.ID, persuasion.ID}, ids)

	_, err = s.Author(ctx, a.ID)
	assert.NoError(t, err)
	detail, err := s.AuthorDetail(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Books, 2)
}

func TestDeleteAuthor_NotFoundIsNoop(t *testing.T) {
	s, _ := newService(t)

	d, err := s.DeleteAuthor(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, DeleteNotFound, d.Status)
	assert.Nil(t, d.Parent)
}

func TestAuthorDeletion_DoesNotMutate(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	a := mustAuthor(t, s, "Jane", "Austen")

	d, err := s.AuthorDeletion(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, DeletePermitted, d.Status)
	assert.Empty(t, d.Dependents)

	_, err = s.Author(ctx, a.ID)
	assert.NoError(t, err)
}

func TestUpdateAuthor_PreservesID(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	a := mustAuthor(t, s, "Jane", "Austen")

	dob := time.Date(1775, time.December, 16, 0, 0, 0, 0, time.UTC)
	updated, err := s.UpdateAuthor(ctx, a.ID, validation.AuthorRecord{
		FirstName:   "Janet",
		FamilyName:  "Austen",
		DateOfBirth: &dob,
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, updated.ID)
	assert.Equal(t, "Janet Austen", updated.Name())
	assert.Equal(t, "December 16th, 1775 - ", updated.Lifespan())

	authors, err := s.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestUpdateAuthor_NotFound(t *testing.T) {
	s, _ := newService(t)

	_, err := s.UpdateAuthor(context.Background(), uuid.New(), validation.AuthorRecord{FirstName: "A", FamilyName: "B"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateGenre_ReusesExistingName(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	first, created, err := s.CreateGenre(ctx, validation.GenreRecord{Name: "Fantasy"})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := s.CreateGenre(ctx, validation.GenreRecord{Name: "Fantasy"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	other, created, err := s.CreateGenre(ctx, validation.GenreRecord{Name: "fantasy"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)

	var n int64
	require.NoError(t, db.Model(&model.Genre{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestDeleteGenre_Guard(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	fantasy := testutil.SeedGenre(t, db, "Fantasy")
	poetry := testutil.SeedGenre(t, db, "Poetry")
	a := mustAuthor(t, s, "Ursula", "LeGuin")
	book := mustBook(t, s, a.ID, "Earthsea", fantasy.ID.String())

	d, err := s.DeleteGenre(ctx, fantasy.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteBlocked, d.Status)
	require.Len(t, d.Dependents, 1)
	assert.Equal(t, book.ID, d.Dependents[0].ID)

	d, err = s.DeleteGenre(ctx, poetry.ID)
	require.NoError(t, err)
	assert.Equal(t, Deleted, d.Status)

	_, err = s.Genre(ctx, poetry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenreDetail(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	fantasy := testutil.SeedGenre(t, db, "Fantasy")
	a := mustAuthor(t, s, "Ursula", "LeGuin")
	mustBook(t, s, a.ID, "Earthsea", fantasy.ID.String())
	mustBook(t, s, a.ID, "Dispossessed")

	d, err := s.GenreDetail(ctx, fantasy.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", d.Genre.Name)
	require.Len(t, d.Books, 1)
	assert.Equal(t, "Earthsea", d.Books[0].Title)

	_, err = s.GenreDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBook_GenreListShapes(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	fantasy := testutil.SeedGenre(t, db, "Fantasy")
	classic := testutil.SeedGenre(t, db, "Classic")
	a := mustAuthor(t, s, "Jane", "Austen")

	cases := []struct {
		name  string
		genre []string
		want  []string
	}{
		{"omitted", nil, []string{}},
		{"single", []string{fantasy.ID.String()}, []string{"Fantasy"}},
		{"multiple", []string{fantasy.ID.String(), classic.ID.String()}, []string{"Classic", "Fantasy"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBook(t, s, a.ID, "Book "+tc.name, tc.genre...)

			d, err := s.BookDetail(ctx, b.ID)
			require.NoError(t, err)

			names := []string{}
			for _, g := range d.Book.Genres {
				names = append(names, g.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestBookDetail_ExpandsReferences(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	a := mustAuthor(t, s, "Jane", "Austen")
	b := mustBook(t, s, a.ID, "Emma")
	testutil.SeedInstance(t, db, *b, "Penguin", model.StatusAvailable, nil)

	d, err := s.BookDetail(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, d.Book.Author)
	assert.Equal(t, "Jane Austen", d.Book.Author.Name())
	require.Len(t, d.Instances, 1)
	assert.Equal(t, "Penguin", d.Instances[0].Imprint)
}

func TestBookDetail_BrokenAuthorRendersAbsent(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	ghost := model.Author{ID: uuid.New(), FirstName: "No", FamilyName: "One"}
	b := testutil.SeedBook(t, db, ghost, "Orphan")

	d, err := s.BookDetail(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, d.Book.Author)

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Nil(t, books[0].Author)
}

func TestUpdateBook_PreservesIDAndReplacesGenres(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	fantasy := testutil.SeedGenre(t, db, "Fantasy")
	classic := testutil.SeedGenre(t, db, "Classic")
	a := mustAuthor(t, s, "Jane", "Austen")
	b := mustBook(t, s, a.ID, "Emma", fantasy.ID.String())

	updated, err := s.UpdateBook(ctx, b.ID, validation.BookRecord{
		Title:    "Emma (revised)",
		AuthorID: a.ID,
		Summary:  "Revised",
		ISBN:     "123",
		GenreIDs: []uuid.UUID{classic.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, updated.ID)

	d, err := s.BookDetail(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Emma (revised)", d.Book.Title)
	require.Len(t, d.Book.Genres, 1)
	assert.Equal(t, classic.ID, d.Book.Genres[0].ID)

	_, err = s.UpdateBook(ctx, b.ID, validation.BookRecord{Title: "x", AuthorID: a.ID, Summary: "x", ISBN: "x"})
	require.NoError(t, err)
	d, err = s.BookDetail(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, d.Book.Genres)

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestUpdateBook_NotFound(t *testing.T) {
	s, _ := newService(t)

	_, err := s.UpdateBook(context.Background(), uuid.New(), validation.BookRecord{Title: "x", AuthorID: uuid.New(), Summary: "x", ISBN: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBook_Guard(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	fantasy := testutil.SeedGenre(t, db, "Fantasy")
	a := mustAuthor(t, s, "Jane", "Austen")
	b := mustBook(t, s, a.ID, "Emma", fantasy.ID.String())
	stocked := testutil.SeedInstance(t, db, *b, "Penguin", model.StatusAvailable, nil)

	d, err := s.DeleteBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteBlocked, d.Status)
	require.Len(t, d.Dependents, 1)
	assert.Equal(t, stocked.ID, d.Dependents[0].ID)

	di, err := s.DeleteInstance(ctx, stocked.ID)
	require.NoError(t, err)
	assert.Equal(t, Deleted, di.Status)

	d, err = s.DeleteBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, Deleted, d.Status)

	var links int64
	require.NoError(t, db.Table("book_genres").Where("book_id = ?", b.ID).Count(&links).Error)
	assert.Zero(t, links)

	// The genre lost its only book and can go now.
	dg, err := s.DeleteGenre(ctx, fantasy.ID)
	require.NoError(t, err)
	assert.Equal(t, Deleted, dg.Status)
}

func TestListInstances_SortedByBookTitle(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	a := mustAuthor(t, s, "Jane", "Austen")
	persuasion := mustBook(t, s, a.ID, "persuasion")
	emma := mustBook(t, s, a.ID, "Emma")
	testutil.SeedInstance(t, db, *persuasion, "P1", model.StatusLoaned, nil)
	testutil.SeedInstance(t, db, *emma, "E1", model.StatusAvailable, nil)

	list, err := s.ListInstances(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "E1", list[0].Imprint)
	assert.Equal(t, "P1", list[1].Imprint)
}

func TestInstance_CreateUpdate(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	a := mustAuthor(t, s, "Jane", "Austen")
	b := mustBook(t, s, a.ID, "Emma")

	res := validation.CheckBookInstance(validation.BookInstanceForm{Book: b.ID.String(), Imprint: "Penguin"})
	require.True(t, res.Valid())
	bi, err := s.CreateInstance(ctx, res.Record)
	require.NoError(t, err)
	assert.Equal(t, model.StatusMaintenance, bi.Status)

	due := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	updated, err := s.UpdateInstance(ctx, bi.ID, validation.BookInstanceRecord{
		BookID:  b.ID,
		Imprint: "Penguin 2nd",
		Status:  model.StatusLoaned,
		DueBack: &due,
	})
	require.NoError(t, err)
	assert.Equal(t, bi.ID, updated.ID)
	assert.Equal(t, model.StatusLoaned, updated.Status)
	assert.Equal(t, "Jan 1st, 2030", updated.DueBackFormatted())

	edit, err := s.InstanceEdit(ctx, bi.ID)
	require.NoError(t, err)
	require.NotNil(t, edit.Instance.Book)
	assert.Equal(t, "Emma", edit.Instance.Book.Title)
	require.Len(t, edit.Books, 1)

	_, err = s.InstanceEdit(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteInstance_NotFound(t *testing.T) {
	s, _ := newService(t)

	d, err := s.DeleteInstance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, DeleteNotFound, d.Status)
}

func TestCounts_EmptyCatalog(t *testing.T) {
	s, _ := newService(t)

	c, err := s.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{}, c)
}

func TestCounts(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	testutil.SeedGenre(t, db, "Fantasy")
	a := mustAuthor(t, s, "Jane", "Austen")
	b := mustBook(t, s, a.ID, "Emma")
	testutil.SeedInstance(t, db, *b, "A", model.StatusAvailable, nil)
	testutil.SeedInstance(t, db, *b, "B", model.StatusLoaned, nil)
	testutil.SeedInstance(t, db, *b, "C", model.StatusAvailable, nil)

	c, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{
		Books:                  1,
		BookInstances:          3,
		AvailableBookInstances: 2,
		Authors:                1,
		Genres:                 1,
	}, c)
}

func TestCounts_StoreFailureIsNotPartial(t *testing.T) {
	s := NewService(repository.NewStore(testutil.NewBrokenDB(t)), nil)

	c, err := s.Counts(context.Background())
	require.Error(t, err)
	assert.True(t, repository.IsStoreError(err))
	assert.Equal(t, Counts{}, c)
}

func TestBookOptions(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	testutil.SeedGenre(t, db, "Poetry")
	testutil.SeedGenre(t, db, "Fantasy")
	mustAuthor(t, s, "Leo", "Tolstoy")
	mustAuthor(t, s, "Jane", "Austen")

	opts, err := s.BookOptions(ctx)
	require.NoError(t, err)
	require.Len(t, opts.Authors, 2)
	require.Len(t, opts.Genres, 2)
	assert.Equal(t, "Austen", opts.Authors[0].FamilyName)
	assert.Equal(t, "Fantasy", opts.Genres[0].Name)
}

// Jane Austen cannot be removed while "Emma" exists and can once it is gone.
func TestDeleteScenario_AuthorAfterBook(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	jane := mustAuthor(t, s, "Jane", "Austen")
	emma := mustBook(t, s, jane.ID, "Emma")

	d, err := s.DeleteAuthor(ctx, jane.ID)
	require.NoError(t, err)
	require.Equal(t, DeleteBlocked, d.Status)
	require.Len(t, d.Dependents, 1)
	assert.Equal(t, "Emma", d.Dependents[0].Title)

	bd, err := s.DeleteBook(ctx, emma.ID)
	require.NoError(t, err)
	require.Equal(t, Deleted, bd.Status)

	d, err = s.DeleteAuthor(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, Deleted, d.Status)

	_, err = s.AuthorDetail(ctx, jane.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
