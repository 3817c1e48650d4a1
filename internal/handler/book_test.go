package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/testutil"
)

func storedGenreNames(t *testing.T, router http.Handler, book model.Book) []string {
	t.Helper()

	w := doGet(router, book.URL())
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[BookDetailResponse](t, w)
	names := make([]string, 0, len(resp.Data.Genres))
	for _, g := range resp.Data.Genres {
		names = append(names, g.Name)
	}
	return names
}

func TestCreateBook_GenreShapes(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author := testutil.SeedAuthor(t, db, "Jane", "Austen")
	classic := testutil.SeedGenre(t, db, "Classic")
	romance := testutil.SeedGenre(t, db, "Romance")

	cases := []struct {
		name  string
		genre any
		want  []string
	}{
		{"omitted", nil, []string{}},
		{"single", classic.ID.String(), []string{"Classic"}},
		{"list", []string{romance.ID.String(), classic.ID.String()}, []string{"Classic", "Romance"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := map[string]any{
				"title":   "Emma " + tc.name,
				"author":  author.ID.String(),
				"summary": "A comedy of manners",
				"isbn":    "9780141439587",
			}
			if tc.genre != nil {
				body["genre"] = tc.genre
			}

			w := doPostJSON(t, router, "/catalog/book/create", body)
			if w.Code != http.StatusFound {
				t.Fatalf("expected status 302, got %d, body=%s", w.Code, w.Body.String())
			}

			var stored model.Book
			if err := db.First(&stored, "title = ?", "Emma "+tc.name).Error; err != nil {
				t.Fatalf("expected book in db: %v", err)
			}
			if loc := w.Header().Get("Location"); loc != stored.URL() {
				t.Fatalf("expected redirect to %q, got %q", stored.URL(), loc)
			}

			got := storedGenreNames(t, router, stored)
			if len(got) != len(tc.want) {
				t.Fatalf("expected genres %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected genres %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestCreateBook_FormRepeatedGenre(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author := testutil.SeedAuthor(t, db, "Jane", "Austen")
	classic := testutil.SeedGenre(t, db, "Classic")
	romance := testutil.SeedGenre(t, db, "Romance")

	w := doPostForm(router, "/catalog/book/create", url.Values{
		"title":   {"Persuasion"},
		"author":  {author.ID.String()},
		"summary": {"Second chances"},
		"isbn":    {"9780141439686"},
		"genre":   {classic.ID.String(), romance.ID.String()},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d, body=%s", w.Code, w.Body.String())
	}

	var stored model.Book
	if err := db.Preload("Genres").First(&stored, "title = ?", "Persuasion").Error; err != nil {
		t.Fatalf("expected book in db: %v", err)
	}
	if len(stored.Genres) != 2 {
		t.Fatalf("expected 2 genres, got %d", len(stored.Genres))
	}
}

func TestCreateBook_UppercaseIdentifiers(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author := testutil.SeedAuthor(t, db, "Jane", "Austen")
	classic := testutil.SeedGenre(t, db, "Classic")

	w := doPostForm(router, "/catalog/book/create", url.Values{
		"title":   {"Mansfield Park"},
		"author":  {strings.ToUpper(author.ID.String())},
		"summary": {"Fanny Price"},
		"isbn":    {"9780141439808"},
		"genre":   {strings.ToUpper(classic.ID.String())},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d, body=%s", w.Code, w.Body.String())
	}

	var stored model.Book
	if err := db.Preload("Genres").First(&stored, "title = ?", "Mansfield Park").Error; err != nil {
		t.Fatalf("expected book in db: %v", err)
	}
	if stored.AuthorID != author.ID {
		t.Errorf("expected author %s, got %s", author.ID, stored.AuthorID)
	}
	if len(stored.Genres) != 1 || stored.Genres[0].ID != classic.ID {
		t.Errorf("expected genre %s, got %+v", classic.ID, stored.Genres)
	}
}

func TestCreateBook_ValidationErrorChecksSubmittedGenres(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	testutil.SeedAuthor(t, db, "Jane", "Austen")
	classic := testutil.SeedGenre(t, db, "Classic")
	testutil.SeedGenre(t, db, "Romance")

	w := doPostJSON(t, router, "/catalog/book/create", map[string]any{
		"title":  "",
		"author": "nobody",
		"genre":  classic.ID.String(),
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[BookFormResponse](t, w)
	if len(resp.Errors) == 0 {
		t.Fatalf("expected field errors")
	}
	if len(resp.Authors) != 1 || len(resp.Genres) != 2 {
		t.Fatalf("expected form option lists, got %d authors %d genres", len(resp.Authors), len(resp.Genres))
	}
	for _, g := range resp.Genres {
		if g.Checked != (g.ID == classic.ID) {
			t.Errorf("genre %q checked=%v", g.Name, g.Checked)
		}
	}

	var count int64
	db.Model(&model.Book{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected nothing stored, got %d books", count)
	}
}

func TestListBooks_ProjectsTitleAndAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	austen := testutil.SeedAuthor(t, db, "Jane", "Austen")
	testutil.SeedBook(t, db, austen, "Persuasion")
	testutil.SeedBook(t, db, austen, "Emma")

	w := doGet(router, "/catalog/books/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	resp := decode[BookListResponse](t, w)
	if len(resp.Data) != 2 || resp.Data[0].Title != "Emma" {
		t.Fatalf("expected books sorted by title, got %+v", resp.Data)
	}
	if resp.Data[0].Author == nil || resp.Data[0].Author.Name != "Jane Austen" {
		t.Fatalf("expected author expanded, got %+v", resp.Data[0].Author)
	}
	if resp.Data[0].Summary != "" {
		t.Fatalf("expected summary left out of the list, got %q", resp.Data[0].Summary)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	router := setupRouter(testutil.NewTestDB(t))

	w := doGet(router, "/catalog/book/"+uuid.New().String())
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestUpdateBookForm_ChecksStoredGenres(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author := testutil.SeedAuthor(t, db, "Jane", "Austen")
	classic := testutil.SeedGenre(t, db, "Classic")
	testutil.SeedGenre(t, db, "Romance")
	book := testutil.SeedBook(t, db, author, "Emma", classic)

	w := doGet(router, book.URL()+"/update")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[BookFormResponse](t, w)
	if resp.Data == nil || resp.Data.Title != "Emma" || resp.Data.Author != author.ID.String() {
		t.Fatalf("expected seeded form, got %+v", resp.Data)
	}
	for _, g := range resp.Genres {
		if g.Checked != (g.ID == classic.ID) {
			t.Errorf("genre %q checked=%v", g.Name, g.Checked)
		}
	}
}

func TestUpdateBook_ReplacesGenres(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author := testutil.SeedAuthor(t, db, "Jane", "Austen")
	classic := testutil.SeedGenre(t, db, "Classic")
	romance := testutil.SeedGenre(t, db, "Romance")
	book := testutil.SeedBook(t, db, author, "Emma", classic)

	w := doPostForm(router, book.URL()+"/update", url.Values{
		"title":   {"Emma"},
		"author":  {author.ID.String()},
		"summary": {"Revised"},
		"isbn":    {"978-Emma"},
		"genre":   {romance.ID.String()},
	})
	expectRedirect(t, w, book.URL())

	got := storedGenreNames(t, router, book)
	if len(got) != 1 || got[0] != "Romance" {
		t.Fatalf("expected [Romance], got %v", got)
	}
}

func TestDeleteBook_BlockedByInstances(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author := testutil.SeedAuthor(t, db, "Jane", "Austen")
	book := testutil.SeedBook(t, db, author, "Emma")
	stocked := testutil.SeedInstance(t, db, book, "Penguin", model.StatusAvailable, nil)

	w := doPostForm(router, book.URL()+"/delete", url.Values{})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d, body=%s", w.Code, w.Body.String())
	}
	resp := decode[BookDeleteResponse](t, w)
	if len(resp.Instances) != 1 || resp.Instances[0].ID != stocked.ID {
		t.Fatalf("expected the copy to block the delete, got %+v", resp.Instances)
	}

	expectRedirect(t, doPostForm(router, stocked.URL()+"/delete", url.Values{}), "/catalog/bookinstances/")
	expectRedirect(t, doPostForm(router, book.URL()+"/delete", url.Values{}), "/catalog/books/")

	var count int64
	db.Model(&model.Book{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected book deleted, got %d", count)
	}
}
