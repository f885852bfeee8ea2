package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booklibrary/internal/catalog"
	"github.com/mrlokans/booklibrary/internal/database"
	"github.com/mrlokans/booklibrary/internal/database/books"
	"github.com/mrlokans/booklibrary/internal/entities"
)

func setupBooksTestDB(t *testing.T) (*books.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath, database.Options{Seed: false})
	require.NoError(t, err)

	repo := books.NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return repo, cleanup
}

func newBooksRouter(repo *books.Repository) *gin.Engine {
	controller := NewBooksController(repo, catalog.DefaultRules)

	router := gin.New()
	router.GET("/api/books", controller.GetAllBooks)
	router.GET("/api/books/stats", controller.GetBookStats)
	router.GET("/api/books/:id", controller.GetBookByID)
	router.POST("/api/books", controller.CreateBook)
	router.PUT("/api/books/:id", controller.UpdateBook)
	router.DELETE("/api/books/:id", controller.DeleteBook)
	return router
}

func seedBook(t *testing.T, repo *books.Repository, title, author, genre string, rating int, published time.Time) *entities.Book {
	t.Helper()
	created, err := repo.Insert(&entities.Book{
		Title:         title,
		Author:        author,
		Genre:         genre,
		PublishedDate: published,
		Rating:        rating,
	})
	require.NoError(t, err)
	return created
}

func validPayload() map[string]any {
	return map[string]any{
		"title":         "The Dispossessed",
		"author":        "Ursula K. Le Guin",
		"genre":         "Science Fiction",
		"publishedDate": "1974-05-01T00:00:00Z",
		"rating":        5,
	}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestBooksController_GetAllBooks(t *testing.T) {
	t.Run("returns empty array when no books", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		w := doJSON(router, "GET", "/api/books", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("returns all books", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		seedBook(t, repo, "Book 1", "Author 1", "Fiction", 4, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		seedBook(t, repo, "Book 2", "Author 2", "Thriller", 5, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
		router := newBooksRouter(repo)

		w := doJSON(router, "GET", "/api/books", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("applies filters from query params", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		seedBook(t, repo, "Test Book 1", "Author 1", "Fiction", 4, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		seedBook(t, repo, "Test Book 2", "Author 2", "Fiction", 5, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
		router := newBooksRouter(repo)

		w := doJSON(router, "GET", "/api/books?rating=5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Test Book 2", got[0].Title)
	})

	t.Run("applies sorting from query params", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		seedBook(t, repo, "Later", "A", "Fiction", 3, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
		seedBook(t, repo, "Earlier", "B", "Fiction", 3, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
		router := newBooksRouter(repo)

		w := doJSON(router, "GET", "/api/books?sortBy=publishedDate&order=asc", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Earlier", got[0].Title)
	})
}

func TestBooksController_GetBookByID(t *testing.T) {
	t.Run("returns the book", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		created := seedBook(t, repo, "Found Book", "Known Author", "Fiction", 4, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		router := newBooksRouter(repo)

		w := doJSON(router, "GET", "/api/books/"+created.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Found Book", got.Title)
	})

	t.Run("returns 404 for unknown ID", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		w := doJSON(router, "GET", "/api/books/"+uuid.NewString(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "book not found")
	})

	t.Run("returns 400 for malformed ID", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		w := doJSON(router, "GET", "/api/books/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_CreateBook(t *testing.T) {
	t.Run("creates a book with a fresh server-assigned ID", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		clientID := uuid.New()
		payload := validPayload()
		payload["id"] = clientID.String()

		w := doJSON(router, "POST", "/api/books", payload)

		assert.Equal(t, http.StatusCreated, w.Code)
		var created entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.NotEqual(t, clientID, created.ID)
		assert.Equal(t, "/api/books/"+created.ID.String(), w.Header().Get("Location"))
	})

	t.Run("normalizes the published date to UTC", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		payload := validPayload()
		payload["publishedDate"] = "1974-05-01T02:00:00+02:00"

		w := doJSON(router, "POST", "/api/books", payload)

		assert.Equal(t, http.StatusCreated, w.Code)
		var created entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, time.UTC, created.PublishedDate.Location())
		assert.True(t, created.PublishedDate.Equal(time.Date(1974, 5, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects invalid payloads with per-field errors", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(map[string]any)
			field  string
		}{
			{"missing title", func(p map[string]any) { p["title"] = "" }, "title"},
			{"rating out of range", func(p map[string]any) { p["rating"] = 6 }, "rating"},
			{"unknown genre", func(p map[string]any) { p["genre"] = "Cooking" }, "genre"},
			{"future date", func(p map[string]any) {
				p["publishedDate"] = time.Now().UTC().AddDate(1, 0, 0).Format(time.RFC3339)
			}, "publishedDate"},
			{"author with digits", func(p map[string]any) { p["author"] = "Author 9" }, "author"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo, cleanup := setupBooksTestDB(t)
				defer cleanup()
				router := newBooksRouter(repo)

				payload := validPayload()
				tt.mutate(payload)

				w := doJSON(router, "POST", "/api/books", payload)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), tt.field)
			})
		}
	})
}

func TestBooksController_UpdateBook(t *testing.T) {
	t.Run("replaces all fields and returns 204", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		created := seedBook(t, repo, "Original Title", "Original Author", "Fiction", 2, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		router := newBooksRouter(repo)

		payload := validPayload()
		payload["id"] = created.ID.String()

		w := doJSON(router, "PUT", "/api/books/"+created.ID.String(), payload)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		updated, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "The Dispossessed", updated.Title)
		assert.Equal(t, "Ursula K. Le Guin", updated.Author)
	})

	t.Run("returns 400 when body ID differs from path ID", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		created := seedBook(t, repo, "A Book", "An Author", "Fiction", 3, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		router := newBooksRouter(repo)

		payload := validPayload()
		payload["id"] = uuid.NewString()

		w := doJSON(router, "PUT", "/api/books/"+created.ID.String(), payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "does not match")
	})

	t.Run("returns 404 for unknown ID", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		id := uuid.New()
		payload := validPayload()
		payload["id"] = id.String()

		w := doJSON(router, "PUT", "/api/books/"+id.String(), payload)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBooksController_DeleteBook(t *testing.T) {
	t.Run("deleting twice yields 204 then 404", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		created := seedBook(t, repo, "Doomed", "Author", "Fiction", 3, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		router := newBooksRouter(repo)

		w := doJSON(router, "DELETE", "/api/books/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(router, "DELETE", "/api/books/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for malformed ID", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		w := doJSON(router, "DELETE", "/api/books/42", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_GetBookStats(t *testing.T) {
	t.Run("returns empty object when no books", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		router := newBooksRouter(repo)

		w := doJSON(router, "GET", "/api/books/stats", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "{}", strings.TrimSpace(w.Body.String()))
	})

	t.Run("counts books per genre", func(t *testing.T) {
		repo, cleanup := setupBooksTestDB(t)
		defer cleanup()
		seedBook(t, repo, "Book 1", "Author 1", "Fiction", 4, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		seedBook(t, repo, "Book 2", "Author 2", "Fiction", 5, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
		seedBook(t, repo, "Book 3", "Author 3", "Non-Fiction", 3, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
		router := newBooksRouter(repo)

		w := doJSON(router, "GET", "/api/books/stats", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var stats map[string]int
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, map[string]int{"Fiction": 2, "Non-Fiction": 1}, stats)
	})
}

func TestBooksController_RoundTrip(t *testing.T) {
	repo, cleanup := setupBooksTestDB(t)
	defer cleanup()
	router := newBooksRouter(repo)

	w := doJSON(router, "POST", "/api/books", validPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(router, "GET", "/api/books/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))

	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Author, fetched.Author)
	assert.Equal(t, created.Genre, fetched.Genre)
	assert.Equal(t, created.Rating, fetched.Rating)
	assert.True(t, created.PublishedDate.Equal(fetched.PublishedDate))
}
