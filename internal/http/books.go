package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/booklibrary/internal/catalog"
	"github.com/mrlokans/booklibrary/internal/database/books"
	"github.com/mrlokans/booklibrary/internal/entities"
)

// BookStore defines the database operations the books controller needs.
type BookStore interface {
	Insert(book *entities.Book) (*entities.Book, error)
	GetByID(id uuid.UUID) (*entities.Book, error)
	GetAll() ([]entities.Book, error)
	Update(id uuid.UUID, book *entities.Book) error
	Delete(id uuid.UUID) error
	GenreStats() (map[string]int, error)
}

type BooksController struct {
	store BookStore
	rules catalog.Rules
}

func NewBooksController(store BookStore, rules catalog.Rules) *BooksController {
	return &BooksController{
		store: store,
		rules: rules,
	}
}

// BookRequest is the create/update payload. Any client-supplied ID is
// ignored on create and must match the path ID on update.
type BookRequest struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	PublishedDate time.Time `json:"publishedDate"`
	Rating        int       `json:"rating"`
}

func (r BookRequest) toEntity() entities.Book {
	return entities.Book{
		ID:            r.ID,
		Title:         r.Title,
		Author:        r.Author,
		Genre:         r.Genre,
		PublishedDate: r.PublishedDate.UTC(),
		Rating:        r.Rating,
	}
}

// GetAllBooks returns the whole catalog, optionally filtered and sorted.
//
//	@Summary	List books
//	@Produce	json
//	@Param		title	query	string	false	"case-insensitive substring filter"
//	@Param		author	query	string	false	"case-insensitive substring filter"
//	@Param		genre	query	string	false	"exact genre filter"
//	@Param		rating	query	string	false	"exact rating filter"
//	@Param		sortBy	query	string	false	"title|author|genre|publishedDate|rating"
//	@Param		order	query	string	false	"asc|desc"
//	@Success	200	{array}	entities.Book
//	@Router		/books [get]
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	all, err := controller.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	filtered := catalog.Filter(all, catalog.Filters{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Genre:  c.Query("genre"),
		Rating: c.Query("rating"),
	})

	direction := catalog.SortAsc
	if c.Query("order") == string(catalog.SortDesc) {
		direction = catalog.SortDesc
	}
	sorted := catalog.Sort(filtered, c.Query("sortBy"), direction)

	c.JSON(http.StatusOK, sorted)
}

// GetBookByID returns a single book.
//
//	@Summary	Get a book
//	@Produce	json
//	@Param		id	path	string	true	"book ID"
//	@Success	200	{object}	entities.Book
//	@Failure	404	{object}	ErrorResponse
//	@Router		/books/{id} [get]
func (controller *BooksController) GetBookByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetByID(id)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// CreateBook validates the payload, assigns a fresh ID (overwriting any
// client-supplied one), normalizes the published date to UTC and
// persists the book.
//
//	@Summary	Create a book
//	@Accept		json
//	@Produce	json
//	@Param		book	body	BookRequest	true	"book payload"
//	@Success	201	{object}	entities.Book
//	@Failure	400	{object}	ErrorResponse
//	@Router		/books [post]
func (controller *BooksController) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book := req.toEntity()
	if errs := catalog.ValidateBook(book, controller.rules, time.Now().UTC()); errs != nil {
		respondValidationFailed(c, errs)
		return
	}

	// Fresh server-side ID regardless of what the client sent.
	book.ID = uuid.New()

	created, err := controller.store.Insert(&book)
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	c.Header("Location", "/api/books/"+created.ID.String())
	c.JSON(http.StatusCreated, created)
}

// UpdateBook replaces all fields of an existing book.
//
//	@Summary	Update a book
//	@Accept		json
//	@Param		id		path	string		true	"book ID"
//	@Param		book	body	BookRequest	true	"book payload"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/books/{id} [put]
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.ID != id {
		respondBadRequest(c, "book id in body does not match path")
		return
	}

	book := req.toEntity()
	if errs := catalog.ValidateBook(book, controller.rules, time.Now().UTC()); errs != nil {
		respondValidationFailed(c, errs)
		return
	}

	err := controller.store.Update(id, &book)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteBook removes a book. Deleting the same book twice yields 204
// then 404.
//
//	@Summary	Delete a book
//	@Param		id	path	string	true	"book ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/books/{id} [delete]
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := controller.store.Delete(id)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBookStats returns the number of books per genre. Genres with no
// books are absent from the map.
//
//	@Summary	Genre statistics
//	@Produce	json
//	@Success	200	{object}	map[string]int
//	@Router		/books/stats [get]
func (controller *BooksController) GetBookStats(c *gin.Context) {
	stats, err := controller.store.GenreStats()
	if err != nil {
		respondInternalError(c, err, "book stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
