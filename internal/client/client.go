// Package client is a typed Go client for the book library API. It is
// the programmatic equivalent of the front end's API layer: each call
// maps to one endpoint, and any non-2xx response collapses to a static,
// operation-specific error. Nothing is retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/booklibrary/internal/entities"
)

const defaultTimeout = 30 * time.Second

// Operation-specific errors surfaced to callers. Server error detail is
// never propagated.
var (
	ErrFetchBooks = errors.New("failed to fetch books")
	ErrFetchBook  = errors.New("failed to fetch book")
	ErrCreateBook = errors.New("failed to create book")
	ErrUpdateBook = errors.New("failed to update book")
	ErrDeleteBook = errors.New("failed to delete book")
	ErrFetchStats = errors.New("failed to fetch book stats")
)

// Client talks to a book library server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// GetBooks fetches the full catalog.
func (c *Client) GetBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	if err := c.getJSON(ctx, "/api/books", &books, ErrFetchBooks); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook fetches a single book by ID.
func (c *Client) GetBook(ctx context.Context, id uuid.UUID) (*entities.Book, error) {
	var book entities.Book
	if err := c.getJSON(ctx, "/api/books/"+id.String(), &book, ErrFetchBook); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook creates a book and returns the stored record with its
// server-assigned ID.
func (c *Client) CreateBook(ctx context.Context, book entities.Book) (*entities.Book, error) {
	resp, err := c.sendJSON(ctx, http.MethodPost, "/api/books", book, ErrCreateBook)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, ErrCreateBook
	}

	var created entities.Book
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, ErrCreateBook
	}
	return &created, nil
}

// UpdateBook replaces all fields of the book with the given ID.
func (c *Client) UpdateBook(ctx context.Context, id uuid.UUID, book entities.Book) error {
	book.ID = id
	resp, err := c.sendJSON(ctx, http.MethodPut, "/api/books/"+id.String(), book, ErrUpdateBook)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return ErrUpdateBook
	}
	return nil
}

// DeleteBook removes the book with the given ID.
func (c *Client) DeleteBook(ctx context.Context, id uuid.UUID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/books/"+id.String(), nil)
	if err != nil {
		return ErrDeleteBook
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteBook, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return ErrDeleteBook
	}
	return nil
}

// GetGenreStats fetches the genre-to-count mapping.
func (c *Client) GetGenreStats(ctx context.Context) (map[string]int, error) {
	var stats map[string]int
	if err := c.getJSON(ctx, "/api/books/stats", &stats, ErrFetchStats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any, opErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return opErr
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", opErr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return opErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return opErr
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any, opErr error) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, opErr
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, opErr
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", opErr, err)
	}
	return resp, nil
}
