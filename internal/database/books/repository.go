// Package books provides database operations for the book catalog.
//
// This package implements the BookStore interface defined in internal/http/books.go.
package books

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/booklibrary/internal/entities"
)

// ErrNotFound is returned when no book exists with the requested ID.
// Storage failures are returned as-is and must not be confused with it.
var ErrNotFound = errors.New("book not found")

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert persists a book, assigning a fresh UUID when none is given,
// and returns the stored record.
func (r *Repository) Insert(book *entities.Book) (*entities.Book, error) {
	if err := r.db.Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}
	return book, nil
}

// GetByID retrieves a single book, returning ErrNotFound when absent.
func (r *Repository) GetByID(id uuid.UUID) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll returns every book in the catalog. Order is whatever the
// storage engine returns.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Find(&books).Error
	return books, err
}

// Update replaces all fields of the book with the given ID. Returns
// ErrNotFound when no such book exists.
func (r *Repository) Update(id uuid.UUID, book *entities.Book) error {
	if _, err := r.GetByID(id); err != nil {
		return err
	}
	book.ID = id
	return r.db.Save(book).Error
}

// Delete removes the book with the given ID, returning ErrNotFound
// when absent.
func (r *Repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&entities.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GenreStats maps each genre present in the catalog to its book count.
// Genres with zero books are never present.
func (r *Repository) GenreStats() (map[string]int, error) {
	var rows []struct {
		Genre string
		Count int
	}
	err := r.db.Model(&entities.Book{}).
		Select("genre, COUNT(*) as count").
		Group("genre").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int, len(rows))
	for _, row := range rows {
		stats[row.Genre] = row.Count
	}
	return stats, nil
}

// CountByRating maps each rating value present in the catalog to its
// book count.
func (r *Repository) CountByRating() (map[int]int, error) {
	var rows []struct {
		Rating int
		Count  int
	}
	err := r.db.Model(&entities.Book{}).
		Select("rating, COUNT(*) as count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}
