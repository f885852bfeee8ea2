package catalog

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/mrlokans/booklibrary/internal/entities"
)

// Genres is the closed genre vocabulary, enforced identically on the
// API and in client-side validation. It is the distinct genre set of
// the starter catalog.
var Genres = []string{
	"Fantasy",
	"Fiction",
	"Finance",
	"Memoir",
	"Non-Fiction",
	"Philosophy",
	"Politics",
	"Psychology",
	"Romance",
	"Science",
	"Science Fiction",
	"Self-Help",
	"Spirituality",
	"Strategy",
	"Thriller",
}

// Field length bounds, matching the persisted column limits.
const (
	TitleMinLength  = 2
	TitleMaxLength  = 250
	AuthorMinLength = 2
	AuthorMaxLength = 150
)

// Rules holds the tunable parts of validation.
type Rules struct {
	MinPublicationYear int
}

// DefaultRules rejects publication dates before the printing press.
var DefaultRules = Rules{MinPublicationYear: 1450}

// ValidationErrors maps a field name to its first failing rule.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	return "validation failed for: " + strings.Join(fields, ", ")
}

// IsValidGenre reports whether genre belongs to the closed vocabulary.
func IsValidGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// ValidateBook checks a book against the canonical rule set and returns
// per-field errors, or nil when the book is valid. The now argument is
// the reference instant for the future-date check.
func ValidateBook(book entities.Book, rules Rules, now time.Time) ValidationErrors {
	errs := make(ValidationErrors)

	title := strings.TrimSpace(book.Title)
	switch {
	case title == "":
		errs["title"] = "title is required"
	case len(title) < TitleMinLength:
		errs["title"] = fmt.Sprintf("title must be at least %d characters long", TitleMinLength)
	case len(book.Title) > TitleMaxLength:
		errs["title"] = fmt.Sprintf("title must be %d characters or less", TitleMaxLength)
	}

	author := strings.TrimSpace(book.Author)
	switch {
	case author == "":
		errs["author"] = "author is required"
	case len(author) < AuthorMinLength:
		errs["author"] = fmt.Sprintf("author must be at least %d characters long", AuthorMinLength)
	case len(book.Author) > AuthorMaxLength:
		errs["author"] = fmt.Sprintf("author must be %d characters or less", AuthorMaxLength)
	case containsDigit(book.Author):
		errs["author"] = "author name contains invalid characters"
	}

	if strings.TrimSpace(book.Genre) == "" {
		errs["genre"] = "genre is required"
	} else if !IsValidGenre(book.Genre) {
		errs["genre"] = "genre must be one of: " + strings.Join(Genres, ", ")
	}

	switch {
	case book.PublishedDate.IsZero():
		errs["publishedDate"] = "published date is required"
	case book.PublishedDate.After(now):
		errs["publishedDate"] = "published date cannot be in the future"
	case book.PublishedDate.Year() < rules.MinPublicationYear:
		errs["publishedDate"] = fmt.Sprintf("published date cannot be before %d", rules.MinPublicationYear)
	}

	if book.Rating < 1 || book.Rating > 5 {
		errs["rating"] = "rating must be between 1 and 5"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
