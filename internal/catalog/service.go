// Package catalog holds the stateless business logic for book collections:
// filtering, sorting, aggregation and validation. It operates on in-memory
// snapshots and never touches storage, so the same rules can back both the
// HTTP API and any client-side consumer.
package catalog

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/booklibrary/internal/entities"
)

// Filters describes one filter set. Empty strings mean "no constraint".
// Title and Author are case-insensitive substring matches; Genre and
// Rating match exactly.
type Filters struct {
	Title  string
	Author string
	Genre  string
	Rating string
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sortable book fields, matching the JSON field names on the wire.
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldGenre         = "genre"
	FieldPublishedDate = "publishedDate"
	FieldRating        = "rating"
)

// Filter returns the subset of books matching ALL non-empty filters.
func Filter(books []entities.Book, f Filters) []entities.Book {
	matched := make([]entities.Book, 0, len(books))
	for _, book := range books {
		if !strings.Contains(strings.ToLower(book.Title), strings.ToLower(f.Title)) {
			continue
		}
		if !strings.Contains(strings.ToLower(book.Author), strings.ToLower(f.Author)) {
			continue
		}
		if f.Genre != "" && book.Genre != f.Genre {
			continue
		}
		if f.Rating != "" && strconv.Itoa(book.Rating) != f.Rating {
			continue
		}
		matched = append(matched, book)
	}
	return matched
}

// Sort returns a stably ordered copy of books. String fields compare
// case-insensitively, publishedDate by instant. An empty or unknown
// field leaves the input order untouched. Ties keep their relative
// input order.
func Sort(books []entities.Book, field string, direction SortDirection) []entities.Book {
	sorted := make([]entities.Book, len(books))
	copy(sorted, books)

	less := lessFunc(field)
	if less == nil {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == SortDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFunc(field string) func(a, b entities.Book) bool {
	switch field {
	case FieldTitle:
		return func(a, b entities.Book) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case FieldAuthor:
		return func(a, b entities.Book) bool {
			return strings.ToLower(a.Author) < strings.ToLower(b.Author)
		}
	case FieldGenre:
		return func(a, b entities.Book) bool {
			return strings.ToLower(a.Genre) < strings.ToLower(b.Genre)
		}
	case FieldPublishedDate:
		return func(a, b entities.Book) bool {
			return a.PublishedDate.Before(b.PublishedDate)
		}
	case FieldRating:
		return func(a, b entities.Book) bool {
			return a.Rating < b.Rating
		}
	default:
		return nil
	}
}

// GenreStats maps each genre present in the snapshot to its book count.
// For the same snapshot this agrees with the server stats endpoint.
func GenreStats(books []entities.Book) map[string]int {
	stats := make(map[string]int)
	for _, book := range books {
		stats[book.Genre]++
	}
	return stats
}

// RatingStats maps each rating value present to its book count.
func RatingStats(books []entities.Book) map[int]int {
	stats := make(map[int]int)
	for _, book := range books {
		stats[book.Rating]++
	}
	return stats
}

// BooksByRating groups books by rating value.
func BooksByRating(books []entities.Book) map[int][]entities.Book {
	grouped := make(map[int][]entities.Book)
	for _, book := range books {
		grouped[book.Rating] = append(grouped[book.Rating], book)
	}
	return grouped
}

// UniqueGenres returns the distinct genres in the snapshot, sorted.
func UniqueGenres(books []entities.Book) []string {
	seen := make(map[string]bool)
	genres := make([]string, 0)
	for _, book := range books {
		if !seen[book.Genre] {
			seen[book.Genre] = true
			genres = append(genres, book.Genre)
		}
	}
	sort.Strings(genres)
	return genres
}

// recentWindowYears is how far back a publication date may lie to count
// as recently published in Summarize.
const recentWindowYears = 5

// Summary holds the derived numbers shown on the statistics cards.
type Summary struct {
	TotalBooks        int     `json:"totalBooks"`
	TotalGenres       int     `json:"totalGenres"`
	AverageRating     float64 `json:"averageRating"`
	MostPopularGenre  string  `json:"mostPopularGenre"`
	DistinctAuthors   int     `json:"distinctAuthors"`
	RecentlyPublished int     `json:"recentlyPublished"`
}

// Summarize computes the Summary for a snapshot. The most popular genre
// tie-breaks alphabetically so the result is deterministic.
func Summarize(books []entities.Book, now time.Time) Summary {
	s := Summary{TotalBooks: len(books)}
	if len(books) == 0 {
		return s
	}

	genreCounts := GenreStats(books)
	s.TotalGenres = len(genreCounts)

	for genre, count := range genreCounts {
		if count > genreCounts[s.MostPopularGenre] ||
			(count == genreCounts[s.MostPopularGenre] && (s.MostPopularGenre == "" || genre < s.MostPopularGenre)) {
			s.MostPopularGenre = genre
		}
	}

	authors := make(map[string]bool)
	ratingSum := 0
	cutoff := now.AddDate(-recentWindowYears, 0, 0)
	for _, book := range books {
		authors[book.Author] = true
		ratingSum += book.Rating
		if book.PublishedDate.After(cutoff) {
			s.RecentlyPublished++
		}
	}
	s.DistinctAuthors = len(authors)
	s.AverageRating = float64(ratingSum) / float64(len(books))

	return s
}
