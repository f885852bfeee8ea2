package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/booklibrary/internal/entities"
)

// seedNamespace is the UUIDv5/SHA1 namespace for starter catalog IDs.
// Deriving IDs from title+author keeps the seed set stable across runs,
// which keeps tests reproducible.
var seedNamespace = uuid.MustParse("8f8bfc8e-6b44-48ab-9b7c-2b61c79f9d3a")

// SeedID returns the deterministic ID a starter record is keyed by.
func SeedID(title, author string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(title+"|"+author))
}

type seedBook struct {
	Title  string
	Author string
	Genre  string
	Year   int
	Month  time.Month
	Day    int
	Rating int
}

var starterCatalog = []seedBook{
	{"The Great Gatsby", "F. Scott Fitzgerald", "Fiction", 1925, time.April, 10, 4},
	{"To Kill a Mockingbird", "Harper Lee", "Fiction", 1960, time.July, 11, 5},
	{"1984", "George Orwell", "Science Fiction", 1949, time.June, 8, 4},
	{"Pride and Prejudice", "Jane Austen", "Romance", 1813, time.January, 28, 4},
	{"The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937, time.September, 21, 5},
	{"The Catcher in the Rye", "J.D. Salinger", "Fiction", 1951, time.July, 16, 3},
	{"Lord of the Flies", "William Golding", "Fiction", 1954, time.September, 17, 4},
	{"Animal Farm", "George Orwell", "Fiction", 1945, time.August, 17, 4},
	{"The Alchemist", "Paulo Coelho", "Fiction", 1988, time.January, 1, 4},
	{"The Little Prince", "Antoine de Saint-Exupéry", "Fiction", 1943, time.April, 6, 5},
	{"Harry Potter and the Philosopher's Stone", "J.K. Rowling", "Fantasy", 1997, time.June, 26, 5},
	{"The Da Vinci Code", "Dan Brown", "Thriller", 2003, time.March, 18, 3},
	{"The Hunger Games", "Suzanne Collins", "Science Fiction", 2008, time.September, 14, 4},
	{"The Fault in Our Stars", "John Green", "Romance", 2012, time.January, 10, 4},
	{"Gone Girl", "Gillian Flynn", "Thriller", 2012, time.June, 5, 4},
	{"The Martian", "Andy Weir", "Science Fiction", 2011, time.September, 27, 4},
	{"Ready Player One", "Ernest Cline", "Science Fiction", 2011, time.August, 16, 3},
	{"The Girl on the Train", "Paula Hawkins", "Thriller", 2015, time.January, 13, 3},
	{"Big Little Lies", "Liane Moriarty", "Fiction", 2014, time.July, 29, 4},
	{"The Silent Patient", "Alex Michaelides", "Thriller", 2019, time.February, 5, 4},
	{"Educated", "Tara Westover", "Memoir", 2018, time.February, 20, 5},
	{"Becoming", "Michelle Obama", "Memoir", 2018, time.November, 13, 5},
	{"Sapiens", "Yuval Noah Harari", "Non-Fiction", 2011, time.January, 1, 4},
	{"Atomic Habits", "James Clear", "Self-Help", 2018, time.October, 16, 5},
	{"The Subtle Art of Not Giving a F*ck", "Mark Manson", "Self-Help", 2016, time.September, 13, 3},
	{"Rich Dad Poor Dad", "Robert Kiyosaki", "Finance", 1997, time.April, 1, 3},
	{"The 7 Habits of Highly Effective People", "Stephen Covey", "Self-Help", 1989, time.August, 15, 4},
	{"Think and Grow Rich", "Napoleon Hill", "Self-Help", 1937, time.March, 1, 3},
	{"The Power of Now", "Eckhart Tolle", "Spirituality", 1997, time.January, 1, 4},
	{"A Brief History of Time", "Stephen Hawking", "Science", 1988, time.April, 1, 4},
	{"The Selfish Gene", "Richard Dawkins", "Science", 1976, time.January, 1, 4},
	{"Cosmos", "Carl Sagan", "Science", 1980, time.January, 1, 5},
	{"The Art of War", "Sun Tzu", "Strategy", 1900, time.January, 1, 4},
	{"The Prince", "Niccolò Machiavelli", "Politics", 1900, time.January, 1, 3},
	{"The Republic", "Plato", "Philosophy", 1900, time.January, 1, 4},
	{"Meditations", "Marcus Aurelius", "Philosophy", 1900, time.January, 1, 4},
	{"The Art of Happiness", "Dalai Lama", "Spirituality", 1998, time.October, 1, 4},
	{"The Four Agreements", "Don Miguel Ruiz", "Self-Help", 1997, time.November, 7, 4},
	{"The Road Less Traveled", "M. Scott Peck", "Psychology", 1978, time.January, 1, 4},
	{"Man's Search for Meaning", "Viktor Frankl", "Psychology", 1946, time.January, 1, 5},
	{"The Psychology of Money", "Morgan Housel", "Finance", 2020, time.September, 8, 4},
	{"The Intelligent Investor", "Benjamin Graham", "Finance", 1949, time.January, 1, 4},
	{"A Random Walk Down Wall Street", "Burton Malkiel", "Finance", 1973, time.January, 1, 4},
	{"The Millionaire Next Door", "Thomas Stanley", "Finance", 1996, time.October, 1, 4},
	{"Your Money or Your Life", "Vicki Robin", "Finance", 1992, time.January, 1, 4},
	{"The Total Money Makeover", "Dave Ramsey", "Finance", 2003, time.September, 1, 3},
	{"I Will Teach You To Be Rich", "Ramit Sethi", "Finance", 2009, time.March, 23, 4},
	{"The Simple Path to Wealth", "JL Collins", "Finance", 2016, time.June, 1, 4},
	{"Bogleheads' Guide to Investing", "Taylor Larimore", "Finance", 2006, time.January, 1, 4},
	{"The Little Book of Common Sense Investing", "John Bogle", "Finance", 2007, time.January, 1, 4},
	{"Common Stocks and Uncommon Profits", "Philip Fisher", "Finance", 1958, time.January, 1, 4},
	{"Security Analysis", "Benjamin Graham", "Finance", 1934, time.January, 1, 3},
	{"The Essays of Warren Buffett", "Warren Buffett", "Finance", 1997, time.January, 1, 5},
}

// SeedCatalog inserts the starter catalog. Records are keyed by their
// deterministic IDs, so a second call is a no-op. Returns the number of
// records actually created.
func (d *Database) SeedCatalog() (int, error) {
	created := 0
	for _, s := range starterCatalog {
		book := entities.Book{
			ID:            SeedID(s.Title, s.Author),
			Title:         s.Title,
			Author:        s.Author,
			Genre:         s.Genre,
			PublishedDate: time.Date(s.Year, s.Month, s.Day, 0, 0, 0, 0, time.UTC),
			Rating:        s.Rating,
		}

		var existing entities.Book
		result := d.DB.Where("id = ?", book.ID).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := d.DB.Create(&book).Error; err != nil {
				return created, fmt.Errorf("failed to create book %q: %w", book.Title, err)
			}
			created++
		} else if result.Error != nil {
			return created, result.Error
		}
	}
	return created, nil
}
