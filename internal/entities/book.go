package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is the catalog record stored in the "books" table. IDs are UUIDs
// assigned server-side; PublishedDate is always persisted in UTC.
type Book struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"size:250;not null" json:"title"`
	Author        string    `gorm:"size:150;not null" json:"author"`
	Genre         string    `gorm:"size:100;not null;index" json:"genre"`
	PublishedDate time.Time `gorm:"not null" json:"publishedDate"`
	Rating        int       `gorm:"not null" json:"rating"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns a fresh UUID when the caller did not supply one.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
