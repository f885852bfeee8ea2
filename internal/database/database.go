package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booklibrary/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// Options controls database initialization behaviour.
type Options struct {
	// Seed inserts the starter catalog after migration. Seeding is
	// deterministic and idempotent, so it is safe to leave enabled.
	Seed bool
}

func NewDatabase(dbPath string, opts Options) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Book{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if opts.Seed {
		created, err := database.SeedCatalog()
		if err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		if created > 0 {
			log.Printf("Seeded %d starter books", created)
		}
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
