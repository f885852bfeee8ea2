package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mrlokans/booklibrary/internal/config"
	"github.com/mrlokans/booklibrary/internal/database"
)

// SeedCommand inserts the starter catalog into a database without
// starting the server. Seeding is idempotent, so running it against an
// already-seeded database changes nothing.
type SeedCommand struct {
	DatabasePath string
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Insert the starter book catalog into the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -db ./my-catalog.db\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, database.Options{Seed: false})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	created, err := db.SeedCatalog()
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	if created == 0 {
		fmt.Println("Catalog already seeded; nothing to do.")
	} else {
		fmt.Printf("Seeded %d starter books into %s\n", created, cmd.DatabasePath)
	}

	return nil
}
