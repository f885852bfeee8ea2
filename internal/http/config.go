package http

import (
	"github.com/mrlokans/booklibrary/internal/catalog"
	"github.com/mrlokans/booklibrary/internal/database"
)

// RouterConfig carries every dependency the router needs, so tests can
// assemble routers without the entrypoint.
type RouterConfig struct {
	Database        *database.Database
	BookStore       BookStore
	ValidationRules catalog.Rules
	AllowedOrigins  []string
	DocsEnabled     bool
	Version         string
}
