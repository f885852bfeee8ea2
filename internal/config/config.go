package config

import (
	"strings"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		CORS
		Docs
		Validation
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
		Seed bool // Insert the starter catalog on startup
	}
	CORS struct {
		AllowedOrigins []string
	}
	Docs struct {
		Enabled bool // Expose interactive API docs (development mode)
	}
	Validation struct {
		MinPublicationYear int
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

// splitOrigins parses a comma-separated origin list from the environment.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_seed", true)
	v.SetDefault("cors_allowed_origins", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("docs_enabled", false)
	v.SetDefault("validation_min_publication_year", 1450)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
			Seed: v.GetBool("DATABASE_SEED"),
		},
		CORS: CORS{
			AllowedOrigins: splitOrigins(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Docs: Docs{
			Enabled: v.GetBool("DOCS_ENABLED"),
		},
		Validation: Validation{
			MinPublicationYear: v.GetInt("VALIDATION_MIN_PUBLICATION_YEAR"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
