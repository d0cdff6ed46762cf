package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config collects everything the service reads from the environment.
// It is built once in main and handed to the packages that need it so
// nothing reaches into ambient globals after startup.
type Config struct {
	MongoURI       string
	DBName         string
	Port           string
	AllowedOrigins []string
	CatalogPath    string
	FetchTimeout   time.Duration
}

// FromEnv reads the environment into a Config. MONGODB_URI is required;
// everything else has a default.
func FromEnv() (Config, error) {
	cfg := Config{
		MongoURI:     os.Getenv("MONGODB_URI"),
		DBName:       getenv("DB_NAME", "fittrack"),
		Port:         getenv("PORT", "8080"),
		CatalogPath:  getenv("EXERCISE_CATALOG_PATH", "exercises.csv"),
		FetchTimeout: 10 * time.Second,
	}

	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGODB_URI is required")
	}

	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT_SECONDS %q", v)
		}
		cfg.FetchTimeout = time.Duration(secs) * time.Second
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
