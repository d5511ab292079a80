package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// Map service
	DBPath          string
	MigrationsPath  string
	StorageRoot     string
	PublicBaseURL   string
	CampusGeoJSON   string
	PathwaysGeoJSON string

	// Gateway upstreams
	MapURL       string
	DetectURL    string
	RecommendURL string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		DBPath:          getEnv("MAP_DB_PATH", "data/db/map.db"),
		MigrationsPath:  getEnv("MAP_MIGRATIONS_PATH", "migrations/001_init_map.sql"),
		StorageRoot:     getEnv("MAP_STORAGE_ROOT", "data/maps"),
		PublicBaseURL:   getEnv("MAP_PUBLIC_URL", "http://localhost:3001"),
		CampusGeoJSON:   getEnv("CAMPUS_GEOJSON", "data/geo/map.geojson"),
		PathwaysGeoJSON: getEnv("PATHWAYS_GEOJSON", "data/geo/pathways.geojson"),

		MapURL:       getEnv("MAP_URL", "http://localhost:3001"),
		DetectURL:    getEnv("DETECT_URL", "http://localhost:5001/detect"),
		RecommendURL: getEnv("RECOMMEND_URL", "http://localhost:5002/recommend"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
