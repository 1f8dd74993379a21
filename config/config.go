package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// FeedPageSize is the fixed number of posts per feed page.
	FeedPageSize = 10

	// FeedCacheTTL bounds how long a rendered global-feed page may be
	// served before recomputation.
	FeedCacheTTL = 20 * time.Second

	AvatarSize = 100
)

type Config struct {
	Port            string
	DBUser          string
	DBPass          string
	DBHost          string
	DBName          string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	StorageBucket   string
	FrontendOrigins string
	GinMode         string
}

// FromEnv reads the service configuration from the environment. Only PORT is
// mandatory; an empty DBHost selects the in-memory store and an empty
// RedisHost selects the in-process page cache.
func FromEnv() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return nil, fmt.Errorf("$PORT must be set")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "quillhub"
	}
	feOrigins := os.Getenv("FE_ORIGINS")
	if feOrigins == "" {
		feOrigins = "*"
	}
	return &Config{
		Port:            port,
		DBUser:          os.Getenv("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          os.Getenv("DB_HOST"),
		DBName:          dbName,
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       os.Getenv("REDIS_PORT"),
		RedisPassword:   os.Getenv("REDIS_PASSWD"),
		StorageBucket:   os.Getenv("STORAGE_BUCKET"),
		FrontendOrigins: feOrigins,
		GinMode:         os.Getenv("GIN_MODE"),
	}, nil
}
