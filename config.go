package main

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port      string
	MongoUri  string
	MongoDb   string
	JwtSecret string

	ShareBaseUrl       string
	ModerationDenylist []string

	RateLimitRps   float64
	RateLimitBurst int
}

func LoadConfig() Config {
	cfg := Config{
		Port:         getEnv("PORT", "8081"),
		MongoUri:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDb:      getEnv("MONGO_DB", "bookgraph"),
		JwtSecret:    getEnv("JWT_SECRET", ""),
		ShareBaseUrl: getEnv("SHARE_BASE_URL", "https://readcircle.app"),
	}

	for _, word := range strings.Split(getEnv("MODERATION_DENYLIST", ""), ",") {
		if trimmed := strings.TrimSpace(word); len(trimmed) > 0 {
			cfg.ModerationDenylist = append(cfg.ModerationDenylist, trimmed)
		}
	}

	cfg.RateLimitRps, _ = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "25"), 64)
	cfg.RateLimitBurst, _ = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "50"))
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); len(value) > 0 {
		return value
	}
	return fallback
}
