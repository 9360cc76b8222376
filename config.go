package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Zachkp/portfolio/internal/mailer"
)

// Config is read from the environment (and .env, via godotenv autoload).
type Config struct {
	Port            string
	ContactEndpoint string
	DBPath          string
	AdminUsername   string
	AdminPassword   string

	CounterDuration time.Duration
	FrameInterval   time.Duration
	SessionTTL      time.Duration
	SessionMax      int

	Mail mailer.Config
}

func loadConfig() Config {
	cfg := Config{
		Port:            getenv("PORT", "8080"),
		DBPath:          getenv("DB_PATH", "portfolio.db"),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		CounterDuration: durationEnv("COUNTER_DURATION", 3*time.Second),
		FrameInterval:   durationEnv("COUNTER_FRAME_INTERVAL", 50*time.Millisecond),
		SessionTTL:      durationEnv("SESSION_TTL", 30*time.Minute),
		SessionMax:      intEnv("SESSION_MAX", 10000),
		Mail:            mailer.ConfigFromEnv(),
	}
	cfg.ContactEndpoint = getenv("CONTACT_ENDPOINT", "http://127.0.0.1:"+cfg.Port+"/api/contact")
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Ignoring invalid %s=%q: using %s", key, v, fallback)
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Ignoring invalid %s=%q: using %d", key, v, fallback)
		return fallback
	}
	return n
}
