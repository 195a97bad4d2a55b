package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Timezone       string
	SubmitDelay    time.Duration
	AllowedOrigins []string
	SeedDemo       bool
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Timezone:       getEnv("TIMEZONE", "Asia/Kolkata"),
		SubmitDelay:    time.Duration(getEnvInt("SUBMIT_DELAY_MS", 500)) * time.Millisecond,
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		SeedDemo:       getEnv("SEED_DEMO", "true") == "true",
	}
}

// Location resolves the business timezone. Falls back to fixed IST if the
// tz database is unavailable; never the host locale.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("IST", int(5*3600+1800))
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
