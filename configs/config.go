package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	AdminUsername string
	AdminPassword string

	// TableCount seeds "Table 1..N" rows on first boot.
	TableCount int

	// ReserveHold is how long a reservation blocks a table before it
	// lapses back to available.
	ReserveHold   time.Duration
	SweepInterval time.Duration

	LogLevel  string
	LogFormat string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:      getEnv("DB_SOURCE", "emenu.db"),
		Port:          getEnv("PORT", "8000"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		TableCount:    getInt("TABLE_COUNT", 10),
		ReserveHold:   getDuration("RESERVE_HOLD", 5*time.Minute),
		SweepInterval: getDuration("SWEEP_INTERVAL", 30*time.Second),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
