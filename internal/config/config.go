package config

import (
	"os"
	"strconv"
)

// Config is the process configuration, sourced from the environment.
// DatabaseURL and DatabaseName keep their raw env values so the diagnostic
// endpoint can report which ones are set; the store applies its own
// database name default.
type Config struct {
	DatabaseURL  string
	DatabaseName string
	Port         int
}

const defaultPort = 8000

func Load() Config {
	port := defaultPort
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}

	return Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),
		Port:         port,
	}
}
