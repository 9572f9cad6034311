package config

import (
	"os"
	"strconv"
	"strings"

	"x4tables/internal/locale"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	OutputFolder  string
	Language      int
	ExcludeMacros []string
	ResolveDepth  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		OutputFolder:  getEnv("X4_OUTPUT_FOLDER", "output"),
		Language:      getEnvInt("X4_LANGUAGE", 44),
		ExcludeMacros: getEnvList("X4_EXCLUDE_MACROS", []string{"^timelines_map_", "^demo_"}),
		ResolveDepth:  getEnvInt("X4_RESOLVE_DEPTH", locale.DefaultMaxDepth),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var items []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, s)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
