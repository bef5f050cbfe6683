package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tubelist/storage"
)

// Config collects every setting the process needs, read once from the
// environment at startup.
type Config struct {
	TelegramToken        string
	AllowedTelegramUsers []int64
	YoutubeAPIKey        string
	YoutubeClientID      string
	YoutubeClientSecret  string
	YoutubeTokenFile     string
	OpenAIAPIKey         string
	APIPort              int
	AllowedOrigins       []string
	PlaylistVisibility   string
	Postgres             storage.PostgresInfo
}

func loadConfig() (Config, error) {
	_ = godotenv.Load()

	apiKey := getParam("YOUTUBE_API_KEY", "")
	if apiKey == "" {
		return Config{}, fmt.Errorf("YOUTUBE_API_KEY is required")
	}

	port, err := strconv.Atoi(getParam("API_PORT", "8080"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid API_PORT: %w", err)
	}

	allowedUsers, err := parseUserIDs(getParam("ALLOWED_TELEGRAM_USER_IDS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ALLOWED_TELEGRAM_USER_IDS: %w", err)
	}

	return Config{
		TelegramToken:        getParam("TELEGRAM_TOKEN", ""),
		AllowedTelegramUsers: allowedUsers,
		YoutubeAPIKey:        apiKey,
		YoutubeClientID:      getParam("YOUTUBE_CLIENT_ID", ""),
		YoutubeClientSecret:  getParam("YOUTUBE_CLIENT_SECRET", ""),
		YoutubeTokenFile:     getParam("YOUTUBE_TOKEN_FILE", "token.json"),
		OpenAIAPIKey:         getParam("OPENAI_API_KEY", ""),
		APIPort:              port,
		AllowedOrigins:       splitList(getParam("ALLOWED_ORIGINS", "http://localhost:3000")),
		PlaylistVisibility:   getParam("DEFAULT_PLAYLIST_PRIVACY", "unlisted"),
		Postgres: storage.PostgresInfo{
			Host:     getParam("POSTGRES_HOST", "localhost"),
			Port:     getParam("POSTGRES_PORT", "5432"),
			User:     getParam("POSTGRES_USER", "tubelist"),
			Password: getParam("POSTGRES_PASSWORD", "tubelist"),
			Database: getParam("POSTGRES_DB", "tubelist"),
		},
	}, nil
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}

func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseUserIDs(raw string) ([]int64, error) {
	ids := []int64{}
	for _, item := range splitList(raw) {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
