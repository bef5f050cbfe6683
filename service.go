package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"golang.org/x/exp/slog"

	"tubelist/bot"
	"tubelist/handler"
	"tubelist/playlist"
	"tubelist/storage"
	"tubelist/youtube"
)

const version = "1.0.0"

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr))

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("unable to load configuration", err)
		os.Exit(1)
	}

	postgres, err := storage.NewPostgres(cfg.Postgres)
	if err != nil {
		logger.Error("unable to connect to postgres", err)
		os.Exit(1)
	}
	playlistRepo := storage.NewPostgresPlaylistRepository(postgres)

	readService, err := youtube.NewReadService(ctx, cfg.YoutubeAPIKey)
	if err != nil {
		logger.Error("unable to create youtube service", err)
		os.Exit(1)
	}
	meta := youtube.NewReadOnlyClient(readService)

	var writer playlist.PlaylistWriter
	if youtube.HasWriteCredentials(cfg.YoutubeTokenFile) {
		writeService, err := youtube.NewWriteService(ctx, cfg.YoutubeClientID, cfg.YoutubeClientSecret, cfg.YoutubeTokenFile)
		if err != nil {
			logger.Error("unable to create youtube write service", err)
			os.Exit(1)
		}
		writer = youtube.NewWriteClient(writeService)
		logger.Info("write credentials found, playlists will be created on youtube")
	} else {
		logger.Info("no write credentials, playlist creation will be simulated")
	}

	var suggester playlist.TitleSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = playlist.NewOpenAISuggester(cfg.OpenAIAPIKey)
	}

	validator := playlist.NewValidator(meta, logger)
	titles := playlist.NewTitleGenerator(suggester, logger)
	generator := playlist.NewGenerator(validator, titles, writer, playlistRepo, cfg.PlaylistVisibility, logger)

	if cfg.TelegramToken != "" {
		tgBot, err := bot.NewBot(cfg.TelegramToken, generator, playlistRepo, cfg.AllowedTelegramUsers, logger)
		if err != nil {
			logger.Error("unable to start telegram bot", err)
			os.Exit(1)
		}
		go tgBot.Run()
	} else {
		logger.Info("telegram token not configured, bot disabled")
	}

	server := handler.NewServer(
		handler.NewPlaylistAPI(generator, playlistRepo, logger),
		handler.NewVideoAPI(validator, logger),
		handler.NewStatsAPI(playlistRepo, logger),
		handler.NewHealthAPI(handler.HealthInfo{
			Version:            version,
			YoutubeAuth:        generator.CanWrite(),
			OpenAIConfigured:   cfg.OpenAIAPIKey != "",
			TelegramConfigured: cfg.TelegramToken != "",
			DatabaseConnected:  true,
		}),
		cfg.AllowedOrigins,
		logger,
	)
	go http.ListenAndServe(fmt.Sprintf(":%d", cfg.APIPort), server)
	logger.Info("http server started", slog.Int("port", cfg.APIPort))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done

	logger.Info("service stopped")
}
