package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/exp/slog"

	"tubelist/model"
	"tubelist/storage"
)

// PlaylistGenerator runs the creation workflow for links found in a
// message.
type PlaylistGenerator interface {
	CreatePlaylist(ctx context.Context, rawLinks []string, customTitle, customDescription string) model.Outcome
}

type Bot struct {
	api          *tgbotapi.BotAPI
	generator    PlaylistGenerator
	playlistRepo storage.PlaylistRepository
	allowedUsers map[int64]bool
	logger       *slog.Logger
}

// NewBot connects to the Telegram API. An empty allow list means every
// user may talk to the bot.
func NewBot(token string, generator PlaylistGenerator, playlistRepo storage.PlaylistRepository, allowedUsers []int64, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("could not connect to telegram: %w", err)
	}

	allowed := make(map[int64]bool, len(allowedUsers))
	for _, id := range allowedUsers {
		allowed[id] = true
	}

	return &Bot{
		api:          api,
		generator:    generator,
		playlistRepo: playlistRepo,
		allowedUsers: allowed,
		logger:       logger,
	}, nil
}

func (b *Bot) Run() {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	b.logger.Info("telegram bot started", slog.String("username", b.api.Self.UserName))
	for update := range b.api.GetUpdatesChan(updateConfig) {
		if update.Message == nil {
			continue
		}
		go b.handleMessage(update.Message)
	}
}

func (b *Bot) authorized(userID int64) bool {
	return len(b.allowedUsers) == 0 || b.allowedUsers[userID]
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.From == nil {
		// messages relayed from channels carry no sender
		return
	}
	if !b.authorized(message.From.ID) {
		if message.Command() == "start" {
			b.reply(message.Chat.ID, "Sorry, you are not authorized to use this bot.")
		}
		return
	}

	switch message.Command() {
	case "start":
		b.reply(message.Chat.ID, startText(message.From.FirstName))
	case "help":
		b.reply(message.Chat.ID, helpText)
	case "stats":
		b.stats(message.Chat.ID)
	case "history":
		b.history(message.Chat.ID)
	case "":
		b.createPlaylist(message)
	default:
		b.reply(message.Chat.ID, "Unknown command, try /help.")
	}
}

func (b *Bot) createPlaylist(message *tgbotapi.Message) {
	urls := ExtractURLs(message.Text)
	if len(urls) == 0 {
		b.reply(message.Chat.ID, "I couldn't find any YouTube links in your message. Send me video links to create a playlist.")
		return
	}

	status, err := b.api.Send(tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Found %d link(s), creating your playlist...", len(urls))))
	if err != nil {
		b.logger.Error("failed to send message", slog.String("error", err.Error()))
		return
	}

	outcome := b.generator.CreatePlaylist(
		context.Background(),
		urls,
		"",
		fmt.Sprintf("Playlist created via Telegram by %s", message.From.FirstName),
	)
	b.logger.Info("handled playlist request",
		slog.Int64("user", message.From.ID),
		slog.Bool("success", outcome.Success),
		slog.Int("count", outcome.VideoCount))

	edit := tgbotapi.NewEditMessageText(message.Chat.ID, status.MessageID, formatOutcome(outcome))
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("failed to edit message", slog.String("error", err.Error()))
	}
}

func (b *Bot) stats(chatID int64) {
	stats, err := b.playlistRepo.Statistics("")
	if err != nil {
		b.logger.Error("failed to collect statistics", slog.String("error", err.Error()))
		b.reply(chatID, "Could not collect statistics, please try again later.")
		return
	}

	b.reply(chatID, fmt.Sprintf(
		"Playlists created: %d\nVideos added: %d\nPlaylists today: %d\nAverage playlist size: %.2f",
		stats.TotalPlaylists, stats.TotalVideos, stats.PlaylistsToday, stats.AveragePlaylistSize))
}

func (b *Bot) history(chatID int64) {
	playlists, err := b.playlistRepo.History("", 5, 0, false)
	if err != nil {
		b.logger.Error("failed to list playlists", slog.String("error", err.Error()))
		b.reply(chatID, "Could not list playlists, please try again later.")
		return
	}
	if len(playlists) == 0 {
		b.reply(chatID, "No playlists created yet. Send me some YouTube links!")
		return
	}

	var msg strings.Builder
	msg.WriteString("Recent playlists:\n")
	for _, playlist := range playlists {
		fmt.Fprintf(&msg, "- %s (%d videos)\n  %s\n", playlist.Title, playlist.VideoCount, playlist.URL)
	}
	b.reply(chatID, msg.String())
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send message", slog.String("error", err.Error()))
	}
}

const maxSkipReasons = 3

func formatOutcome(outcome model.Outcome) string {
	if !outcome.Success {
		return fmt.Sprintf("Failed to create playlist.\n\nError: %s", outcome.Error)
	}

	var msg strings.Builder
	msg.WriteString("Playlist created!\n\n")
	fmt.Fprintf(&msg, "Title: %s\n", outcome.Title)
	fmt.Fprintf(&msg, "Link: %s\n", outcome.PlaylistURL)
	fmt.Fprintf(&msg, "Videos added: %d\n", outcome.VideoCount)

	if len(outcome.VideosSkipped) > 0 {
		fmt.Fprintf(&msg, "Videos skipped: %d\n", len(outcome.VideosSkipped))
		for i, video := range outcome.VideosSkipped {
			if i == maxSkipReasons {
				fmt.Fprintf(&msg, "- and %d more\n", len(outcome.VideosSkipped)-maxSkipReasons)
				break
			}
			fmt.Fprintf(&msg, "- %s\n", video.Error)
		}
	}
	if outcome.Error != "" {
		fmt.Fprintf(&msg, "\n%s\n", outcome.Error)
	}

	return msg.String()
}

func startText(firstName string) string {
	return fmt.Sprintf(`Welcome %s!

Send me YouTube video links and I'll create a playlist for you.

Commands:
/start - show this message
/help - supported link formats
/stats - usage statistics
/history - recent playlists`, firstName)
}

const helpText = `Supported link formats:
- youtube.com/watch?v=VIDEO_ID
- youtu.be/VIDEO_ID
- youtube.com/shorts/VIDEO_ID
- m.youtube.com/watch?v=VIDEO_ID

Send one or more links in a single message. Invalid or private videos
are skipped, the rest end up in an unlisted playlist.`
