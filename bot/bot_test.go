package bot

import (
	"io"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/exp/slog"
)

func TestHandleMessageWithoutSender(t *testing.T) {
	bot := &Bot{
		allowedUsers: map[int64]bool{12345: true},
		logger:       slog.New(slog.NewTextHandler(io.Discard)),
	}

	// channel posts carry no From; the handler must drop them instead
	// of dereferencing the sender
	message := &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 1},
		Text: "https://youtu.be/dQw4w9WgXcQ",
	}
	bot.handleMessage(message)
}

func TestAuthorized(t *testing.T) {
	open := &Bot{allowedUsers: map[int64]bool{}}
	if !open.authorized(42) {
		t.Error("authorized(42) = false, want true with an empty allow list")
	}

	restricted := &Bot{allowedUsers: map[int64]bool{12345: true}}
	if !restricted.authorized(12345) {
		t.Error("authorized(12345) = false, want true for a listed user")
	}
	if restricted.authorized(42) {
		t.Error("authorized(42) = true, want false for an unlisted user")
	}
}
