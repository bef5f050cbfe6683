package playlist

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"tubelist/model"
)

const (
	fallbackTitle  = "My YouTube Playlist"
	maxTitleLength = 60
	maxPromptList  = 10
)

type TitleGenerator struct {
	suggester TitleSuggester
	logger    *slog.Logger
}

// NewTitleGenerator returns a generator that asks the suggester for a
// title. A nil suggester means titles fall back to a fixed default.
func NewTitleGenerator(suggester TitleSuggester, logger *slog.Logger) *TitleGenerator {
	return &TitleGenerator{
		suggester: suggester,
		logger:    logger,
	}
}

// Enabled reports whether a suggester is configured.
func (t *TitleGenerator) Enabled() bool {
	return t.suggester != nil
}

// Generate produces a playlist title from the given videos. It never
// fails: without a suggester or videos it returns the fixed fallback,
// and a suggester error degrades to a deterministic title.
func (t *TitleGenerator) Generate(ctx context.Context, videos []model.Video) string {
	if t.suggester == nil || len(videos) == 0 {
		return fallbackTitle
	}

	title, err := t.suggester.Suggest(ctx, titlePrompt(videos))
	if err != nil {
		t.logger.Error("title suggestion failed", slog.String("error", err.Error()))
		return fmt.Sprintf("My Collection (%d videos)", len(videos))
	}

	title = strings.TrimSpace(title)
	if runes := []rune(title); len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength-3]) + "..."
	}

	return title
}

func titlePrompt(videos []model.Video) string {
	var list strings.Builder
	for i, video := range videos {
		if i >= maxPromptList {
			break
		}
		fmt.Fprintf(&list, "%d. %s\n", i+1, video.Title)
	}

	return fmt.Sprintf(`Given these YouTube videos:
%s
Generate a creative, concise playlist title (max 60 characters) that captures the theme of these videos.
Return only the title, nothing else.`, list.String())
}
