package playlist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tubelist/model"
)

type stubSuggester struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubSuggester) Suggest(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func someVideos(count int) []model.Video {
	videos := make([]model.Video, count)
	for i := range videos {
		videos[i] = model.Video{
			YoutubeID: model.YoutubeVideoID(strings.Repeat("a", 11)),
			Title:     "Video " + string(rune('A'+i)),
			Status:    model.StatusValid,
		}
	}
	return videos
}

func TestTitleGeneratorFallbacks(t *testing.T) {
	t.Run("no suggester", func(t *testing.T) {
		titles := NewTitleGenerator(nil, discardLogger())
		if got := titles.Generate(context.Background(), someVideos(3)); got != "My YouTube Playlist" {
			t.Errorf("Generate() = %q, want fixed fallback", got)
		}
	})

	t.Run("no videos", func(t *testing.T) {
		titles := NewTitleGenerator(&stubSuggester{response: "unused"}, discardLogger())
		if got := titles.Generate(context.Background(), nil); got != "My YouTube Playlist" {
			t.Errorf("Generate() = %q, want fixed fallback", got)
		}
	})

	t.Run("suggester failure", func(t *testing.T) {
		titles := NewTitleGenerator(&stubSuggester{err: errors.New("rate limited")}, discardLogger())
		if got := titles.Generate(context.Background(), someVideos(4)); got != "My Collection (4 videos)" {
			t.Errorf("Generate() = %q, want deterministic fallback", got)
		}
	})
}

func TestTitleGeneratorTruncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	titles := NewTitleGenerator(&stubSuggester{response: long}, discardLogger())

	got := titles.Generate(context.Background(), someVideos(1))

	if len([]rune(got)) != 60 {
		t.Errorf("Generate() returned %d characters, want 60", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Generate() = %q, want an ellipsis suffix", got)
	}
	if !strings.HasPrefix(got, strings.Repeat("x", 57)) {
		t.Errorf("Generate() = %q, want the first 57 characters kept", got)
	}
}

func TestTitleGeneratorPrompt(t *testing.T) {
	suggester := &stubSuggester{response: "Great Mix"}
	titles := NewTitleGenerator(suggester, discardLogger())

	got := titles.Generate(context.Background(), someVideos(12))

	if got != "Great Mix" {
		t.Errorf("Generate() = %q, want the suggested title", got)
	}
	if !strings.Contains(suggester.lastPrompt, "1. Video A") {
		t.Errorf("prompt is missing the first numbered title:\n%s", suggester.lastPrompt)
	}
	if !strings.Contains(suggester.lastPrompt, "10. Video J") {
		t.Errorf("prompt is missing the tenth numbered title:\n%s", suggester.lastPrompt)
	}
	if strings.Contains(suggester.lastPrompt, "11.") {
		t.Errorf("prompt lists more than ten titles:\n%s", suggester.lastPrompt)
	}
}
