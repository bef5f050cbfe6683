package playlist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tubelist/model"
)

type stubWriter struct {
	playlistID string
	createErr  error
	attachErr  map[string]error

	createdTitle       string
	createdDescription string
	createdVisibility  string
	attached           []string
}

func (w *stubWriter) CreatePlaylist(_ context.Context, title, description, visibility string) (string, error) {
	if w.createErr != nil {
		return "", w.createErr
	}
	w.createdTitle = title
	w.createdDescription = description
	w.createdVisibility = visibility
	return w.playlistID, nil
}

func (w *stubWriter) AttachVideo(_ context.Context, _, videoID string, _ int64) error {
	if err, ok := w.attachErr[videoID]; ok {
		return err
	}
	w.attached = append(w.attached, videoID)
	return nil
}

type stubHistory struct {
	saveErr   error
	saveOK    bool
	saved     []*model.Playlist
	usageLogs [][2]string
}

func (h *stubHistory) Save(playlist *model.Playlist) (bool, error) {
	if h.saveErr != nil {
		return false, h.saveErr
	}
	h.saved = append(h.saved, playlist)
	return h.saveOK, nil
}

func (h *stubHistory) LogAPIUsage(service, operation string) error {
	h.usageLogs = append(h.usageLogs, [2]string{service, operation})
	return nil
}

func newTestGenerator(meta MetadataService, writer PlaylistWriter, history HistoryStore) *Generator {
	logger := discardLogger()
	return NewGenerator(NewValidator(meta, logger), NewTitleGenerator(nil, logger), writer, history, "unlisted", logger)
}

func TestCreatePlaylistNoLinks(t *testing.T) {
	generator := newTestGenerator(&fakeMetadataService{}, nil, nil)

	outcome := generator.CreatePlaylist(context.Background(), []string{"not-a-url"}, "", "")

	if outcome.Success {
		t.Error("outcome.Success = true, want false")
	}
	if outcome.Error != "no valid links found" {
		t.Errorf("outcome.Error = %q, want %q", outcome.Error, "no valid links found")
	}
}

func TestCreatePlaylistNoValidVideos(t *testing.T) {
	meta := &fakeMetadataService{
		items: map[string]VideoMetadata{
			"dQw4w9WgXcQ": {ID: "dQw4w9WgXcQ", Title: "Hidden", PrivacyStatus: "private"},
		},
	}
	generator := newTestGenerator(meta, nil, nil)

	outcome := generator.CreatePlaylist(context.Background(), []string{"https://youtu.be/dQw4w9WgXcQ"}, "", "")

	if outcome.Success {
		t.Error("outcome.Success = true, want false")
	}
	if outcome.Error != "no valid videos found" {
		t.Errorf("outcome.Error = %q, want %q", outcome.Error, "no valid videos found")
	}
	if len(outcome.VideosSkipped) != 1 {
		t.Errorf("got %d skipped videos, want 1", len(outcome.VideosSkipped))
	}
}

func TestCreatePlaylistSimulated(t *testing.T) {
	generator := newTestGenerator(&fakeMetadataService{}, nil, nil)

	outcome := generator.CreatePlaylist(context.Background(), []string{"https://youtu.be/dQw4w9WgXcQ"}, "", "")

	if !outcome.Success {
		t.Fatalf("outcome.Success = false, want true: %s", outcome.Error)
	}
	if outcome.PlaylistID != "MOCK_PLAYLIST_ID" {
		t.Errorf("outcome.PlaylistID = %q, want the placeholder id", outcome.PlaylistID)
	}
	if outcome.PlaylistURL == "" {
		t.Error("outcome.PlaylistURL is empty")
	}
	if outcome.VideoCount != 1 {
		t.Errorf("outcome.VideoCount = %d, want 1", outcome.VideoCount)
	}
	if outcome.Error == "" {
		t.Error("outcome.Error is empty, want a simulated-result advisory")
	}
}

func TestCreatePlaylistWithWriter(t *testing.T) {
	meta := &fakeMetadataService{
		items: map[string]VideoMetadata{
			"vid2aaaaaaa": {ID: "vid2aaaaaaa", Title: "Hidden", ChannelTitle: "Channel", Duration: "PT1M", PrivacyStatus: "private"},
		},
	}
	writer := &stubWriter{playlistID: "PL123"}
	history := &stubHistory{saveOK: true}
	generator := newTestGenerator(meta, writer, history)

	links := []string{
		"https://youtu.be/vid1aaaaaaa",
		"https://youtu.be/vid2aaaaaaa",
		"https://youtu.be/vid3aaaaaaa",
	}
	outcome := generator.CreatePlaylist(context.Background(), links, "Rainy Day", "For later")

	if !outcome.Success {
		t.Fatalf("outcome.Success = false, want true: %s", outcome.Error)
	}
	if outcome.PlaylistID != "PL123" {
		t.Errorf("outcome.PlaylistID = %q, want PL123", outcome.PlaylistID)
	}
	if outcome.Title != "Rainy Day" || outcome.Description != "For later" {
		t.Errorf("custom title/description not used verbatim: %q / %q", outcome.Title, outcome.Description)
	}
	if writer.createdVisibility != "unlisted" {
		t.Errorf("created with visibility %q, want unlisted", writer.createdVisibility)
	}
	if outcome.VideoCount != 2 || len(outcome.VideosAdded) != 2 {
		t.Errorf("got count %d and %d added, want 2 and 2", outcome.VideoCount, len(outcome.VideosAdded))
	}
	if len(outcome.VideosSkipped) != 1 || outcome.VideosSkipped[0].Error != "video is private" {
		t.Errorf("skipped = %+v, want one private video", outcome.VideosSkipped)
	}
	if len(writer.attached) != 2 {
		t.Errorf("attached %v, want both valid videos", writer.attached)
	}

	if len(history.saved) != 1 {
		t.Fatalf("got %d saved playlists, want 1", len(history.saved))
	}
	record := history.saved[0]
	if record.YoutubeID != "PL123" || record.VideoCount != 2 || len(record.Videos) != 2 {
		t.Errorf("saved record = %+v, want the created playlist with both videos", record)
	}
	if len(history.usageLogs) != 1 || history.usageLogs[0] != [2]string{"youtube", "create_playlist"} {
		t.Errorf("usage logs = %v, want one youtube create_playlist entry", history.usageLogs)
	}
}

func TestCreatePlaylistDefaultDescription(t *testing.T) {
	writer := &stubWriter{playlistID: "PL123"}
	generator := newTestGenerator(&fakeMetadataService{}, writer, nil)

	outcome := generator.CreatePlaylist(context.Background(), []string{"https://youtu.be/dQw4w9WgXcQ"}, "", "")

	if !strings.Contains(outcome.Description, "Playlist with 1 videos") {
		t.Errorf("outcome.Description = %q, want the synthesized default", outcome.Description)
	}
	if outcome.Title != "My YouTube Playlist" {
		t.Errorf("outcome.Title = %q, want the title fallback", outcome.Title)
	}
}

func TestCreatePlaylistCreationFailure(t *testing.T) {
	writer := &stubWriter{createErr: errors.New("insufficient permissions")}
	generator := newTestGenerator(&fakeMetadataService{}, writer, nil)

	outcome := generator.CreatePlaylist(context.Background(), []string{"https://youtu.be/dQw4w9WgXcQ"}, "", "")

	if outcome.Success {
		t.Error("outcome.Success = true, want false")
	}
	if !strings.Contains(outcome.Error, "insufficient permissions") {
		t.Errorf("outcome.Error = %q, want the underlying error detail", outcome.Error)
	}
}

func TestCreatePlaylistAttachFailure(t *testing.T) {
	writer := &stubWriter{
		playlistID: "PL123",
		attachErr:  map[string]error{"vid2aaaaaaa": errors.New("conflict")},
	}
	generator := newTestGenerator(&fakeMetadataService{}, writer, nil)

	links := []string{"https://youtu.be/vid1aaaaaaa", "https://youtu.be/vid2aaaaaaa"}
	outcome := generator.CreatePlaylist(context.Background(), links, "", "")

	if !outcome.Success {
		t.Fatalf("outcome.Success = false, want true: one failed attachment is not fatal")
	}
	if outcome.VideoCount != 1 {
		t.Errorf("outcome.VideoCount = %d, want 1", outcome.VideoCount)
	}
	if len(outcome.VideosAdded) != 2 {
		t.Errorf("got %d added records, want the full valid list", len(outcome.VideosAdded))
	}
}

func TestCreatePlaylistPersistenceFailure(t *testing.T) {
	writer := &stubWriter{playlistID: "PL123"}
	history := &stubHistory{saveErr: errors.New("connection refused")}
	generator := newTestGenerator(&fakeMetadataService{}, writer, history)

	outcome := generator.CreatePlaylist(context.Background(), []string{"https://youtu.be/dQw4w9WgXcQ"}, "", "")

	if !outcome.Success {
		t.Error("outcome.Success = false, want true: persistence is best effort")
	}
	if outcome.Error != "" {
		t.Errorf("outcome.Error = %q, want empty", outcome.Error)
	}
}
