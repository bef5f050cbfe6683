package playlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"tubelist/model"
)

const mockPlaylistID = "MOCK_PLAYLIST_ID"

// Generator runs the playlist creation workflow: extract ids from raw
// links, validate them, resolve a title and description, create the
// playlist remotely and record the result. With a nil writer the run
// is simulated so the full pipeline can be exercised without write
// credentials.
type Generator struct {
	validator  *Validator
	titles     *TitleGenerator
	writer     PlaylistWriter
	history    HistoryStore
	visibility string
	logger     *slog.Logger
}

func NewGenerator(validator *Validator, titles *TitleGenerator, writer PlaylistWriter, history HistoryStore, visibility string, logger *slog.Logger) *Generator {
	return &Generator{
		validator:  validator,
		titles:     titles,
		writer:     writer,
		history:    history,
		visibility: visibility,
		logger:     logger,
	}
}

// CanWrite reports whether the generator holds write credentials.
func (g *Generator) CanWrite() bool {
	return g.writer != nil
}

// CreatePlaylist builds a playlist from the given links. It always
// returns a structured outcome, never an error: per-video problems are
// reported in the skipped list and only a missing input or a failed
// playlist creation flips the success flag.
func (g *Generator) CreatePlaylist(ctx context.Context, rawLinks []string, customTitle, customDescription string) model.Outcome {
	ids := ExtractVideoIDs(rawLinks)
	if len(ids) == 0 {
		return model.Outcome{Error: "no valid links found"}
	}

	valid, invalid := g.validator.Validate(ctx, ids)
	if len(valid) == 0 {
		return model.Outcome{
			Error:         "no valid videos found",
			VideosSkipped: invalid,
		}
	}

	title := customTitle
	if title == "" {
		title = g.titles.Generate(ctx, valid)
	}

	description := customDescription
	if description == "" {
		description = fmt.Sprintf("Playlist with %d videos created by TubeList", len(valid))
	}

	if g.writer == nil {
		g.logger.Info("simulating playlist creation", slog.String("title", title), slog.Int("count", len(valid)))
		return model.Outcome{
			Success:       true,
			PlaylistID:    mockPlaylistID,
			PlaylistURL:   playlistURL(mockPlaylistID),
			Title:         title,
			Description:   description,
			VideoCount:    len(valid),
			VideosAdded:   valid,
			VideosSkipped: invalid,
			Error:         "note: this is a simulated result, configure write credentials to create real playlists",
		}
	}

	playlistID, err := g.writer.CreatePlaylist(ctx, title, description, g.visibility)
	if err != nil {
		g.logger.Error("failed to create playlist", slog.String("error", err.Error()))
		return model.Outcome{
			Error:         fmt.Sprintf("failed to create playlist: %s", err.Error()),
			VideosSkipped: invalid,
		}
	}
	g.logger.Info("created playlist", slog.String("id", playlistID), slog.String("title", title))

	attached := 0
	for i, video := range valid {
		if err := g.writer.AttachVideo(ctx, playlistID, string(video.YoutubeID), int64(i)); err != nil {
			g.logger.Error("failed to attach video", slog.String("video", string(video.YoutubeID)), slog.String("error", err.Error()))
			continue
		}
		attached++
	}

	g.persist(playlistID, title, description, attached, valid, customTitle == "")

	return model.Outcome{
		Success:       true,
		PlaylistID:    playlistID,
		PlaylistURL:   playlistURL(playlistID),
		Title:         title,
		Description:   description,
		VideoCount:    attached,
		VideosAdded:   valid,
		VideosSkipped: invalid,
	}
}

// persist records the playlist and the API usage after a successful
// remote creation. Failures here are logged and never reach the
// caller, the playlist already exists remotely.
func (g *Generator) persist(playlistID, title, description string, attached int, valid []model.Video, generatedTitle bool) {
	if g.history == nil {
		return
	}

	record := &model.Playlist{
		ID:          uuid.New(),
		YoutubeID:   playlistID,
		Title:       title,
		Description: description,
		URL:         playlistURL(playlistID),
		VideoCount:  attached,
		CreatedBy:   "api",
		Videos:      make([]model.PlaylistVideo, 0, len(valid)),
	}
	for i, video := range valid {
		record.Videos = append(record.Videos, model.PlaylistVideo{
			YoutubeID: video.YoutubeID,
			Title:     video.Title,
			Channel:   video.Channel,
			Duration:  video.Duration,
			Position:  i,
		})
	}

	saved, err := g.history.Save(record)
	switch {
	case err != nil:
		g.logger.Error("failed to save playlist", slog.String("youtube_id", playlistID), slog.String("error", err.Error()))
	case !saved:
		g.logger.Warn("playlist already recorded", slog.String("youtube_id", playlistID))
	}

	if err := g.history.LogAPIUsage("youtube", "create_playlist"); err != nil {
		g.logger.Error("failed to log api usage", slog.String("error", err.Error()))
	}
	if g.titles.Enabled() && generatedTitle {
		if err := g.history.LogAPIUsage("openai", "generate_title"); err != nil {
			g.logger.Error("failed to log api usage", slog.String("error", err.Error()))
		}
	}
}

func playlistURL(playlistID string) string {
	return "https://youtube.com/playlist?list=" + playlistID
}
