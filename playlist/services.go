package playlist

import (
	"context"

	"tubelist/model"
)

// VideoMetadata is one item returned by a metadata lookup. Embeddable
// is nil when the service did not report an embeddable flag.
type VideoMetadata struct {
	ID            string
	Title         string
	ChannelTitle  string
	Duration      string
	PrivacyStatus string
	Embeddable    *bool
}

// MetadataService looks up metadata for a batch of video ids.
type MetadataService interface {
	LookupBatch(ctx context.Context, ids []string) ([]VideoMetadata, error)
}

// PlaylistWriter creates playlists and attaches videos on the remote
// platform. Holding one means the process has write credentials.
type PlaylistWriter interface {
	CreatePlaylist(ctx context.Context, title, description, visibility string) (string, error)
	AttachVideo(ctx context.Context, playlistID, videoID string, position int64) error
}

// TitleSuggester produces a title suggestion for a prompt.
type TitleSuggester interface {
	Suggest(ctx context.Context, prompt string) (string, error)
}

// HistoryStore records created playlists and API usage. Save reports
// false without an error when the playlist was already recorded.
type HistoryStore interface {
	Save(playlist *model.Playlist) (bool, error)
	LogAPIUsage(service, operation string) error
}
