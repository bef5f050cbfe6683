package model

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the single result of a playlist creation run. Every
// adapter renders it, whether the playlist was created for real or
// simulated because no write credential was available.
type Outcome struct {
	Success       bool
	PlaylistID    string
	PlaylistURL   string
	Title         string
	Description   string
	VideoCount    int
	VideosAdded   []Video
	VideosSkipped []Video
	Error         string
}

// Playlist is a durable history record of a created playlist.
type Playlist struct {
	ID             uuid.UUID
	YoutubeID      string
	Title          string
	Description    string
	URL            string
	VideoCount     int
	CreatedBy      string
	UserIdentifier string
	CreatedAt      time.Time
	Videos         []PlaylistVideo
}

// PlaylistVideo is a denormalized video row stored with its playlist,
// ordered by position.
type PlaylistVideo struct {
	YoutubeID YoutubeVideoID
	Title     string
	Channel   string
	Duration  string
	Position  int
}

// VideoUsage counts how often a video appeared across playlists.
type VideoUsage struct {
	YoutubeID YoutubeVideoID
	Title     string
	Count     int
}

// Stats aggregates playlist history for reporting.
type Stats struct {
	TotalPlaylists      int
	TotalVideos         int
	PlaylistsToday      int
	AveragePlaylistSize float64
	MostCommonVideos    []VideoUsage
}
