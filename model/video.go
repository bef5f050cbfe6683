package model

type VideoStatus string

const (
	StatusValid   VideoStatus = "valid"
	StatusInvalid VideoStatus = "invalid"
)

type YoutubeVideoID string

// Video holds the metadata captured for a single video during
// validation. Once built it is never modified.
type Video struct {
	YoutubeID YoutubeVideoID
	Title     string
	Channel   string
	Duration  string
	Status    VideoStatus
	Error     string
}

// WatchURL returns the canonical watch link for the video.
func (v Video) WatchURL() string {
	return "https://youtube.com/watch?v=" + string(v.YoutubeID)
}
