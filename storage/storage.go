package storage

import (
	"github.com/google/uuid"

	"tubelist/model"
)

type PlaylistRepository interface {
	Save(playlist *model.Playlist) (bool, error)
	PlaylistByID(id uuid.UUID) (*model.Playlist, error)
	History(user string, limit, offset int, includeVideos bool) ([]model.Playlist, error)
	Statistics(user string) (model.Stats, error)
	LogAPIUsage(service, operation string) error
	UsageCounts() (map[string]int, error)
}
