package storage

import (
	"database/sql"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tubelist/model"
)

type PostgresPlaylistRepository struct {
	postgres *Postgres
}

func NewPostgresPlaylistRepository(postgres *Postgres) *PostgresPlaylistRepository {
	return &PostgresPlaylistRepository{postgres: postgres}
}

// Save stores a playlist with its video rows in one transaction. A
// playlist whose youtube id was recorded before reports false without
// an error.
func (r *PostgresPlaylistRepository) Save(playlist *model.Playlist) (bool, error) {
	tx, err := r.postgres.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
INSERT INTO playlists
(id, youtube_id, title, description, url, video_count, created_by, user_identifier)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
`, playlist.ID, playlist.YoutubeID, playlist.Title, playlist.Description, playlist.URL,
		playlist.VideoCount, playlist.CreatedBy, playlist.UserIdentifier); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return false, nil
		}

		return false, err
	}

	for _, video := range playlist.Videos {
		if _, err := tx.Exec(`
INSERT INTO playlist_videos
(playlist_id, video_id, video_title, video_channel, video_duration, "position")
VALUES ($1, $2, $3, $4, $5, $6)
`, playlist.ID, video.YoutubeID, video.Title, video.Channel, video.Duration, video.Position); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

// PlaylistByID returns one stored playlist with its video rows, or nil
// when the id is unknown.
func (r *PostgresPlaylistRepository) PlaylistByID(id uuid.UUID) (*model.Playlist, error) {
	playlist := model.Playlist{}
	err := r.postgres.db.QueryRow(`
SELECT id, youtube_id, title, description, url, video_count, created_by, COALESCE(user_identifier, ''), created_at
FROM playlists
WHERE id = $1`, id).Scan(&playlist.ID, &playlist.YoutubeID, &playlist.Title, &playlist.Description,
		&playlist.URL, &playlist.VideoCount, &playlist.CreatedBy, &playlist.UserIdentifier,
		&playlist.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}

	videos, err := r.playlistVideos(playlist.ID)
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos

	return &playlist, nil
}

// History returns stored playlists, newest first.
func (r *PostgresPlaylistRepository) History(user string, limit, offset int, includeVideos bool) ([]model.Playlist, error) {
	query := `
SELECT id, youtube_id, title, description, url, video_count, created_by, COALESCE(user_identifier, ''), created_at
FROM playlists
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	args := []any{limit, offset}
	if user != "" {
		query = `
SELECT id, youtube_id, title, description, url, video_count, created_by, COALESCE(user_identifier, ''), created_at
FROM playlists
WHERE user_identifier = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
		args = []any{user, limit, offset}
	}

	rows, err := r.postgres.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []model.Playlist{}
	for rows.Next() {
		var playlist model.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.YoutubeID, &playlist.Title, &playlist.Description,
			&playlist.URL, &playlist.VideoCount, &playlist.CreatedBy, &playlist.UserIdentifier,
			&playlist.CreatedAt); err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if includeVideos {
		for i := range playlists {
			videos, err := r.playlistVideos(playlists[i].ID)
			if err != nil {
				return nil, err
			}
			playlists[i].Videos = videos
		}
	}

	return playlists, nil
}

func (r *PostgresPlaylistRepository) playlistVideos(playlistID uuid.UUID) ([]model.PlaylistVideo, error) {
	rows, err := r.postgres.db.Query(`
SELECT video_id, video_title, video_channel, video_duration, "position"
FROM playlist_videos
WHERE playlist_id = $1
ORDER BY "position"`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []model.PlaylistVideo{}
	for rows.Next() {
		var video model.PlaylistVideo
		if err := rows.Scan(&video.YoutubeID, &video.Title, &video.Channel, &video.Duration, &video.Position); err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	return videos, rows.Err()
}

// Statistics aggregates the stored history, optionally scoped to one
// user identifier.
func (r *PostgresPlaylistRepository) Statistics(user string) (model.Stats, error) {
	stats := model.Stats{}

	totalQuery := `SELECT COUNT(*) FROM playlists`
	videosQuery := `SELECT COUNT(*) FROM playlist_videos`
	todayQuery := `SELECT COUNT(*) FROM playlists WHERE created_at::date = CURRENT_DATE`
	avgQuery := `SELECT COALESCE(AVG(video_count), 0) FROM playlists`
	if user != "" {
		totalQuery = `SELECT COUNT(*) FROM playlists WHERE user_identifier = $1`
		videosQuery = `SELECT COUNT(*) FROM playlist_videos pv JOIN playlists p ON pv.playlist_id = p.id WHERE p.user_identifier = $1`
		todayQuery = `SELECT COUNT(*) FROM playlists WHERE user_identifier = $1 AND created_at::date = CURRENT_DATE`
		avgQuery = `SELECT COALESCE(AVG(video_count), 0) FROM playlists WHERE user_identifier = $1`
	}

	var err error
	if stats.TotalPlaylists, err = r.countRow(totalQuery, userArgs(user)...); err != nil {
		return model.Stats{}, err
	}
	if stats.TotalVideos, err = r.countRow(videosQuery, userArgs(user)...); err != nil {
		return model.Stats{}, err
	}
	if stats.PlaylistsToday, err = r.countRow(todayQuery, userArgs(user)...); err != nil {
		return model.Stats{}, err
	}

	var avg float64
	if err := r.postgres.db.QueryRow(avgQuery, userArgs(user)...).Scan(&avg); err != nil {
		return model.Stats{}, err
	}
	stats.AveragePlaylistSize = math.Round(avg*100) / 100

	common, err := r.mostCommonVideos(user)
	if err != nil {
		return model.Stats{}, err
	}
	stats.MostCommonVideos = common

	return stats, nil
}

func (r *PostgresPlaylistRepository) mostCommonVideos(user string) ([]model.VideoUsage, error) {
	query := `
SELECT video_id, video_title, COUNT(*) AS count
FROM playlist_videos
GROUP BY video_id, video_title
ORDER BY count DESC
LIMIT 10`
	if user != "" {
		query = `
SELECT pv.video_id, pv.video_title, COUNT(*) AS count
FROM playlist_videos pv
JOIN playlists p ON pv.playlist_id = p.id
WHERE p.user_identifier = $1
GROUP BY pv.video_id, pv.video_title
ORDER BY count DESC
LIMIT 10`
	}

	rows, err := r.postgres.db.Query(query, userArgs(user)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usages := []model.VideoUsage{}
	for rows.Next() {
		var usage model.VideoUsage
		if err := rows.Scan(&usage.YoutubeID, &usage.Title, &usage.Count); err != nil {
			return nil, err
		}
		usages = append(usages, usage)
	}

	return usages, rows.Err()
}

// LogAPIUsage records one call to an external service.
func (r *PostgresPlaylistRepository) LogAPIUsage(service, operation string) error {
	_, err := r.postgres.db.Exec(`
INSERT INTO api_usage
(service, operation) VALUES ($1, $2)
`, service, operation)

	return err
}

// UsageCounts returns recorded external calls per service.
func (r *PostgresPlaylistRepository) UsageCounts() (map[string]int, error) {
	rows, err := r.postgres.db.Query(`
SELECT service, COUNT(*)
FROM api_usage
GROUP BY service`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var service string
		var count int
		if err := rows.Scan(&service, &count); err != nil {
			return nil, err
		}
		counts[service] = count
	}

	return counts, rows.Err()
}

func (r *PostgresPlaylistRepository) countRow(query string, args ...any) (int, error) {
	var count int
	err := r.postgres.db.QueryRow(query, args...).Scan(&count)

	return count, err
}

func userArgs(user string) []any {
	if user == "" {
		return nil
	}

	return []any{user}
}
