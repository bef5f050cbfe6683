package storage

var pgMigration = []string{
	`CREATE TABLE playlists (
id uuid PRIMARY KEY,
youtube_id VARCHAR(255) NOT NULL UNIQUE,
title VARCHAR(255) NOT NULL,
description TEXT NOT NULL DEFAULT '',
url VARCHAR(255) NOT NULL,
video_count INTEGER NOT NULL,
created_by VARCHAR(255) NOT NULL,
user_identifier VARCHAR(255),
created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE playlist_videos (
id SERIAL PRIMARY KEY,
playlist_id uuid NOT NULL REFERENCES playlists(id),
video_id VARCHAR(255) NOT NULL,
video_title VARCHAR(255) NOT NULL DEFAULT '',
video_channel VARCHAR(255) NOT NULL DEFAULT '',
video_duration VARCHAR(255) NOT NULL DEFAULT '',
"position" INTEGER NOT NULL,
added_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE api_usage (
id SERIAL PRIMARY KEY,
service VARCHAR(255) NOT NULL,
operation VARCHAR(255) NOT NULL,
tokens_used INTEGER,
cost_estimate REAL,
created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX idx_playlists_created_at ON playlists (created_at)`,
	`CREATE INDEX idx_playlists_user ON playlists (user_identifier)`,
	`CREATE INDEX idx_playlist_videos_playlist ON playlist_videos (playlist_id)`,
}
