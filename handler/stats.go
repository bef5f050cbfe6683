package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/exp/slog"

	"tubelist/storage"
)

type StatsAPI struct {
	playlistRepo storage.PlaylistRepository
	logger       *slog.Logger
}

func NewStatsAPI(playlistRepo storage.PlaylistRepository, logger *slog.Logger) *StatsAPI {
	return &StatsAPI{
		playlistRepo: playlistRepo,
		logger:       logger,
	}
}

func (s *StatsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	head, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && head == "":
		s.Stats(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the stats api", r.Method, head))
	}
}

func (s *StatsAPI) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.playlistRepo.Statistics(r.URL.Query().Get("user_id"))
	if err != nil {
		s.logger.Error("could not collect statistics", slog.String("err", err.Error()))
		Error(w, http.StatusInternalServerError, "could not collect statistics", err)
		return
	}
	usage, err := s.playlistRepo.UsageCounts()
	if err != nil {
		s.logger.Error("could not collect api usage", slog.String("err", err.Error()))
		Error(w, http.StatusInternalServerError, "could not collect api usage", err)
		return
	}

	type respUsage struct {
		VideoID string `json:"video_id"`
		Title   string `json:"video_title"`
		Count   int    `json:"count"`
	}
	mostCommon := make([]respUsage, 0, len(stats.MostCommonVideos))
	for _, u := range stats.MostCommonVideos {
		mostCommon = append(mostCommon, respUsage{
			VideoID: string(u.YoutubeID),
			Title:   u.Title,
			Count:   u.Count,
		})
	}

	resp := struct {
		TotalPlaylists      int            `json:"total_playlists"`
		TotalVideos         int            `json:"total_videos"`
		PlaylistsToday      int            `json:"playlists_today"`
		AveragePlaylistSize float64        `json:"average_playlist_size"`
		MostCommonVideos    []respUsage    `json:"most_common_videos"`
		APIUsage            map[string]int `json:"api_usage"`
	}{
		TotalPlaylists:      stats.TotalPlaylists,
		TotalVideos:         stats.TotalVideos,
		PlaylistsToday:      stats.PlaylistsToday,
		AveragePlaylistSize: stats.AveragePlaylistSize,
		MostCommonVideos:    mostCommon,
		APIUsage:            usage,
	}

	jsonBody, err := json.Marshal(resp)
	if err != nil {
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, string(jsonBody))
}
