package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"tubelist/model"
	"tubelist/storage"
)

// PlaylistGenerator runs the creation workflow. It always returns a
// structured outcome, failures included.
type PlaylistGenerator interface {
	CreatePlaylist(ctx context.Context, rawLinks []string, customTitle, customDescription string) model.Outcome
}

type PlaylistAPI struct {
	generator    PlaylistGenerator
	playlistRepo storage.PlaylistRepository
	logger       *slog.Logger
}

func NewPlaylistAPI(generator PlaylistGenerator, playlistRepo storage.PlaylistRepository, logger *slog.Logger) *PlaylistAPI {
	return &PlaylistAPI{
		generator:    generator,
		playlistRepo: playlistRepo,
		logger:       logger,
	}
}

func (p *PlaylistAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	head, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && head == "":
		p.Create(w, r)
	case r.Method == http.MethodGet && head == "":
		p.History(w, r)
	case r.Method == http.MethodGet && head != "":
		p.Detail(w, head)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the playlist api", r.Method, head))
	}
}

type respVideo struct {
	VideoID  string `json:"video_id"`
	Title    string `json:"title"`
	Channel  string `json:"channel"`
	Duration string `json:"duration"`
	URL      string `json:"url"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

func respVideos(videos []model.Video) []respVideo {
	resp := make([]respVideo, 0, len(videos))
	for _, v := range videos {
		resp = append(resp, respVideo{
			VideoID:  string(v.YoutubeID),
			Title:    v.Title,
			Channel:  v.Channel,
			Duration: v.Duration,
			URL:      v.WatchURL(),
			Status:   string(v.Status),
			Error:    v.Error,
		})
	}

	return resp
}

func (p *PlaylistAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Videos      []string `json:"videos"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "could not parse request body", err)
		return
	}
	if len(req.Videos) == 0 {
		Error(w, http.StatusBadRequest, "invalid request", fmt.Errorf("videos is required"))
		return
	}

	p.logger.Info("creating playlist", slog.Int("links", len(req.Videos)))
	outcome := p.generator.CreatePlaylist(r.Context(), req.Videos, req.Title, req.Description)

	resp := struct {
		Success       bool        `json:"success"`
		PlaylistID    string      `json:"playlist_id,omitempty"`
		PlaylistURL   string      `json:"playlist_url,omitempty"`
		Title         string      `json:"title,omitempty"`
		Description   string      `json:"description,omitempty"`
		VideoCount    int         `json:"video_count"`
		VideosAdded   []respVideo `json:"videos_added"`
		VideosSkipped []respVideo `json:"videos_skipped"`
		Error         string      `json:"error,omitempty"`
	}{
		Success:       outcome.Success,
		PlaylistID:    outcome.PlaylistID,
		PlaylistURL:   outcome.PlaylistURL,
		Title:         outcome.Title,
		Description:   outcome.Description,
		VideoCount:    outcome.VideoCount,
		VideosAdded:   respVideos(outcome.VideosAdded),
		VideosSkipped: respVideos(outcome.VideosSkipped),
		Error:         outcome.Error,
	}

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusBadRequest
	}
	jsonBody, err := json.Marshal(resp)
	if err != nil {
		p.returnErr(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}
	w.WriteHeader(status)
	fmt.Fprint(w, string(jsonBody))
}

type respPlaylist struct {
	ID          string      `json:"id"`
	YoutubeID   string      `json:"youtube_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url"`
	VideoCount  int         `json:"video_count"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	Videos      []respVideo `json:"videos"`
}

func newRespPlaylist(playlist model.Playlist) respPlaylist {
	item := respPlaylist{
		ID:          playlist.ID.String(),
		YoutubeID:   playlist.YoutubeID,
		Title:       playlist.Title,
		Description: playlist.Description,
		URL:         playlist.URL,
		VideoCount:  playlist.VideoCount,
		CreatedBy:   playlist.CreatedBy,
		CreatedAt:   playlist.CreatedAt,
		Videos:      make([]respVideo, 0, len(playlist.Videos)),
	}
	for _, video := range playlist.Videos {
		item.Videos = append(item.Videos, respVideo{
			VideoID:  string(video.YoutubeID),
			Title:    video.Title,
			Channel:  video.Channel,
			Duration: video.Duration,
			URL:      "https://youtube.com/watch?v=" + string(video.YoutubeID),
			Status:   string(model.StatusValid),
		})
	}

	return item
}

// Detail returns one stored playlist by its local id.
func (p *PlaylistAPI) Detail(w http.ResponseWriter, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid playlist id", err)
		return
	}

	playlist, err := p.playlistRepo.PlaylistByID(id)
	if err != nil {
		p.returnErr(w, http.StatusInternalServerError, "could not fetch playlist", err)
		return
	}
	if playlist == nil {
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("no playlist with id %s", id))
		return
	}

	jsonBody, err := json.Marshal(newRespPlaylist(*playlist))
	if err != nil {
		p.returnErr(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, string(jsonBody))
}

func (p *PlaylistAPI) History(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(r, "per_page", 10)
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	user := r.URL.Query().Get("user_id")

	playlists, err := p.playlistRepo.History(user, perPage, (page-1)*perPage, true)
	if err != nil {
		p.returnErr(w, http.StatusInternalServerError, "could not list playlists", err)
		return
	}
	stats, err := p.playlistRepo.Statistics(user)
	if err != nil {
		p.returnErr(w, http.StatusInternalServerError, "could not count playlists", err)
		return
	}

	items := make([]respPlaylist, 0, len(playlists))
	for _, playlist := range playlists {
		items = append(items, newRespPlaylist(playlist))
	}

	resp := struct {
		Playlists []respPlaylist `json:"playlists"`
		Total     int            `json:"total"`
		Page      int            `json:"page"`
		PerPage   int            `json:"per_page"`
		HasNext   bool           `json:"has_next"`
		HasPrev   bool           `json:"has_prev"`
	}{
		Playlists: items,
		Total:     stats.TotalPlaylists,
		Page:      page,
		PerPage:   perPage,
		HasNext:   page*perPage < stats.TotalPlaylists,
		HasPrev:   page > 1,
	}

	jsonBody, err := json.Marshal(resp)
	if err != nil {
		p.returnErr(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, string(jsonBody))
}

func (p *PlaylistAPI) returnErr(w http.ResponseWriter, status int, message string, err error, details ...any) {
	p.logger.Error(message, slog.String("err", err.Error()), slog.String("details", fmt.Sprintf("%+v", details)))
	Error(w, status, message, err, details...)
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return val
}
