package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/exp/slog"

	"tubelist/model"
	"tubelist/playlist"
)

// VideoValidator partitions extracted video ids into valid and
// invalid records.
type VideoValidator interface {
	Validate(ctx context.Context, ids []string) (valid, invalid []model.Video)
}

type VideoAPI struct {
	validator VideoValidator
	logger    *slog.Logger
}

func NewVideoAPI(validator VideoValidator, logger *slog.Logger) *VideoAPI {
	return &VideoAPI{
		validator: validator,
		logger:    logger,
	}
}

func (v *VideoAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	head, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && head == "validate":
		v.Validate(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the video api", r.Method, head))
	}
}

// Validate checks links without creating anything, so callers can
// pre-flight a playlist request.
func (v *VideoAPI) Validate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Videos []string `json:"videos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "could not parse request body", err)
		return
	}
	if len(req.Videos) == 0 {
		Error(w, http.StatusBadRequest, "invalid request", fmt.Errorf("videos is required"))
		return
	}

	type resp struct {
		Success       bool        `json:"success"`
		ValidVideos   []respVideo `json:"valid_videos"`
		InvalidVideos []respVideo `json:"invalid_videos"`
		TotalCount    int         `json:"total_count"`
		ValidCount    int         `json:"valid_count"`
		InvalidCount  int         `json:"invalid_count"`
	}

	ids := playlist.ExtractVideoIDs(req.Videos)
	if len(ids) == 0 {
		v.respond(w, resp{
			ValidVideos:   []respVideo{},
			InvalidVideos: []respVideo{},
			TotalCount:    len(req.Videos),
			InvalidCount:  len(req.Videos),
		})
		return
	}

	valid, invalid := v.validator.Validate(r.Context(), ids)
	v.respond(w, resp{
		Success:       true,
		ValidVideos:   respVideos(valid),
		InvalidVideos: respVideos(invalid),
		TotalCount:    len(valid) + len(invalid),
		ValidCount:    len(valid),
		InvalidCount:  len(invalid),
	})
}

func (v *VideoAPI) respond(w http.ResponseWriter, resp any) {
	jsonBody, err := json.Marshal(resp)
	if err != nil {
		v.logger.Error("could not marshal response", slog.String("err", err.Error()))
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, string(jsonBody))
}
