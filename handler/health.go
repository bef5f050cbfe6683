package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// HealthInfo reports which capabilities the process was started with.
type HealthInfo struct {
	Version            string
	YoutubeAuth        bool
	OpenAIConfigured   bool
	TelegramConfigured bool
	DatabaseConnected  bool
}

type HealthAPI struct {
	info HealthInfo
}

func NewHealthAPI(info HealthInfo) *HealthAPI {
	return &HealthAPI{info: info}
}

func (h *HealthAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	head, _ := ShiftPath(r.URL.Path)
	if r.Method != http.MethodGet || head != "" {
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the health api", r.Method, head))
		return
	}

	resp := struct {
		Status             string `json:"status"`
		Version            string `json:"version"`
		YoutubeAuth        bool   `json:"youtube_auth"`
		OpenAIConfigured   bool   `json:"openai_configured"`
		TelegramConfigured bool   `json:"telegram_configured"`
		DatabaseConnected  bool   `json:"database_connected"`
	}{
		Status:             "healthy",
		Version:            h.info.Version,
		YoutubeAuth:        h.info.YoutubeAuth,
		OpenAIConfigured:   h.info.OpenAIConfigured,
		TelegramConfigured: h.info.TelegramConfigured,
		DatabaseConnected:  h.info.DatabaseConnected,
	}

	jsonBody, err := json.Marshal(resp)
	if err != nil {
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, string(jsonBody))
}
