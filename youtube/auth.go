package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// NewReadService builds a YouTube service authorized with an API key,
// enough for metadata lookups.
func NewReadService(ctx context.Context, apiKey string) (*yt.Service, error) {
	return yt.NewService(ctx, option.WithAPIKey(apiKey))
}

// HasWriteCredentials reports whether a stored OAuth token exists, the
// capability check for creating real playlists.
func HasWriteCredentials(tokenFile string) bool {
	_, err := os.Stat(tokenFile)

	return err == nil
}

// NewWriteService builds a YouTube service from a stored OAuth token.
// The token source refreshes expired tokens on its own.
func NewWriteService(ctx context.Context, clientID, clientSecret, tokenFile string) (*yt.Service, error) {
	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("could not read token file: %w", err)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("could not parse token file: %w", err)
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{yt.YoutubeForceSslScope},
	}

	return yt.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, token)))
}
