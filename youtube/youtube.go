package youtube

import (
	"context"
	"strings"

	yt "google.golang.org/api/youtube/v3"

	"tubelist/playlist"
)

// ReadOnlyClient wraps the parts of the YouTube Data API that an API
// key is enough for.
type ReadOnlyClient struct {
	service *yt.Service
}

func NewReadOnlyClient(service *yt.Service) *ReadOnlyClient {
	return &ReadOnlyClient{service: service}
}

func (c *ReadOnlyClient) LookupBatch(ctx context.Context, ids []string) ([]playlist.VideoMetadata, error) {
	call := c.service.Videos.
		List([]string{"snippet", "status", "contentDetails"}).
		Id(strings.Join(ids, ",")).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, err
	}

	items := make([]playlist.VideoMetadata, 0, len(response.Items))
	for _, item := range response.Items {
		md := playlist.VideoMetadata{ID: item.Id}
		if item.Snippet != nil {
			md.Title = item.Snippet.Title
			md.ChannelTitle = item.Snippet.ChannelTitle
		}
		if item.ContentDetails != nil {
			md.Duration = item.ContentDetails.Duration
		}
		if item.Status != nil {
			md.PrivacyStatus = item.Status.PrivacyStatus
			embeddable := item.Status.Embeddable
			md.Embeddable = &embeddable
		}
		items = append(items, md)
	}

	return items, nil
}

// WriteClient wraps the playlist mutations that need an OAuth token.
type WriteClient struct {
	service *yt.Service
}

func NewWriteClient(service *yt.Service) *WriteClient {
	return &WriteClient{service: service}
}

func (c *WriteClient) CreatePlaylist(ctx context.Context, title, description, visibility string) (string, error) {
	call := c.service.Playlists.
		Insert([]string{"snippet", "status"}, &yt.Playlist{
			Snippet: &yt.PlaylistSnippet{
				Title:           title,
				Description:     description,
				DefaultLanguage: "en",
			},
			Status: &yt.PlaylistStatus{
				PrivacyStatus: visibility,
			},
		}).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return "", err
	}

	return response.Id, nil
}

func (c *WriteClient) AttachVideo(ctx context.Context, playlistID, videoID string, position int64) error {
	call := c.service.PlaylistItems.
		Insert([]string{"snippet"}, &yt.PlaylistItem{
			Snippet: &yt.PlaylistItemSnippet{
				PlaylistId: playlistID,
				Position:   position,
				ResourceId: &yt.ResourceId{
					Kind:    "youtube#video",
					VideoId: videoID,
				},
				ForceSendFields: []string{"Position"},
			},
		}).
		Context(ctx)

	_, err := call.Do()

	return err
}
