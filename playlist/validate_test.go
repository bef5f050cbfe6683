package playlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"golang.org/x/exp/slog"

	"tubelist/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard))
}

// fakeMetadataService records each batch it receives and answers from
// a canned item set. Ids listed in missing are left out of the
// response, calls listed in failCalls return an error.
type fakeMetadataService struct {
	items     map[string]VideoMetadata
	missing   map[string]bool
	failCalls map[int]error
	calls     [][]string
}

func (f *fakeMetadataService) LookupBatch(_ context.Context, ids []string) ([]VideoMetadata, error) {
	call := len(f.calls)
	f.calls = append(f.calls, ids)
	if err, ok := f.failCalls[call]; ok {
		return nil, err
	}

	items := []VideoMetadata{}
	for _, id := range ids {
		if f.missing[id] {
			continue
		}
		if item, ok := f.items[id]; ok {
			items = append(items, item)
			continue
		}
		items = append(items, VideoMetadata{
			ID:            id,
			Title:         "Title " + id,
			ChannelTitle:  "Channel " + id,
			Duration:      "PT3M",
			PrivacyStatus: "public",
		})
	}

	return items, nil
}

func TestValidatePartition(t *testing.T) {
	embeddable := false
	meta := &fakeMetadataService{
		items: map[string]VideoMetadata{
			"priv1": {ID: "priv1", Title: "Hidden", ChannelTitle: "Channel", Duration: "PT1M", PrivacyStatus: "private"},
			"noemb": {ID: "noemb", Title: "Locked", ChannelTitle: "Channel", Duration: "PT2M", PrivacyStatus: "public", Embeddable: &embeddable},
		},
		missing: map[string]bool{"ghost": true},
	}
	validator := NewValidator(meta, discardLogger())

	valid, invalid := validator.Validate(context.Background(), []string{"ok1", "priv1", "noemb", "ghost", "ok2"})

	if got, want := len(valid), 2; got != want {
		t.Fatalf("got %d valid videos, want %d", got, want)
	}
	if valid[0].YoutubeID != "ok1" || valid[1].YoutubeID != "ok2" {
		t.Errorf("valid order = %v, want ok1, ok2", valid)
	}
	for _, video := range valid {
		if video.Status != model.StatusValid {
			t.Errorf("video %s has status %s, want %s", video.YoutubeID, video.Status, model.StatusValid)
		}
		if video.Title == "" || video.Channel == "" || video.Duration == "" {
			t.Errorf("video %s is missing metadata: %+v", video.YoutubeID, video)
		}
	}

	if got, want := len(invalid), 3; got != want {
		t.Fatalf("got %d invalid videos, want %d", got, want)
	}
	wantReasons := map[model.YoutubeVideoID]string{
		"priv1": "video is private",
		"noemb": "video is not embeddable",
		"ghost": "video not found",
	}
	for _, video := range invalid {
		if video.Status != model.StatusInvalid {
			t.Errorf("video %s has status %s, want %s", video.YoutubeID, video.Status, model.StatusInvalid)
		}
		if video.Error != wantReasons[video.YoutubeID] {
			t.Errorf("video %s has reason %q, want %q", video.YoutubeID, video.Error, wantReasons[video.YoutubeID])
		}
	}
	if invalid[2].YoutubeID != "ghost" {
		t.Errorf("not-found record should come after response records, got %v", invalid)
	}
}

func TestValidateBatching(t *testing.T) {
	meta := &fakeMetadataService{}
	validator := NewValidator(meta, discardLogger())

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("video%03d", i)
	}

	valid, invalid := validator.Validate(context.Background(), ids)

	if got, want := len(meta.calls), 3; got != want {
		t.Fatalf("got %d metadata calls, want %d", got, want)
	}
	for i, want := range []int{50, 50, 20} {
		if got := len(meta.calls[i]); got != want {
			t.Errorf("call %d had %d ids, want %d", i, got, want)
		}
	}
	if len(valid) != 120 || len(invalid) != 0 {
		t.Errorf("got %d valid and %d invalid, want 120 and 0", len(valid), len(invalid))
	}
	for i, video := range valid {
		if string(video.YoutubeID) != ids[i] {
			t.Fatalf("order not preserved at %d: got %s, want %s", i, video.YoutubeID, ids[i])
		}
	}
}

func TestValidateBatchError(t *testing.T) {
	meta := &fakeMetadataService{
		failCalls: map[int]error{0: errors.New("quota exceeded")},
	}
	validator := NewValidator(meta, discardLogger())

	ids := make([]string, 60)
	for i := range ids {
		ids[i] = fmt.Sprintf("video%02d", i)
	}

	valid, invalid := validator.Validate(context.Background(), ids)

	if got, want := len(invalid), 50; got != want {
		t.Fatalf("got %d invalid videos, want %d", got, want)
	}
	for _, video := range invalid {
		if !strings.Contains(video.Error, "quota exceeded") {
			t.Errorf("video %s has reason %q, want the service error detail", video.YoutubeID, video.Error)
		}
	}
	if got, want := len(valid), 10; got != want {
		t.Errorf("got %d valid videos, want %d: a failed batch must not abort later batches", got, want)
	}
}
