package playlist

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"tubelist/model"
)

// batchSize is the maximum number of ids the metadata service accepts
// in a single lookup.
const batchSize = 50

const unknownField = "Unknown"

type Validator struct {
	meta   MetadataService
	logger *slog.Logger
}

func NewValidator(meta MetadataService, logger *slog.Logger) *Validator {
	return &Validator{
		meta:   meta,
		logger: logger,
	}
}

// Validate partitions the given ids into playable and unplayable
// videos. Every id ends up in exactly one of the two lists. A failed
// batch marks its own ids invalid and does not stop later batches.
func (v *Validator) Validate(ctx context.Context, ids []string) (valid, invalid []model.Video) {
	for i := 0; i < len(ids); i += batchSize {
		end := i + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[i:end]

		items, err := v.meta.LookupBatch(ctx, batch)
		if err != nil {
			v.logger.Error("metadata lookup failed", slog.String("error", err.Error()))
			for _, id := range batch {
				invalid = append(invalid, unknownVideo(id, fmt.Sprintf("youtube api error: %s", err.Error())))
			}
			continue
		}

		found := make(map[string]bool, len(items))
		for _, item := range items {
			found[item.ID] = true

			video := model.Video{
				YoutubeID: model.YoutubeVideoID(item.ID),
				Title:     item.Title,
				Channel:   item.ChannelTitle,
				Duration:  item.Duration,
				Status:    model.StatusValid,
			}

			switch {
			case item.PrivacyStatus == "private":
				video.Status = model.StatusInvalid
				video.Error = "video is private"
				invalid = append(invalid, video)
			case item.Embeddable != nil && !*item.Embeddable:
				video.Status = model.StatusInvalid
				video.Error = "video is not embeddable"
				invalid = append(invalid, video)
			default:
				valid = append(valid, video)
			}
		}

		for _, id := range batch {
			if !found[id] {
				invalid = append(invalid, unknownVideo(id, "video not found"))
			}
		}
	}

	return valid, invalid
}

func unknownVideo(id, reason string) model.Video {
	return model.Video{
		YoutubeID: model.YoutubeVideoID(id),
		Title:     unknownField,
		Channel:   unknownField,
		Duration:  unknownField,
		Status:    model.StatusInvalid,
		Error:     reason,
	}
}
