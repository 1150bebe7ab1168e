package impl

import (
	"context"
	"log/slog"
	"time"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/service"

	"github.com/google/uuid"
)

// publishChange notifies subscribers after a committed write. A failed publish is logged
// and never undoes the write.
func publishChange(
	ctx context.Context,
	log *slog.Logger,
	feed service.ChangeFeed,
	collection string,
	changeType entity.ChangeType,
	recordID uuid.UUID,
	occurredAt time.Time,
) {
	event := entity.ChangeEvent{
		Collection: collection,
		Type:       changeType,
		RecordID:   recordID.String(),
		OccurredAt: occurredAt,
	}

	if err := feed.Publish(ctx, event); err != nil {
		log.Error("Failed to publish change",
			slog.String("collection", collection),
			slog.String("type", string(changeType)),
			slog.String("recordID", event.RecordID),
			slog.Any("error", err),
		)
	}
}
