package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/service"

	"github.com/pkg/errors"
)

// publishAccountEvent sends an account event after the change it describes
// has been committed. Failures are logged and never returned.
func publishAccountEvent(ctx context.Context, logger *slog.Logger, publisher service.EventPublisher, eventType service.AccountEventType, user *entity.User) {
	if publisher == nil || user == nil {
		return
	}

	event := &service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		UserID:     user.ID.String(),
		Username:   user.Username,
		OccurredAt: time.Now().UTC(),
	}

	if err := publisher.PublishAccountEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish account event",
			slog.String("event_type", string(eventType)),
			slog.Any("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

// deleteMediaBestEffort removes stored assets without failing the caller.
func deleteMediaBestEffort(ctx context.Context, logger *slog.Logger, media service.MediaStorage, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := media.Delete(ctx, url); err != nil {
			logger.Warn("Failed to delete media asset", slog.String("url", url), slog.Any("error", err))
		}
	}
}

// uploadError keeps application errors from the media layer and folds
// anything else into ErrMediaUploadFailed.
func uploadError(err error, what string) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return errors.Wrapf(err, "upload %s", what)
	}

	return errors.Wrapf(domainerrors.ErrMediaUploadFailed, "upload %s: %v", what, err)
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
