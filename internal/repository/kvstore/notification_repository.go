package kvstore

import (
	"context"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
)

type notificationRepository struct {
	codec codec
}

func NewNotificationRepository(kv repository.KeyValueStore, logger *slog.Logger) repository.NotificationRepository {
	return &notificationRepository{codec: codec{kv: kv, logger: logger}}
}

func emptyFeed() []domain.Notification { return []domain.Notification{} }

func (r *notificationRepository) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return load(ctx, r.codec, notifKeyPrefix+userID, emptyFeed)
}

func (r *notificationRepository) Save(ctx context.Context, userID string, feed []domain.Notification) error {
	return save(ctx, r.codec, notifKeyPrefix+userID, feed)
}
