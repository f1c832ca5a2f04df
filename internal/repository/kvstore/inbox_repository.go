package kvstore

import (
	"context"
	"log/slog"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
)

type inboxRepository struct {
	codec codec
}

func NewInboxRepository(kv repository.KeyValueStore, logger *slog.Logger) repository.InboxRepository {
	return &inboxRepository{codec: codec{kv: kv, logger: logger}}
}

func emptyInbox() *domain.Inbox {
	return &domain.Inbox{Conversations: []domain.Conversation{}}
}

func (r *inboxRepository) Get(ctx context.Context, userID string) (*domain.Inbox, error) {
	inbox, err := load(ctx, r.codec, inboxKeyPrefix+userID, emptyInbox)
	if err != nil {
		return nil, err
	}
	if inbox == nil {
		return emptyInbox(), nil
	}
	return inbox, nil
}

func (r *inboxRepository) Save(ctx context.Context, userID string, inbox *domain.Inbox) error {
	return save(ctx, r.codec, inboxKeyPrefix+userID, inbox)
}
