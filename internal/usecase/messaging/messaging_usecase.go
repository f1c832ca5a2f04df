// Package messaging owns conversations with matched profiles and drives the
// simulated counterpart on the other side.
package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/events"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/keylock"
	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/google/uuid"
)

// ownerName is how the owning user shows up in their own conversations.
const ownerName = "You"

// counterpart responses are generated outside any request
const deliveryTimeout = 30 * time.Second

type ProgressTracker interface {
	UpdateProgress(ctx context.Context, userID string, category domain.GoalCategory, amount int) ([]domain.Achievement, error)
}

type MessagingUseCase struct {
	repo      repository.InboxRepository
	goals     ProgressTracker
	responder Responder
	clock     clock.Clock
	publisher events.Publisher
	logger    *slog.Logger
	locks     *keylock.Locker

	mu      sync.Mutex
	pending map[uint64]clock.Timer
	nextID  uint64
	stopped bool
}

func NewMessagingUseCase(
	repo repository.InboxRepository,
	goals ProgressTracker,
	responder Responder,
	clk clock.Clock,
	publisher events.Publisher,
	logger *slog.Logger,
) *MessagingUseCase {
	return &MessagingUseCase{
		repo:      repo,
		goals:     goals,
		responder: responder,
		clock:     clk,
		publisher: publisher,
		logger:    logger,
		locks:     keylock.New(),
		pending:   make(map[uint64]clock.Timer),
	}
}

// SendMessageRequest is the body of a user-sent message.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

type InboxResponse struct {
	Conversations []domain.Conversation `json:"conversations"`
	TotalUnread   int                   `json:"total_unread"`
	HasNewMatches bool                  `json:"has_new_matches"`
}

func participantFor(profile *domain.Profile) domain.Participant {
	return domain.Participant{
		ID:           strconv.Itoa(profile.ID),
		Name:         profile.Name,
		Avatar:       profile.Avatar,
		BusinessName: profile.BusinessName,
		Title:        profile.Title,
		Industries:   profile.Industries,
		// two in five counterparts show as premium
		IsPremium: profile.ID%5 < 2,
	}
}

// CreateConversation opens an empty conversation with the matched profile
// and schedules the counterpart's greeting.
func (uc *MessagingUseCase) CreateConversation(ctx context.Context, userID string, profile *domain.Profile) (string, error) {
	conv := domain.Conversation{
		ID: uuid.NewString(),
		Participants: [2]domain.Participant{
			{ID: userID, Name: ownerName},
			participantFor(profile),
		},
		Messages:  []domain.Message{},
		CreatedAt: uc.clock.Now(),
	}

	err := uc.mutate(ctx, userID, func(inbox *domain.Inbox) error {
		inbox.Conversations = append(inbox.Conversations, conv)
		inbox.HasNewMatches = true
		return nil
	})
	if err != nil {
		return "", err
	}

	counterpart := conv.Counterpart()
	uc.schedule(uc.responder.GreetingDelay(), func(ctx context.Context) string {
		return uc.responder.Greeting(ctx, counterpart)
	}, userID, conv.ID, counterpart.ID)

	uc.logger.Debug("conversation created", "user_id", userID, "conversation_id", conv.ID)
	return conv.ID, nil
}

// SendMessage appends the user's message, counts it toward the messages
// goals and schedules the counterpart's reply.
func (uc *MessagingUseCase) SendMessage(ctx context.Context, userID, conversationID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrInvalidInput
	}

	msg := domain.Message{
		ID:        uuid.NewString(),
		SenderID:  userID,
		Text:      text,
		Timestamp: uc.clock.Now(),
	}

	var counterpart domain.Participant
	err := uc.mutate(ctx, userID, func(inbox *domain.Inbox) error {
		conv := inbox.Find(conversationID)
		if conv == nil {
			return domain.ErrConversationNotFound
		}
		conv.Append(msg, false)
		counterpart = conv.Counterpart()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := uc.goals.UpdateProgress(ctx, userID, domain.CategoryMessages, 1); err != nil {
		uc.logger.Error("failed to update message goals", "user_id", userID, "error", err)
	}
	uc.publisher.Publish(ctx, events.MessageSent{UserID: userID, ConversationID: conversationID, Message: msg, At: msg.Timestamp})

	uc.schedule(uc.responder.ReplyDelay(), func(ctx context.Context) string {
		return uc.responder.Reply(ctx, counterpart, text)
	}, userID, conversationID, counterpart.ID)

	return &msg, nil
}

// RemoveConversation drops a conversation. A counterpart message still
// scheduled for it is discarded when it falls due.
func (uc *MessagingUseCase) RemoveConversation(ctx context.Context, userID, conversationID string) error {
	return uc.mutate(ctx, userID, func(inbox *domain.Inbox) error {
		for i := range inbox.Conversations {
			if inbox.Conversations[i].ID == conversationID {
				inbox.Conversations = append(inbox.Conversations[:i], inbox.Conversations[i+1:]...)
				return nil
			}
		}
		return domain.ErrConversationNotFound
	})
}

func (uc *MessagingUseCase) MarkAsRead(ctx context.Context, userID, conversationID string) error {
	return uc.mutate(ctx, userID, func(inbox *domain.Inbox) error {
		conv := inbox.Find(conversationID)
		if conv == nil {
			return domain.ErrConversationNotFound
		}
		conv.UnreadCount = 0
		return nil
	})
}

func (uc *MessagingUseCase) MarkMatchesAsViewed(ctx context.Context, userID string) error {
	return uc.mutate(ctx, userID, func(inbox *domain.Inbox) error {
		inbox.HasNewMatches = false
		return nil
	})
}

func (uc *MessagingUseCase) GetConversations(ctx context.Context, userID string) (*InboxResponse, error) {
	inbox, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inbox: %w", err)
	}
	return &InboxResponse{
		Conversations: inbox.Conversations,
		TotalUnread:   inbox.TotalUnread(),
		HasNewMatches: inbox.HasNewMatches,
	}, nil
}

func (uc *MessagingUseCase) GetConversation(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	inbox, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inbox: %w", err)
	}
	conv := inbox.Find(conversationID)
	if conv == nil {
		return nil, domain.ErrConversationNotFound
	}
	return conv, nil
}

// Stop cancels every scheduled counterpart message.
func (uc *MessagingUseCase) Stop() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.stopped = true
	for id, t := range uc.pending {
		t.Stop()
		delete(uc.pending, id)
	}
}

func (uc *MessagingUseCase) mutate(ctx context.Context, userID string, fn func(*domain.Inbox) error) error {
	unlock := uc.locks.Lock(userID)
	defer unlock()

	inbox, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load inbox: %w", err)
	}
	if err := fn(inbox); err != nil {
		return err
	}
	if err := uc.repo.Save(ctx, userID, inbox); err != nil {
		return fmt.Errorf("failed to save inbox: %w", err)
	}
	return nil
}

// schedule delivers a counterpart message after delay. The text is produced
// when the timer fires.
func (uc *MessagingUseCase) schedule(delay time.Duration, compose func(context.Context) string, userID, conversationID, senderID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.stopped {
		return
	}

	uc.nextID++
	id := uc.nextID
	uc.pending[id] = uc.clock.AfterFunc(delay, func() {
		uc.mu.Lock()
		delete(uc.pending, id)
		stopped := uc.stopped
		uc.mu.Unlock()
		if stopped {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		uc.deliver(ctx, userID, conversationID, senderID, compose(ctx))
	})
}

func (uc *MessagingUseCase) deliver(ctx context.Context, userID, conversationID, senderID, text string) {
	msg := domain.Message{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Text:      text,
		Timestamp: uc.clock.Now(),
	}
	err := uc.mutate(ctx, userID, func(inbox *domain.Inbox) error {
		conv := inbox.Find(conversationID)
		if conv == nil {
			return domain.ErrConversationNotFound
		}
		conv.Append(msg, true)
		return nil
	})
	if err != nil {
		uc.logger.Warn("counterpart message dropped", "user_id", userID, "conversation_id", conversationID, "error", err)
	}
}
