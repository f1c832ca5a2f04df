package messaging

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/gemini"
)

// Responder plays the matched counterpart until real users sit on both
// sides of a conversation.
type Responder interface {
	GreetingDelay() time.Duration
	ReplyDelay() time.Duration
	Greeting(ctx context.Context, counterpart domain.Participant) string
	Reply(ctx context.Context, counterpart domain.Participant, incoming string) string
}

var greetings = []string{
	"Hi! Thanks for matching with me. I'm excited to explore potential partnerships!",
	"Hello! I saw your profile and think our businesses could work well together.",
	"Hey there! I'm interested in learning more about your company.",
	"Hi! Your business looks really interesting. I'd love to connect!",
	"Hello! I think there might be some great collaboration opportunities between us.",
}

var autoReplies = []string{
	"That sounds interesting! Tell me more about your business.",
	"I'd love to explore potential partnerships with you.",
	"Your company looks impressive. What kind of collaboration are you looking for?",
	"Thanks for reaching out! I think there could be great synergy between our businesses.",
	"I'm excited to discuss this further. When would be a good time to chat?",
	"Your proposal aligns well with our current goals. Let's set up a meeting!",
	"I've been looking for someone with your expertise. This could be perfect timing.",
	"Your business model is fascinating. How long have you been in this industry?",
	"I think our companies could complement each other well. What's your vision for partnership?",
	"This is exactly the kind of opportunity I've been seeking. Let's make it happen!",
}

type DelayConfig struct {
	Greeting time.Duration
	ReplyMin time.Duration
	ReplyMax time.Duration
}

// CannedResponder picks greetings, replies and reply delays from a seeded
// source, so a fixed seed replays the same conversation.
type CannedResponder struct {
	delays DelayConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCannedResponder seeds from the clock when seed is 0.
func NewCannedResponder(seed int64, delays DelayConfig) *CannedResponder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &CannedResponder{delays: delays, rng: rand.New(rand.NewSource(seed))}
}

func (r *CannedResponder) GreetingDelay() time.Duration {
	return r.delays.Greeting
}

// ReplyDelay is uniform in [ReplyMin, ReplyMax).
func (r *CannedResponder) ReplyDelay() time.Duration {
	spread := r.delays.ReplyMax - r.delays.ReplyMin
	if spread <= 0 {
		return r.delays.ReplyMin
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delays.ReplyMin + time.Duration(r.rng.Int63n(int64(spread)))
}

func (r *CannedResponder) Greeting(context.Context, domain.Participant) string {
	return r.pick(greetings)
}

func (r *CannedResponder) Reply(context.Context, domain.Participant, string) string {
	return r.pick(autoReplies)
}

func (r *CannedResponder) pick(options []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return options[r.rng.Intn(len(options))]
}

// TextGenerator is the part of the Gemini client the AI responder needs.
type TextGenerator interface {
	GenerateGreeting(ctx context.Context, p gemini.Persona) (string, error)
	GenerateReply(ctx context.Context, p gemini.Persona, incoming string) (string, error)
}

// GeminiResponder writes counterpart messages with a language model and
// falls back to canned text whenever generation fails.
type GeminiResponder struct {
	*CannedResponder
	generator TextGenerator
	logger    *slog.Logger
}

func NewGeminiResponder(generator TextGenerator, fallback *CannedResponder, logger *slog.Logger) *GeminiResponder {
	return &GeminiResponder{CannedResponder: fallback, generator: generator, logger: logger}
}

func persona(p domain.Participant) gemini.Persona {
	return gemini.Persona{Name: p.Name, BusinessName: p.BusinessName, Title: p.Title, Industries: p.Industries}
}

func (r *GeminiResponder) Greeting(ctx context.Context, counterpart domain.Participant) string {
	text, err := r.generator.GenerateGreeting(ctx, persona(counterpart))
	if err != nil {
		r.logger.Warn("gemini greeting failed, using canned text", "error", err)
		return r.CannedResponder.Greeting(ctx, counterpart)
	}
	return text
}

func (r *GeminiResponder) Reply(ctx context.Context, counterpart domain.Participant, incoming string) string {
	text, err := r.generator.GenerateReply(ctx, persona(counterpart), incoming)
	if err != nil {
		r.logger.Warn("gemini reply failed, using canned text", "error", err)
		return r.CannedResponder.Reply(ctx, counterpart, incoming)
	}
	return text
}

var (
	_ Responder     = (*CannedResponder)(nil)
	_ Responder     = (*GeminiResponder)(nil)
	_ TextGenerator = (*gemini.GeminiClient)(nil)
)
