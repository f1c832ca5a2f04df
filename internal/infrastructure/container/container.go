package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alliyn/alliyn-backend/internal/config"
	"github.com/alliyn/alliyn-backend/internal/delivery/http"
	"github.com/alliyn/alliyn-backend/internal/delivery/http/handler"
	"github.com/alliyn/alliyn-backend/internal/delivery/http/middleware"
	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/events"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/database"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/gemini"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/scheduler"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/server"
	"github.com/alliyn/alliyn-backend/internal/repository"
	"github.com/alliyn/alliyn-backend/internal/repository/kvstore"
	"github.com/alliyn/alliyn-backend/internal/repository/memory"
	"github.com/alliyn/alliyn-backend/internal/repository/postgres"
	redisrepo "github.com/alliyn/alliyn-backend/internal/repository/redis"
	"github.com/alliyn/alliyn-backend/internal/usecase/account"
	"github.com/alliyn/alliyn-backend/internal/usecase/auth"
	"github.com/alliyn/alliyn-backend/internal/usecase/deals"
	"github.com/alliyn/alliyn-backend/internal/usecase/feed"
	"github.com/alliyn/alliyn-backend/internal/usecase/goals"
	"github.com/alliyn/alliyn-backend/internal/usecase/messaging"
	"github.com/alliyn/alliyn-backend/internal/usecase/notification"
	"github.com/alliyn/alliyn-backend/internal/usecase/swipe"
	"github.com/alliyn/alliyn-backend/internal/usecase/userstate"
	"github.com/alliyn/alliyn-backend/internal/usecase/wallet"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  clock.Clock
	DB     *sqlx.DB
	Redis  *redis.Client
	KV     repository.KeyValueStore
	Bus    *events.Bus
	Gemini *gemini.GeminiClient
	Router *gin.Engine
	Server *server.Server

	Account   *account.AccountUseCase
	Swipe     *swipe.SwipeUseCase
	Messaging *messaging.MessagingUseCase

	scheduler *scheduler.Scheduler
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	return build(ctx, cfg, logger, clock.NewReal(cfg.Location))
}

func build(ctx context.Context, cfg *config.Config, logger *slog.Logger, clk clock.Clock) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Clock:  clk,
		Bus:    events.NewBus(),
	}

	profileRepo, err := c.initStorage(ctx)
	if err != nil {
		return nil, err
	}

	responder, err := c.initResponder(ctx)
	if err != nil {
		c.closeStorage()
		return nil, err
	}

	// Initialize repositories
	userRepo := kvstore.NewUserRepository(c.KV, logger)
	swipeRepo := kvstore.NewSwipeRepository(c.KV, logger)
	matchRepo := kvstore.NewMatchRepository(c.KV, logger)
	goalRepo := kvstore.NewGoalRepository(c.KV, logger)
	inboxRepo := kvstore.NewInboxRepository(c.KV, logger)
	walletRepo := kvstore.NewWalletRepository(c.KV, logger, cfg.Wallet.StartingCoins)
	dealRepo := kvstore.NewDealRepository(c.KV, logger)
	notificationRepo := kvstore.NewNotificationRepository(c.KV, logger)

	// Initialize use cases
	users := userstate.NewStore(userRepo, clk)
	limits := domain.Limits{
		DailySwipes:  cfg.Limits.FreeDailySwipes,
		DailyMatches: cfg.Limits.FreeDailyMatches,
	}

	goalsUseCase := goals.NewGoalsUseCase(goalRepo, clk, c.Bus, goals.Config{
		DiscountThreshold: cfg.Goals.DiscountThreshold,
		MonthlyReset:      cfg.Goals.MonthlyReset,
	}, logger)

	c.Messaging = messaging.NewMessagingUseCase(inboxRepo, goalsUseCase, responder, clk, c.Bus, logger)

	c.Swipe = swipe.NewSwipeUseCase(
		users,
		profileRepo,
		swipeRepo,
		matchRepo,
		goalsUseCase,
		c.Messaging,
		c.Bus,
		swipe.Config{Limits: limits, AutoMatchMinScore: cfg.Limits.AutoMatchMinScore},
		logger,
	)

	feedUseCase := feed.NewFeedUseCase(users, profileRepo, swipeRepo, matchRepo, logger)

	walletUseCase := wallet.NewWalletUseCase(walletRepo, matchRepo, users, wallet.Config{
		RecipientShare: cfg.Wallet.GiftRecipientShare,
	}, logger)

	c.Account = account.NewAccountUseCase(users, goalsUseCase, goalsUseCase, walletUseCase, limits, logger)

	dealsUseCase := deals.NewDealsUseCase(dealRepo, users, goalsUseCase, c.Bus, logger)

	notificationUseCase := notification.NewNotificationUseCase(notificationRepo, logger)
	notificationUseCase.Subscribe(c.Bus)

	authUseCase := auth.NewTokenAuthUseCase(
		c.Account,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour,
		clk,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase, c.Account, logger)
	profileHandler := handler.NewProfileHandler(c.Account, logger)
	feedHandler := handler.NewFeedHandler(feedUseCase, logger)
	swipeHandler := handler.NewSwipeHandler(c.Swipe, logger)
	goalsHandler := handler.NewGoalsHandler(goalsUseCase, clk, logger)
	conversationHandler := handler.NewConversationHandler(c.Messaging, logger)
	walletHandler := handler.NewWalletHandler(walletUseCase, logger)
	dealsHandler := handler.NewDealsHandler(dealsUseCase, logger)
	notificationHandler := handler.NewNotificationHandler(notificationUseCase, logger)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		feedHandler,
		swipeHandler,
		goalsHandler,
		conversationHandler,
		walletHandler,
		dealsHandler,
		notificationHandler,
		authMiddleware,
	)

	c.Router = router.Setup()
	c.Server = server.NewServer(&cfg.Server, c.Router, logger)
	c.scheduler = scheduler.New(clk, logger)

	return c, nil
}

// initStorage opens the configured key-value backend and the profile pool.
func (c *Container) initStorage(ctx context.Context) (repository.ProfileRepository, error) {
	switch c.Config.Storage.Type {
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(&c.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.ApplyMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		profileRepo := postgres.NewProfileRepository(db)
		seeded, err := postgres.SeedIfEmpty(ctx, profileRepo, db, memory.SeedProfiles())
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed profiles: %w", err)
		}
		if seeded > 0 {
			c.Logger.Info("profile pool seeded", "profiles", seeded)
		}
		c.DB = db
		c.KV = postgres.NewKeyValueStore(db)
		return profileRepo, nil

	case config.StorageRedis:
		client, err := database.NewRedisClient(&c.Config.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = client
		c.KV = redisrepo.NewKeyValueStore(client)

	default:
		c.KV = memory.NewKeyValueStore()
	}
	return memory.NewProfileRepository(memory.SeedProfiles()), nil
}

func (c *Container) initResponder(ctx context.Context) (messaging.Responder, error) {
	canned := messaging.NewCannedResponder(c.Config.Messaging.Seed, messaging.DelayConfig{
		Greeting: c.Config.Messaging.GreetingDelay,
		ReplyMin: c.Config.Messaging.ReplyMinDelay,
		ReplyMax: c.Config.Messaging.ReplyMaxDelay,
	})
	if c.Config.Messaging.Responder != config.ResponderGemini {
		return canned, nil
	}

	geminiClient, err := gemini.NewGeminiClient(ctx, c.Config.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}
	c.Gemini = geminiClient
	return messaging.NewGeminiResponder(geminiClient, canned, c.Logger), nil
}

// StartJobs arms the midnight reset and the premium auto-match sweep.
func (c *Container) StartJobs() {
	c.scheduler.AtMidnight("daily-reset", c.Account.ResetDaily)
	if c.Config.Limits.AutoMatchInterval > 0 {
		c.scheduler.Every("auto-match", c.Config.Limits.AutoMatchInterval, c.Swipe.AutoMatchAll)
	}
}

func (c *Container) closeStorage() error {
	if c.KV == nil {
		return nil
	}
	return c.KV.Close()
}

// Close stops background work and closes all connections
func (c *Container) Close() error {
	if c.scheduler != nil {
		c.scheduler.Stop()
	}
	if c.Messaging != nil {
		c.Messaging.Stop()
	}

	var errs []error
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close gemini client: %w", err))
		}
	}
	if err := c.closeStorage(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}
	return errors.Join(errs...)
}
