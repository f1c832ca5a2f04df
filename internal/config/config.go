package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	ResponderCanned = "canned"
	ResponderGemini = "gemini"
)

type Config struct {
	Server       ServerConfig
	Storage      StorageConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Limits       LimitsConfig
	Goals        GoalsConfig
	Messaging    MessagingConfig
	Wallet       WalletConfig
	Logging      LoggingConfig
	Location     *time.Location
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StorageConfig struct {
	Type string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// LimitsConfig holds the free tier caps and auto-match tuning.
type LimitsConfig struct {
	FreeDailySwipes   int
	FreeDailyMatches  int
	AutoMatchMinScore int
	AutoMatchInterval time.Duration
}

type GoalsConfig struct {
	DiscountThreshold int
	MonthlyReset      bool
}

type MessagingConfig struct {
	GreetingDelay time.Duration
	ReplyMinDelay time.Duration
	ReplyMaxDelay time.Duration
	Seed          int64
	Responder     string
}

type WalletConfig struct {
	StartingCoins      int64
	GiftRecipientShare float64
}

type LoggingConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("STORAGE_TYPE", StorageMemory)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("JWT_EXPIRY_HOURS", 168)
	v.SetDefault("FREE_DAILY_SWIPES", 50)
	v.SetDefault("FREE_DAILY_MATCHES", 3)
	v.SetDefault("AUTO_MATCH_MIN_SCORE", 70)
	v.SetDefault("AUTO_MATCH_INTERVAL", "20m")
	v.SetDefault("DISCOUNT_THRESHOLD", 175)
	v.SetDefault("MONTHLY_GOAL_RESET", true)
	v.SetDefault("GREETING_DELAY", "1s")
	v.SetDefault("REPLY_MIN_DELAY", "2s")
	v.SetDefault("REPLY_MAX_DELAY", "5s")
	v.SetDefault("RESPONDER_SEED", 0)
	v.SetDefault("RESPONDER", ResponderCanned)
	v.SetDefault("STARTING_COINS", 12475)
	v.SetDefault("GIFT_RECIPIENT_SHARE", 0.7)
	v.SetDefault("TZ", "Local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("TZ"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", v.GetString("TZ"), err)
	}

	config := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Type: strings.ToLower(v.GetString("STORAGE_TYPE")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Limits: LimitsConfig{
			FreeDailySwipes:   v.GetInt("FREE_DAILY_SWIPES"),
			FreeDailyMatches:  v.GetInt("FREE_DAILY_MATCHES"),
			AutoMatchMinScore: v.GetInt("AUTO_MATCH_MIN_SCORE"),
			AutoMatchInterval: v.GetDuration("AUTO_MATCH_INTERVAL"),
		},
		Goals: GoalsConfig{
			DiscountThreshold: v.GetInt("DISCOUNT_THRESHOLD"),
			MonthlyReset:      v.GetBool("MONTHLY_GOAL_RESET"),
		},
		Messaging: MessagingConfig{
			GreetingDelay: v.GetDuration("GREETING_DELAY"),
			ReplyMinDelay: v.GetDuration("REPLY_MIN_DELAY"),
			ReplyMaxDelay: v.GetDuration("REPLY_MAX_DELAY"),
			Seed:          v.GetInt64("RESPONDER_SEED"),
			Responder:     strings.ToLower(v.GetString("RESPONDER")),
		},
		Wallet: WalletConfig{
			StartingCoins:      v.GetInt64("STARTING_COINS"),
			GiftRecipientShare: v.GetFloat64("GIFT_RECIPIENT_SHARE"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Location:     loc,
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case StorageRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("redis host is required")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("JWT expiry must be positive")
	}

	if c.Limits.FreeDailySwipes <= 0 || c.Limits.FreeDailyMatches <= 0 {
		return fmt.Errorf("free tier limits must be positive")
	}
	if c.Limits.AutoMatchMinScore < 0 || c.Limits.AutoMatchMinScore > 100 {
		return fmt.Errorf("auto-match min score must be within 0..100")
	}
	if c.Limits.AutoMatchInterval <= 0 {
		return fmt.Errorf("auto-match interval must be positive")
	}
	if c.Goals.DiscountThreshold <= 0 {
		return fmt.Errorf("discount threshold must be positive")
	}

	if c.Messaging.ReplyMinDelay > c.Messaging.ReplyMaxDelay {
		return fmt.Errorf("reply min delay must not exceed reply max delay")
	}
	switch c.Messaging.Responder {
	case ResponderCanned:
	case ResponderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini responder")
		}
	default:
		return fmt.Errorf("unknown responder %q", c.Messaging.Responder)
	}

	if c.Wallet.StartingCoins < 0 {
		return fmt.Errorf("starting coins must not be negative")
	}
	if c.Wallet.GiftRecipientShare < 0 || c.Wallet.GiftRecipientShare > 1 {
		return fmt.Errorf("gift recipient share must be within 0..1")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}
