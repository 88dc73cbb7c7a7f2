package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/buildline/buildline/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Cache      CacheConfig
	Sentry     SentryConfig
	Jobs       JobsConfig `validate:"required"`
	Recalc     RecalcConfig
	Billing    BillingConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required,oneof=local api worker"`
}

type ServerConfig struct {
	Address        string   `validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string `validate:"required"`
	Port                   int    `validate:"required"`
	User                   string `validate:"required"`
	Password               string
	DBName                 string `mapstructure:"dbname" validate:"required"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
	// EnableRLS sets app.current_organization on every tenant transaction
	EnableRLS bool `mapstructure:"enable_rls"`
}

type AuthConfig struct {
	Secret   string        `validate:"required"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type JobsConfig struct {
	PubSub types.PubSubType `mapstructure:"pubsub" validate:"required"`
	Topic  string           `validate:"required"`
	// MaxRetries is how many times a failing job is re-delivered before poison
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64
	PoisonTopic     string `mapstructure:"poison_topic"`
	Kafka           KafkaConfig
}

// KafkaConfig is only read when jobs.pubsub is kafka
type KafkaConfig struct {
	Brokers       []string
	ConsumerGroup string `mapstructure:"consumer_group"`
	ClientID      string `mapstructure:"client_id"`
	TLS           bool
	UseSASL       bool   `mapstructure:"use_sasl"`
	SASLMechanism string `mapstructure:"sasl_mechanism"`
	SASLUser      string `mapstructure:"sasl_user"`
	SASLPassword  string `mapstructure:"sasl_password"`
}

type RecalcConfig struct {
	MaxRetries      uint64        `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
}

type BillingConfig struct {
	WebhookSecret string `mapstructure:"webhook_secret"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/buildline")

	v.SetEnvPrefix("BUILDLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("jobs.pubsub", types.MemoryPubSub)
	v.SetDefault("jobs.topic", "jobs")
	v.SetDefault("jobs.poison_topic", "jobs_poison")
	v.SetDefault("jobs.max_retries", 3)
	v.SetDefault("jobs.initial_interval", 5*time.Second)
	v.SetDefault("jobs.max_interval", 5*time.Second)
	v.SetDefault("jobs.multiplier", 1.0)
	v.SetDefault("jobs.kafka.consumer_group", "buildline-jobs")
	v.SetDefault("jobs.kafka.client_id", "buildline")
	v.SetDefault("recalc.max_retries", 3)
	v.SetDefault("recalc.initial_interval", 50*time.Millisecond)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a configuration for local development, scripts and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Auth:       AuthConfig{Secret: "local-dev-secret", TokenTTL: 24 * time.Hour},
		Cache:      CacheConfig{Enabled: true, TTL: 5 * time.Minute},
		Jobs: JobsConfig{
			PubSub:          types.MemoryPubSub,
			Topic:           "jobs",
			PoisonTopic:     "jobs_poison",
			MaxRetries:      3,
			InitialInterval: 5 * time.Second,
			MaxInterval:     5 * time.Second,
			Multiplier:      1,
		},
		Recalc: RecalcConfig{MaxRetries: 3, InitialInterval: 50 * time.Millisecond},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
