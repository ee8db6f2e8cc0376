package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AuthModeJWT    = "jwt"
	AuthModeHeader = "header"

	DeliveryOutbox = "outbox"
	DeliveryDirect = "direct"
)

type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string

	DB        DatabaseConfig
	RedisAddr string

	KafkaBroker            string
	KafkaNotificationTopic string
	KafkaConsumerGroup     string

	JWTSecret   string
	AuthMode    string
	CORSOrigins []string

	LogLevel  string
	LogFormat string
	LogFile   string

	HolidayCountry       string
	NotificationDelivery string
	SeedDemoData         bool

	RateLimitRPS   float64
	RateLimitBurst int

	OutboxPollInterval time.Duration
	OutboxRetention    time.Duration
	OutboxPurgeSpec    string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	SQLitePath string
	MaxRetries int
}

func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "leave-planner")
	v.SetDefault("APP_VERSION", "dev")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "leave_planner")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "leaveplanner.db")
	v.SetDefault("DB_MAX_RETRIES", 5)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("KAFKA_NOTIFICATION_TOPIC", "leave.notification.v1")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "leave-planner-notifications")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_MODE", AuthModeJWT)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_FILE", "")

	v.SetDefault("HOLIDAY_COUNTRY", "DE")
	v.SetDefault("NOTIFICATION_DELIVERY", DeliveryOutbox)
	v.SetDefault("SEED_DEMO_DATA", false)

	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	v.SetDefault("OUTBOX_POLL_INTERVAL", "3s")
	v.SetDefault("OUTBOX_RETENTION", "168h")
	v.SetDefault("OUTBOX_PURGE_SPEC", "@hourly")
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppName:     v.GetString("APP_NAME"),
		AppVersion:  v.GetString("APP_VERSION"),
		Environment: v.GetString("APP_ENV"),
		Port:        v.GetString("PORT"),
		DB: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			Host:       v.GetString("DB_HOST"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			Port:       v.GetString("DB_PORT"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			SQLitePath: v.GetString("SQLITE_PATH"),
			MaxRetries: v.GetInt("DB_MAX_RETRIES"),
		},
		RedisAddr:              v.GetString("REDIS_ADDR"),
		KafkaBroker:            v.GetString("KAFKA_BROKER"),
		KafkaNotificationTopic: v.GetString("KAFKA_NOTIFICATION_TOPIC"),
		KafkaConsumerGroup:     v.GetString("KAFKA_CONSUMER_GROUP"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		AuthMode:               strings.ToLower(v.GetString("AUTH_MODE")),
		CORSOrigins:            splitList(v.GetString("CORS_ORIGINS")),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LogFormat:              v.GetString("LOG_FORMAT"),
		LogFile:                v.GetString("LOG_FILE"),
		HolidayCountry:         strings.ToUpper(v.GetString("HOLIDAY_COUNTRY")),
		NotificationDelivery:   strings.ToLower(v.GetString("NOTIFICATION_DELIVERY")),
		SeedDemoData:           v.GetBool("SEED_DEMO_DATA"),
		RateLimitRPS:           v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:         v.GetInt("RATE_LIMIT_BURST"),
		OutboxPollInterval:     v.GetDuration("OUTBOX_POLL_INTERVAL"),
		OutboxRetention:        v.GetDuration("OUTBOX_RETENTION"),
		OutboxPurgeSpec:        v.GetString("OUTBOX_PURGE_SPEC"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.AuthMode {
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=%s", AuthModeJWT)
		}
	case AuthModeHeader:
		if c.IsProduction() {
			return fmt.Errorf("AUTH_MODE=%s is not allowed in production", AuthModeHeader)
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE %q", c.AuthMode)
	}
	switch c.NotificationDelivery {
	case DeliveryOutbox, DeliveryDirect:
	default:
		return fmt.Errorf("unsupported NOTIFICATION_DELIVERY %q", c.NotificationDelivery)
	}
	if c.NotificationDelivery == DeliveryOutbox && c.DB.Driver == DriverSQLite {
		return fmt.Errorf("NOTIFICATION_DELIVERY=%s requires DB_DRIVER=%s", DeliveryOutbox, DriverPostgres)
	}
	if c.DB.MaxRetries < 1 {
		c.DB.MaxRetries = 1
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
