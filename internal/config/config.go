package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	Server    Server
	Storage   Storage
	Analytics Analytics
	Funnel    Funnel
	LogLevel  string
	AppEnv    string
}

type Server struct {
	Port        string
	CORSOrigins string
}

type Storage struct {
	Driver      string
	TTL         time.Duration
	RedisAddr   string
	DatabaseURL string
}

type Analytics struct {
	WriteKey     string
	APIURL       string
	AMQPURL      string
	AMQPExchange string
	QueueSize    int
}

type Funnel struct {
	VisitorSecret    string
	SessionTTL       time.Duration
	AnalysisDuration time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("STORAGE_TTL", "720h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("ANALYTICS_WRITE_KEY", "YOUR_MIXPANEL_TOKEN")
	v.SetDefault("ANALYTICS_API_URL", "https://api.mixpanel.com")
	v.SetDefault("AMQP_EXCHANGE", "funnel.events")
	v.SetDefault("ANALYTICS_QUEUE_SIZE", 1024)
	v.SetDefault("VISITOR_SECRET", "change-me-visitor-secret")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("ANALYSIS_DURATION", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "development")
}

// NewConfig reads the configuration from the environment, with an optional
// .env file in the working directory.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Debug().Err(err).Msg("No config file read, using environment")
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var config Config

	config.Server.Port = v.GetString("PORT")
	config.Server.CORSOrigins = v.GetString("CORS_ORIGINS")

	config.Storage.Driver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	config.Storage.TTL = v.GetDuration("STORAGE_TTL")
	config.Storage.RedisAddr = v.GetString("REDIS_ADDR")
	config.Storage.DatabaseURL = v.GetString("DATABASE_URL")

	config.Analytics.WriteKey = v.GetString("ANALYTICS_WRITE_KEY")
	config.Analytics.APIURL = v.GetString("ANALYTICS_API_URL")
	config.Analytics.AMQPURL = v.GetString("AMQP_URL")
	config.Analytics.AMQPExchange = v.GetString("AMQP_EXCHANGE")
	config.Analytics.QueueSize = v.GetInt("ANALYTICS_QUEUE_SIZE")

	config.Funnel.VisitorSecret = v.GetString("VISITOR_SECRET")
	config.Funnel.SessionTTL = v.GetDuration("SESSION_TTL")
	config.Funnel.AnalysisDuration = v.GetDuration("ANALYSIS_DURATION")

	config.LogLevel = v.GetString("LOG_LEVEL")
	config.AppEnv = v.GetString("APP_ENV")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("storage_driver", config.Storage.Driver).
		Str("app_env", config.AppEnv).
		Bool("amqp_enabled", config.Analytics.AMQPURL != "").
		Bool("event_log_enabled", config.Storage.DatabaseURL != "").
		Msg("Config loaded")
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("STORAGE_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Funnel.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Funnel.AnalysisDuration <= 0 {
		return fmt.Errorf("ANALYSIS_DURATION must be positive")
	}
	if c.Funnel.VisitorSecret == "" {
		return fmt.Errorf("VISITOR_SECRET must not be empty")
	}
	return nil
}

// IsDevelopment reports whether logs should be human readable.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "" || c.AppEnv == "development"
}
