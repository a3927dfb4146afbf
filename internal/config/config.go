package config

import (
	"time"

	pkgconfig "github.com/gasanadj/demo-rise360-backend/pkg/config"
	"github.com/gasanadj/demo-rise360-backend/pkg/mail"
	"github.com/gasanadj/demo-rise360-backend/pkg/storage"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	Chat      ChatConfig
	Storage   StorageConfig
	SMTP      mail.Config `mapstructure:"smtp"`
	Stripe    StripeConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

type WebSocketConfig struct {
	WriteWaitSeconds    int   `mapstructure:"write_wait_seconds"`
	PongWaitSeconds     int   `mapstructure:"pong_wait_seconds"`
	PingIntervalSeconds int   `mapstructure:"ping_interval_seconds"`
	MaxMessageSize      int64 `mapstructure:"max_message_size"`
}

func (c WebSocketConfig) WriteWait() time.Duration {
	return time.Duration(c.WriteWaitSeconds) * time.Second
}

func (c WebSocketConfig) PongWait() time.Duration {
	return time.Duration(c.PongWaitSeconds) * time.Second
}

func (c WebSocketConfig) PingInterval() time.Duration {
	return time.Duration(c.PingIntervalSeconds) * time.Second
}

type ChatConfig struct {
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
	MaxMessageChars int `mapstructure:"max_message_chars"`
}

type StorageConfig struct {
	Backend string // s3, local
	S3      storage.S3Config
	Local   storage.LocalConfig
}

type StripeConfig struct {
	SecretKey  string `mapstructure:"secret_key"`
	SuccessURL string `mapstructure:"success_url"`
	CancelURL  string `mapstructure:"cancel_url"`
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load(pkgconfig.GetEnv("CONFIG_PATH", "./config"), "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "rise360")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "./data/rise360.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.issuer", "rise360-backend")
	v.SetDefault("jwt.ttl_minutes", 60)
	v.SetDefault("websocket.write_wait_seconds", 10)
	v.SetDefault("websocket.pong_wait_seconds", 600)
	v.SetDefault("websocket.ping_interval_seconds", 54)
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("chat.cache_ttl_seconds", 300)
	v.SetDefault("chat.max_message_chars", 2000)
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local.base_path", "./uploads")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("log.level", "info")

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("jwt.secret", "TOKEN_SECRET")
	v.BindEnv("jwt.issuer", "JWT_ISSUER")
	v.BindEnv("jwt.ttl_minutes", "JWT_TTL_MINUTES")
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("storage.s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("storage.s3.region", "S3_REGION")
	v.BindEnv("storage.s3.bucket", "S3_BUCKET")
	v.BindEnv("storage.s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("storage.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("smtp.host", "SMTP_HOST")
	v.BindEnv("smtp.port", "SMTP_PORT")
	v.BindEnv("smtp.username", "SMTP_USERNAME")
	v.BindEnv("smtp.password", "SMTP_PASSWORD")
	v.BindEnv("smtp.from", "SMTP_FROM")
	v.BindEnv("stripe.secret_key", "STRIPE_PRIVATE_KEY")
	v.BindEnv("stripe.success_url", "STRIPE_SUCCESS_URL")
	v.BindEnv("stripe.cancel_url", "STRIPE_CANCEL_URL")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
