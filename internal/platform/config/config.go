package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full service configuration, read once at startup.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Notification NotificationConfig
	Partnership  PartnershipConfig
	LogLevel     slog.Level
}

// ServerConfig captures the operational HTTP surface (metrics, health).
type ServerConfig struct {
	Addr string
}

// DatabaseConfig selects Postgres; an empty URL runs the service in memory.
type DatabaseConfig struct {
	URL            string
	MigrateOnStart bool
	MaxOpenConns   int
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type KafkaConfig struct {
	Brokers            []string
	OpeningEventsTopic string
	NotificationsTopic string
	ConsumerGroup      string
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Notification sinks.
const (
	SinkLog   = "log"
	SinkKafka = "kafka"
	SinkRedis = "redis"
)

type NotificationConfig struct {
	Sink             string
	Stream           string
	StreamMaxLen     int64
	BufferSize       int
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

type PartnershipConfig struct {
	DefaultGroupCapacity int
	TxTimeout            time.Duration
}

// FromEnv builds Config from environment variables, loading a .env file first
// when one is present. Variables already set in the environment win.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Addr: envString("SERVER_ADDR", ":8080"),
		},
		Database: DatabaseConfig{
			URL:            os.Getenv("DATABASE_URL"),
			MigrateOnStart: envBool("DATABASE_MIGRATE_ON_START", true),
			MaxOpenConns:   envInt("DATABASE_MAX_OPEN_CONNS", 20),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:            envList("KAFKA_BROKERS"),
			OpeningEventsTopic: envString("KAFKA_OPENING_EVENTS_TOPIC", "opening.status"),
			NotificationsTopic: envString("KAFKA_NOTIFICATIONS_TOPIC", "partnership.notifications"),
			ConsumerGroup:      envString("KAFKA_CONSUMER_GROUP", "partnership-lifecycle"),
		},
		Notification: NotificationConfig{
			Sink:             strings.ToLower(envString("NOTIFICATION_SINK", SinkLog)),
			Stream:           envString("NOTIFICATION_STREAM", "partnership:notifications"),
			StreamMaxLen:     int64(envInt("NOTIFICATION_STREAM_MAX_LEN", 100_000)),
			BufferSize:       envInt("NOTIFICATION_BUFFER_SIZE", 1024),
			BreakerThreshold: envInt("NOTIFICATION_BREAKER_THRESHOLD", 5),
			BreakerCooldown:  envDuration("NOTIFICATION_BREAKER_COOLDOWN", 30*time.Second),
		},
		Partnership: PartnershipConfig{
			DefaultGroupCapacity: envInt("PARTNERSHIP_DEFAULT_GROUP_CAPACITY", 5),
			TxTimeout:            envDuration("PARTNERSHIP_TX_TIMEOUT", 5*time.Second),
		},
		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envLevel(key string, fallback slog.Level) slog.Level {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return fallback
	}
	return level
}
