package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Processor ProcessorConfig `mapstructure:"processor"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Poll      PollConfig      `mapstructure:"poll"`
	Chart     ChartConfig     `mapstructure:"chart"`
	Source    SourceConfig    `mapstructure:"source"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"` // e.g., "local", "prod"
}

type LoggerConfig struct {
	Level    string `mapstructure:"level"`    // debug, info, warn, error
	Encoding string `mapstructure:"encoding"` // json or console
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

type ProcessorConfig struct {
	NumWorkers int `mapstructure:"num_workers"`
}

type GeneratorConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// PollConfig is the rate polling cadence of a dashboard view.
type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ChartConfig struct {
	QuietPeriod time.Duration `mapstructure:"quiet_period"`
	Bars        int           `mapstructure:"bars"`
	BarInterval time.Duration `mapstructure:"bar_interval"`
}

// SourceConfig selects the quote source. Live reads the processor's Redis
// keyspace; otherwise quotes are synthesized in-process.
type SourceConfig struct {
	Live bool `mapstructure:"live"`
}

type AuthConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

type GatewayConfig struct {
	// ValidSymbols restricts what clients may subscribe to. Empty means every
	// sourced and derived symbol is accepted.
	ValidSymbols []string `mapstructure:"valid_symbols"`
}

// LoadConfig reads configuration from .env file, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. Load .env file into System Environment (if it exists)
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, relying on System Env Vars")
	}

	// 2. Set Defaults
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.env", "local")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "rate_ticks")
	v.SetDefault("kafka.group_id", "rate-processor-group")

	v.SetDefault("processor.num_workers", 4)
	v.SetDefault("generator.interval", "1s")

	v.SetDefault("poll.interval", "1000ms")

	v.SetDefault("chart.quiet_period", "500ms")
	v.SetDefault("chart.bars", 60)
	v.SetDefault("chart.bar_interval", "1m")

	v.SetDefault("source.live", false)
	v.SetDefault("auth.credentials_file", "login.csv")
	v.SetDefault("gateway.valid_symbols", []string{})

	// 3. Configure Viper to read Environment Variables
	// This maps dot-notation to underscores (e.g., "poll.interval" -> "POLL_INTERVAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Explicitly Bind Env Vars to Keys
	bindEnv(v, "app.port", "app.env")
	bindEnv(v, "logger.level", "logger.encoding")
	bindEnv(v, "redis.addr", "redis.password", "redis.db")
	bindEnv(v, "kafka.brokers", "kafka.topic", "kafka.group_id")
	bindEnv(v, "processor.num_workers", "generator.interval", "poll.interval")
	bindEnv(v, "chart.quiet_period", "chart.bars", "chart.bar_interval")
	bindEnv(v, "source.live", "auth.credentials_file", "gateway.valid_symbols")

	// 5. Unmarshal into Struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the binaries cannot run with.
func (c *Config) Validate() error {
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers cannot be empty")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.Poll.Interval)
	}
	if c.Chart.QuietPeriod <= 0 {
		return fmt.Errorf("chart quiet period must be positive, got %s", c.Chart.QuietPeriod)
	}
	if c.Chart.Bars <= 0 {
		return fmt.Errorf("chart bars must be positive, got %d", c.Chart.Bars)
	}
	if c.Processor.NumWorkers <= 0 {
		return fmt.Errorf("processor workers must be positive, got %d", c.Processor.NumWorkers)
	}
	return nil
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}
