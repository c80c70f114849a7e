package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"BubbleIndex/pkg/util"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	SourceFile    = "file"
	SourceHTTP    = "http"
	SourceBrowser = "browser"

	SinkFile  = "file"
	SinkRedis = "redis"
	SinkKafka = "kafka"
)

type Config struct {
	Environment string `yaml:"environment" toml:"environment" default:"development" validate:"required"`
	Log         struct {
		Level  string `yaml:"level" toml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" toml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" toml:"output" default:"stdout"`
	} `yaml:"log" toml:"log"`
	Source struct {
		Kind  string            `yaml:"kind" toml:"kind" default:"file" validate:"oneof=file http browser"`
		Dir   string            `yaml:"dir" toml:"dir" default:"."`
		Files map[string]string `yaml:"files" toml:"files"`
		HTTP  struct {
			URLs         map[string]string `yaml:"urls" toml:"urls"`
			UserAgent    string            `yaml:"user_agent" toml:"user_agent"`
			Headers      map[string]string `yaml:"headers" toml:"headers"`
			Timeout      Duration          `yaml:"timeout" toml:"timeout" default:"30s"`
			MaxBodyBytes int64             `yaml:"max_body_bytes" toml:"max_body_bytes" default:"33554432" validate:"gte=1024"`
			Burst        float64           `yaml:"burst" toml:"burst" default:"2" validate:"gte=1"`
			RatePerSec   float64           `yaml:"rate_per_sec" toml:"rate_per_sec" default:"0.5" validate:"gte=0"`
		} `yaml:"http" toml:"http"`
	} `yaml:"source" toml:"source"`
	Pipeline struct {
		Epoch        string  `yaml:"epoch" toml:"epoch" default:"2010/07/17" validate:"required"`
		GrowthWindow int     `yaml:"growth_window" toml:"growth_window" default:"60" validate:"gte=1"`
		SocialGapEnd string  `yaml:"social_gap_end" toml:"social_gap_end" default:"2014/04/09" validate:"required"`
		SocialInit   float64 `yaml:"social_gap_init" toml:"social_gap_init" default:"300" validate:"gt=0"`
		SocialScale  float64 `yaml:"social_gap_scale" toml:"social_gap_scale" default:"0.002"`
	} `yaml:"pipeline" toml:"pipeline"`
	Output struct {
		Path     string `yaml:"path" toml:"path" default:"data.json" validate:"required"`
		Variable string `yaml:"variable" toml:"variable" default:"data" validate:"required"`
	} `yaml:"output" toml:"output"`
	Sink struct {
		Targets []string `yaml:"targets" toml:"targets" default:"[\"file\"]" validate:"min=1,dive,oneof=file redis kafka"`
	} `yaml:"sink" toml:"sink"`
	Redis struct {
		Addr     string   `yaml:"addr" toml:"addr" default:"localhost:6379"`
		Password string   `yaml:"password" toml:"password"`
		DB       int      `yaml:"db" toml:"db" validate:"gte=0"`
		Key      string   `yaml:"key" toml:"key" default:"bubble:latest"`
		Prefix   string   `yaml:"prefix" toml:"prefix"`
		PoolSize int      `yaml:"pool_size" toml:"pool_size" default:"4"`
		Timeout  Duration `yaml:"timeout" toml:"timeout" default:"5s"`
	} `yaml:"redis" toml:"redis"`
	Kafka struct {
		Brokers      []string `yaml:"brokers" toml:"brokers"`
		Topic        string   `yaml:"topic" toml:"topic" default:"bubble.index"`
		Key          string   `yaml:"key" toml:"key" default:"latest"`
		RequiredAcks int      `yaml:"required_acks" toml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" toml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		MaxAttempts  int      `yaml:"max_attempts" toml:"max_attempts" default:"3"`
		BatchBytes   int      `yaml:"batch_bytes" toml:"batch_bytes" default:"16777216" validate:"gte=1048576"`
		WriteTimeout Duration `yaml:"write_timeout" toml:"write_timeout" default:"10s"`
	} `yaml:"kafka" toml:"kafka"`
	Server struct {
		Host            string   `yaml:"host" toml:"host" default:"0.0.0.0"`
		Port            int      `yaml:"port" toml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout" default:"10s"`
		WriteTimeout    Duration `yaml:"write_timeout" toml:"write_timeout" default:"10s"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout" default:"10s"`
		CacheTTL        Duration `yaml:"cache_ttl" toml:"cache_ttl" default:"30s"`
	} `yaml:"server" toml:"server"`
	Metrics struct {
		Enabled        bool   `yaml:"enabled" toml:"enabled" default:"true"`
		PushgatewayURL string `yaml:"pushgateway_url" toml:"pushgateway_url"`
		Job            string `yaml:"job" toml:"job" default:"bubble_index"`
	} `yaml:"metrics" toml:"metrics"`
}

var validate = validator.New()

// Default returns a config populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads a YAML (.yaml/.yml) or TOML (.toml) configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c, err := Default()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, c)
	default:
		err = yaml.Unmarshal(b, c)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads envFile (if present) into the process environment, then the config
// at path (or defaults when path is empty), and applies environment overrides.
func LoadWithEnv(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var (
		c   *Config
		err error
	)
	if path != "" {
		c, err = Load(path)
	} else {
		c, err = Default()
	}
	if err != nil {
		return nil, err
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("BUBBLE_SOURCE_KIND"); v != "" {
		c.Source.Kind = v
	}
	if v := os.Getenv("BUBBLE_SOURCE_DIR"); v != "" {
		c.Source.Dir = v
	}
	if v := os.Getenv("BUBBLE_OUTPUT_PATH"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("BUBBLE_SINK"); v != "" {
		c.Sink.Targets = splitList(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PUSHGATEWAY_URL"); v != "" {
		c.Metrics.PushgatewayURL = v
	}
	return nil
}

// Validate checks struct tags and the rules that span fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	epoch, err := util.ParseDay(c.Pipeline.Epoch)
	if err != nil {
		return fmt.Errorf("pipeline.epoch: %w", err)
	}
	gapEnd, err := util.ParseDay(c.Pipeline.SocialGapEnd)
	if err != nil {
		return fmt.Errorf("pipeline.social_gap_end: %w", err)
	}
	if gapEnd.Before(epoch) {
		return fmt.Errorf("pipeline.social_gap_end %s is before epoch %s", c.Pipeline.SocialGapEnd, c.Pipeline.Epoch)
	}

	for _, t := range c.Sink.Targets {
		switch t {
		case SinkKafka:
			if len(c.Kafka.Brokers) == 0 {
				return fmt.Errorf("kafka.brokers are required for the kafka sink")
			}
			if c.Kafka.Topic == "" {
				return fmt.Errorf("kafka.topic is required for the kafka sink")
			}
		case SinkRedis:
			if c.Redis.Addr == "" {
				return fmt.Errorf("redis.addr is required for the redis sink")
			}
		}
	}
	return nil
}

// HasSink reports whether target is among the configured sinks.
func (c *Config) HasSink(target string) bool {
	for _, t := range c.Sink.Targets {
		if t == target {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
