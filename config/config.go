package config

import (
	// Go Internal Packages
	"time"

	// Local Packages
	errors "network-ops/errors"
)

var DefaultConfig = []byte(`
application: "network-ops"

logger:
  level: "info"

is_prod_mode: false

mongo:
  uri: "mongodb://localhost:27017"
  database: "network"
  timeout: "5s"

redis:
  uri: "localhost:6379"
  password: ""
  db: 0
  lock_ttl: "30s"

kafka:
  brokers:
    - "localhost:9092"
  consume: true
  settlement_topic: "operation-settlements"
  events_topic: "operation-events"
  records_per_poll: 500
  consumer_name: "network-ops"

operations:
  max_page_size: 100

metrics:
  addr: ":9102"
`)

type Config struct {
	Application string     `koanf:"application"`
	Logger      Logger     `koanf:"logger"`
	IsProdMode  bool       `koanf:"is_prod_mode"`
	Mongo       Mongo      `koanf:"mongo"`
	Redis       Redis      `koanf:"redis"`
	Kafka       Kafka      `koanf:"kafka"`
	Operations  Operations `koanf:"operations"`
	Metrics     Metrics    `koanf:"metrics"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Mongo struct {
	URI      string        `koanf:"uri"`
	Database string        `koanf:"database"`
	Timeout  time.Duration `koanf:"timeout"`
}

type Redis struct {
	URI      string        `koanf:"uri"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	LockTTL  time.Duration `koanf:"lock_ttl"`
}

type Kafka struct {
	Brokers         []string `koanf:"brokers"`
	Consume         bool     `koanf:"consume"`
	SettlementTopic string   `koanf:"settlement_topic"`
	EventsTopic     string   `koanf:"events_topic"`
	RecordsPerPoll  int      `koanf:"records_per_poll"`
	ConsumerName    string   `koanf:"consumer_name"`
}

type Operations struct {
	MaxPageSize int `koanf:"max_page_size"`
}

type Metrics struct {
	Addr string `koanf:"addr"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if c.Mongo.URI == "" {
		ve.Add("mongo.uri", "cannot be empty")
	}
	if c.Mongo.Database == "" {
		ve.Add("mongo.database", "cannot be empty")
	}
	if c.Mongo.Timeout <= 0 {
		ve.Add("mongo.timeout", "must be positive")
	}
	if c.Redis.URI == "" {
		ve.Add("redis.uri", "cannot be empty")
	}
	if c.Redis.LockTTL <= 0 {
		ve.Add("redis.lock_ttl", "must be positive")
	}
	if len(c.Kafka.Brokers) == 0 {
		ve.Add("kafka.brokers", "cannot be empty")
	}
	if c.Kafka.Consume && c.Kafka.SettlementTopic == "" {
		ve.Add("kafka.settlement_topic", "cannot be empty when consuming")
	}
	if c.Kafka.RecordsPerPoll <= 0 {
		ve.Add("kafka.records_per_poll", "must be positive")
	}
	if c.Operations.MaxPageSize <= 0 {
		ve.Add("operations.max_page_size", "must be positive")
	}

	return ve.Err()
}
