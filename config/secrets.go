package config

import (
	// Go Internal Packages
	"os"
	"strings"
)

// LoadSecrets overrides connection settings from the environment.
func LoadSecrets(c Config) Config {
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("REDIS_URI"); v != "" {
		c.Redis.URI = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("IS_PROD_MODE"); v != "" {
		c.IsProdMode = v == "true"
	}
	return c
}
