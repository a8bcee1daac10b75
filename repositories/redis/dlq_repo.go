package redis

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "network-ops/models"

	// External Packages
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type DeadLetterQueue struct {
	client   *redis.Client
	logger   *zap.Logger
	listName string
}

func NewDeadLetterQueue(client *redis.Client, logger *zap.Logger) *DeadLetterQueue {
	return &DeadLetterQueue{client: client, logger: logger, listName: "failed-settlements"}
}

type deadLetter struct {
	Key   string          `json:"key"`
	Topic string          `json:"topic"`
	Value json.RawMessage `json:"value"`
}

// Send appends the failed records to the dead letter list in one round trip.
func (r *DeadLetterQueue) Send(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	values := make([]any, 0, len(records))
	for _, record := range records {
		entry := deadLetter{Key: string(record.Key), Topic: record.Topic, Value: record.Value}
		if !json.Valid(record.Value) {
			// keep undecodable payloads as a JSON string
			quoted, _ := json.Marshal(string(record.Value))
			entry.Value = quoted
		}
		data, err := json.Marshal(entry)
		if err != nil {
			r.logger.Error("failed to marshal record", zap.String("key", entry.Key), zap.Error(err))
			continue
		}
		values = append(values, data)
	}
	if len(values) == 0 {
		return nil
	}

	if err := r.client.RPush(ctx, r.listName, values...).Err(); err != nil {
		return err
	}
	r.logger.Info("dead-lettered records", zap.Int("count", len(values)))
	return nil
}
