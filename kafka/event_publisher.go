package kafka

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "network-ops/models"

	// External Packages
	"github.com/goccy/go-json"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
)

// EventPublisher writes operation events keyed by operation id, so every event
// of one operation lands on the same partition in order.
type EventPublisher struct {
	Client *kgo.Client
}

func NewEventPublisher(brokers []string, topic string, metrics *kprom.Metrics) (*EventPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.WithHooks(metrics),
	)
	if err != nil {
		return nil, err
	}
	return &EventPublisher{Client: client}, nil
}

func (p *EventPublisher) Publish(ctx context.Context, event models.OperationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	record := &kgo.Record{Key: []byte(event.Operation.ID), Value: value}
	return p.Client.ProduceSync(ctx, record).FirstErr()
}

func (p *EventPublisher) Close() {
	p.Client.Close()
}
