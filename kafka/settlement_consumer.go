package kafka

import (
	// Go Internal Packages
	"context"
	"errors"
	"time"

	// Local Packages
	models "network-ops/models"
	utils "network-ops/utils"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// retryBackoff spaces out redeliveries of a batch the processor refused.
const retryBackoff = time.Second

type SettlementProcessor interface {
	ProcessRecords(ctx context.Context, records []models.Record) error
}

type Consumer struct {
	Client    *kgo.Client
	Config    *models.ConsumerConfig
	Processor SettlementProcessor
	Logger    *zap.Logger
}

// NewSettlementConsumer creates a consumer group member for the settlement
// topic. Nothing is fetched until Poll is called.
func NewSettlementConsumer(conf *models.ConsumerConfig, processor SettlementProcessor, metrics *kprom.Metrics, logger *zap.Logger) (*Consumer, error) {
	c := &Consumer{Config: conf, Processor: processor, Logger: logger}

	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.ConsumerGroup(conf.Name),
		kgo.ConsumeTopics(conf.Topic),
		kgo.WithHooks(metrics),
		kgo.DisableAutoCommit(),
		kgo.BlockRebalanceOnPoll(),
		kgo.OnPartitionsAssigned(c.logAssigned),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	c.Client = client
	return c, nil
}

func (c *Consumer) logAssigned(_ context.Context, _ *kgo.Client, assigned map[string][]int32) {
	for topic, partitions := range assigned {
		c.Logger.Info("partitions assigned",
			zap.String("topic", topic),
			zap.String("partitions", utils.JoinInt32Slice(partitions)),
		)
	}
}

// Poll consumes until ctx is canceled or the client is closed. A batch is only
// committed once the processor accepted it.
func (c *Consumer) Poll(ctx context.Context) error {
	defer c.Client.Close()

	for {
		if ctx.Err() != nil {
			c.Logger.Warn("polling stopped: context canceled")
			return ctx.Err()
		}

		fetches := c.Client.PollRecords(ctx, c.Config.RecordsPerPoll)
		if fetches.IsClientClosed() {
			return errors.New("kafka client closed")
		}
		if errors.Is(fetches.Err0(), context.Canceled) {
			return errors.New("context got canceled")
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.Logger.Error("fetch error", zap.String("topic", topic), zap.Int32("partition", partition), zap.Error(err))
		})

		records := make([]models.Record, len(fetches.Records()))
		for idx, record := range fetches.Records() {
			records[idx] = models.Record{
				Key:   record.Key,
				Value: record.Value,
				Topic: record.Topic,
			}
		}

		if err := c.Processor.ProcessRecords(ctx, records); err != nil {
			c.Logger.Error("failed to process records, rewinding batch", zap.Error(err))
			c.Client.SetOffsets(rewindOffsets(fetches.Records()))
			c.Client.AllowRebalance()
			select {
			case <-ctx.Done():
			case <-time.After(retryBackoff):
			}
			continue
		}

		if err := c.Client.CommitRecords(ctx, fetches.Records()...); err != nil {
			c.Logger.Error("failed to commit records", zap.Error(err))
		}
		c.Client.AllowRebalance()
	}
}

// rewindOffsets points every partition in records back at its first record so
// an unaccepted batch is fetched again instead of being skipped by a later commit.
func rewindOffsets(records []*kgo.Record) map[string]map[int32]kgo.EpochOffset {
	offsets := make(map[string]map[int32]kgo.EpochOffset)
	for _, r := range records {
		if offsets[r.Topic] == nil {
			offsets[r.Topic] = make(map[int32]kgo.EpochOffset)
		}
		if cur, ok := offsets[r.Topic][r.Partition]; ok && cur.Offset <= r.Offset {
			continue
		}
		offsets[r.Topic][r.Partition] = kgo.EpochOffset{Epoch: r.LeaderEpoch, Offset: r.Offset}
	}
	return offsets
}
