package processors

import (
	// Go Internal Packages
	"context"
	"fmt"

	// Local Packages
	errors "network-ops/errors"
	metrics "network-ops/metrics"
	models "network-ops/models"
	operations "network-ops/services/operations"

	// External Packages
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OperationRepository interface {
	Get(ctx context.Context, id string) (models.Operation, error)
	CompareAndSwap(ctx context.Context, id string, from models.State, next models.Operation) (models.Operation, error)
}

type DeadLetterQueue interface {
	Send(ctx context.Context, records []models.Record) error
}

// SettlementProcessor applies backend settlement events (COMPLETED or FAILED)
// to stored operations.
type SettlementProcessor struct {
	Logger    *zap.Logger
	OpsRepo   OperationRepository
	DLQ       DeadLetterQueue
	Publisher operations.EventPublisher
}

func NewSettlementProcessor(logger *zap.Logger, opsRepo OperationRepository, dlq DeadLetterQueue, publisher operations.EventPublisher) *SettlementProcessor {
	return &SettlementProcessor{Logger: logger, OpsRepo: opsRepo, DLQ: dlq, Publisher: publisher}
}

// ProcessRecords settles each record in turn. Records that cannot be applied go
// to the dead letter queue; only a failing queue makes the batch fail.
func (p *SettlementProcessor) ProcessRecords(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	var failed []models.Record
	for _, record := range records {
		if err := p.ProcessRecord(ctx, record); err != nil {
			p.Logger.Error("failed to settle operation", zap.ByteString("key", record.Key), zap.Error(err))
			failed = append(failed, record)
		}
	}
	if len(failed) == 0 {
		return nil
	}

	if err := p.DLQ.Send(ctx, failed); err != nil {
		return fmt.Errorf("failed to dead-letter %d records: %w", len(failed), err)
	}
	metrics.DeadLettered.Add(float64(len(failed)))
	return nil
}

// ProcessRecord settles one record. Redelivery of an already applied settlement is a no-op.
func (p *SettlementProcessor) ProcessRecord(ctx context.Context, record models.Record) error {
	var event models.SettlementEvent
	if err := json.Unmarshal(record.Value, &event); err != nil {
		return errors.InvalidBodyErr(err)
	}
	if event.OperationID == "" {
		return errors.EmptyParamErr("operation_id")
	}

	current, err := p.OpsRepo.Get(ctx, event.OperationID)
	if err != nil {
		return err
	}
	if current.State == event.State {
		p.Logger.Debug("settlement already applied", zap.String("id", current.ID))
		return nil
	}

	next, err := operations.Settle(current, event.State)
	if err != nil {
		return err
	}
	if !event.SettledAt.IsZero() {
		next.UpdatedAt = event.SettledAt
	}

	updated, err := p.OpsRepo.CompareAndSwap(ctx, current.ID, current.State, next)
	if err != nil {
		return err
	}
	metrics.Transitions.WithLabelValues(string(updated.Kind), string(current.State), string(updated.State)).Inc()

	if p.Publisher != nil {
		pubErr := p.Publisher.Publish(ctx, models.OperationEvent{
			EventID:    uuid.NewString(),
			Type:       models.EventSettled,
			Operation:  updated,
			Actor:      models.SystemActor.Username,
			OccurredAt: updated.UpdatedAt,
		})
		if pubErr != nil {
			p.Logger.Error("failed to publish settlement", zap.String("id", updated.ID), zap.Error(pubErr))
		}
	}
	return nil
}
