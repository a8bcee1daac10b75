package operations

import (
	// Go Internal Packages
	"context"

	// Local Packages
	errors "network-ops/errors"
	metrics "network-ops/metrics"
	models "network-ops/models"
	utils "network-ops/utils"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the authoritative operation store.
type Store interface {
	Find(ctx context.Context, filter models.OperationFilter, page models.Page) (models.OperationPage, error)
	Get(ctx context.Context, id string) (models.Operation, error)
	// Insert assigns the id and returns the persisted record.
	Insert(ctx context.Context, op models.Operation) (models.Operation, error)
	// CompareAndSwap replaces the record only while it is still in state from.
	// A lost race yields an InvalidTransition error.
	CompareAndSwap(ctx context.Context, id string, from models.State, next models.Operation) (models.Operation, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event models.OperationEvent) error
}

// Service dispatches operation requests to the store, validating transitions
// before they leave and reconciling the registry with what comes back.
type Service struct {
	Logger      *zap.Logger
	Store       Store
	Registry    *Registry
	Locker      Locker
	Publisher   EventPublisher
	MaxPageSize int
}

func NewService(logger *zap.Logger, store Store, locker Locker, publisher EventPublisher, maxPageSize int) *Service {
	return &Service{
		Logger:      logger,
		Store:       store,
		Registry:    NewRegistry(),
		Locker:      locker,
		Publisher:   publisher,
		MaxPageSize: maxPageSize,
	}
}

// List fetches a page of operations and stores it as the given view.
func (s *Service) List(ctx context.Context, view string, filter models.OperationFilter, page models.Page) (models.OperationPage, error) {
	if page.Number < 0 {
		return models.OperationPage{}, errors.E(errors.Invalid, "page must not be negative", nil)
	}
	page.Size = utils.ClampPageSize(page.Size, s.MaxPageSize)

	res, err := s.Store.Find(ctx, filter, page)
	if err != nil {
		return models.OperationPage{}, dispatchErr("list operations", err)
	}
	for i := range res.Items {
		res.Items[i] = Normalize(res.Items[i])
	}
	if ctx.Err() != nil {
		return models.OperationPage{}, ctx.Err()
	}

	s.Registry.Replace(view, res.Items)
	return res, nil
}

// Refresh re-reads one record from the store and makes it canonical.
func (s *Service) Refresh(ctx context.Context, id string) (models.Operation, error) {
	op, err := s.Store.Get(ctx, id)
	if err != nil {
		return models.Operation{}, dispatchErr("get operation", err)
	}
	op = Normalize(op)
	if ctx.Err() != nil {
		return op, ctx.Err()
	}
	s.Registry.put(op)
	return op, nil
}

// Submit creates a new PENDING operation owned by actor.
func (s *Service) Submit(ctx context.Context, actor models.Actor, kind models.OperationKind, payload models.OperationPayload) (models.Operation, error) {
	ts := now()
	op := models.Operation{
		Kind:         kind,
		OwnerID:      actor.Username,
		Amount:       payload.Amount,
		State:        models.StatePending,
		Counterparty: payload.Counterparty,
		LicenseID:    payload.LicenseID,
		DocumentURL:  payload.DocumentURL,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := Validate(op); err != nil {
		return models.Operation{}, err
	}

	created, err := s.Store.Insert(ctx, op)
	if err != nil {
		return models.Operation{}, dispatchErr("submit operation", err)
	}
	if ctx.Err() != nil {
		return created, ctx.Err()
	}

	s.Registry.Prepend(ViewMine, created)
	s.publish(ctx, models.EventSubmitted, actor, created)
	return created, nil
}

// Approve moves a PENDING operation forward on behalf of an admin.
func (s *Service) Approve(ctx context.Context, actor models.Actor, id string) (models.Operation, error) {
	return s.transition(ctx, actor, id, models.EventApproved, func(op models.Operation) (models.Operation, error) {
		return Approve(op, actor)
	})
}

// Reject moves a PENDING operation to REJECTED on behalf of an admin. A missing
// comment, or a reason the operation's kind does not accept, fails before
// anything is sent.
func (s *Service) Reject(ctx context.Context, actor models.Actor, id string, reason models.RejectionReason, comment string) (models.Operation, error) {
	if !actor.Admin {
		return models.Operation{}, errors.ForbiddenErr(actor.Username, "reject operations")
	}
	if op, ok := s.Registry.Get(id); ok {
		if err := CheckRejection(op.Kind, reason, comment); err != nil {
			return op, err
		}
	} else if utils.IsBlank(comment) {
		return models.Operation{}, errors.MissingReasonErr("comment")
	}
	return s.transition(ctx, actor, id, models.EventRejected, func(op models.Operation) (models.Operation, error) {
		return Reject(op, actor, reason, comment)
	})
}

func (s *Service) transition(
	ctx context.Context,
	actor models.Actor,
	id, event string,
	apply func(models.Operation) (models.Operation, error),
) (models.Operation, error) {
	token, acquired, err := s.Locker.Acquire(ctx, id)
	if err != nil {
		return models.Operation{}, errors.TransportErr("acquire operation lock", err)
	}
	if !acquired {
		return models.Operation{}, errors.InFlightErr(id)
	}
	defer func() {
		if err := s.Locker.Release(context.WithoutCancel(ctx), id, token); err != nil {
			s.Logger.Warn("failed to release operation lock", zap.String("id", id), zap.Error(err))
		}
	}()

	current, err := s.current(ctx, id)
	if err != nil {
		return models.Operation{}, err
	}

	next, err := apply(current)
	if err != nil {
		metrics.TransitionErrors.WithLabelValues(errors.KindOf(err).String()).Inc()
		return current, err
	}

	// Only non-terminal results are shown before the store confirms them.
	optimistic := !models.IsTerminal(next.State)
	if optimistic {
		s.Registry.put(next)
	}

	updated, err := s.Store.CompareAndSwap(ctx, id, current.State, next)
	if err != nil {
		if optimistic {
			s.Registry.put(current)
		}
		metrics.TransitionErrors.WithLabelValues(errors.KindOf(err).String()).Inc()
		if errors.Is(errors.InvalidTransition, err) {
			if _, rerr := s.Refresh(ctx, id); rerr != nil {
				s.Logger.Warn("failed to refresh operation after conflict", zap.String("id", id), zap.Error(rerr))
			}
		}
		return current, dispatchErr(event+" operation", err)
	}
	updated = Normalize(updated)

	// The store has moved on, so the registry and subscribers follow it even
	// when the caller is no longer waiting for the result.
	s.Registry.put(updated)
	metrics.Transitions.WithLabelValues(string(updated.Kind), string(current.State), string(updated.State)).Inc()
	s.Logger.Info("operation transitioned",
		zap.String("id", id),
		zap.String("kind", string(updated.Kind)),
		zap.String("from", string(current.State)),
		zap.String("to", string(updated.State)),
		zap.String("actor", actor.Username),
	)
	s.publish(context.WithoutCancel(ctx), event, actor, updated)

	if ctx.Err() != nil {
		return models.Operation{}, ctx.Err()
	}
	return updated, nil
}

// current returns the canonical copy, loading it from the store on first use.
func (s *Service) current(ctx context.Context, id string) (models.Operation, error) {
	if op, ok := s.Registry.Get(id); ok {
		return op, nil
	}
	op, err := s.Store.Get(ctx, id)
	if err != nil {
		return models.Operation{}, dispatchErr("get operation", err)
	}
	op = Normalize(op)
	s.Registry.Apply(op)
	return op, nil
}

func (s *Service) publish(ctx context.Context, eventType string, actor models.Actor, op models.Operation) {
	if s.Publisher == nil {
		return
	}
	event := models.OperationEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		Operation:  op,
		Actor:      actor.Username,
		OccurredAt: now(),
	}
	if err := s.Publisher.Publish(ctx, event); err != nil {
		s.Logger.Error("failed to publish operation event", zap.String("id", op.ID), zap.Error(err))
	}
}

// dispatchErr keeps classified errors and marks everything else as a transport failure.
func dispatchErr(op string, err error) error {
	if errors.KindOf(err) != errors.Other {
		return err
	}
	return errors.TransportErr(op, err)
}
