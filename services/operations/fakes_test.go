package operations

import (
	"context"
	"fmt"
	"sync"

	errors "network-ops/errors"
	models "network-ops/models"
)

type fakeStore struct {
	mu       sync.Mutex
	ops      map[string]models.Operation
	seq      int
	findErr  error
	casErr   error
	getCalls int
	casCalls int
	lastPage models.Page
	// beforeCAS runs before a compare-and-swap is evaluated.
	beforeCAS func()
}

func newFakeStore(ops ...models.Operation) *fakeStore {
	f := &fakeStore{ops: make(map[string]models.Operation)}
	for _, op := range ops {
		f.ops[op.ID] = op
	}
	return f
}

func (f *fakeStore) set(op models.Operation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops[op.ID] = op
}

func (f *fakeStore) stored(id string) models.Operation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ops[id]
}

func (f *fakeStore) Find(_ context.Context, filter models.OperationFilter, page models.Page) (models.OperationPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPage = page
	if f.findErr != nil {
		return models.OperationPage{}, f.findErr
	}

	var items []models.Operation
	for _, op := range f.ops {
		if filter.Kind != "" && op.Kind != filter.Kind {
			continue
		}
		if filter.State != "" && op.State != filter.State {
			continue
		}
		if filter.OwnerID != "" && op.OwnerID != filter.OwnerID {
			continue
		}
		items = append(items, op)
	}
	return models.OperationPage{Items: items, Number: page.Number, Size: page.Size, Total: int64(len(items))}, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (models.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	op, ok := f.ops[id]
	if !ok {
		return models.Operation{}, errors.NotFoundErr("operation", id)
	}
	return op, nil
}

func (f *fakeStore) Insert(_ context.Context, op models.Operation) (models.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	op.ID = fmt.Sprintf("op-%d", f.seq)
	op.State = models.StatePending
	f.ops[op.ID] = op
	return op, nil
}

func (f *fakeStore) CompareAndSwap(_ context.Context, id string, from models.State, next models.Operation) (models.Operation, error) {
	if f.beforeCAS != nil {
		f.beforeCAS()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.casCalls++
	if f.casErr != nil {
		return models.Operation{}, f.casErr
	}
	cur, ok := f.ops[id]
	if !ok {
		return models.Operation{}, errors.NotFoundErr("operation", id)
	}
	if cur.State != from {
		return models.Operation{}, errors.TransitionErr(id, string(from), string(next.State))
	}
	f.ops[id] = next
	return next, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.OperationEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event models.OperationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
