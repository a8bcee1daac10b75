package operations

import (
	// Go Internal Packages
	"context"
	"sync"

	// External Packages
	"github.com/google/uuid"
)

// Locker serializes dispatches against the same operation id.
type Locker interface {
	// Acquire returns false when the id is already held. The token identifies
	// this holder and must be handed back to Release.
	Acquire(ctx context.Context, id string) (token string, ok bool, err error)
	// Release frees id only while token still holds it.
	Release(ctx context.Context, id, token string) error
}

// MemoryLocker is a process-local Locker.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]string)}
}

func (l *MemoryLocker) Acquire(_ context.Context, id string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[id]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[id] = token
	return token, true, nil
}

func (l *MemoryLocker) Release(_ context.Context, id, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[id] == token {
		delete(l.held, id)
	}
	return nil
}
