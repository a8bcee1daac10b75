package operations

import (
	// Go Internal Packages
	"sync"

	// Local Packages
	models "network-ops/models"
)

// Views the service keeps listings for.
const (
	ViewMine    = "mine"
	ViewAll     = "all"
	ViewPending = "pending"
)

// Registry is the canonical operation-by-id map. Views only hold ids, so a
// patch to the canonical copy is visible in every listing that contains it.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]models.Operation
	views map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{
		byID:  make(map[string]models.Operation),
		views: make(map[string][]string),
	}
}

func (r *Registry) Get(id string) (models.Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.byID[id]
	return op, ok
}

// Apply patches the canonical copy with an authoritative record. A copy older
// than the one already held is ignored so a stale listing cannot undo a newer
// transition.
func (r *Registry) Apply(op models.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apply(op)
}

func (r *Registry) apply(op models.Operation) {
	if cur, ok := r.byID[op.ID]; ok && cur.UpdatedAt.After(op.UpdatedAt) {
		return
	}
	r.byID[op.ID] = op
}

// put stores op unconditionally. Used for rollbacks and explicit refreshes.
func (r *Registry) put(op models.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[op.ID] = op
}

// Replace sets the contents of a view from a fresh listing.
func (r *Registry) Replace(view string, ops []models.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(ops))
	for _, op := range ops {
		r.apply(op)
		ids = append(ids, op.ID)
	}
	r.views[view] = ids
}

// Prepend adds op to the front of a view unless it is already listed.
func (r *Registry) Prepend(view string, op models.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.apply(op)
	for _, id := range r.views[view] {
		if id == op.ID {
			return
		}
	}
	r.views[view] = append([]string{op.ID}, r.views[view]...)
}

// View returns the current canonical copies of the records listed in view.
func (r *Registry) View(view string) []models.Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.views[view]
	out := make([]models.Operation, 0, len(ids))
	for _, id := range ids {
		if op, ok := r.byID[id]; ok {
			out = append(out, op)
		}
	}
	return out
}
