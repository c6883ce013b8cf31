package core

import (
	"context"
	"sync"
)

// SlotRenewalLocker is the process-wide renewal lock: a single-slot
// channel guarding the whole silent+interactive sequence as one unit.
// Acquisition never queues; a caller hitting a held slot is rejected
// with a renewal-in-progress error so overlapping side effects cannot
// happen. Strict serialization was chosen over the legacy best-effort
// behavior; see DESIGN.md.
type SlotRenewalLocker struct {
	slot chan struct{}
}

func NewSlotRenewalLocker() *SlotRenewalLocker {
	return &SlotRenewalLocker{slot: make(chan struct{}, 1)}
}

func (l *SlotRenewalLocker) Acquire(ctx context.Context) (LockHandle, error) {
	if l == nil || l.slot == nil {
		return nil, NewRenewalInProgressError("core: renewal locker is not configured")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	select {
	case l.slot <- struct{}{}:
		return &slotLockHandle{locker: l}, nil
	default:
		return nil, NewRenewalInProgressError("core: renewal already in progress")
	}
}

type slotLockHandle struct {
	locker *SlotRenewalLocker
	once   sync.Once
}

// Unlock is idempotent so deferred releases stay safe on every exit
// path, including panics inside a provider adapter.
func (h *slotLockHandle) Unlock(context.Context) error {
	if h == nil || h.locker == nil {
		return nil
	}
	h.once.Do(func() {
		<-h.locker.slot
	})
	return nil
}

var _ RenewalLocker = (*SlotRenewalLocker)(nil)
