package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryProviderEventBus is the in-process event bus connecting a
// provider client (or its host surface) to the session service.
// Handlers run synchronously in subscription order; handler errors are
// joined and returned to the publisher for observability, without
// stopping later handlers.
type MemoryProviderEventBus struct {
	mu       sync.RWMutex
	handlers []ProviderEventHandler
}

func NewMemoryProviderEventBus() *MemoryProviderEventBus {
	return &MemoryProviderEventBus{
		handlers: make([]ProviderEventHandler, 0),
	}
}

func (b *MemoryProviderEventBus) Subscribe(handler ProviderEventHandler) {
	if b == nil || handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

func (b *MemoryProviderEventBus) Publish(ctx context.Context, event ProviderEvent) error {
	if b == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	var handlerErr error
	for _, handler := range b.subscribers() {
		if handler == nil {
			continue
		}
		if err := handler.Handle(ctx, event); err != nil {
			handlerErr = errors.Join(handlerErr, err)
		}
	}
	return handlerErr
}

func (b *MemoryProviderEventBus) subscribers() []ProviderEventHandler {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]ProviderEventHandler, len(b.handlers))
	copy(out, b.handlers)
	return out
}

var _ ProviderEventBus = (*MemoryProviderEventBus)(nil)
