package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type RenewalWorkerConfig struct {
	RetryDelay time.Duration
}

func DefaultRenewalWorkerConfig() RenewalWorkerConfig {
	return RenewalWorkerConfig{
		RetryDelay: 30 * time.Second,
	}
}

// RenewalWorker drains scheduled renewal leases and performs silent
// renewal for each. Background renewals never escalate to the
// interactive flow: a lease that needs interaction is dead-lettered so
// the event-driven path (which may prompt the user) handles it.
type RenewalWorker struct {
	service  *Service
	dequeuer JobDequeuer
	config   RenewalWorkerConfig
}

func NewRenewalWorker(service *Service, dequeuer JobDequeuer, config RenewalWorkerConfig) (*RenewalWorker, error) {
	if service == nil {
		return nil, fmt.Errorf("core: service is required")
	}
	if dequeuer == nil {
		return nil, fmt.Errorf("core: job dequeuer is required")
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRenewalWorkerConfig().RetryDelay
	}
	return &RenewalWorker{
		service:  service,
		dequeuer: dequeuer,
		config:   config,
	}, nil
}

// Run processes leases until the context is cancelled.
func (w *RenewalWorker) Run(ctx context.Context) error {
	if w == nil || w.dequeuer == nil {
		return fmt.Errorf("core: renewal worker is not configured")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.ProcessOne(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			w.service.logError(ctx, "renewal lease processing failed", map[string]any{
				"error": err.Error(),
			})
		}
	}
}

// ProcessOne handles a single lease delivery.
func (w *RenewalWorker) ProcessOne(ctx context.Context) error {
	delivery, err := w.dequeuer.Dequeue(ctx)
	if err != nil {
		return err
	}
	if delivery == nil {
		return nil
	}
	msg := delivery.Message()
	reason := ""
	if msg != nil {
		reason = msg.Reason
	}

	_, renewErr := w.service.Renew(ctx, RenewOptions{
		AllowInteractiveFallback: false,
		Trigger:                  "scheduled",
	})
	if renewErr == nil {
		return delivery.Ack(ctx)
	}

	switch {
	case IsInteractionRequired(renewErr), IsUserCancelled(renewErr), IsPopupBlocked(renewErr):
		return delivery.Nack(ctx, JobNackOptions{
			DeadLetter: true,
			Reason:     renewErr.Error(),
		})
	case IsRenewalInProgress(renewErr):
		return delivery.Nack(ctx, JobNackOptions{
			Requeue: true,
			Delay:   w.config.RetryDelay,
			Reason:  "renewal already in progress",
		})
	default:
		w.service.logError(ctx, "scheduled renewal failed", map[string]any{
			"reason": reason,
			"error":  renewErr.Error(),
		})
		return delivery.Nack(ctx, JobNackOptions{
			Requeue: true,
			Delay:   w.config.RetryDelay,
			Reason:  renewErr.Error(),
		})
	}
}
