package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// ProviderClient is the injected identity-provider capability. The wire
// protocol (token endpoint, popup/redirect mechanics) lives entirely
// behind this contract; the session service only sequences the calls.
type ProviderClient interface {
	// SsoSilent renews a token without user interaction using an
	// existing provider session. A failure classified as
	// interaction-required (see IsInteractionRequired) signals that the
	// coordinator may escalate to LoginPopup.
	SsoSilent(ctx context.Context, req TokenRequest) (AuthenticationResult, error)
	// LoginPopup performs a blocking user-facing acquisition. Callers
	// must not invoke it unless interactive fallback is permitted.
	LoginPopup(ctx context.Context, req TokenRequest) (AuthenticationResult, error)
	Accounts(ctx context.Context) ([]Account, error)
	InteractionStatus(ctx context.Context) (InteractionStatus, error)
}

// TokenStore is the process-wide cache bridge for the current idToken.
type TokenStore interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MarkerStore is the enumerable persisted-session storage the provider
// writes its session markers into. Logout removes every entry whose key
// carries the provider marker prefix and nothing else.
type MarkerStore interface {
	Set(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// SessionObserver receives the terminal notifications of lifecycle
// operations. OnPopupGuidance is distinguished from OnLoginFailure so
// a blocked popup can carry actionable remediation text.
type SessionObserver interface {
	OnLoginSuccess(ctx context.Context, user SessionUser)
	OnLoginFailure(ctx context.Context, err error)
	OnLogoutSuccess(ctx context.Context)
	OnPopupGuidance(ctx context.Context, guidance string)
}

type NopSessionObserver struct{}

func (NopSessionObserver) OnLoginSuccess(context.Context, SessionUser) {}
func (NopSessionObserver) OnLoginFailure(context.Context, error)      {}
func (NopSessionObserver) OnLogoutSuccess(context.Context)            {}
func (NopSessionObserver) OnPopupGuidance(context.Context, string)    {}

var _ SessionObserver = NopSessionObserver{}

type ProviderEventHandler interface {
	Handle(ctx context.Context, event ProviderEvent) error
}

type ProviderEventHandlerFunc func(ctx context.Context, event ProviderEvent) error

func (f ProviderEventHandlerFunc) Handle(ctx context.Context, event ProviderEvent) error {
	return f(ctx, event)
}

// ProviderEventBus decouples the session service from whatever surface
// produces account and interaction-status changes.
type ProviderEventBus interface {
	Publish(ctx context.Context, event ProviderEvent) error
	Subscribe(handler ProviderEventHandler)
}

type LockHandle interface {
	Unlock(ctx context.Context) error
}

// RenewalLocker serializes renewal attempts process-wide. Acquire fails
// with a renewal-in-progress error when the slot is held; callers are
// never queued.
type RenewalLocker interface {
	Acquire(ctx context.Context) (LockHandle, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type JobNackOptions struct {
	Delay      time.Duration
	Requeue    bool
	DeadLetter bool
	Reason     string
}

type JobEnqueuer interface {
	Enqueue(ctx context.Context, msg *RenewalJobMessage) error
}

type JobDelivery interface {
	Message() *RenewalJobMessage
	Ack(ctx context.Context) error
	Nack(ctx context.Context, opts JobNackOptions) error
}

type JobDequeuer interface {
	Dequeue(ctx context.Context) (JobDelivery, error)
}

// JobWorkerEvent describes one lifecycle transition of a renewal lease
// inside a queue worker.
type JobWorkerEvent struct {
	Message   *RenewalJobMessage
	Attempt   int
	Delay     time.Duration
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

type JobWorkerHook interface {
	OnStart(ctx context.Context, event JobWorkerEvent)
	OnSuccess(ctx context.Context, event JobWorkerEvent)
	OnFailure(ctx context.Context, event JobWorkerEvent)
	OnRetry(ctx context.Context, event JobWorkerEvent)
}
