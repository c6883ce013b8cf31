package session

import "github.com/goliatone/go-session/core"

type Config = core.Config

type RenewalConfig = core.RenewalConfig

type MarkersConfig = core.MarkersConfig

type Option = core.Option

type Service = core.Service

type Account = core.Account
type Profile = core.Profile
type SessionUser = core.SessionUser
type TokenRequest = core.TokenRequest
type AuthenticationResult = core.AuthenticationResult
type InteractionStatus = core.InteractionStatus
type ProviderEvent = core.ProviderEvent
type ProviderEventKind = core.ProviderEventKind
type RenewOptions = core.RenewOptions
type RenewalJobMessage = core.RenewalJobMessage

type ProviderClient = core.ProviderClient
type TokenStore = core.TokenStore
type MarkerStore = core.MarkerStore
type SessionObserver = core.SessionObserver
type ProviderEventBus = core.ProviderEventBus
type RenewalLocker = core.RenewalLocker
type SessionStoreProvider = core.SessionStoreProvider
type SessionStoreFactory = core.SessionStoreFactory

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithProviderClient    = core.WithProviderClient
	WithTokenStore        = core.WithTokenStore
	WithMarkerStore       = core.WithMarkerStore
	WithRenewalLocker     = core.WithRenewalLocker
	WithSessionObserver   = core.WithSessionObserver
	WithProviderEventBus  = core.WithProviderEventBus
	WithJobEnqueuer       = core.WithJobEnqueuer
	WithPersistenceClient = core.WithPersistenceClient
	WithStoreFactory      = core.WithStoreFactory
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// NewService builds a session service from configuration and options.
func NewService(cfg Config, options ...Option) (*Service, error) {
	return core.NewService(cfg, options...)
}
