package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Service owns the renewal lock and the token cache as explicit fields;
// there is no ambient global state. Construct one per hosting process
// and pass it to every caller.
type Service struct {
	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorFactory      ErrorFactory
	errorMapper       ErrorMapper
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	provider          ProviderClient
	tokenStore        TokenStore
	markerStore       MarkerStore
	renewalLocker     RenewalLocker
	observer          SessionObserver
	eventBus          ProviderEventBus
	jobEnqueuer       JobEnqueuer
	persistenceClient any

	mu      sync.RWMutex
	account *Account
	user    *SessionUser
}

// SessionStoreFactory builds the token and marker stores from a
// persistence client, mirroring how persistent backends are wired.
type SessionStoreFactory interface {
	BuildStores(persistenceClient any) (SessionStoreProvider, error)
}

type SessionStoreProvider interface {
	TokenStore() TokenStore
	MarkerStore() MarkerStore
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("session", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("session"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.renewalLocker == nil {
		builder.renewalLocker = NewSlotRenewalLocker()
	}
	if builder.observer == nil {
		builder.observer = NopSessionObserver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if (builder.tokenStore == nil || builder.markerStore == nil) && builder.storeFactory != nil {
		if factory, ok := builder.storeFactory.(SessionStoreFactory); ok {
			storeProvider, buildErr := factory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			if storeProvider != nil {
				if builder.tokenStore == nil {
					builder.tokenStore = storeProvider.TokenStore()
				}
				if builder.markerStore == nil {
					builder.markerStore = storeProvider.MarkerStore()
				}
			}
		} else if storeProvider, ok := builder.storeFactory.(SessionStoreProvider); ok {
			if builder.tokenStore == nil {
				builder.tokenStore = storeProvider.TokenStore()
			}
			if builder.markerStore == nil {
				builder.markerStore = storeProvider.MarkerStore()
			}
		}
	}

	service := &Service{
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		metricsRecorder:   builder.metricsRecorder,
		errorFactory:      builder.errorFactory,
		errorMapper:       builder.errorMapper,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		provider:          builder.provider,
		tokenStore:        builder.tokenStore,
		markerStore:       builder.markerStore,
		renewalLocker:     builder.renewalLocker,
		observer:          builder.observer,
		eventBus:          builder.eventBus,
		jobEnqueuer:       builder.jobEnqueuer,
		persistenceClient: builder.persistenceClient,
	}
	if service.eventBus != nil {
		service.eventBus.Subscribe(ProviderEventHandlerFunc(service.HandleProviderEvent))
	}
	return service, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	if mapped := mapper(err); mapped != nil {
		return mapped
	}
	return err
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

// Markers exposes the marker store for read-side queries.
func (s *Service) Markers() MarkerStore {
	if s == nil {
		return nil
	}
	return s.markerStore
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	if mapped := s.errorMapper(err); mapped != nil {
		return mapped
	}
	return err
}

// Login is the explicit interactive entry point: no silent attempt is
// made. It still runs under the renewal lock so a login and a renewal
// can never interleave their provider calls.
func (s *Service) Login(ctx context.Context) (SessionUser, error) {
	if s == nil {
		return SessionUser{}, fmt.Errorf("core: service is nil")
	}
	startedAt := time.Now()
	user, err := s.loginLocked(ctx)
	s.observeOperation(ctx, startedAt, "login", err, map[string]any{
		"client_id": s.config.ClientID,
	})
	if err != nil {
		s.observer.OnLoginFailure(ctx, err)
		return SessionUser{}, err
	}
	s.observer.OnLoginSuccess(ctx, user)
	return user, nil
}

func (s *Service) loginLocked(ctx context.Context) (SessionUser, error) {
	if s.provider == nil {
		return SessionUser{}, s.mapError(fmt.Errorf("core: provider client is required"))
	}
	if s.tokenStore == nil {
		return SessionUser{}, s.mapError(fmt.Errorf("core: token store is required"))
	}
	if s.renewalLocker == nil {
		return SessionUser{}, s.mapError(fmt.Errorf("core: renewal locker is required"))
	}

	handle, err := s.renewalLocker.Acquire(ctx)
	if err != nil {
		return SessionUser{}, s.mapError(err)
	}
	defer func() {
		_ = handle.Unlock(ctx)
	}()

	request, err := s.buildTokenRequest(ctx)
	if err != nil {
		return SessionUser{}, s.mapError(err)
	}
	result, err := s.attemptInteractive(ctx, request)
	if err != nil {
		if IsPopupBlocked(err) {
			s.notifyPopupGuidance(ctx)
		}
		return SessionUser{}, err
	}
	return s.completeRenewal(ctx, result)
}

// Logout clears the cached token and removes every persisted session
// marker whose key carries the configured provider prefix. Keys outside
// the prefix are left untouched.
func (s *Service) Logout(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	startedAt := time.Now()
	err := s.logout(ctx)
	s.observeOperation(ctx, startedAt, "logout", err, map[string]any{
		"client_id": s.config.ClientID,
	})
	if err != nil {
		return err
	}
	s.observer.OnLogoutSuccess(ctx)
	return nil
}

func (s *Service) logout(ctx context.Context) error {
	if s.tokenStore != nil {
		if err := s.tokenStore.Clear(ctx); err != nil {
			return s.mapError(fmt.Errorf("core: clear cached token: %w", err))
		}
	}
	if s.markerStore != nil {
		removed, err := s.markerStore.DeleteByPrefix(ctx, s.config.Markers.KeyPrefix)
		if err != nil {
			return s.mapError(fmt.Errorf("core: remove session markers: %w", err))
		}
		s.logInfo(ctx, "session markers removed", map[string]any{
			"prefix":  s.config.Markers.KeyPrefix,
			"removed": removed,
		})
	}
	s.forgetSession()
	return nil
}

// RenewToken renews silently only; callers that need the interactive
// fallback go through the monitored event-driven path instead.
func (s *Service) RenewToken(ctx context.Context) (string, error) {
	user, err := s.Renew(ctx, RenewOptions{AllowInteractiveFallback: false, Trigger: "renew_token"})
	if err != nil {
		return "", err
	}
	return user.IDToken, nil
}

// HandleProviderEvent is the automatic-renewal trigger. For each
// account or interaction-status change it hydrates the session at most
// once: only when no token is cached, the provider is idle, and at
// least one account is known. An empty account list is skipped rather
// than attempted anonymously.
func (s *Service) HandleProviderEvent(ctx context.Context, event ProviderEvent) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	switch event.Kind {
	case ProviderEventAccountsChanged, ProviderEventStatusChanged, ProviderEventStartup:
	default:
		return nil
	}
	if s.tokenStore == nil || s.provider == nil {
		return nil
	}

	if _, cached, err := s.tokenStore.Get(ctx); err != nil {
		return s.mapError(fmt.Errorf("core: read cached token: %w", err))
	} else if cached {
		return nil
	}

	status := event.Status
	if strings.TrimSpace(string(status)) == "" {
		reported, err := s.provider.InteractionStatus(ctx)
		if err != nil {
			return s.mapError(fmt.Errorf("core: read interaction status: %w", err))
		}
		status = reported
	}
	if !status.Idle() {
		return nil
	}

	accounts := event.Accounts
	if len(accounts) == 0 {
		known, err := s.provider.Accounts(ctx)
		if err != nil {
			return s.mapError(fmt.Errorf("core: enumerate accounts: %w", err))
		}
		accounts = known
	}
	if len(accounts) == 0 {
		s.logInfo(ctx, "session hydration skipped", map[string]any{
			"reason": "no known accounts",
			"event":  string(event.Kind),
		})
		return nil
	}

	user, err := s.Renew(ctx, RenewOptions{AllowInteractiveFallback: true, Trigger: string(event.Kind)})
	if err != nil {
		s.observer.OnLoginFailure(ctx, err)
		return err
	}
	s.observer.OnLoginSuccess(ctx, user)
	return nil
}

// ScheduleRenewal enqueues a proactive silent-renewal lease for the
// background worker to pick up.
func (s *Service) ScheduleRenewal(ctx context.Context, msg *RenewalJobMessage) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	if s.jobEnqueuer == nil {
		return s.mapError(fmt.Errorf("core: job enqueuer is required"))
	}
	if msg == nil {
		return s.mapError(fmt.Errorf("core: renewal job message is required"))
	}
	return s.jobEnqueuer.Enqueue(ctx, msg)
}

// Token reports the currently cached idToken, if any.
func (s *Service) Token(ctx context.Context) (string, bool, error) {
	if s == nil || s.tokenStore == nil {
		return "", false, fmt.Errorf("core: token store is required")
	}
	return s.tokenStore.Get(ctx)
}

// CurrentUser reports the session user from the most recent successful
// login or renewal in this process.
func (s *Service) CurrentUser(context.Context) (SessionUser, bool) {
	if s == nil {
		return SessionUser{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return SessionUser{}, false
	}
	return *s.user, true
}

func (s *Service) activeAccount() *Account {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return nil
	}
	copied := *s.account
	return &copied
}

func (s *Service) rememberSession(account Account, user SessionUser) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !account.IsZero() {
		copied := account
		s.account = &copied
	}
	copiedUser := user
	s.user = &copiedUser
}

func (s *Service) forgetSession() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = nil
	s.user = nil
}
