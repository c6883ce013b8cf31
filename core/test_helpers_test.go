package core

import (
	"context"
	"strings"
	"sync"
)

type scriptedProviderClient struct {
	mu sync.Mutex

	accounts  []Account
	status    InteractionStatus
	statusErr error

	silentResults      []AuthenticationResult
	silentErrs         []error
	silentCalls        int
	silentStarted      chan struct{}
	silentRelease      chan struct{}
	silentPanicMessage string

	interactiveResults []AuthenticationResult
	interactiveErrs    []error
	interactiveCalls   int
}

func newScriptedProviderClient() *scriptedProviderClient {
	return &scriptedProviderClient{status: InteractionStatusNone}
}

func (c *scriptedProviderClient) SsoSilent(_ context.Context, _ TokenRequest) (AuthenticationResult, error) {
	c.mu.Lock()
	index := c.silentCalls
	c.silentCalls++
	started := c.silentStarted
	c.silentStarted = nil
	release := c.silentRelease
	c.silentRelease = nil
	panicMessage := c.silentPanicMessage
	c.silentPanicMessage = ""
	c.mu.Unlock()

	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	if panicMessage != "" {
		panic(panicMessage)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if index < len(c.silentErrs) && c.silentErrs[index] != nil {
		return AuthenticationResult{}, c.silentErrs[index]
	}
	if index < len(c.silentResults) {
		return c.silentResults[index], nil
	}
	return AuthenticationResult{}, NewProviderError("scripted provider: no silent result scripted")
}

func (c *scriptedProviderClient) LoginPopup(_ context.Context, _ TokenRequest) (AuthenticationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	index := c.interactiveCalls
	c.interactiveCalls++
	if index < len(c.interactiveErrs) && c.interactiveErrs[index] != nil {
		return AuthenticationResult{}, c.interactiveErrs[index]
	}
	if index < len(c.interactiveResults) {
		return c.interactiveResults[index], nil
	}
	return AuthenticationResult{}, NewProviderError("scripted provider: no interactive result scripted")
}

func (c *scriptedProviderClient) Accounts(context.Context) ([]Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Account(nil), c.accounts...), nil
}

func (c *scriptedProviderClient) InteractionStatus(context.Context) (InteractionStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.statusErr != nil {
		return "", c.statusErr
	}
	return c.status, nil
}

func (c *scriptedProviderClient) interactiveCallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interactiveCalls
}

func (c *scriptedProviderClient) silentCallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.silentCalls
}

type memoryTokenStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{}
}

func (s *memoryTokenStore) Get(context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set, nil
}

func (s *memoryTokenStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *memoryTokenStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

type memoryMarkerStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemoryMarkerStore() *memoryMarkerStore {
	return &memoryMarkerStore{entries: map[string]string{}}
}

func (s *memoryMarkerStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *memoryMarkerStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *memoryMarkerStore) Keys(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *memoryMarkerStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *memoryMarkerStore) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

type recordingObserver struct {
	mu        sync.Mutex
	successes []SessionUser
	failures  []error
	logouts   int
	guidance  []string
}

func (o *recordingObserver) OnLoginSuccess(_ context.Context, user SessionUser) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.successes = append(o.successes, user)
}

func (o *recordingObserver) OnLoginFailure(_ context.Context, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, err)
}

func (o *recordingObserver) OnLogoutSuccess(context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.logouts++
}

func (o *recordingObserver) OnPopupGuidance(_ context.Context, guidance string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.guidance = append(o.guidance, guidance)
}

func (o *recordingObserver) snapshot() (successes []SessionUser, failures []error, logouts int, guidance []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]SessionUser(nil), o.successes...),
		append([]error(nil), o.failures...),
		o.logouts,
		append([]string(nil), o.guidance...)
}

func resultWithToken(token string, account Account, claims map[string]any, scopes ...string) AuthenticationResult {
	return AuthenticationResult{
		IDToken: token,
		Scopes:  scopes,
		Account: account,
		Claims:  claims,
	}
}
