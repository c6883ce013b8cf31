package core

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func newTestService(t *testing.T, provider *scriptedProviderClient, opts ...Option) (*Service, *memoryTokenStore, *recordingObserver) {
	t.Helper()
	tokens := newMemoryTokenStore()
	observer := &recordingObserver{}
	base := []Option{
		WithProviderClient(provider),
		WithTokenStore(tokens),
		WithMarkerStore(newMemoryMarkerStore()),
		WithSessionObserver(observer),
	}
	svc, err := NewService(Config{}, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, tokens, observer
}

func TestRenew_SilentSuccessCachesToken(t *testing.T) {
	ctx := context.Background()

	provider := newScriptedProviderClient()
	provider.accounts = []Account{{ID: "acct_1", Username: "ada@example.com"}}
	provider.silentResults = []AuthenticationResult{
		resultWithToken("tok_silent", Account{ID: "acct_1"}, map[string]any{
			"email": "ada@example.com",
			"name":  "Ada Lovelace",
			"sub":   "acct_1",
		}, "openid", "profile"),
	}

	svc, tokens, _ := newTestService(t, provider)

	user, err := svc.Renew(ctx, RenewOptions{})
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if user.IDToken != "tok_silent" {
		t.Fatalf("expected silent token, got %q", user.IDToken)
	}
	if user.Scope != "openid profile" {
		t.Fatalf("expected joined scope, got %q", user.Scope)
	}
	token, cached, err := tokens.Get(ctx)
	if err != nil || !cached || token != "tok_silent" {
		t.Fatalf("expected cached token tok_silent, got %q cached=%v err=%v", token, cached, err)
	}
	if provider.interactiveCallCount() != 0 {
		t.Fatalf("interactive flow must not run on silent success")
	}
}

func TestRenew_InteractionRequiredWithoutFallbackNeverEscalates(t *testing.T) {
	ctx := context.Background()

	provider := newScriptedProviderClient()
	provider.silentErrs = []error{errors.New("AADSTS50058 interaction_required: session expired")}

	svc, _, _ := newTestService(t, provider)

	_, err := svc.Renew(ctx, RenewOptions{AllowInteractiveFallback: false})
	if err == nil {
		t.Fatalf("expected renewal failure")
	}
	if !IsInteractionRequired(err) {
		t.Fatalf("expected interaction-required classification, got %v", err)
	}
	if provider.interactiveCallCount() != 0 {
		t.Fatalf("interactive flow must not run with fallback disabled")
	}
}

func TestRenew_OtherSilentFailureNeverEscalates(t *testing.T) {
	ctx := context.Background()

	provider := newScriptedProviderClient()
	provider.silentErrs = []error{errors.New("network timeout talking to token endpoint")}

	svc, _, _ := newTestService(t, provider)

	_, err := svc.Renew(ctx, RenewOptions{AllowInteractiveFallback: true})
	if err == nil {
		t.Fatalf("expected renewal failure")
	}
	if IsInteractionRequired(err) {
		t.Fatalf("network failure must not classify as interaction required: %v", err)
	}
	if provider.interactiveCallCount() != 0 {
		t.Fatalf("interactive flow must not run on a non-interaction failure")
	}
}

func TestRenew_EscalatesToInteractiveOnInteractionRequired(t *testing.T) {
	ctx := context.Background()

	provider := newScriptedProviderClient()
	provider.silentErrs = []error{NewInteractionRequiredError("consent revoked")}
	provider.interactiveResults = []AuthenticationResult{
		resultWithToken("abc", Account{ID: "acct_1"}, map[string]any{"sub": "acct_1"}, "openid"),
	}

	svc, tokens, _ := newTestService(t, provider)

	user, err := svc.Renew(ctx, RenewOptions{AllowInteractiveFallback: true})
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if user.IDToken != "abc" {
		t.Fatalf("expected interactive token abc, got %q", user.IDToken)
	}
	token, cached, _ := tokens.Get(ctx)
	if !cached || token != "abc" {
		t.Fatalf("expected cached interactive token, got %q cached=%v", token, cached)
	}
	if provider.interactiveCallCount() != 1 {
		t.Fatalf("expected exactly one interactive attempt, got %d", provider.interactiveCallCount())
	}
}

func TestRenew_PopupBlockedEmitsGuidanceAndPropagates(t *testing.T) {
	ctx := context.Background()

	provider := newScriptedProviderClient()
	provider.silentErrs = []error{NewInteractionRequiredError("login required")}
	provider.interactiveErrs = []error{errors.New("popup_window_error: popup blocked by browser")}

	svc, _, observer := newTestService(t, provider)

	_, err := svc.Renew(ctx, RenewOptions{AllowInteractiveFallback: true})
	if err == nil {
		t.Fatalf("expected popup-blocked failure")
	}
	if !IsPopupBlocked(err) {
		t.Fatalf("expected popup-blocked classification, got %v", err)
	}
	_, _, _, guidance := observer.snapshot()
	if len(guidance) != 1 {
		t.Fatalf("expected one guidance notification, got %d", len(guidance))
	}
	if guidance[0] != DefaultPopupGuidance {
		t.Fatalf("unexpected guidance text %q", guidance[0])
	}
}

func TestRenew_SecondCallerRejectedWhileLockHeld(t *testing.T) {
	ctx := context.Background()

	provider := newScriptedProviderClient()
	provider.silentStarted = make(chan struct{})
	provider.silentRelease = make(chan struct{})
	provider.silentResults = []AuthenticationResult{
		resultWithToken("tok_1", Account{ID: "acct_1"}, map[string]any{"sub": "acct_1"}),
		resultWithToken("tok_2", Account{ID: "acct_1"}, map[string]any{"sub": "acct_1"}),
	}

	svc, _, _ := newTestService(t, provider)

	started := provider.silentStarted
	release := provider.silentRelease

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.Renew(ctx, RenewOptions{})
	}()

	<-started
	_, secondErr := svc.Renew(ctx, RenewOptions{})
	if secondErr == nil {
		t.Fatalf("expected second renewal to be rejected while lock held")
	}
	if !IsRenewalInProgress(secondErr) {
		t.Fatalf("expected renewal-in-progress error, got %v", secondErr)
	}
	if provider.silentCallCount() != 1 {
		t.Fatalf("second caller must not reach the provider, got %d silent calls", provider.silentCallCount())
	}

	close(release)
	wg.Wait()
	if firstErr != nil {
		t.Fatalf("first renewal should succeed: %v", firstErr)
	}
}

func TestRenew_LockReleasedAfterProviderPanic(t *testing.T) {
	ctx := context.Background()

	provider := newScriptedProviderClient()
	provider.silentPanicMessage = "silent renewer exploded"
	provider.silentResults = []AuthenticationResult{
		{},
		resultWithToken("tok_after_panic", Account{ID: "acct_1"}, map[string]any{"sub": "acct_1"}),
	}

	svc, _, _ := newTestService(t, provider)

	func() {
		defer func() {
			if recovered := recover(); recovered == nil {
				t.Fatalf("expected panic from scripted provider")
			}
		}()
		_, _ = svc.Renew(ctx, RenewOptions{})
	}()

	user, err := svc.Renew(ctx, RenewOptions{})
	if err != nil {
		t.Fatalf("renewal after panic should proceed, not deadlock: %v", err)
	}
	if user.IDToken != "tok_after_panic" {
		t.Fatalf("expected token from second attempt, got %q", user.IDToken)
	}
}

func TestRenew_PrefersPreviouslyActiveAccount(t *testing.T) {
	ctx := context.Background()

	provider := newScriptedProviderClient()
	provider.accounts = []Account{{ID: "acct_1"}, {ID: "acct_2"}}
	provider.silentResults = []AuthenticationResult{
		resultWithToken("tok_1", Account{ID: "acct_2"}, map[string]any{"sub": "acct_2"}),
		resultWithToken("tok_2", Account{ID: "acct_2"}, map[string]any{"sub": "acct_2"}),
	}

	svc, _, _ := newTestService(t, provider)

	if _, err := svc.Renew(ctx, RenewOptions{}); err != nil {
		t.Fatalf("first renew: %v", err)
	}
	active := svc.activeAccount()
	if active == nil || active.ID != "acct_2" {
		t.Fatalf("expected acct_2 remembered as active, got %+v", active)
	}

	if _, err := svc.Renew(ctx, RenewOptions{}); err != nil {
		t.Fatalf("second renew: %v", err)
	}
}
