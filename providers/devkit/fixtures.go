package devkit

import (
	"time"

	"github.com/goliatone/go-session/core"

	"github.com/google/uuid"
)

// NewAccountFixture builds a provider account with a fresh id and the
// standard profile claims present.
func NewAccountFixture(username string) core.Account {
	return core.Account{
		ID:       uuid.NewString(),
		Username: username,
		Name:     "Fixture User",
		Claims: map[string]any{
			"email":              username,
			"name":               "Fixture User",
			"preferred_username": username,
			"sub":                uuid.NewString(),
		},
	}
}

// NewResultFixture builds a successful acquisition result for the given
// account and token.
func NewResultFixture(account core.Account, idToken string, scopes ...string) core.AuthenticationResult {
	expires := time.Now().UTC().Add(time.Hour)
	claims := make(map[string]any, len(account.Claims))
	for key, value := range account.Claims {
		claims[key] = value
	}
	return core.AuthenticationResult{
		IDToken:   idToken,
		Scopes:    append([]string(nil), scopes...),
		Account:   account,
		Claims:    claims,
		ExpiresAt: &expires,
	}
}

// NewAccountsChangedEvent builds the event a provider surface would
// publish when its known account set changes.
func NewAccountsChangedEvent(accounts ...core.Account) core.ProviderEvent {
	return newEvent(core.ProviderEventAccountsChanged, accounts, core.InteractionStatusNone)
}

// NewStatusChangedEvent reports an interaction-status transition. The
// account list is left empty so consumers probe the provider.
func NewStatusChangedEvent(status core.InteractionStatus) core.ProviderEvent {
	return newEvent(core.ProviderEventStatusChanged, nil, status)
}

// NewStartupEvent is the first signal published after the provider
// client finishes initializing.
func NewStartupEvent(accounts ...core.Account) core.ProviderEvent {
	return newEvent(core.ProviderEventStartup, accounts, core.InteractionStatusNone)
}

func newEvent(kind core.ProviderEventKind, accounts []core.Account, status core.InteractionStatus) core.ProviderEvent {
	return core.ProviderEvent{
		ID:         uuid.NewString(),
		Kind:       normalizeKind(kind),
		Accounts:   append([]core.Account(nil), accounts...),
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}
}
