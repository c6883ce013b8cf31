package core

import (
	"strings"
	"time"
)

type InteractionStatus string

const (
	InteractionStatusNone           InteractionStatus = "none"
	InteractionStatusStartup        InteractionStatus = "startup"
	InteractionStatusLogin          InteractionStatus = "login"
	InteractionStatusLogout         InteractionStatus = "logout"
	InteractionStatusSsoSilent      InteractionStatus = "sso_silent"
	InteractionStatusAcquireToken   InteractionStatus = "acquire_token"
	InteractionStatusHandleRedirect InteractionStatus = "handle_redirect"
)

// Idle reports whether the provider is free to start a new interaction.
// An empty status is treated as idle so providers that never report a
// status still allow automatic renewal.
func (s InteractionStatus) Idle() bool {
	trimmed := strings.TrimSpace(strings.ToLower(string(s)))
	return trimmed == "" || trimmed == string(InteractionStatusNone)
}

// Account is a provider-known identity. Instances arrive from the
// provider client and are never mutated by this module.
type Account struct {
	ID       string
	Username string
	Name     string
	Claims   map[string]any
}

func (a Account) IsZero() bool {
	return strings.TrimSpace(a.ID) == "" &&
		strings.TrimSpace(a.Username) == "" &&
		len(a.Claims) == 0
}

// TokenRequest is built fresh for every acquisition attempt. A nil
// Account means an anonymous request where the provider picks the
// session.
type TokenRequest struct {
	Account *Account
	Scopes  []string
}

// AuthenticationResult is what a provider adapter hands back from a
// silent or interactive acquisition. Never mutated after creation.
type AuthenticationResult struct {
	IDToken   string
	Scopes    []string
	Account   Account
	Claims    map[string]any
	ExpiresAt *time.Time
}

// Profile fields are always populated strings; a missing claim maps to
// "" rather than an absent value.
type Profile struct {
	Email             string
	Name              string
	PictureURL        string
	PreferredUsername string
	Subject           string
}

// SessionUser is the normalized output handed to callers after a
// successful login or renewal.
type SessionUser struct {
	IDToken string
	Scope   string
	Profile Profile
}

type ProviderEventKind string

const (
	ProviderEventAccountsChanged ProviderEventKind = "accounts_changed"
	ProviderEventStatusChanged   ProviderEventKind = "interaction_status_changed"
	ProviderEventStartup         ProviderEventKind = "startup"
)

// ProviderEvent is the explicit subscription signal that replaces any
// UI-render-bound trigger: the session service reacts to these events
// when deciding whether to hydrate a session automatically.
type ProviderEvent struct {
	ID         string
	Kind       ProviderEventKind
	Accounts   []Account
	Status     InteractionStatus
	OccurredAt time.Time
	Metadata   map[string]any
}

// RenewalJobMessage is the queue payload for a scheduled (proactive)
// silent renewal lease.
type RenewalJobMessage struct {
	JobID          string
	Reason         string
	Parameters     map[string]any
	IdempotencyKey string
	DedupPolicy    string
}
