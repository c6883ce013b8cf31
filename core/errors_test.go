package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestErrorConstructorsCarryTextCodes(t *testing.T) {
	cases := []struct {
		err      *goerrors.Error
		textCode string
		code     int
	}{
		{NewInteractionRequiredError("m"), SessionErrorInteractionRequired, http.StatusUnauthorized},
		{NewUserCancelledError("m"), SessionErrorUserCancelled, http.StatusConflict},
		{NewPopupBlockedError("m"), SessionErrorPopupBlocked, http.StatusConflict},
		{NewRenewalInProgressError("m"), SessionErrorRenewalInProgress, http.StatusConflict},
		{NewProviderError("m"), SessionErrorProviderFailed, http.StatusBadGateway},
	}
	for _, tc := range cases {
		if tc.err.TextCode != tc.textCode {
			t.Fatalf("expected text code %s, got %s", tc.textCode, tc.err.TextCode)
		}
		if tc.err.Code != tc.code {
			t.Fatalf("%s: expected code %d, got %d", tc.textCode, tc.code, tc.err.Code)
		}
	}
}

func TestPredicatesMatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("renew session: %w", NewInteractionRequiredError("login required"))
	if !IsInteractionRequired(wrapped) {
		t.Fatalf("predicate must see through fmt.Errorf wrapping")
	}
	if IsUserCancelled(wrapped) || IsPopupBlocked(wrapped) || IsRenewalInProgress(wrapped) {
		t.Fatalf("unrelated predicates must not match")
	}
	if IsInteractionRequired(nil) {
		t.Fatalf("nil error must not match")
	}
	if IsInteractionRequired(errors.New("interaction required maybe")) {
		t.Fatalf("plain errors without the envelope must not match")
	}
}

func TestSessionErrorMapper_SniffsProviderStrings(t *testing.T) {
	cases := []struct {
		message  string
		textCode string
	}{
		{"AADSTS50058: interaction_required", SessionErrorInteractionRequired},
		{"consent_required for scope email", SessionErrorInteractionRequired},
		{"login_required", SessionErrorInteractionRequired},
		{"invalid_grant: refresh token revoked", SessionErrorInteractionRequired},
		{"popup_window_error: popup blocked by the browser", SessionErrorPopupBlocked},
		{"user_cancelled the flow", SessionErrorUserCancelled},
		{"popup_window_error: window closed by user", SessionErrorUserCancelled},
		{"renewal already in progress", SessionErrorRenewalInProgress},
		{"scope mismatch on request", SessionErrorBadInput},
	}
	for _, tc := range cases {
		mapped := sessionErrorMapper(errors.New(tc.message))
		if mapped == nil {
			t.Fatalf("%q: expected mapped error", tc.message)
		}
		if mapped.TextCode != tc.textCode {
			t.Fatalf("%q: expected %s, got %s", tc.message, tc.textCode, mapped.TextCode)
		}
	}
}

func TestSessionErrorMapper_PreservesExistingEnvelope(t *testing.T) {
	original := NewUserCancelledError("window dismissed")
	mapped := sessionErrorMapper(original)
	if mapped.TextCode != SessionErrorUserCancelled {
		t.Fatalf("existing text code must survive mapping, got %s", mapped.TextCode)
	}
	if mapped.Code != http.StatusConflict {
		t.Fatalf("existing code must survive mapping, got %d", mapped.Code)
	}
}

func TestSessionErrorMapper_NilPassthrough(t *testing.T) {
	if mapped := sessionErrorMapper(nil); mapped != nil {
		t.Fatalf("nil input must map to nil, got %v", mapped)
	}
}

func TestPopupGuidanceHelper(t *testing.T) {
	if guidance := PopupGuidance(NewPopupBlockedError("blocked")); guidance != DefaultPopupGuidance {
		t.Fatalf("expected default guidance, got %q", guidance)
	}
	if guidance := PopupGuidance(NewUserCancelledError("cancelled")); guidance != "" {
		t.Fatalf("non-popup errors carry no guidance, got %q", guidance)
	}
	if guidance := PopupGuidance(nil); guidance != "" {
		t.Fatalf("nil error carries no guidance, got %q", guidance)
	}
}

func TestEnsureSessionErrorEnvelopeFillsDefaults(t *testing.T) {
	err := ensureSessionErrorEnvelope(goerrors.New("boom", goerrors.CategoryExternal))
	if err.Code != http.StatusBadGateway {
		t.Fatalf("expected bad gateway code, got %d", err.Code)
	}
	if err.TextCode != SessionErrorProviderFailed {
		t.Fatalf("expected provider text code, got %s", err.TextCode)
	}
}
