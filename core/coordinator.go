package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type RenewOptions struct {
	// AllowInteractiveFallback permits escalation to the blocking
	// user-facing flow when silent renewal reports that interaction is
	// unavoidable. Disruptive, so off unless the caller opts in.
	AllowInteractiveFallback bool
	// Trigger labels the renewal origin in logs and metrics.
	Trigger string
}

// Renew runs one full renewal sequence: resolve the account, attempt
// silent acquisition, optionally escalate to the interactive flow, then
// normalize and cache the result. The renewal lock is held for the
// entire sequence and released on every exit path.
func (s *Service) Renew(ctx context.Context, opts RenewOptions) (SessionUser, error) {
	if s == nil {
		return SessionUser{}, fmt.Errorf("core: service is nil")
	}
	startedAt := time.Now()
	trigger := strings.TrimSpace(opts.Trigger)
	if trigger == "" {
		trigger = "manual"
	}

	user, err := s.renewLocked(ctx, opts)
	s.observeOperation(ctx, startedAt, "renew", err, map[string]any{
		"client_id":        s.config.ClientID,
		"trigger":          trigger,
		"fallback_allowed": opts.AllowInteractiveFallback,
	})
	return user, err
}

func (s *Service) renewLocked(ctx context.Context, opts RenewOptions) (SessionUser, error) {
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

	result, silentErr := s.attemptSilent(ctx, request)
	if silentErr != nil {
		if !IsInteractionRequired(silentErr) || !opts.AllowInteractiveFallback {
			return SessionUser{}, silentErr
		}
		interactive, interactiveErr := s.attemptInteractive(ctx, request)
		if interactiveErr != nil {
			if IsPopupBlocked(interactiveErr) {
				s.notifyPopupGuidance(ctx)
			}
			return SessionUser{}, interactiveErr
		}
		result = interactive
	}

	return s.completeRenewal(ctx, result)
}

func (s *Service) buildTokenRequest(ctx context.Context) (TokenRequest, error) {
	accounts, err := s.provider.Accounts(ctx)
	if err != nil {
		return TokenRequest{}, fmt.Errorf("core: enumerate accounts: %w", err)
	}
	account := ResolveAccount(accounts, s.activeAccount())
	return TokenRequest{
		Account: account,
		Scopes:  append([]string(nil), s.config.Renewal.Scopes...),
	}, nil
}

func (s *Service) attemptSilent(ctx context.Context, req TokenRequest) (AuthenticationResult, error) {
	result, err := s.provider.SsoSilent(ctx, req)
	if err != nil {
		return AuthenticationResult{}, s.mapError(err)
	}
	return result, nil
}

func (s *Service) attemptInteractive(ctx context.Context, req TokenRequest) (AuthenticationResult, error) {
	result, err := s.provider.LoginPopup(ctx, req)
	if err != nil {
		return AuthenticationResult{}, s.mapError(err)
	}
	return result, nil
}

func (s *Service) completeRenewal(ctx context.Context, result AuthenticationResult) (SessionUser, error) {
	user := ParseResponse(result)
	if err := s.tokenStore.Set(ctx, user.IDToken); err != nil {
		return SessionUser{}, s.mapError(fmt.Errorf("core: cache id token: %w", err))
	}
	s.rememberSession(result.Account, user)
	return user, nil
}

func (s *Service) notifyPopupGuidance(ctx context.Context) {
	if s == nil || s.observer == nil {
		return
	}
	s.observer.OnPopupGuidance(ctx, s.popupGuidance())
}

func (s *Service) popupGuidance() string {
	if guidance := strings.TrimSpace(s.config.PopupGuidance); guidance != "" {
		return guidance
	}
	return DefaultPopupGuidance
}
