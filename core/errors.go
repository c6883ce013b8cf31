package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	SessionErrorBadInput            = "SESSION_BAD_INPUT"
	SessionErrorInteractionRequired = "SESSION_INTERACTION_REQUIRED"
	SessionErrorUserCancelled       = "SESSION_USER_CANCELLED"
	SessionErrorPopupBlocked        = "SESSION_POPUP_BLOCKED"
	SessionErrorRenewalInProgress   = "SESSION_RENEWAL_IN_PROGRESS"
	SessionErrorProviderFailed      = "SESSION_PROVIDER_ERROR"
	SessionErrorInternal            = "SESSION_INTERNAL_ERROR"
)

// DefaultPopupGuidance is surfaced alongside a popup-blocked failure so
// callers can render actionable remediation instead of a generic error.
const DefaultPopupGuidance = "The sign-in popup was blocked by the browser. " +
	"Allow popups for this site and retry: https://support.google.com/chrome/answer/95472"

func NewInteractionRequiredError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(SessionErrorInteractionRequired)
}

func NewUserCancelledError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryOperation).
		WithCode(http.StatusConflict).
		WithTextCode(SessionErrorUserCancelled)
}

func NewPopupBlockedError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryOperation).
		WithCode(http.StatusConflict).
		WithTextCode(SessionErrorPopupBlocked)
}

func NewRenewalInProgressError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryConflict).
		WithCode(http.StatusConflict).
		WithTextCode(SessionErrorRenewalInProgress)
}

func NewProviderError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(SessionErrorProviderFailed)
}

func IsInteractionRequired(err error) bool {
	return hasTextCode(err, SessionErrorInteractionRequired)
}

func IsUserCancelled(err error) bool {
	return hasTextCode(err, SessionErrorUserCancelled)
}

func IsPopupBlocked(err error) bool {
	return hasTextCode(err, SessionErrorPopupBlocked)
}

func IsRenewalInProgress(err error) bool {
	return hasTextCode(err, SessionErrorRenewalInProgress)
}

// PopupGuidance returns the remediation text for a popup-blocked
// failure, or "" when the error is anything else.
func PopupGuidance(err error) string {
	if !IsPopupBlocked(err) {
		return ""
	}
	return DefaultPopupGuidance
}

func hasTextCode(err error, textCode string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(richErr.TextCode), textCode)
}

// sessionErrorMapper normalizes foreign errors into the session error
// envelope. Provider SDK errors arrive as plain strings, so the mapping
// sniffs the well-known OAuth error codes before defaulting.
func sessionErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureSessionErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "interaction_required"),
		strings.Contains(msg, "consent_required"),
		strings.Contains(msg, "login_required"),
		strings.Contains(msg, "invalid_grant"):
		return NewInteractionRequiredError(err.Error())
	case strings.Contains(msg, "popup") && strings.Contains(msg, "block"):
		return NewPopupBlockedError(err.Error())
	case strings.Contains(msg, "user_cancelled"), strings.Contains(msg, "user cancelled"),
		strings.Contains(msg, "popup_window_error") && strings.Contains(msg, "closed"):
		return NewUserCancelledError(err.Error())
	case strings.Contains(msg, "renewal already in progress"), strings.Contains(msg, "renewal lock"):
		return NewRenewalInProgressError(err.Error())
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "mismatch"):
		return newSessionError(err.Error(), goerrors.CategoryBadInput, SessionErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureSessionErrorEnvelope(mapped)
}

func newSessionError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureSessionErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureSessionErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = sessionHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultSessionTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultSessionTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return SessionErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return SessionErrorInteractionRequired
	case goerrors.CategoryConflict:
		return SessionErrorRenewalInProgress
	case goerrors.CategoryExternal:
		return SessionErrorProviderFailed
	default:
		return SessionErrorInternal
	}
}

func sessionHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
