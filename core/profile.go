package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseResponse normalizes a provider authentication result into the
// SessionUser handed to callers. Every profile field is a string:
// a claim the provider did not assert becomes "", never an absent
// value. Scopes join into a single space-separated string.
func ParseResponse(result AuthenticationResult) SessionUser {
	claims := result.Claims
	if len(claims) == 0 {
		claims = result.Account.Claims
	}
	return SessionUser{
		IDToken: strings.TrimSpace(result.IDToken),
		Scope:   strings.Join(trimScopes(result.Scopes), " "),
		Profile: Profile{
			Email:             readString(claims["email"]),
			Name:              readString(claims["name"]),
			PictureURL:        readString(claims["picture"]),
			PreferredUsername: readString(claims["preferred_username"]),
			Subject:           readString(claims["sub"]),
		},
	}
}

func trimScopes(scopes []string) []string {
	out := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		trimmed := strings.TrimSpace(scope)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func readString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	case json.Number:
		return strings.TrimSpace(typed.String())
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatInt(int64(typed), 10)
	default:
		if value == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(value))
	}
}

func copyMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
