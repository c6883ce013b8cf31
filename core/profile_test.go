package core

import "testing"

func TestParseResponse_AllClaimsPresent(t *testing.T) {
	user := ParseResponse(AuthenticationResult{
		IDToken: " tok_1 ",
		Scopes:  []string{"openid", " profile ", ""},
		Claims: map[string]any{
			"email":              "ada@example.com",
			"name":               "Ada Lovelace",
			"picture":            "https://example.com/ada.png",
			"preferred_username": "ada",
			"sub":                "acct_1",
		},
	})

	if user.IDToken != "tok_1" {
		t.Fatalf("unexpected id token %q", user.IDToken)
	}
	if user.Scope != "openid profile" {
		t.Fatalf("unexpected scope %q", user.Scope)
	}
	if user.Profile.Email != "ada@example.com" ||
		user.Profile.Name != "Ada Lovelace" ||
		user.Profile.PictureURL != "https://example.com/ada.png" ||
		user.Profile.PreferredUsername != "ada" ||
		user.Profile.Subject != "acct_1" {
		t.Fatalf("unexpected profile %+v", user.Profile)
	}
}

func TestParseResponse_MissingClaimsBecomeEmptyStrings(t *testing.T) {
	user := ParseResponse(AuthenticationResult{IDToken: "tok_1"})

	if user.Profile.Email != "" || user.Profile.Name != "" ||
		user.Profile.PictureURL != "" || user.Profile.PreferredUsername != "" ||
		user.Profile.Subject != "" {
		t.Fatalf("absent claims must read as empty strings, got %+v", user.Profile)
	}
	if user.Scope != "" {
		t.Fatalf("empty scope list must join to empty string, got %q", user.Scope)
	}
}

func TestParseResponse_FallsBackToAccountClaims(t *testing.T) {
	user := ParseResponse(AuthenticationResult{
		IDToken: "tok_1",
		Account: Account{
			ID: "acct_1",
			Claims: map[string]any{
				"email": "ada@example.com",
				"sub":   "acct_1",
			},
		},
	})

	if user.Profile.Email != "ada@example.com" || user.Profile.Subject != "acct_1" {
		t.Fatalf("expected account claims fallback, got %+v", user.Profile)
	}
}

func TestParseResponse_NonStringClaimsStringify(t *testing.T) {
	user := ParseResponse(AuthenticationResult{
		IDToken: "tok_1",
		Claims: map[string]any{
			"email": nil,
			"name":  42,
			"sub":   int64(7),
		},
	})

	if user.Profile.Email != "" {
		t.Fatalf("nil claim must read as empty string, got %q", user.Profile.Email)
	}
	if user.Profile.Name != "42" {
		t.Fatalf("numeric claim should stringify, got %q", user.Profile.Name)
	}
	if user.Profile.Subject != "7" {
		t.Fatalf("int64 claim should stringify, got %q", user.Profile.Subject)
	}
}
