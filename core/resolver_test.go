package core

import "testing"

func TestResolveAccount_PrefersPreviousByID(t *testing.T) {
	known := []Account{{ID: "acct_1"}, {ID: "acct_2"}}
	previous := &Account{ID: "acct_2"}

	resolved := ResolveAccount(known, previous)
	if resolved == nil || resolved.ID != "acct_2" {
		t.Fatalf("expected previous account kept, got %+v", resolved)
	}
}

func TestResolveAccount_MatchesUsernameCaseInsensitive(t *testing.T) {
	known := []Account{
		{Username: "grace@example.com"},
		{Username: "Ada@Example.com"},
	}
	previous := &Account{Username: "ada@example.com"}

	resolved := ResolveAccount(known, previous)
	if resolved == nil || resolved.Username != "Ada@Example.com" {
		t.Fatalf("expected username match, got %+v", resolved)
	}
}

func TestResolveAccount_FallsBackToFirstKnown(t *testing.T) {
	known := []Account{{ID: "acct_1"}, {ID: "acct_2"}}
	previous := &Account{ID: "acct_gone"}

	resolved := ResolveAccount(known, previous)
	if resolved == nil || resolved.ID != "acct_1" {
		t.Fatalf("expected first known account, got %+v", resolved)
	}
}

func TestResolveAccount_NilWhenNoAccountsKnown(t *testing.T) {
	if resolved := ResolveAccount(nil, &Account{ID: "acct_1"}); resolved != nil {
		t.Fatalf("expected nil with no known accounts, got %+v", resolved)
	}
	if resolved := ResolveAccount(nil, nil); resolved != nil {
		t.Fatalf("expected nil with nothing known, got %+v", resolved)
	}
}
