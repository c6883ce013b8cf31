package core

import "strings"

// ResolveAccount picks the account for the next token request: the
// previously active account when the provider still knows it, otherwise
// the first known account, otherwise nil so the provider chooses the
// session itself. Absence of accounts is a valid state, not an error.
func ResolveAccount(known []Account, previous *Account) *Account {
	if previous != nil && !previous.IsZero() {
		for _, account := range known {
			if sameAccount(account, *previous) {
				matched := account
				return &matched
			}
		}
	}
	if len(known) > 0 {
		first := known[0]
		return &first
	}
	return nil
}

func sameAccount(a Account, b Account) bool {
	if id := strings.TrimSpace(a.ID); id != "" {
		return id == strings.TrimSpace(b.ID)
	}
	username := strings.TrimSpace(a.Username)
	return username != "" && strings.EqualFold(username, strings.TrimSpace(b.Username))
}
