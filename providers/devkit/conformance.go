package devkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-session/core"
)

// ValidateTokenStoreConformance checks the set/get/clear contract a
// token store implementation must honor.
func ValidateTokenStoreConformance(ctx context.Context, store core.TokenStore) error {
	if store == nil {
		return fmt.Errorf("devkit: token store is required")
	}
	if err := store.Set(ctx, "devkit-token"); err != nil {
		return err
	}
	token, found, err := store.Get(ctx)
	if err != nil {
		return err
	}
	if !found || token != "devkit-token" {
		return fmt.Errorf("devkit: expected cached token after set, got %q found=%v", token, found)
	}
	if err := store.Clear(ctx); err != nil {
		return err
	}
	if _, found, err := store.Get(ctx); err != nil {
		return err
	} else if found {
		return fmt.Errorf("devkit: expected no token after clear")
	}
	return nil
}

// ValidateMarkerStoreConformance checks marker enumeration and the
// prefix-scoped delete a logout depends on. The prefix must select
// literally, not as a pattern.
func ValidateMarkerStoreConformance(ctx context.Context, store core.MarkerStore, prefix string) error {
	if store == nil {
		return fmt.Errorf("devkit: marker store is required")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return fmt.Errorf("devkit: marker prefix is required")
	}
	scoped := prefix + "devkit.account"
	unscoped := "devkit.unrelated"
	if err := store.Set(ctx, scoped, "v1"); err != nil {
		return err
	}
	if err := store.Set(ctx, unscoped, "keep"); err != nil {
		return err
	}
	keys, err := store.Keys(ctx)
	if err != nil {
		return err
	}
	if !containsKey(keys, scoped) || !containsKey(keys, unscoped) {
		return fmt.Errorf("devkit: expected both markers enumerated, got %v", keys)
	}
	removed, err := store.DeleteByPrefix(ctx, prefix)
	if err != nil {
		return err
	}
	if removed < 1 {
		return fmt.Errorf("devkit: expected at least one prefixed marker removed")
	}
	if _, found, err := store.Get(ctx, unscoped); err != nil {
		return err
	} else if !found {
		return fmt.Errorf("devkit: prefix delete must not touch unscoped markers")
	}
	return store.Delete(ctx, unscoped)
}

// ValidateProviderClientConformance checks that a provider client
// reports accounts and an interaction status without error.
func ValidateProviderClientConformance(ctx context.Context, client core.ProviderClient) error {
	if client == nil {
		return fmt.Errorf("devkit: provider client is required")
	}
	if _, err := client.Accounts(ctx); err != nil {
		return err
	}
	if _, err := client.InteractionStatus(ctx); err != nil {
		return err
	}
	return nil
}

func containsKey(keys []string, key string) bool {
	for _, candidate := range keys {
		if candidate == key {
			return true
		}
	}
	return false
}
