package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TokenSnapshotStore keeps a versioned history of cached idTokens. Set
// supersedes the previous active snapshot inside one transaction, so a
// reader always sees exactly one active row.
type TokenSnapshotStore struct {
	db   *bun.DB
	repo repository.Repository[*tokenSnapshotRecord]
}

func (s *TokenSnapshotStore) Get(ctx context.Context) (string, bool, error) {
	if s == nil || s.repo == nil {
		return "", false, fmt.Errorf("sqlstore: token snapshot store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("status", "=", tokenSnapshotStatusActive),
		repository.OrderBy("version DESC"),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return "", false, err
	}
	if len(records) == 0 {
		return "", false, nil
	}
	return records[0].IDToken, true, nil
}

func (s *TokenSnapshotStore) Set(ctx context.Context, token string) error {
	return s.SetSnapshot(ctx, token, "", "")
}

// SetSnapshot records a new active snapshot with optional scope and
// subject context for auditability.
func (s *TokenSnapshotStore) SetSnapshot(ctx context.Context, token string, scope string, subject string) error {
	if s == nil || s.repo == nil || s.db == nil {
		return fmt.Errorf("sqlstore: token snapshot store is not configured")
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("sqlstore: id token is required")
	}
	now := time.Now().UTC()

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		nextVersion, err := s.nextVersion(ctx, tx)
		if err != nil {
			return err
		}

		if _, err := tx.NewUpdate().
			Model((*tokenSnapshotRecord)(nil)).
			Set("status = ?", tokenSnapshotStatusSuperseded).
			Set("updated_at = ?", now).
			Where("status = ?", tokenSnapshotStatusActive).
			Exec(ctx); err != nil {
			return err
		}

		record := &tokenSnapshotRecord{
			ID:        uuid.NewString(),
			IDToken:   token,
			Scope:     scope,
			Subject:   subject,
			Version:   nextVersion,
			Status:    tokenSnapshotStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, err = s.repo.CreateTx(ctx, tx, record)
		return err
	})
}

func (s *TokenSnapshotStore) Clear(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: token snapshot store is not configured")
	}
	_, err := s.db.NewUpdate().
		Model((*tokenSnapshotRecord)(nil)).
		Set("status = ?", tokenSnapshotStatusCleared).
		Set("updated_at = ?", time.Now().UTC()).
		Where("status = ?", tokenSnapshotStatusActive).
		Exec(ctx)
	return err
}

func (s *TokenSnapshotStore) nextVersion(ctx context.Context, tx bun.Tx) (int, error) {
	var maxVersion int
	if err := tx.NewSelect().
		Model((*tokenSnapshotRecord)(nil)).
		ColumnExpr("COALESCE(MAX(version), 0)").
		Scan(ctx, &maxVersion); err != nil {
		return 0, err
	}
	return maxVersion + 1, nil
}
