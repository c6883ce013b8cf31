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

// MarkerStore persists provider session markers in SQL so a session can
// be recognized across process restarts. Keys are unique; Set upserts.
type MarkerStore struct {
	db   *bun.DB
	repo repository.Repository[*sessionMarkerRecord]
}

func (s *MarkerStore) Set(ctx context.Context, key string, value string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: marker store is not configured")
	}
	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return fmt.Errorf("sqlstore: marker key is required")
	}
	now := time.Now().UTC()

	record := &sessionMarkerRecord{
		ID:        uuid.NewString(),
		Key:       trimmedKey,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *MarkerStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.repo == nil {
		return "", false, fmt.Errorf("sqlstore: marker store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("key", "=", strings.TrimSpace(key)),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return "", false, err
	}
	if len(records) == 0 {
		return "", false, nil
	}
	return records[0].Value, true, nil
}

func (s *MarkerStore) Keys(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: marker store is not configured")
	}
	var keys []string
	if err := s.db.NewSelect().
		Model((*sessionMarkerRecord)(nil)).
		Column("key").
		Order("key ASC").
		Scan(ctx, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *MarkerStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: marker store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*sessionMarkerRecord)(nil)).
		Where("key = ?", strings.TrimSpace(key)).
		Exec(ctx)
	return err
}

func (s *MarkerStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: marker store is not configured")
	}
	result, err := s.db.NewDelete().
		Model((*sessionMarkerRecord)(nil)).
		Where("key LIKE ? ESCAPE ?", escapeLikePrefix(prefix)+"%", `\`).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(affected), nil
}

// escapeLikePrefix neutralizes LIKE wildcards so a marker prefix
// containing % or _ matches literally.
func escapeLikePrefix(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix)
}
