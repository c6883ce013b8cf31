package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type sessionMarkerRecord struct {
	bun.BaseModel `bun:"table:session_markers,alias:sm"`

	ID        string    `bun:"id,pk"`
	Key       string    `bun:"key,notnull"`
	Value     string    `bun:"value,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type tokenSnapshotRecord struct {
	bun.BaseModel `bun:"table:session_token_snapshots,alias:sts"`

	ID        string    `bun:"id,pk"`
	IDToken   string    `bun:"id_token,notnull"`
	Scope     string    `bun:"scope,notnull"`
	Subject   string    `bun:"subject,notnull"`
	Version   int       `bun:"version,notnull"`
	Status    string    `bun:"status,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

const (
	tokenSnapshotStatusActive     = "active"
	tokenSnapshotStatusSuperseded = "superseded"
	tokenSnapshotStatusCleared    = "cleared"
)
