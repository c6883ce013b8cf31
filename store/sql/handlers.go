package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func markerHandlers() repository.ModelHandlers[*sessionMarkerRecord] {
	return repository.ModelHandlers[*sessionMarkerRecord]{
		NewRecord: func() *sessionMarkerRecord {
			return &sessionMarkerRecord{}
		},
		GetID: func(record *sessionMarkerRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *sessionMarkerRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *sessionMarkerRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func tokenSnapshotHandlers() repository.ModelHandlers[*tokenSnapshotRecord] {
	return repository.ModelHandlers[*tokenSnapshotRecord]{
		NewRecord: func() *tokenSnapshotRecord {
			return &tokenSnapshotRecord{}
		},
		GetID: func(record *tokenSnapshotRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *tokenSnapshotRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *tokenSnapshotRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
