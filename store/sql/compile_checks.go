package sqlstore

import "github.com/goliatone/go-session/core"

var (
	_ core.MarkerStore          = (*MarkerStore)(nil)
	_ core.TokenStore           = (*TokenSnapshotStore)(nil)
	_ core.SessionStoreFactory  = (*RepositoryFactory)(nil)
	_ core.SessionStoreProvider = (*RepositoryFactory)(nil)
)
