package query

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Querier[CurrentTokenMessage, TokenResult] = (*CurrentTokenQuery)(nil)
	_ gocmd.Querier[CurrentUserMessage, UserResult]   = (*CurrentUserQuery)(nil)
	_ gocmd.Querier[GetMarkerMessage, MarkerResult]   = (*GetMarkerQuery)(nil)
	_ gocmd.Querier[ListMarkersMessage, []string]     = (*ListMarkersQuery)(nil)
)
