package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-session/core"
)

type TokenReader interface {
	Token(ctx context.Context) (string, bool, error)
}

type SessionReader interface {
	CurrentUser(ctx context.Context) (core.SessionUser, bool)
}

type MarkerReader interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Keys(ctx context.Context) ([]string, error)
}

// TokenResult carries the cached-token read; Cached distinguishes an
// empty token from an absent one.
type TokenResult struct {
	Token  string
	Cached bool
}

type UserResult struct {
	User          core.SessionUser
	Authenticated bool
}

type MarkerResult struct {
	Key   string
	Value string
	Found bool
}

type CurrentTokenQuery struct {
	reader TokenReader
}

func NewCurrentTokenQuery(reader TokenReader) *CurrentTokenQuery {
	return &CurrentTokenQuery{reader: reader}
}

func (q *CurrentTokenQuery) Query(ctx context.Context, _ CurrentTokenMessage) (TokenResult, error) {
	if q == nil || q.reader == nil {
		return TokenResult{}, queryDependencyError("query: token reader is required")
	}
	token, cached, err := q.reader.Token(ctx)
	if err != nil {
		return TokenResult{}, err
	}
	return TokenResult{Token: token, Cached: cached}, nil
}

type CurrentUserQuery struct {
	reader SessionReader
}

func NewCurrentUserQuery(reader SessionReader) *CurrentUserQuery {
	return &CurrentUserQuery{reader: reader}
}

func (q *CurrentUserQuery) Query(ctx context.Context, _ CurrentUserMessage) (UserResult, error) {
	if q == nil || q.reader == nil {
		return UserResult{}, queryDependencyError("query: session reader is required")
	}
	user, ok := q.reader.CurrentUser(ctx)
	return UserResult{User: user, Authenticated: ok}, nil
}

type GetMarkerQuery struct {
	reader MarkerReader
}

func NewGetMarkerQuery(reader MarkerReader) *GetMarkerQuery {
	return &GetMarkerQuery{reader: reader}
}

func (q *GetMarkerQuery) Query(ctx context.Context, msg GetMarkerMessage) (MarkerResult, error) {
	if q == nil || q.reader == nil {
		return MarkerResult{}, queryDependencyError("query: marker reader is required")
	}
	if err := msg.Validate(); err != nil {
		return MarkerResult{}, queryWrapValidation(err, "query: invalid marker lookup")
	}
	value, found, err := q.reader.Get(ctx, msg.Key)
	if err != nil {
		return MarkerResult{}, err
	}
	return MarkerResult{Key: msg.Key, Value: value, Found: found}, nil
}

type ListMarkersQuery struct {
	reader MarkerReader
}

func NewListMarkersQuery(reader MarkerReader) *ListMarkersQuery {
	return &ListMarkersQuery{reader: reader}
}

func (q *ListMarkersQuery) Query(ctx context.Context, msg ListMarkersMessage) ([]string, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: marker reader is required")
	}
	keys, err := q.reader.Keys(ctx)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimSpace(msg.Prefix)
	if prefix == "" {
		return keys, nil
	}
	filtered := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			filtered = append(filtered, key)
		}
	}
	return filtered, nil
}
