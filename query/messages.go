package query

import (
	"fmt"
	"strings"
)

const (
	TypeCurrentToken = "session.query.token.current"
	TypeCurrentUser  = "session.query.user.current"
	TypeGetMarker    = "session.query.marker.get"
	TypeListMarkers  = "session.query.marker.list"
)

type CurrentTokenMessage struct{}

func (CurrentTokenMessage) Type() string { return TypeCurrentToken }

func (CurrentTokenMessage) Validate() error { return nil }

type CurrentUserMessage struct{}

func (CurrentUserMessage) Type() string { return TypeCurrentUser }

func (CurrentUserMessage) Validate() error { return nil }

type GetMarkerMessage struct {
	Key string
}

func (GetMarkerMessage) Type() string { return TypeGetMarker }

func (m GetMarkerMessage) Validate() error {
	if strings.TrimSpace(m.Key) == "" {
		return fmt.Errorf("query: marker key is required")
	}
	return nil
}

type ListMarkersMessage struct {
	Prefix string
}

func (ListMarkersMessage) Type() string { return TypeListMarkers }

func (ListMarkersMessage) Validate() error { return nil }
