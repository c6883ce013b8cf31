package session

import (
	"fmt"

	sessioncommand "github.com/goliatone/go-session/command"
	"github.com/goliatone/go-session/core"
	sessionquery "github.com/goliatone/go-session/query"
)

// CommandQueryService is the surface the facade needs from a session
// service. *core.Service satisfies it.
type CommandQueryService interface {
	sessioncommand.MutatingService
	sessionquery.TokenReader
	sessionquery.SessionReader
	Markers() core.MarkerStore
}

type Commands struct {
	Login           *sessioncommand.LoginCommand
	Logout          *sessioncommand.LogoutCommand
	Renew           *sessioncommand.RenewCommand
	ScheduleRenewal *sessioncommand.ScheduleRenewalCommand
}

type Queries struct {
	CurrentToken *sessionquery.CurrentTokenQuery
	CurrentUser  *sessionquery.CurrentUserQuery
	GetMarker    *sessionquery.GetMarkerQuery
	ListMarkers  *sessionquery.ListMarkersQuery
}

// Facade bundles the command and query handlers over one session
// service so hosts register them in a single pass.
type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	markerReader sessionquery.MarkerReader
}

// WithMarkerReader overrides the marker read source, for hosts that
// serve marker queries from a replica instead of the live store.
func WithMarkerReader(reader sessionquery.MarkerReader) FacadeOption {
	return func(options *facadeOptions) {
		options.markerReader = reader
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("session: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	markers := cfg.markerReader
	if markers == nil {
		markers = service.Markers()
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		Login:           sessioncommand.NewLoginCommand(service),
		Logout:          sessioncommand.NewLogoutCommand(service),
		Renew:           sessioncommand.NewRenewCommand(service),
		ScheduleRenewal: sessioncommand.NewScheduleRenewalCommand(service),
	}
	facade.queries = Queries{
		CurrentToken: sessionquery.NewCurrentTokenQuery(service),
		CurrentUser:  sessionquery.NewCurrentUserQuery(service),
		GetMarker:    sessionquery.NewGetMarkerQuery(markers),
		ListMarkers:  sessionquery.NewListMarkersQuery(markers),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

var _ CommandQueryService = (*core.Service)(nil)
