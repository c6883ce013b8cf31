package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-session/core"
)

// MutatingService is the slice of the session service the command
// handlers drive.
type MutatingService interface {
	Login(ctx context.Context) (core.SessionUser, error)
	Logout(ctx context.Context) error
	Renew(ctx context.Context, opts core.RenewOptions) (core.SessionUser, error)
	ScheduleRenewal(ctx context.Context, msg *core.RenewalJobMessage) error
}

type LoginCommand struct {
	service MutatingService
}

func NewLoginCommand(service MutatingService) *LoginCommand {
	return &LoginCommand{service: service}
}

func (c *LoginCommand) Execute(ctx context.Context, _ LoginMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: login service is required")
	}
	user, err := c.service.Login(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, user)
	return nil
}

type LogoutCommand struct {
	service MutatingService
}

func NewLogoutCommand(service MutatingService) *LogoutCommand {
	return &LogoutCommand{service: service}
}

func (c *LogoutCommand) Execute(ctx context.Context, _ LogoutMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: logout service is required")
	}
	return c.service.Logout(ctx)
}

type RenewCommand struct {
	service MutatingService
}

func NewRenewCommand(service MutatingService) *RenewCommand {
	return &RenewCommand{service: service}
}

func (c *RenewCommand) Execute(ctx context.Context, msg RenewMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: renew service is required")
	}
	user, err := c.service.Renew(ctx, core.RenewOptions{
		AllowInteractiveFallback: msg.AllowInteractiveFallback,
		Trigger:                  msg.Trigger,
	})
	if err != nil {
		return err
	}
	storeResult(ctx, user)
	return nil
}

type ScheduleRenewalCommand struct {
	service MutatingService
}

func NewScheduleRenewalCommand(service MutatingService) *ScheduleRenewalCommand {
	return &ScheduleRenewalCommand{service: service}
}

func (c *ScheduleRenewalCommand) Execute(ctx context.Context, msg ScheduleRenewalMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: renewal scheduling service is required")
	}
	if err := msg.Validate(); err != nil {
		return commandWrapValidation(err, "command: invalid renewal schedule")
	}
	job := msg.Job
	return c.service.ScheduleRenewal(ctx, &job)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
