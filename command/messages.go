package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-session/core"
)

const (
	TypeLogin           = "session.command.login"
	TypeLogout          = "session.command.logout"
	TypeRenew           = "session.command.renew"
	TypeScheduleRenewal = "session.command.renewal.schedule"
)

type LoginMessage struct{}

func (LoginMessage) Type() string { return TypeLogin }

func (LoginMessage) Validate() error { return nil }

type LogoutMessage struct{}

func (LogoutMessage) Type() string { return TypeLogout }

func (LogoutMessage) Validate() error { return nil }

type RenewMessage struct {
	AllowInteractiveFallback bool
	Trigger                  string
}

func (RenewMessage) Type() string { return TypeRenew }

func (RenewMessage) Validate() error { return nil }

type ScheduleRenewalMessage struct {
	Job core.RenewalJobMessage
}

func (ScheduleRenewalMessage) Type() string { return TypeScheduleRenewal }

func (m ScheduleRenewalMessage) Validate() error {
	if strings.TrimSpace(m.Job.JobID) == "" {
		return fmt.Errorf("command: renewal job id is required")
	}
	if strings.TrimSpace(m.Job.Reason) == "" {
		return fmt.Errorf("command: renewal reason is required")
	}
	return nil
}
