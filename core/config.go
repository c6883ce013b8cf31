package core

import (
	"fmt"
	"strings"
)

type RenewalConfig struct {
	Scopes []string `koanf:"scopes" mapstructure:"scopes"`
}

type MarkersConfig struct {
	KeyPrefix string `koanf:"key_prefix" mapstructure:"key_prefix"`
}

type Config struct {
	ServiceName   string        `koanf:"service_name" mapstructure:"service_name"`
	ClientID      string        `koanf:"client_id" mapstructure:"client_id"`
	PopupGuidance string        `koanf:"popup_guidance" mapstructure:"popup_guidance"`
	Renewal       RenewalConfig `koanf:"renewal" mapstructure:"renewal"`
	Markers       MarkersConfig `koanf:"markers" mapstructure:"markers"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "session",
		Renewal: RenewalConfig{
			Scopes: []string{"openid", "profile", "email"},
		},
		Markers: MarkersConfig{
			KeyPrefix: "idp.session.",
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Markers.KeyPrefix) == "" {
		return fmt.Errorf("core: markers.key_prefix is required")
	}
	return nil
}
