package config

import (
	"errors"
	"testing"

	"github.com/sitegentech/atendo/internal/common"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		cfg     Config
	}{
		{
			name: "defaults are valid",
			cfg:  Config{Timezone: DefaultTimezone},
		},
		{
			name:    "bad timezone",
			cfg:     Config{Timezone: "Mars/Olympus"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "smtp host without sender",
			cfg: Config{
				Timezone: DefaultTimezone,
				SMTP:     SMTPConfig{Host: "smtp.example.com", Recipients: []string{"ops@example.com"}},
			},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "smtp host without recipients",
			cfg: Config{
				Timezone: DefaultTimezone,
				SMTP:     SMTPConfig{Host: "smtp.example.com", From: "atendo@example.com"},
			},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "complete smtp config",
			cfg: Config{
				Timezone: DefaultTimezone,
				SMTP: SMTPConfig{
					Host:       "smtp.example.com",
					From:       "atendo@example.com",
					Recipients: []string{"ops@example.com"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigLocation(t *testing.T) {
	cfg := Config{Timezone: DefaultTimezone}
	if cfg.Location().String() != DefaultTimezone {
		t.Errorf("Expected %s, got %s", DefaultTimezone, cfg.Location())
	}

	bad := Config{Timezone: "nope"}
	if bad.Location().String() != "UTC" {
		t.Errorf("Expected UTC fallback, got %s", bad.Location())
	}
}
