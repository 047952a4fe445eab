package database

import (
	"testing"

	"learnhub_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestShouldMigrate(t *testing.T) {
	tests := []struct {
		name         string
		mode         string
		forceMigrate bool
		migrateOnly  bool
		want         bool
	}{
		{"debug mode migrates by default", "debug", false, false, true},
		{"release mode skips by default", "release", false, false, false},
		{"release mode with -migrate", "release", true, false, true},
		{"release mode with -migrate-only", "release", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Mode = tt.mode
			cfg.ForceMigrate = tt.forceMigrate
			cfg.MigrateOnly = tt.migrateOnly
			assert.Equal(t, tt.want, ShouldMigrate(cfg))
		})
	}
}
