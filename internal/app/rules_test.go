package app

import (
	"os"
	"path/filepath"
	"testing"

	"go-leave/internal/domain"
	"go-leave/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules_OverlaysDefaults(t *testing.T) {
	raw := []byte(`
policy:
  max_consecutive_days:
    CASUAL: { days: 2, severity: ERROR }
approval:
  chains:
    CASUAL: [HEAD_OF_DEPARTMENT]
`)

	rules, err := ParseRules(raw)
	require.NoError(t, err)

	assert.Equal(t, 2, rules.Policy.MaxConsecutiveDays[domain.LeaveCasual].Days)
	assert.Equal(t, 15, rules.Policy.MaxConsecutiveDays[domain.LeaveAnnual].Days)
	assert.Equal(t, []domain.Role{domain.RoleHeadOfDepartment}, rules.Approval.Chains[domain.LeaveCasual])
	assert.Equal(t, []domain.Role{domain.RoleSupervisor, domain.RoleHeadOfDepartment}, rules.Approval.Chains[domain.LeaveAnnual])
}

func TestParseRules_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad yaml", "policy: ["},
		{"unknown severity", "policy:\n  advance_notice:\n    ANNUAL: { days: 3, severity: LOUD }\n"},
		{"employee approver", "approval:\n  chains:\n    CASUAL: [EMPLOYEE]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadRules(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		rules, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, policy.DefaultConfig(), rules.Policy)
	})

	t.Run("shipped file is valid", func(t *testing.T) {
		_, err := LoadRules(filepath.Join("..", "..", "configs", "policy.yaml"))
		require.NoError(t, err)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("policy:\n  max_advance_days: 30\n"), 0o600))

		rules, err := LoadRules(path)
		require.NoError(t, err)
		assert.Equal(t, 30, rules.Policy.MaxAdvanceDays)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("MIN_REASON_LENGTH", "12")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 12, cfg.MinReasonLength)
	assert.Error(t, cfg.ValidateAPI())

	t.Setenv("MIN_REASON_LENGTH", "0")
	_, err = LoadConfig()
	assert.Error(t, err)
}
