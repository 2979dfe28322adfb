package rbac

import (
	"errors"
	"testing"

	"go-leave/internal/domain"
	"go-leave/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	roles []EmployeeRoleRow
	perms []RolePermissionRow
	err   error
}

func (m *mockRepo) GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error) {
	return m.roles, m.err
}

func (m *mockRepo) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	return m.perms, nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	e, err := infra.NewEnforcer("")
	require.NoError(t, err)
	return e
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &mockRepo{
		roles: []EmployeeRoleRow{
			{EmployeeID: "emp-1", Role: domain.RoleEmployee},
			{EmployeeID: "sup-1", Role: domain.RoleSupervisor},
			{EmployeeID: "hr-1", Role: domain.RoleHRManager},
		},
		perms: []RolePermissionRow{
			{Role: domain.RoleSupervisor, Resource: domain.ResourceHoliday, Action: domain.ActionManage},
		},
	}
	svc := NewService(repo, newTestEnforcer(t))

	tests := []struct {
		name     string
		employee string
		resource string
		action   string
		want     bool
	}{
		{"employee creates leave", "emp-1", domain.ResourceLeave, domain.ActionCreate, true},
		{"employee cannot approve", "emp-1", domain.ResourceLeave, domain.ActionApprove, false},
		{"supervisor approves", "sup-1", domain.ResourceLeave, domain.ActionApprove, true},
		{"supervisor inherits employee grants", "sup-1", domain.ResourceLeave, domain.ActionCreate, true},
		{"company grant on top of defaults", "sup-1", domain.ResourceHoliday, domain.ActionManage, true},
		{"supervisor cannot read all", "sup-1", domain.ResourceLeave, domain.ActionReadAll, false},
		{"hr inherits approve through the ladder", "hr-1", domain.ResourceLeave, domain.ActionApprove, true},
		{"hr manages balances", "hr-1", domain.ResourceBalance, domain.ActionManage, true},
		{"unknown employee", "ghost", domain.ResourceLeave, domain.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(EnforceRequest{
				EmployeeID: tt.employee,
				CompanyID:  "company-1",
				Resource:   tt.resource,
				Action:     tt.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestRBACService_LoadCompanyPolicy(t *testing.T) {
	repo := &mockRepo{roles: []EmployeeRoleRow{{EmployeeID: "hr-1", Role: domain.RoleHRManager}}}
	svc := NewService(repo, newTestEnforcer(t))

	require.NoError(t, svc.LoadCompanyPolicy("company-1"))

	allowed, err := svc.Enforce(EnforceRequest{
		EmployeeID: "hr-1",
		CompanyID:  "company-1",
		Resource:   domain.ResourceBalance,
		Action:     domain.ActionManage,
	})
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestRBACService_RepoFailure(t *testing.T) {
	svc := NewService(&mockRepo{err: errors.New("db down")}, newTestEnforcer(t))

	allowed, err := svc.Enforce(EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "leave", Action: "read"})

	assert.Error(t, err)
	assert.False(t, allowed)
}
