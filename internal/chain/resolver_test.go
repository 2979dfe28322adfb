package chain

import (
	"sync"
	"testing"

	"go-leave/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.Chains, domain.LeaveStudy)
	assert.ErrorContains(t, cfg.Validate(), "STUDY")

	cfg = DefaultConfig()
	cfg.Chains[domain.LeaveCasual] = []domain.Role{domain.RoleSupervisor, domain.RoleSupervisor}
	assert.ErrorContains(t, cfg.Validate(), "twice")

	cfg = DefaultConfig()
	cfg.Chains[domain.LeaveCasual] = []domain.Role{domain.RoleEmployee}
	assert.ErrorContains(t, cfg.Validate(), "cannot approve")

	cfg = DefaultConfig()
	cfg.Escalation = nil
	assert.Error(t, cfg.Validate())
}

func TestResolver_ChainFor(t *testing.T) {
	r := NewResolver(DefaultConfig())

	tests := []struct {
		name      string
		leaveType domain.LeaveType
		requester domain.Role
		want      []domain.Role
	}{
		{"casual by employee", domain.LeaveCasual, domain.RoleEmployee, []domain.Role{domain.RoleSupervisor}},
		{"annual by employee", domain.LeaveAnnual, domain.RoleEmployee, []domain.Role{domain.RoleSupervisor, domain.RoleHeadOfDepartment}},
		{"maternity by employee", domain.LeaveMaternity, domain.RoleEmployee, []domain.Role{domain.RoleSupervisor, domain.RoleHRManager, domain.RoleDirector}},
		{"annual by supervisor skips own level", domain.LeaveAnnual, domain.RoleSupervisor, []domain.Role{domain.RoleHeadOfDepartment}},
		{"sick by head of department", domain.LeaveSick, domain.RoleHeadOfDepartment, []domain.Role{domain.RoleHRManager}},
		{"casual by HR escalates to director", domain.LeaveCasual, domain.RoleHRManager, []domain.Role{domain.RoleDirector}},
		{"casual by director escalates to HR", domain.LeaveCasual, domain.RoleDirector, []domain.Role{domain.RoleHRManager}},
		{"study by director", domain.LeaveStudy, domain.RoleDirector, []domain.Role{domain.RoleHRManager}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ChainFor(tt.leaveType, tt.requester))
		})
	}
}

func TestResolver_UnknownTypeHasNoChain(t *testing.T) {
	r := NewResolver(DefaultConfig())
	assert.Empty(t, r.ChainFor(domain.LeaveType("SABBATICAL"), domain.RoleEmployee))

	_, ok := r.FirstRole(domain.LeaveType("SABBATICAL"), domain.RoleEmployee)
	assert.False(t, ok)
}

func TestResolver_ChainForReturnsCopy(t *testing.T) {
	r := NewResolver(DefaultConfig())
	first := r.ChainFor(domain.LeaveAnnual, domain.RoleEmployee)
	first[0] = domain.RoleDirector

	assert.Equal(t, domain.RoleSupervisor, r.ChainFor(domain.LeaveAnnual, domain.RoleEmployee)[0])
}

func TestResolver_NextRoleAndIsFinal(t *testing.T) {
	r := NewResolver(DefaultConfig())

	next, ok := r.NextRole(domain.RoleSupervisor, domain.LeaveUnpaid, domain.RoleEmployee)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleHeadOfDepartment, next)

	next, ok = r.NextRole(domain.RoleHeadOfDepartment, domain.LeaveUnpaid, domain.RoleEmployee)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleHRManager, next)

	_, ok = r.NextRole(domain.RoleHRManager, domain.LeaveUnpaid, domain.RoleEmployee)
	assert.False(t, ok)

	_, ok = r.NextRole(domain.RoleDirector, domain.LeaveUnpaid, domain.RoleEmployee)
	assert.False(t, ok, "role outside the chain has no successor")

	assert.True(t, r.IsFinal(domain.RoleHRManager, domain.LeaveUnpaid, domain.RoleEmployee))
	assert.False(t, r.IsFinal(domain.RoleSupervisor, domain.LeaveUnpaid, domain.RoleEmployee))
	assert.True(t, r.IsFinal(domain.RoleSupervisor, domain.LeaveCasual, domain.RoleEmployee))
}

func TestResolver_ConcurrentUse(t *testing.T) {
	r := NewResolver(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, lt := range domain.LeaveTypes() {
				assert.NotEmpty(t, r.ChainFor(lt, domain.RoleEmployee))
			}
		}()
	}
	wg.Wait()
}
