package chain

import (
	"fmt"
	"slices"

	"go-leave/internal/domain"
)

// Config maps each leave type to its approver roles in order. Escalation is
// tried in order when a requester outranks every role of a chain.
type Config struct {
	Chains     map[domain.LeaveType][]domain.Role `yaml:"chains"`
	Escalation []domain.Role                      `yaml:"escalation"`
}

func DefaultConfig() Config {
	return Config{
		Chains: map[domain.LeaveType][]domain.Role{
			domain.LeaveCasual:      {domain.RoleSupervisor},
			domain.LeaveBereavement: {domain.RoleSupervisor},
			domain.LeaveAnnual:      {domain.RoleSupervisor, domain.RoleHeadOfDepartment},
			domain.LeaveSick:        {domain.RoleSupervisor, domain.RoleHRManager},
			domain.LeaveUnpaid:      {domain.RoleSupervisor, domain.RoleHeadOfDepartment, domain.RoleHRManager},
			domain.LeaveMaternity:   {domain.RoleSupervisor, domain.RoleHRManager, domain.RoleDirector},
			domain.LeavePaternity:   {domain.RoleSupervisor, domain.RoleHRManager, domain.RoleDirector},
			domain.LeaveStudy:       {domain.RoleHeadOfDepartment, domain.RoleHRManager, domain.RoleDirector},
		},
		Escalation: []domain.Role{domain.RoleDirector, domain.RoleHRManager},
	}
}

func (c Config) Validate() error {
	for _, t := range domain.LeaveTypes() {
		roles, ok := c.Chains[t]
		if !ok || len(roles) == 0 {
			return fmt.Errorf("chain for %s is missing", t)
		}
		for i, r := range roles {
			if r.Rank() <= domain.RoleEmployee.Rank() {
				return fmt.Errorf("chain for %s: %q cannot approve", t, r)
			}
			if slices.Contains(roles[:i], r) {
				return fmt.Errorf("chain for %s: %s appears twice", t, r)
			}
		}
	}
	if len(c.Escalation) == 0 {
		return fmt.Errorf("escalation roles are required")
	}
	for _, r := range c.Escalation {
		if r.Rank() <= domain.RoleEmployee.Rank() {
			return fmt.Errorf("escalation role %q cannot approve", r)
		}
	}
	return nil
}
