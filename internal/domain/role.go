package domain

import "strings"

type Role string

const (
	RoleEmployee         Role = "EMPLOYEE"
	RoleSupervisor       Role = "SUPERVISOR"
	RoleHeadOfDepartment Role = "HEAD_OF_DEPARTMENT"
	RoleHRManager        Role = "HR_MANAGER"
	RoleDirector         Role = "DIRECTOR"
)

var roleRank = map[Role]int{
	RoleEmployee:         0,
	RoleSupervisor:       1,
	RoleHeadOfDepartment: 2,
	RoleHRManager:        3,
	RoleDirector:         4,
}

func ParseRole(v string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(v)))
	_, ok := roleRank[r]
	return r, ok
}

// Rank orders roles from EMPLOYEE (0) to DIRECTOR (4). Unknown roles rank -1.
func (r Role) Rank() int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return -1
}

func (r Role) Outranks(other Role) bool {
	return r.Rank() > other.Rank()
}

// DepartmentScoped roles are resolved inside the requester's department first.
func (r Role) DepartmentScoped() bool {
	return r == RoleSupervisor || r == RoleHeadOfDepartment
}
