package rbac

import (
	"go-leave/internal/domain"

	"github.com/google/uuid"
)

// RolePermission grants resource:action to a role inside one company, on top
// of DefaultPermissions.
type RolePermission struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID   `gorm:"type:uuid;uniqueIndex:uq_role_permission"`
	Role      domain.Role `gorm:"type:varchar(32);uniqueIndex:uq_role_permission"`
	Resource  string      `gorm:"type:varchar(32);uniqueIndex:uq_role_permission"`
	Action    string      `gorm:"type:varchar(32);uniqueIndex:uq_role_permission"`
}

type Permission struct {
	Resource string
	Action   string
}

// DefaultPermissions are granted to every company. Each role also inherits
// everything granted to the role directly below it.
var DefaultPermissions = map[domain.Role][]Permission{
	domain.RoleEmployee: {
		{domain.ResourceLeave, domain.ActionCreate},
		{domain.ResourceLeave, domain.ActionRead},
		{domain.ResourceBalance, domain.ActionRead},
		{domain.ResourceHoliday, domain.ActionRead},
	},
	domain.RoleSupervisor: {
		{domain.ResourceLeave, domain.ActionApprove},
	},
	domain.RoleHRManager: {
		{domain.ResourceLeave, domain.ActionReadAll},
		{domain.ResourceBalance, domain.ActionManage},
		{domain.ResourceHoliday, domain.ActionManage},
	},
}

// roleLadder lists roles from lowest to highest rank.
var roleLadder = []domain.Role{
	domain.RoleEmployee,
	domain.RoleSupervisor,
	domain.RoleHeadOfDepartment,
	domain.RoleHRManager,
	domain.RoleDirector,
}
