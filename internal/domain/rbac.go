package domain

type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CompanyID  string `json:"company_id" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// Permission resources and actions checked by route middleware.
const (
	ResourceLeave   = "leave"
	ResourceBalance = "balance"
	ResourceHoliday = "holiday"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionApprove = "approve"
	ActionManage  = "manage"
)
