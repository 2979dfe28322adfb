package balance

import "github.com/shopspring/decimal"

type ProvisionBalanceRequest struct {
	EmployeeID string          `json:"employee_id" binding:"required,uuid"`
	LeaveType  string          `json:"leave_type" binding:"required"`
	Year       int             `json:"year" binding:"required,min=2000,max=2100"`
	Opening    decimal.Decimal `json:"opening"`
	Accrued    decimal.Decimal `json:"accrued"`
}

type BalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	LeaveType  string          `json:"leave_type"`
	Year       int             `json:"year"`
	Opening    decimal.Decimal `json:"opening"`
	Accrued    decimal.Decimal `json:"accrued"`
	Used       decimal.Decimal `json:"used"`
	Available  decimal.Decimal `json:"available"`
}

func mapToResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID: b.EmployeeID.String(),
		LeaveType:  string(b.LeaveType),
		Year:       b.Year,
		Opening:    b.Opening,
		Accrued:    b.Accrued,
		Used:       b.Used,
		Available:  b.Closing(),
	}
}
