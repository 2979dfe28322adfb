package leave

import "go-leave/internal/policy"

type CreateLeaveRequest struct {
	LeaveType      string  `json:"leave_type" binding:"required,oneof=ANNUAL CASUAL SICK MATERNITY PATERNITY BEREAVEMENT STUDY UNPAID"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	Reason         string  `json:"reason" binding:"max=1000"`
	CertificateRef *string `json:"certificate_ref" binding:"omitempty,max=255"`
}

type UpdateLeaveRequest struct {
	LeaveType      string  `json:"leave_type" binding:"required,oneof=ANNUAL CASUAL SICK MATERNITY PATERNITY BEREAVEMENT STUDY UNPAID"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	Reason         string  `json:"reason" binding:"max=1000"`
	CertificateRef *string `json:"certificate_ref" binding:"omitempty,max=255"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"max=1000"`
}

type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type BulkApproveRequest struct {
	LeaveIDs []string `json:"leave_ids" binding:"required,min=1,max=100,dive,uuid"`
	Comment  string   `json:"comment" binding:"max=1000"`
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	ReferenceNo    string  `json:"reference_no"`
	EmployeeID     string  `json:"employee_id"`
	RequesterRole  string  `json:"requester_role"`
	LeaveType      string  `json:"leave_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	WorkingDays    int     `json:"working_days"`
	Reason         string  `json:"reason"`
	CertificateRef *string `json:"certificate_ref,omitempty"`
	Status         string  `json:"status"`
	CreatedBy      string  `json:"created_by"`
	DecidedAt      *string `json:"decided_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type ApprovalResponse struct {
	ID              string  `json:"id"`
	Step            int     `json:"step"`
	ApproverID      string  `json:"approver_id"`
	ApproverRole    string  `json:"approver_role"`
	Decision        string  `json:"decision"`
	ForwardedToRole *string `json:"forwarded_to_role,omitempty"`
	Comment         string  `json:"comment,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
}

type SubmitResult struct {
	Leave       LeaveResponse       `json:"leave"`
	ApproverID  string              `json:"approver_id"`
	Warnings    []policy.Violation  `json:"warnings"`
	Infos       []policy.Violation  `json:"infos"`
	Suggestions []policy.Suggestion `json:"suggestions"`
}

type PreviewResponse struct {
	Validation   policy.ValidationResult `json:"validation"`
	Explanations []policy.Explanation    `json:"explanations"`
	WorkingDays  int                     `json:"working_days"`
	Chain        []string                `json:"chain"`
}

type ApproveResult struct {
	LeaveID        string `json:"leave_id"`
	Approved       bool   `json:"approved"`
	IsFinal        bool   `json:"is_final"`
	NextApproverID string `json:"next_approver_id,omitempty"`
	NextRole       string `json:"next_role,omitempty"`
}

type ForwardResult struct {
	LeaveID      string `json:"leave_id"`
	ToRole       string `json:"to_role"`
	ToApproverID string `json:"to_approver_id"`
	Step         int    `json:"step"`
}

type BulkFailure struct {
	LeaveID string `json:"leave_id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BulkApproveResult struct {
	SuccessCount int             `json:"success_count"`
	FailedIDs    []string        `json:"failed_ids"`
	Failures     []BulkFailure   `json:"failures"`
	Results      []ApproveResult `json:"results"`
}

type HistoryResponse struct {
	LeaveID     string             `json:"leave_id"`
	Status      string             `json:"status"`
	Steps       []ApprovalResponse `json:"steps"`
	AllApproved bool               `json:"all_approved"`
}

type PendingApprovalResponse struct {
	ApprovalID   string        `json:"approval_id"`
	Step         int           `json:"step"`
	ApproverRole string        `json:"approver_role"`
	AssignedAt   string        `json:"assigned_at"`
	Leave        LeaveResponse `json:"leave"`
}
