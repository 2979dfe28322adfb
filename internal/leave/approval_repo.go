package leave

import (
	"context"
	"errors"

	"go-leave/internal/domain"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/clock"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type ApprovalRepository interface {
	FindByID(ctx context.Context, id string) (*Approval, error)
	Create(ctx context.Context, a *Approval) error
	// FindLatestByLeaveAndApprover returns the approver's highest step on the
	// leave, whatever its decision.
	FindLatestByLeaveAndApprover(ctx context.Context, leaveID, approverID string) (*Approval, error)
	// UpdateByLeaveAndApprover records d on the approver's PENDING row and
	// reports the number of rows changed; zero means someone else won.
	UpdateByLeaveAndApprover(ctx context.Context, leaveID, approverID string, d Decision, comment string) (int64, error)
	// WithdrawOpenSteps marks every PENDING row of the leave WITHDRAWN.
	WithdrawOpenSteps(ctx context.Context, leaveID string) (int64, error)
	GetNextStep(ctx context.Context, leaveID string) (int, error)
	AreAllApprovalsApproved(ctx context.Context, leaveID string) (bool, error)
	FindPendingByApprover(ctx context.Context, companyID, approverID string) ([]Approval, error)
	FindByLeave(ctx context.Context, leaveID string) ([]Approval, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) FindByID(ctx context.Context, id string) (*Approval, error) {
	var a Approval
	err := database.GetDB(ctx, r.db).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err, leaveerrors.ErrApprovalNotFound)
	}
	return &a, nil
}

func (r *approvalRepository) Create(ctx context.Context, a *Approval) error {
	err := database.GetDB(ctx, r.db).Create(a).Error
	return mapRepositoryError(err, leaveerrors.ErrApprovalNotFound)
}

func (r *approvalRepository) FindLatestByLeaveAndApprover(ctx context.Context, leaveID, approverID string) (*Approval, error) {
	var a Approval
	err := database.GetDB(ctx, r.db).
		Where("leave_id = ? AND approver_id = ?", leaveID, approverID).
		Order("step DESC").
		Take(&a).Error
	if err != nil {
		return nil, mapRepositoryError(err, leaveerrors.ErrApprovalNotFound)
	}
	return &a, nil
}

func (r *approvalRepository) UpdateByLeaveAndApprover(ctx context.Context, leaveID, approverID string, d Decision, comment string) (int64, error) {
	kind, forwardedTo, text := encode(d, comment)
	now := clock.Now().UTC()

	res := database.GetDB(ctx, r.db).
		Model(&Approval{}).
		Where("leave_id = ? AND approver_id = ? AND decision = ?", leaveID, approverID, DecisionPending).
		Updates(map[string]any{
			"decision":          kind,
			"forwarded_to_role": forwardedTo,
			"comment":           text,
			"decided_at":        now,
			"updated_at":        now,
		})
	return res.RowsAffected, res.Error
}

func (r *approvalRepository) WithdrawOpenSteps(ctx context.Context, leaveID string) (int64, error) {
	now := clock.Now().UTC()
	res := database.GetDB(ctx, r.db).
		Model(&Approval{}).
		Where("leave_id = ? AND decision = ?", leaveID, DecisionPending).
		Updates(map[string]any{
			"decision":   DecisionWithdrawn,
			"decided_at": now,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

func (r *approvalRepository) GetNextStep(ctx context.Context, leaveID string) (int, error) {
	var maxStep int
	err := database.GetDB(ctx, r.db).
		Model(&Approval{}).
		Where("leave_id = ?", leaveID).
		Select("COALESCE(MAX(step), 0)").
		Scan(&maxStep).Error
	if err != nil {
		return 0, err
	}
	return maxStep + 1, nil
}

// AreAllApprovalsApproved is true when no step is PENDING or REJECTED and
// the highest step is APPROVED. FORWARDED and superseded RETURNED steps do
// not count against it.
func (r *approvalRepository) AreAllApprovalsApproved(ctx context.Context, leaveID string) (bool, error) {
	db := database.GetDB(ctx, r.db)

	var open int64
	err := db.Model(&Approval{}).
		Where("leave_id = ? AND decision IN ?", leaveID, []DecisionKind{DecisionPending, DecisionRejected}).
		Count(&open).Error
	if err != nil {
		return false, err
	}
	if open > 0 {
		return false, nil
	}

	var last Approval
	err = db.Where("leave_id = ?", leaveID).Order("step DESC").Take(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return last.Decision == DecisionApproved, nil
}

// FindPendingByApprover lists the approver's open steps on leaves that are
// still in the chain, oldest first, with the leave preloaded.
func (r *approvalRepository) FindPendingByApprover(ctx context.Context, companyID, approverID string) ([]Approval, error) {
	var rows []Approval
	err := database.GetDB(ctx, r.db).
		Joins("JOIN leaves ON leaves.id = leave_approvals.leave_id AND leaves.deleted_at IS NULL").
		Where("leaves.company_id = ?", companyID).
		Where("leaves.status IN ?", []domain.LeaveStatus{domain.StatusPending, domain.StatusSubmitted}).
		Where("leave_approvals.approver_id = ? AND leave_approvals.decision = ?", approverID, DecisionPending).
		Preload("Leave").
		Order("leave_approvals.created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *approvalRepository) FindByLeave(ctx context.Context, leaveID string) ([]Approval, error) {
	var rows []Approval
	err := database.GetDB(ctx, r.db).
		Where("leave_id = ?", leaveID).
		Order("step ASC").
		Find(&rows).Error
	return rows, err
}
