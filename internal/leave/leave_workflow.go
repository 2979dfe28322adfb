package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-leave/internal/audit"
	"go-leave/internal/domain"
	"go-leave/internal/employee"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/clock"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// loadActionable returns the leave and the approver's current step, failing
// unless both are still open.
func (s *service) loadActionable(ctx context.Context, companyID, leaveID, approverID string) (*Leave, *Approval, error) {
	l, err := s.leaves.FindByIDAndCompany(ctx, companyID, leaveID)
	if err != nil {
		return nil, nil, err
	}
	row, err := s.approvals.FindLatestByLeaveAndApprover(ctx, leaveID, approverID)
	if err != nil {
		return nil, nil, err
	}
	if !l.Status.InChain() || row.Decision != DecisionPending {
		return nil, nil, leaveerrors.ErrStateConflict
	}
	return l, row, nil
}

func (s *service) Approve(ctx context.Context, companyID, leaveID, approverID, comment string) (result ApproveResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "leave.approve",
		attribute.String("leave.id", leaveID),
		attribute.String("approver.id", approverID),
	)
	defer func() { tracing.EndSpan(span, err) }()

	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("approve leave requested",
		zap.String("company_id", companyID),
		zap.String("leave_id", leaveID),
		zap.String("approver_id", approverID),
	)

	var (
		l        *Leave
		row      *Approval
		final    bool
		nextRole domain.Role
		next     *employee.Employee
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		l, row, err = s.loadActionable(txCtx, companyID, leaveID, approverID)
		if err != nil {
			return err
		}

		final = s.resolver.IsFinal(row.ApproverRole, l.LeaveType, l.RequesterRole)
		if !final {
			role, ok := s.resolver.NextRole(row.ApproverRole, l.LeaveType, l.RequesterRole)
			if !ok {
				logger.Warn("approve leave step role outside chain",
					zap.String("leave_id", leaveID),
					zap.String("role", string(row.ApproverRole)),
					zap.String("leave_type", string(l.LeaveType)),
				)
				return leaveerrors.ErrStateConflict
			}
			nextRole = role
		}

		if err := s.holdInChain(txCtx, companyID, leaveID); err != nil {
			return err
		}
		n, err := s.approvals.UpdateByLeaveAndApprover(txCtx, leaveID, approverID, Approved{}, strings.TrimSpace(comment))
		if err != nil {
			return err
		}
		if n == 0 {
			return leaveerrors.ErrStateConflict
		}

		if final {
			allApproved, err := s.approvals.AreAllApprovalsApproved(txCtx, leaveID)
			if err != nil {
				return err
			}
			if !allApproved {
				return leaveerrors.ErrStateConflict
			}

			n, err := s.leaves.UpdateStatus(txCtx, companyID, leaveID, inChainStatuses, domain.StatusApproved)
			if err != nil {
				return err
			}
			if n == 0 {
				return leaveerrors.ErrStateConflict
			}
			return s.balances.Deduct(txCtx, companyID, l.EmployeeID.String(), l.LeaveType, l.StartDate.Year(), l.WorkingDays)
		}

		next, err = s.resolveApprover(txCtx, companyID, l, nextRole)
		if err != nil {
			return err
		}
		_, err = s.appendStep(txCtx, l.ID, next.ID, nextRole)
		return err
	})
	if err != nil {
		logFailure(logger, "approve leave failed", err,
			zap.String("leave_id", leaveID),
			zap.String("approver_id", approverID),
		)
		return ApproveResult{}, err
	}

	result = ApproveResult{LeaveID: leaveID, Approved: true, IsFinal: final}
	requesterID := l.EmployeeID.String()
	meta := map[string]any{
		"step":     row.Step,
		"role":     string(row.ApproverRole),
		"is_final": final,
	}

	if final {
		s.notifier.NotifyLeaveApproved(ctx, companyID, leaveID, requesterID, approverID)
		meta["working_days"] = l.WorkingDays
	} else {
		result.NextApproverID = next.ID.String()
		result.NextRole = string(nextRole)
		s.notifier.NotifyLeaveStepAdvanced(ctx, companyID, leaveID, approverID, result.NextApproverID, result.NextRole)
		meta["next_approver_id"] = result.NextApproverID
		meta["next_role"] = result.NextRole
	}
	s.record(ctx, audit.Entry{
		Action:     audit.ActionLeaveApproved,
		CompanyID:  companyID,
		ActorID:    approverID,
		EntityType: "leave",
		EntityID:   leaveID,
		Message:    strings.TrimSpace(comment),
		Meta:       meta,
	})

	logger.Info("approve leave success",
		zap.String("leave_id", leaveID),
		zap.String("approver_id", approverID),
		zap.Bool("is_final", final),
		zap.String("next_approver_id", result.NextApproverID),
	)
	return result, nil
}

func (s *service) Reject(ctx context.Context, companyID, leaveID, approverID, reason string) (resp LeaveResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "leave.reject",
		attribute.String("leave.id", leaveID),
		attribute.String("approver.id", approverID),
	)
	defer func() { tracing.EndSpan(span, err) }()

	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("reject leave requested", zap.String("leave_id", leaveID), zap.String("approver_id", approverID))

	reason, err = s.checkReason(reason)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.closeChain(ctx, companyID, leaveID, approverID, Rejected{Reason: reason}, domain.StatusRejected)
	if err != nil {
		logFailure(logger, "reject leave failed", err, zap.String("leave_id", leaveID), zap.String("approver_id", approverID))
		return LeaveResponse{}, err
	}

	s.notifier.NotifyLeaveRejected(ctx, companyID, leaveID, l.EmployeeID.String(), approverID, reason)
	s.record(ctx, audit.Entry{
		Action:     audit.ActionLeaveRejected,
		CompanyID:  companyID,
		ActorID:    approverID,
		EntityType: "leave",
		EntityID:   leaveID,
		Message:    reason,
	})

	logger.Info("reject leave success", zap.String("leave_id", leaveID), zap.String("approver_id", approverID))
	return mapToResponse(*l), nil
}

func (s *service) ReturnForModification(ctx context.Context, companyID, leaveID, approverID, reason string) (resp LeaveResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "leave.return",
		attribute.String("leave.id", leaveID),
		attribute.String("approver.id", approverID),
	)
	defer func() { tracing.EndSpan(span, err) }()

	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("return leave requested", zap.String("leave_id", leaveID), zap.String("approver_id", approverID))

	reason, err = s.checkReason(reason)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.closeChain(ctx, companyID, leaveID, approverID, ReturnedToEmployee{Reason: reason}, domain.StatusReturned)
	if err != nil {
		logFailure(logger, "return leave failed", err, zap.String("leave_id", leaveID), zap.String("approver_id", approverID))
		return LeaveResponse{}, err
	}

	s.notifier.NotifyLeaveReturned(ctx, companyID, leaveID, l.EmployeeID.String(), approverID, reason)
	s.record(ctx, audit.Entry{
		Action:     audit.ActionLeaveReturned,
		CompanyID:  companyID,
		ActorID:    approverID,
		EntityType: "leave",
		EntityID:   leaveID,
		Message:    reason,
	})

	logger.Info("return leave success", zap.String("leave_id", leaveID), zap.String("approver_id", approverID))
	return mapToResponse(*l), nil
}

// holdInChain is a conditional write on the leave row. It fails once the
// leave has left the chain and orders the caller after a concurrent cancel.
func (s *service) holdInChain(ctx context.Context, companyID, leaveID string) error {
	n, err := s.leaves.UpdateStatus(ctx, companyID, leaveID, inChainStatuses, domain.StatusPending)
	if err != nil {
		return err
	}
	if n == 0 {
		return leaveerrors.ErrStateConflict
	}
	return nil
}

// closeChain records d on the approver's step and moves the leave to status
// in one transaction.
func (s *service) closeChain(ctx context.Context, companyID, leaveID, approverID string, d Decision, status domain.LeaveStatus) (*Leave, error) {
	var l *Leave
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		l, _, err = s.loadActionable(txCtx, companyID, leaveID, approverID)
		if err != nil {
			return err
		}

		n, err := s.leaves.UpdateStatus(txCtx, companyID, leaveID, inChainStatuses, status)
		if err != nil {
			return err
		}
		if n == 0 {
			return leaveerrors.ErrStateConflict
		}

		n, err = s.approvals.UpdateByLeaveAndApprover(txCtx, leaveID, approverID, d, "")
		if err != nil {
			return err
		}
		if n == 0 {
			return leaveerrors.ErrStateConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Status = status
	if status.Terminal() {
		l.DecidedAt = decidedNow()
	}
	return l, nil
}

func (s *service) Forward(ctx context.Context, companyID, leaveID, approverID, comment string) (result ForwardResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "leave.forward",
		attribute.String("leave.id", leaveID),
		attribute.String("approver.id", approverID),
	)
	defer func() { tracing.EndSpan(span, err) }()

	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("forward leave requested", zap.String("leave_id", leaveID), zap.String("approver_id", approverID))

	var (
		nextRole domain.Role
		target   *employee.Employee
		step     int
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		l, row, err := s.loadActionable(txCtx, companyID, leaveID, approverID)
		if err != nil {
			return err
		}

		role, ok := s.resolver.NextRole(row.ApproverRole, l.LeaveType, l.RequesterRole)
		if !ok {
			return leaveerrors.ErrNoNextApprover
		}
		nextRole = role

		target, err = s.resolveApprover(txCtx, companyID, l, nextRole)
		if err != nil {
			return err
		}

		if err := s.holdInChain(txCtx, companyID, leaveID); err != nil {
			return err
		}
		n, err := s.approvals.UpdateByLeaveAndApprover(txCtx, leaveID, approverID, ForwardedTo{Role: nextRole}, strings.TrimSpace(comment))
		if err != nil {
			return err
		}
		if n == 0 {
			return leaveerrors.ErrStateConflict
		}

		step, err = s.appendStep(txCtx, l.ID, target.ID, nextRole)
		return err
	})
	if err != nil {
		logFailure(logger, "forward leave failed", err, zap.String("leave_id", leaveID), zap.String("approver_id", approverID))
		return ForwardResult{}, err
	}

	s.notifier.NotifyLeaveForwarded(ctx, companyID, leaveID, approverID, target.ID.String(), string(nextRole))
	s.record(ctx, audit.Entry{
		Action:     audit.ActionLeaveForwarded,
		CompanyID:  companyID,
		ActorID:    approverID,
		EntityType: "leave",
		EntityID:   leaveID,
		Message:    strings.TrimSpace(comment),
		Meta: map[string]any{
			"to_role":        string(nextRole),
			"to_approver_id": target.ID.String(),
			"step":           step,
		},
	})

	logger.Info("forward leave success",
		zap.String("leave_id", leaveID),
		zap.String("to_role", string(nextRole)),
		zap.String("to_approver_id", target.ID.String()),
		zap.Int("step", step),
	)
	return ForwardResult{
		LeaveID:      leaveID,
		ToRole:       string(nextRole),
		ToApproverID: target.ID.String(),
		Step:         step,
	}, nil
}

func (s *service) Cancel(ctx context.Context, companyID, leaveID, actorID, reason string) (resp LeaveResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "leave.cancel", attribute.String("leave.id", leaveID))
	defer func() { tracing.EndSpan(span, err) }()

	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("cancel leave requested", zap.String("leave_id", leaveID), zap.String("actor_id", actorID))

	l, err := s.leaves.FindByIDAndCompany(ctx, companyID, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.EmployeeID.String() != actorID {
		logger.Warn("cancel leave by non-owner", zap.String("leave_id", leaveID), zap.String("actor_id", actorID))
		return LeaveResponse{}, leaveerrors.ErrCancelForbidden
	}
	if !cancellable(l.Status) {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotCancellable
	}

	var steps []Approval
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.leaves.UpdateStatus(txCtx, companyID, leaveID, cancellableStatuses, domain.StatusCancelled)
		if err != nil {
			return err
		}
		if n == 0 {
			return leaveerrors.ErrStateConflict
		}
		if _, err := s.approvals.WithdrawOpenSteps(txCtx, leaveID); err != nil {
			return err
		}
		steps, err = s.approvals.FindByLeave(txCtx, leaveID)
		return err
	})
	if err != nil {
		logFailure(logger, "cancel leave failed", err, zap.String("leave_id", leaveID))
		return LeaveResponse{}, err
	}
	l.Status = domain.StatusCancelled
	l.DecidedAt = decidedNow()

	approverIDs := make([]string, 0, len(steps))
	for _, a := range steps {
		approverIDs = append(approverIDs, a.ApproverID.String())
	}
	s.notifier.NotifyLeaveCancelled(ctx, companyID, leaveID, actorID, approverIDs)
	s.record(ctx, audit.Entry{
		Action:     audit.ActionLeaveCancelled,
		CompanyID:  companyID,
		ActorID:    actorID,
		EntityType: "leave",
		EntityID:   leaveID,
		Message:    strings.TrimSpace(reason),
	})

	logger.Info("cancel leave success", zap.String("leave_id", leaveID))
	return mapToResponse(*l), nil
}

// BulkApprove approves each leave in its own transaction. Failures are
// reported per id and never undo the successes.
func (s *service) BulkApprove(ctx context.Context, companyID string, leaveIDs []string, approverID, comment string) BulkApproveResult {
	logger := contextutil.GetLogger(ctx, s.logger)

	result := BulkApproveResult{
		FailedIDs: []string{},
		Failures:  []BulkFailure{},
		Results:   []ApproveResult{},
	}

	var errs error
	for _, id := range leaveIDs {
		r, err := s.Approve(ctx, companyID, id, approverID, comment)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			result.FailedIDs = append(result.FailedIDs, id)
			result.Failures = append(result.Failures, BulkFailure{
				LeaveID: id,
				Code:    httpErr.Code,
				Message: httpErr.Message,
			})
			errs = multierr.Append(errs, fmt.Errorf("leave %s: %w", id, err))
			continue
		}
		result.SuccessCount++
		result.Results = append(result.Results, r)
	}

	if errs != nil {
		logger.Warn("bulk approve partially failed",
			zap.String("approver_id", approverID),
			zap.Int("requested", len(leaveIDs)),
			zap.Int("failed", len(multierr.Errors(errs))),
			zap.Error(errs),
		)
	}
	logger.Info("bulk approve finished",
		zap.String("approver_id", approverID),
		zap.Int("success_count", result.SuccessCount),
	)
	return result
}

func cancellable(status domain.LeaveStatus) bool {
	for _, s := range cancellableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func decidedNow() *time.Time {
	t := clock.Now().UTC()
	return &t
}
