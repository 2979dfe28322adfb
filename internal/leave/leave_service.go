package leave

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"go-leave/internal/audit"
	"go-leave/internal/balance"
	"go-leave/internal/chain"
	"go-leave/internal/domain"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/holiday"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/notification"
	"go-leave/internal/policy"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/counter"
	"go-leave/internal/shared/database"
	"go-leave/internal/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	referencePrefix = "LV"
	dateLayout      = "2006-01-02"

	// calendarMargin widens the holiday window so adjacency checks see the
	// days around the range.
	calendarMargin = 7

	// maxRequestSpanDays bounds a request before any calendar or balance
	// lookups run.
	maxRequestSpanDays = 366
)

var (
	inChainStatuses     = []domain.LeaveStatus{domain.StatusPending, domain.StatusSubmitted}
	cancellableStatuses = []domain.LeaveStatus{domain.StatusPending, domain.StatusSubmitted, domain.StatusReturned}
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (SubmitResult, error)
	Preview(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (PreviewResponse, error)
	Resubmit(ctx context.Context, companyID, actorID, leaveID string, req UpdateLeaveRequest) (SubmitResult, error)
	GetByID(ctx context.Context, companyID, actorID, id string, canReadAll bool) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]LeaveResponse, error)
	ListPendingFor(ctx context.Context, companyID, approverID string) ([]PendingApprovalResponse, error)
	History(ctx context.Context, companyID, actorID, leaveID string, canReadAll bool) (HistoryResponse, error)

	Approve(ctx context.Context, companyID, leaveID, approverID, comment string) (ApproveResult, error)
	Reject(ctx context.Context, companyID, leaveID, approverID, reason string) (LeaveResponse, error)
	Forward(ctx context.Context, companyID, leaveID, approverID, comment string) (ForwardResult, error)
	ReturnForModification(ctx context.Context, companyID, leaveID, approverID, reason string) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, leaveID, actorID, reason string) (LeaveResponse, error)
	BulkApprove(ctx context.Context, companyID string, leaveIDs []string, approverID, comment string) BulkApproveResult
}

// Deps groups the collaborators of the leave service. Dispatcher and Audit
// default to no-ops when nil.
type Deps struct {
	TxManager  database.TxManager
	Leaves     Repository
	Approvals  ApprovalRepository
	Employees  employee.Repository
	Balances   balance.Service
	Holidays   holiday.Service
	Counter    counter.Repository
	Resolver   *chain.Resolver
	Engine     *policy.Engine
	Dispatcher notification.Dispatcher
	Audit      audit.Logger

	// MinReasonLength applies to reject and return reasons. Values below 1
	// are raised to 1.
	MinReasonLength int
}

type service struct {
	tx        database.TxManager
	leaves    Repository
	approvals ApprovalRepository
	employees employee.Repository
	balances  balance.Service
	holidays  holiday.Service
	counter   counter.Repository
	resolver  *chain.Resolver
	engine    *policy.Engine
	notifier  notification.Dispatcher
	audit     audit.Logger
	minReason int
	logger    *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}

	notifier := deps.Dispatcher
	if notifier == nil {
		notifier = notification.NopDispatcher{}
	}
	auditLogger := deps.Audit
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	minReason := deps.MinReasonLength
	if minReason < 1 {
		minReason = 1
	}

	return &service{
		tx:        deps.TxManager,
		leaves:    deps.Leaves,
		approvals: deps.Approvals,
		employees: deps.Employees,
		balances:  deps.Balances,
		holidays:  deps.Holidays,
		counter:   deps.Counter,
		resolver:  deps.Resolver,
		engine:    deps.Engine,
		notifier:  notifier,
		audit:     auditLogger,
		minReason: minReason,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (result SubmitResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "leave.submit",
		attribute.String("company.id", companyID),
		attribute.String("leave.type", req.LeaveType),
	)
	defer func() { tracing.EndSpan(span, err) }()

	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("submit leave requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	d, err := parseDraft(req.LeaveType, req.StartDate, req.EndDate, req.Reason, req.CertificateRef)
	if err != nil {
		return SubmitResult{}, err
	}

	requester, err := s.employees.FindByIDAndCompany(ctx, companyID, actorID)
	if err != nil {
		return SubmitResult{}, err
	}

	in, err := s.buildInput(ctx, companyID, requester, d, "")
	if err != nil {
		logger.Error("submit leave build policy input failed", zap.Error(err))
		return SubmitResult{}, err
	}

	verdict := s.engine.Validate(in)
	if !verdict.Valid {
		logger.Warn("submit leave rejected by policy",
			zap.String("actor_id", actorID),
			zap.Strings("codes", verdict.Codes()),
		)
		return SubmitResult{}, leaveerrors.ErrPolicyViolation.WithDetails(verdict)
	}

	firstRole, ok := s.resolver.FirstRole(d.leaveType, requester.Role)
	if !ok {
		return SubmitResult{}, leaveerrors.ErrNoApproverFound
	}
	approver, err := s.findApprover(ctx, companyID, requester, firstRole)
	if err != nil {
		return SubmitResult{}, err
	}

	l := &Leave{
		ID:             uuid.New(),
		CompanyID:      requester.CompanyID,
		EmployeeID:     requester.ID,
		RequesterRole:  requester.Role,
		LeaveType:      d.leaveType,
		StartDate:      d.start,
		EndDate:        d.end,
		WorkingDays:    in.WorkingDays(),
		Reason:         d.reason,
		CertificateRef: d.certificateRef,
		Status:         domain.StatusPending,
		CreatedBy:      requester.ID,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.counter.GetNextValue(txCtx, companyID, counter.TypeLeaveReference)
		if err != nil {
			return err
		}
		l.ReferenceNo = counter.FormatReference(referencePrefix, n)

		if err := s.leaves.Create(txCtx, l); err != nil {
			return err
		}
		_, err = s.appendStep(txCtx, l.ID, approver.ID, firstRole)
		return err
	})
	if err != nil {
		logFailure(logger, "submit leave persist failed", err, zap.String("actor_id", actorID))
		return SubmitResult{}, err
	}

	s.notifier.NotifyLeaveSubmitted(ctx, companyID, l.ID.String(), actorID, approver.ID.String())
	s.record(ctx, audit.Entry{
		Action:     audit.ActionLeaveSubmitted,
		CompanyID:  companyID,
		ActorID:    actorID,
		EntityType: "leave",
		EntityID:   l.ID.String(),
		Meta: map[string]any{
			"reference_no": l.ReferenceNo,
			"leave_type":   l.LeaveType,
			"working_days": l.WorkingDays,
			"approver_id":  approver.ID.String(),
		},
	})

	logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("reference_no", l.ReferenceNo),
		zap.String("approver_id", approver.ID.String()),
	)

	return SubmitResult{
		Leave:       mapToResponse(*l),
		ApproverID:  approver.ID.String(),
		Warnings:    verdict.Warnings,
		Infos:       verdict.Infos,
		Suggestions: verdict.Suggestions,
	}, nil
}

func (s *service) Preview(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (PreviewResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	d, err := parseDraft(req.LeaveType, req.StartDate, req.EndDate, req.Reason, req.CertificateRef)
	if err != nil {
		return PreviewResponse{}, err
	}

	requester, err := s.employees.FindByIDAndCompany(ctx, companyID, actorID)
	if err != nil {
		return PreviewResponse{}, err
	}

	in, err := s.buildInput(ctx, companyID, requester, d, "")
	if err != nil {
		logger.Error("preview leave build policy input failed", zap.Error(err))
		return PreviewResponse{}, err
	}

	roles := s.resolver.ChainFor(d.leaveType, requester.Role)
	chainRoles := make([]string, len(roles))
	for i, r := range roles {
		chainRoles[i] = string(r)
	}

	return PreviewResponse{
		Validation:   s.engine.Validate(in),
		Explanations: s.engine.Explain(in),
		WorkingDays:  in.WorkingDays(),
		Chain:        chainRoles,
	}, nil
}

// Resubmit re-enters a RETURNED leave at the role that returned it, or at the
// start of the chain when the leave type changed. The returned step stays as
// history and a new PENDING step is appended.
func (s *service) Resubmit(ctx context.Context, companyID, actorID, leaveID string, req UpdateLeaveRequest) (result SubmitResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "leave.resubmit", attribute.String("leave.id", leaveID))
	defer func() { tracing.EndSpan(span, err) }()

	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("resubmit leave requested",
		zap.String("leave_id", leaveID),
		zap.String("actor_id", actorID),
	)

	d, err := parseDraft(req.LeaveType, req.StartDate, req.EndDate, req.Reason, req.CertificateRef)
	if err != nil {
		return SubmitResult{}, err
	}

	l, err := s.leaves.FindByIDAndCompany(ctx, companyID, leaveID)
	if err != nil {
		return SubmitResult{}, err
	}
	if l.EmployeeID.String() != actorID {
		logger.Warn("resubmit leave by non-owner", zap.String("leave_id", leaveID), zap.String("actor_id", actorID))
		return SubmitResult{}, leaveerrors.ErrResubmitForbidden
	}
	if l.Status != domain.StatusReturned {
		return SubmitResult{}, leaveerrors.ErrLeaveNotReturned
	}

	requester, err := s.employees.FindByIDAndCompany(ctx, companyID, actorID)
	if err != nil {
		return SubmitResult{}, err
	}

	in, err := s.buildInput(ctx, companyID, requester, d, leaveID)
	if err != nil {
		logger.Error("resubmit leave build policy input failed", zap.Error(err))
		return SubmitResult{}, err
	}
	verdict := s.engine.Validate(in)
	if !verdict.Valid {
		logger.Warn("resubmit leave rejected by policy",
			zap.String("leave_id", leaveID),
			zap.Strings("codes", verdict.Codes()),
		)
		return SubmitResult{}, leaveerrors.ErrPolicyViolation.WithDetails(verdict)
	}

	steps, err := s.approvals.FindByLeave(ctx, leaveID)
	if err != nil {
		return SubmitResult{}, err
	}
	if len(steps) == 0 || steps[len(steps)-1].Decision != DecisionReturned {
		return SubmitResult{}, leaveerrors.ErrStateConflict
	}
	returned := steps[len(steps)-1]

	role, ok := s.reentryRole(l, d.leaveType, returned.ApproverRole)
	if !ok {
		return SubmitResult{}, leaveerrors.ErrNoApproverFound
	}
	approver, err := s.reentryApprover(ctx, companyID, requester, returned, role)
	if err != nil {
		return SubmitResult{}, err
	}

	l.LeaveType = d.leaveType
	l.StartDate = d.start
	l.EndDate = d.end
	l.WorkingDays = in.WorkingDays()
	l.Reason = d.reason
	l.CertificateRef = d.certificateRef

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.leaves.UpdateStatus(txCtx, companyID, leaveID, []domain.LeaveStatus{domain.StatusReturned}, domain.StatusPending)
		if err != nil {
			return err
		}
		if n == 0 {
			return leaveerrors.ErrStateConflict
		}
		if err := s.leaves.UpdateDetails(txCtx, l); err != nil {
			return err
		}
		_, err = s.appendStep(txCtx, l.ID, approver.ID, role)
		return err
	})
	if err != nil {
		logFailure(logger, "resubmit leave persist failed", err, zap.String("leave_id", leaveID))
		return SubmitResult{}, err
	}
	l.Status = domain.StatusPending

	s.notifier.NotifyLeaveSubmitted(ctx, companyID, leaveID, actorID, approver.ID.String())
	s.record(ctx, audit.Entry{
		Action:     audit.ActionLeaveResubmitted,
		CompanyID:  companyID,
		ActorID:    actorID,
		EntityType: "leave",
		EntityID:   leaveID,
		Meta: map[string]any{
			"approver_id":  approver.ID.String(),
			"role":         string(role),
			"working_days": l.WorkingDays,
		},
	})

	logger.Info("resubmit leave success",
		zap.String("leave_id", leaveID),
		zap.String("approver_id", approver.ID.String()),
	)

	return SubmitResult{
		Leave:       mapToResponse(*l),
		ApproverID:  approver.ID.String(),
		Warnings:    verdict.Warnings,
		Infos:       verdict.Infos,
		Suggestions: verdict.Suggestions,
	}, nil
}

// reentryRole picks the role that acts on a resubmitted leave. The returning
// role is kept when the type is unchanged and the role still belongs to the
// chain; otherwise the chain of the new type starts over.
func (s *service) reentryRole(l *Leave, newType domain.LeaveType, returnedRole domain.Role) (domain.Role, bool) {
	if newType == l.LeaveType && slices.Contains(s.resolver.ChainFor(newType, l.RequesterRole), returnedRole) {
		return returnedRole, true
	}
	return s.resolver.FirstRole(newType, l.RequesterRole)
}

// reentryApprover prefers whoever returned the leave when role is theirs and
// falls back to another holder of role.
func (s *service) reentryApprover(ctx context.Context, companyID string, requester *employee.Employee, returned Approval, role domain.Role) (*employee.Employee, error) {
	if role != returned.ApproverRole {
		return s.findApprover(ctx, companyID, requester, role)
	}
	prev, err := s.employees.FindByIDAndCompany(ctx, companyID, returned.ApproverID.String())
	if err == nil && prev.Active && prev.Role == role {
		return prev, nil
	}
	if err != nil && !errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
		return nil, err
	}
	return s.findApprover(ctx, companyID, requester, role)
}

func (s *service) GetByID(ctx context.Context, companyID, actorID, id string, canReadAll bool) (LeaveResponse, error) {
	l, err := s.leaves.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.ensureCanView(ctx, l, actorID, canReadAll); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]LeaveResponse, error) {
	var (
		leaves []Leave
		err    error
	)
	if canReadAll {
		leaves, err = s.leaves.FindAllByCompany(ctx, companyID)
	} else {
		leaves, err = s.leaves.FindByEmployee(ctx, companyID, actorID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListPendingFor(ctx context.Context, companyID, approverID string) ([]PendingApprovalResponse, error) {
	rows, err := s.approvals.FindPendingByApprover(ctx, companyID, approverID)
	if err != nil {
		return nil, err
	}

	out := make([]PendingApprovalResponse, 0, len(rows))
	for _, a := range rows {
		if a.Leave == nil {
			continue
		}
		out = append(out, PendingApprovalResponse{
			ApprovalID:   a.ID.String(),
			Step:         a.Step,
			ApproverRole: string(a.ApproverRole),
			AssignedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
			Leave:        mapToResponse(*a.Leave),
		})
	}
	return out, nil
}

func (s *service) History(ctx context.Context, companyID, actorID, leaveID string, canReadAll bool) (HistoryResponse, error) {
	l, err := s.leaves.FindByIDAndCompany(ctx, companyID, leaveID)
	if err != nil {
		return HistoryResponse{}, err
	}
	if err := s.ensureCanView(ctx, l, actorID, canReadAll); err != nil {
		return HistoryResponse{}, err
	}

	steps, err := s.approvals.FindByLeave(ctx, leaveID)
	if err != nil {
		return HistoryResponse{}, err
	}
	allApproved, err := s.approvals.AreAllApprovalsApproved(ctx, leaveID)
	if err != nil {
		return HistoryResponse{}, err
	}

	return HistoryResponse{
		LeaveID:     leaveID,
		Status:      string(l.Status),
		Steps:       mapToApprovalResponses(steps),
		AllApproved: allApproved,
	}, nil
}

// ensureCanView admits the requester, company-wide readers and anyone who
// holds a step on the leave.
func (s *service) ensureCanView(ctx context.Context, l *Leave, actorID string, canReadAll bool) error {
	if canReadAll || l.EmployeeID.String() == actorID {
		return nil
	}
	_, err := s.approvals.FindLatestByLeaveAndApprover(ctx, l.ID.String(), actorID)
	if errors.Is(err, leaveerrors.ErrApprovalNotFound) {
		return leaveerrors.ErrLeaveAccessForbidden
	}
	return err
}

func (s *service) findApprover(ctx context.Context, companyID string, requester *employee.Employee, role domain.Role) (*employee.Employee, error) {
	emp, err := s.employees.FindApproverByRole(ctx, companyID, role, requester.DepartmentID, requester.ID.String())
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return nil, leaveerrors.ErrNoApproverFound.WithDetails(map[string]string{"role": string(role)})
		}
		return nil, err
	}
	return emp, nil
}

// resolveApprover finds a holder of role for the leave's requester. A
// requester who has since left the directory is resolved company-wide.
func (s *service) resolveApprover(ctx context.Context, companyID string, l *Leave, role domain.Role) (*employee.Employee, error) {
	requester, err := s.employees.FindByIDAndCompany(ctx, companyID, l.EmployeeID.String())
	if err != nil {
		if !errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return nil, err
		}
		requester = &employee.Employee{ID: l.EmployeeID}
	}
	return s.findApprover(ctx, companyID, requester, role)
}

// appendStep adds a PENDING step after the current highest one.
func (s *service) appendStep(ctx context.Context, leaveID, approverID uuid.UUID, role domain.Role) (int, error) {
	step, err := s.approvals.GetNextStep(ctx, leaveID.String())
	if err != nil {
		return 0, err
	}
	err = s.approvals.Create(ctx, &Approval{
		ID:           uuid.New(),
		LeaveID:      leaveID,
		Step:         step,
		ApproverID:   approverID,
		ApproverRole: role,
		Decision:     DecisionPending,
	})
	return step, err
}

func (s *service) checkReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if utf8.RuneCountInString(trimmed) < s.minReason {
		return "", leaveerrors.ErrReasonRequired.WithDetails(map[string]int{"min_length": s.minReason})
	}
	return trimmed, nil
}

// record writes an audit entry after commit. Audit failures never reach the
// caller.
func (s *service) record(ctx context.Context, entry audit.Entry) {
	s.audit.Log(context.WithoutCancel(ctx), entry)
}

func logFailure(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		logger.Warn(msg, append(fields, zap.String("code", appErr.Code), zap.String("reason", appErr.Message))...)
		return
	}
	logger.Error(msg, append(fields, zap.Error(err))...)
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		CompanyID:      l.CompanyID.String(),
		ReferenceNo:    l.ReferenceNo,
		EmployeeID:     l.EmployeeID.String(),
		RequesterRole:  string(l.RequesterRole),
		LeaveType:      string(l.LeaveType),
		StartDate:      l.StartDate.Format(dateLayout),
		EndDate:        l.EndDate.Format(dateLayout),
		WorkingDays:    l.WorkingDays,
		Reason:         l.Reason,
		CertificateRef: l.CertificateRef,
		Status:         string(l.Status),
		CreatedBy:      l.CreatedBy.String(),
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.UTC().Format(time.RFC3339)
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapToApprovalResponses(rows []Approval) []ApprovalResponse {
	out := make([]ApprovalResponse, len(rows))
	for i, a := range rows {
		resp := ApprovalResponse{
			ID:           a.ID.String(),
			Step:         a.Step,
			ApproverID:   a.ApproverID.String(),
			ApproverRole: string(a.ApproverRole),
			Decision:     string(a.Decision),
			Comment:      a.Comment,
		}
		if fwd, ok := a.Outcome().(ForwardedTo); ok {
			role := string(fwd.Role)
			resp.ForwardedToRole = &role
		}
		if a.DecidedAt != nil {
			v := a.DecidedAt.UTC().Format(time.RFC3339)
			resp.DecidedAt = &v
		}
		out[i] = resp
	}
	return out
}
