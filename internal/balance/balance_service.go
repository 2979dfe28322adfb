package balance

import (
	"context"

	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/domain"
	"go-leave/internal/policy"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/clock"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	// Snapshots feeds the policy engine; missing rows are simply absent.
	Snapshots(ctx context.Context, companyID, employeeID string, year int) (map[domain.LeaveType]policy.BalanceSnapshot, error)
	// Deduct charges an approved leave. It must run inside the transaction
	// that flips the leave to APPROVED.
	Deduct(ctx context.Context, companyID, employeeID string, leaveType domain.LeaveType, year int, days int) error
	ListForEmployee(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error)
	Provision(ctx context.Context, companyID string, req ProvisionBalanceRequest) (BalanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Snapshots(ctx context.Context, companyID, employeeID string, year int) (map[domain.LeaveType]policy.BalanceSnapshot, error) {
	rows, err := s.repo.FindByEmployeeYear(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}

	out := make(map[domain.LeaveType]policy.BalanceSnapshot, len(rows))
	for _, b := range rows {
		out[b.LeaveType] = b.Snapshot()
	}
	return out, nil
}

func (s *service) Deduct(ctx context.Context, companyID, employeeID string, leaveType domain.LeaveType, year int, days int) error {
	logger := contextutil.GetLogger(ctx, s.logger)

	if !leaveType.TracksBalance() {
		return nil
	}
	if days <= 0 {
		return balanceerrors.ErrInvalidDays
	}

	rows, err := s.repo.Deduct(ctx, companyID, employeeID, leaveType, year, decimal.NewFromInt(int64(days)))
	if err != nil {
		logger.Error("balance deduct failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type", string(leaveType)),
			zap.Error(err),
		)
		return err
	}
	if rows == 0 {
		logger.Warn("balance deduct on unprovisioned ledger",
			zap.String("employee_id", employeeID),
			zap.String("leave_type", string(leaveType)),
			zap.Int("year", year),
		)
		return balanceerrors.ErrBalanceNotFound
	}

	logger.Info("balance deducted",
		zap.String("employee_id", employeeID),
		zap.String("leave_type", string(leaveType)),
		zap.Int("year", year),
		zap.Int("days", days),
	)
	return nil
}

func (s *service) ListForEmployee(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error) {
	if year == 0 {
		year = clock.Today().Year()
	}
	rows, err := s.repo.FindByEmployeeYear(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}

	out := make([]BalanceResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, mapToResponse(b))
	}
	return out, nil
}

func (s *service) Provision(ctx context.Context, companyID string, req ProvisionBalanceRequest) (BalanceResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	leaveType, ok := domain.ParseLeaveType(req.LeaveType)
	if !ok || !leaveType.TracksBalance() {
		return BalanceResponse{}, balanceerrors.ErrUntrackedLeaveType
	}
	if req.Opening.IsNegative() || req.Accrued.IsNegative() {
		return BalanceResponse{}, balanceerrors.ErrInvalidAmount
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return BalanceResponse{}, apperror.InvalidField("company_id")
	}
	eid, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, apperror.InvalidField("employee_id")
	}

	row := &Balance{
		ID:         uuid.New(),
		CompanyID:  cid,
		EmployeeID: eid,
		LeaveType:  leaveType,
		Year:       req.Year,
		Opening:    req.Opening,
		Accrued:    req.Accrued,
		Used:       decimal.Zero,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		logger.Error("balance provision failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return BalanceResponse{}, err
	}

	// Re-read so an existing row reports its real used amount.
	saved, err := s.repo.Find(ctx, companyID, req.EmployeeID, leaveType, req.Year)
	if err != nil {
		return BalanceResponse{}, err
	}

	logger.Info("balance provisioned",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", string(leaveType)),
		zap.Int("year", req.Year),
	)
	return mapToResponse(*saved), nil
}
