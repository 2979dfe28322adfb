package leave_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go-leave/internal/audit"
	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/domain"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/holiday"
	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/policy"
	"go-leave/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore keeps leaves, approval steps and balance usage in memory.
// RunInTx serialises transactions and restores a snapshot when fn fails,
// so conditional updates behave like they do against a database.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	leaves      map[string]leave.Leave
	approvals   []leave.Approval
	used        map[string]int
	provisioned map[string]bool
	deductCalls int
}

func newMemStore() *memStore {
	return &memStore{
		leaves:      map[string]leave.Leave{},
		used:        map[string]int{},
		provisioned: map[string]bool{},
	}
}

type storeSnapshot struct {
	leaves      map[string]leave.Leave
	approvals   []leave.Approval
	used        map[string]int
	deductCalls int
}

func (m *memStore) snapshot() storeSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := storeSnapshot{
		leaves:      make(map[string]leave.Leave, len(m.leaves)),
		approvals:   make([]leave.Approval, len(m.approvals)),
		used:        make(map[string]int, len(m.used)),
		deductCalls: m.deductCalls,
	}
	for k, v := range m.leaves {
		s.leaves[k] = v
	}
	copy(s.approvals, m.approvals)
	for k, v := range m.used {
		s.used[k] = v
	}
	return s
}

func (m *memStore) restore(s storeSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves = s.leaves
	m.approvals = s.approvals
	m.used = s.used
	m.deductCalls = s.deductCalls
}

func (m *memStore) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snap := m.snapshot()
	if err := fn(ctx); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

// leave.Repository

type memLeaves struct{ *memStore }

func (r memLeaves) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leaves[id]
	if !ok || l.CompanyID.String() != companyID {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	return &l, nil
}

func (r memLeaves) Create(ctx context.Context, l *leave.Leave) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.CreatedAt = clock.Now()
	l.UpdatedAt = l.CreatedAt
	r.leaves[l.ID.String()] = *l
	return nil
}

func (r memLeaves) UpdateStatus(ctx context.Context, companyID, id string, from []domain.LeaveStatus, to domain.LeaveStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leaves[id]
	if !ok || l.CompanyID.String() != companyID {
		return 0, nil
	}
	for _, s := range from {
		if l.Status == s {
			l.Status = to
			if to.Terminal() {
				now := clock.Now()
				l.DecidedAt = &now
			}
			r.leaves[id] = l
			return 1, nil
		}
	}
	return 0, nil
}

func (r memLeaves) UpdateDetails(ctx context.Context, l *leave.Leave) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.leaves[l.ID.String()]
	cur.LeaveType = l.LeaveType
	cur.StartDate = l.StartDate
	cur.EndDate = l.EndDate
	cur.WorkingDays = l.WorkingDays
	cur.Reason = l.Reason
	cur.CertificateRef = l.CertificateRef
	r.leaves[l.ID.String()] = cur
	return nil
}

func (r memLeaves) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]leave.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.Leave
	for _, l := range r.leaves {
		if l.CompanyID.String() == companyID && l.EmployeeID.String() == employeeID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r memLeaves) FindAllByCompany(ctx context.Context, companyID string) ([]leave.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.Leave
	for _, l := range r.leaves {
		if l.CompanyID.String() == companyID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

// cancelAfterRead flips the leave to CANCELLED right after it is read,
// standing in for a cancel that commits between a decision's read and write.
type cancelAfterRead struct {
	memLeaves
	once sync.Once
}

func (r *cancelAfterRead) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	l, err := r.memLeaves.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	r.once.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		cur := r.leaves[id]
		cur.Status = domain.StatusCancelled
		r.leaves[id] = cur
	})
	return l, nil
}

// leave.ApprovalRepository

type memApprovals struct{ *memStore }

func (r memApprovals) FindByID(ctx context.Context, id string) (*leave.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.approvals {
		if a.ID.String() == id {
			return &a, nil
		}
	}
	return nil, leaveerrors.ErrApprovalNotFound
}

func (r memApprovals) Create(ctx context.Context, a *leave.Approval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.CreatedAt = clock.Now()
	r.approvals = append(r.approvals, *a)
	return nil
}

func (r memApprovals) FindLatestByLeaveAndApprover(ctx context.Context, leaveID, approverID string) (*leave.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *leave.Approval
	for i := range r.approvals {
		a := r.approvals[i]
		if a.LeaveID.String() == leaveID && a.ApproverID.String() == approverID {
			if latest == nil || a.Step > latest.Step {
				latest = &a
			}
		}
	}
	if latest == nil {
		return nil, leaveerrors.ErrApprovalNotFound
	}
	return latest, nil
}

func (r memApprovals) UpdateByLeaveAndApprover(ctx context.Context, leaveID, approverID string, d leave.Decision, comment string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.approvals {
		a := &r.approvals[i]
		if a.LeaveID.String() != leaveID || a.ApproverID.String() != approverID || a.Decision != leave.DecisionPending {
			continue
		}
		a.Decision = d.Kind()
		a.ForwardedToRole = nil
		a.Comment = comment
		switch v := d.(type) {
		case leave.ForwardedTo:
			role := v.Role
			a.ForwardedToRole = &role
		case leave.Rejected:
			a.Comment = v.Reason
		case leave.ReturnedToEmployee:
			a.Comment = v.Reason
		}
		now := clock.Now()
		a.DecidedAt = &now
		n++
	}
	return n, nil
}

func (r memApprovals) WithdrawOpenSteps(ctx context.Context, leaveID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.approvals {
		a := &r.approvals[i]
		if a.LeaveID.String() != leaveID || a.Decision != leave.DecisionPending {
			continue
		}
		a.Decision = leave.DecisionWithdrawn
		now := clock.Now()
		a.DecidedAt = &now
		n++
	}
	return n, nil
}

func (r memApprovals) GetNextStep(ctx context.Context, leaveID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxStep := 0
	for _, a := range r.approvals {
		if a.LeaveID.String() == leaveID && a.Step > maxStep {
			maxStep = a.Step
		}
	}
	return maxStep + 1, nil
}

func (r memApprovals) AreAllApprovalsApproved(ctx context.Context, leaveID string) (bool, error) {
	rows, _ := r.FindByLeave(ctx, leaveID)
	if len(rows) == 0 {
		return false, nil
	}
	for _, a := range rows {
		if a.Decision == leave.DecisionPending || a.Decision == leave.DecisionRejected {
			return false, nil
		}
	}
	return rows[len(rows)-1].Decision == leave.DecisionApproved, nil
}

func (r memApprovals) FindPendingByApprover(ctx context.Context, companyID, approverID string) ([]leave.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.Approval
	for _, a := range r.approvals {
		if a.ApproverID.String() != approverID || a.Decision != leave.DecisionPending {
			continue
		}
		l, ok := r.leaves[a.LeaveID.String()]
		if !ok || l.CompanyID.String() != companyID || !l.Status.InChain() {
			continue
		}
		a.Leave = &l
		out = append(out, a)
	}
	return out, nil
}

func (r memApprovals) FindByLeave(ctx context.Context, leaveID string) ([]leave.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.Approval
	for _, a := range r.approvals {
		if a.LeaveID.String() == leaveID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Step < out[j].Step })
	return out, nil
}

// balance.Service

type memBalances struct{ *memStore }

func balanceKey(employeeID string, t domain.LeaveType, year int) string {
	return employeeID + "|" + string(t) + "|" + strconv.Itoa(year)
}

func (b memBalances) provision(employeeID string, t domain.LeaveType, year int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.provisioned[balanceKey(employeeID, t, year)] = true
}

func (b memBalances) revoke(employeeID string, t domain.LeaveType, year int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.provisioned, balanceKey(employeeID, t, year))
}

func (b memBalances) usedDays(employeeID string, t domain.LeaveType, year int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used[balanceKey(employeeID, t, year)]
}

func (b memBalances) Snapshots(ctx context.Context, companyID, employeeID string, year int) (map[domain.LeaveType]policy.BalanceSnapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := map[domain.LeaveType]policy.BalanceSnapshot{}
	for _, t := range domain.LeaveTypes() {
		key := balanceKey(employeeID, t, year)
		if b.provisioned[key] {
			out[t] = policy.BalanceSnapshot{
				Opening: decimal.NewFromInt(20),
				Accrued: decimal.Zero,
				Used:    decimal.NewFromInt(int64(b.used[key])),
			}
		}
	}
	return out, nil
}

func (b memBalances) Deduct(ctx context.Context, companyID, employeeID string, t domain.LeaveType, year int, days int) error {
	if !t.TracksBalance() {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	key := balanceKey(employeeID, t, year)
	if !b.provisioned[key] {
		return balanceerrors.ErrBalanceNotFound
	}
	b.used[key] += days
	b.deductCalls++
	return nil
}

func (b memBalances) ListForEmployee(ctx context.Context, companyID, employeeID string, year int) ([]balance.BalanceResponse, error) {
	return nil, nil
}

func (b memBalances) Provision(ctx context.Context, companyID string, req balance.ProvisionBalanceRequest) (balance.BalanceResponse, error) {
	return balance.BalanceResponse{}, nil
}

// employee.Repository

type fakeDirectory struct {
	mu        sync.Mutex
	employees []employee.Employee
}

func (d *fakeDirectory) add(e employee.Employee) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees = append(d.employees, e)
}

func (d *fakeDirectory) deactivate(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.employees {
		if d.employees[i].ID.String() == id {
			d.employees[i].Active = false
		}
	}
}

func (d *fakeDirectory) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.employees {
		if e.ID.String() == id && e.CompanyID.String() == companyID {
			return &e, nil
		}
	}
	return nil, employeeerrors.ErrEmployeeNotFound
}

func (d *fakeDirectory) FindApproverByRole(ctx context.Context, companyID string, role domain.Role, departmentID *uuid.UUID, excludeID string) (*employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	match := func(e employee.Employee, scoped bool) bool {
		if !e.Active || e.Role != role || e.CompanyID.String() != companyID || e.ID.String() == excludeID {
			return false
		}
		if scoped {
			return e.DepartmentID != nil && *e.DepartmentID == *departmentID
		}
		return true
	}

	if role.DepartmentScoped() && departmentID != nil {
		for _, e := range d.employees {
			if match(e, true) {
				return &e, nil
			}
		}
	}
	for _, e := range d.employees {
		if match(e, false) {
			return &e, nil
		}
	}
	return nil, employeeerrors.ErrEmployeeNotFound
}

func (d *fakeDirectory) FindByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []employee.Employee
	for _, e := range d.employees {
		if want[e.ID.String()] {
			out = append(out, e)
		}
	}
	return out, nil
}

// holiday.Service

type fakeHolidays struct {
	holidays []policy.Holiday
	calls    atomic.Int32
}

func (f *fakeHolidays) CalendarFor(ctx context.Context, companyID string, from, to time.Time) (policy.Calendar, error) {
	f.calls.Add(1)
	return policy.NewCalendar(f.holidays), nil
}

func (f *fakeHolidays) List(ctx context.Context, companyID string, year int) ([]holiday.HolidayResponse, error) {
	return nil, nil
}

func (f *fakeHolidays) Create(ctx context.Context, companyID string, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	return holiday.HolidayResponse{}, nil
}

// audit.Logger

type captureAudit struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (c *captureAudit) Log(ctx context.Context, e audit.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
}

func (c *captureAudit) actions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Action
	}
	return out
}
