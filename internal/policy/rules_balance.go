package policy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type balanceSufficiencyRule struct {
	base
	reserve decimal.Decimal
}

func newBalanceSufficiencyRule(reserveDays int) Rule {
	return balanceSufficiencyRule{
		base:    base{id: "balance_sufficiency", types: balanceTypes(), priority: priorityBalance},
		reserve: decimal.NewFromInt(int64(reserveDays)),
	}
}

func (r balanceSufficiencyRule) Validate(in Input) Result {
	if !in.validRange() {
		return pass()
	}
	snap, ok := in.Balances[in.Request.Type]
	if !ok {
		return fail(SeverityError, CodeBalanceNotProvisioned,
			fmt.Sprintf("no %s balance has been provisioned for this year", in.Request.Type),
			"Ask HR to provision your leave balance")
	}

	requested := decimal.NewFromInt(int64(in.WorkingDays()))
	available := snap.Available()
	if requested.GreaterThan(available) {
		suggestions := []string{"Apply for UNPAID leave for the days not covered by your balance"}
		if available.IsPositive() {
			suggestions = append([]string{fmt.Sprintf("Reduce the request to %s working day(s)", available.String())}, suggestions...)
		}
		return fail(SeverityError, CodeInsufficientBalance,
			fmt.Sprintf("%s working day(s) requested but only %s %s day(s) available", requested, available, in.Request.Type),
			suggestions...)
	}

	remaining := available.Sub(requested)
	if remaining.LessThan(r.reserve) {
		return fail(SeverityWarning, CodeLowBalance,
			fmt.Sprintf("only %s %s day(s) will remain after this request", remaining, in.Request.Type))
	}
	return pass()
}

func (r balanceSufficiencyRule) Explain(in Input) string {
	snap, ok := in.Balances[in.Request.Type]
	if !ok {
		return fmt.Sprintf("A %s balance must be provisioned before leave can be taken.", in.Request.Type)
	}
	return fmt.Sprintf("Requested days must fit the available %s balance of %s day(s).", in.Request.Type, snap.Available())
}

type pendingDoubleCountRule struct{ base }

func newPendingDoubleCountRule() Rule {
	return pendingDoubleCountRule{base{id: "pending_double_count", types: balanceTypes(), priority: priorityPending}}
}

func (r pendingDoubleCountRule) pending(in Input) decimal.Decimal {
	sum := decimal.Zero
	for _, h := range in.others() {
		if h.Type == in.Request.Type && h.Status.InChain() {
			sum = sum.Add(decimal.NewFromInt(int64(h.WorkingDays)))
		}
	}
	return sum
}

func (r pendingDoubleCountRule) Validate(in Input) Result {
	snap, ok := in.Balances[in.Request.Type]
	if !ok || !in.validRange() {
		return pass()
	}
	requested := decimal.NewFromInt(int64(in.WorkingDays()))
	available := snap.Available()
	// A request that alone exceeds the balance is reported by balance_sufficiency.
	if requested.GreaterThan(available) {
		return pass()
	}

	pending := r.pending(in)
	if pending.IsZero() || pending.Add(requested).LessThanOrEqual(available) {
		return pass()
	}
	return fail(SeverityError, CodePendingExceedsBalance,
		fmt.Sprintf("%s day(s) are already awaiting approval; together with this request that exceeds the %s day(s) available",
			pending, available),
		"Cancel or wait for the outcome of your pending requests before submitting another")
}

func (r pendingDoubleCountRule) Explain(in Input) string {
	return fmt.Sprintf("Pending %s requests (%s day(s)) are counted against the balance before approval.", in.Request.Type, r.pending(in))
}
