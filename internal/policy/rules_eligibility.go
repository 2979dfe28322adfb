package policy

import (
	"fmt"

	"go-leave/internal/domain"
)

type certificateRule struct {
	base
	above map[domain.LeaveType]int
}

func newCertificateRule(above map[domain.LeaveType]int) Rule {
	return certificateRule{
		base:  base{id: "certificate_required", types: sortedKeys(above), priority: priorityCertificate},
		above: above,
	}
}

func (r certificateRule) Validate(in Input) Result {
	threshold, ok := r.above[in.Request.Type]
	if !ok || in.Request.HasCertificate || !in.validRange() {
		return pass()
	}
	days := in.WorkingDays()
	if days <= threshold {
		return pass()
	}
	if threshold == 0 {
		return fail(SeverityError, CodeCertificateRequired,
			fmt.Sprintf("%s leave requires a supporting certificate", in.Request.Type),
			"Attach the certificate reference to the request")
	}
	return fail(SeverityError, CodeCertificateRequired,
		fmt.Sprintf("%s leave longer than %d working day(s) requires a certificate; %d requested", in.Request.Type, threshold, days),
		"Attach the certificate reference to the request",
		fmt.Sprintf("Shorten the request to %d working day(s) if no certificate is available", threshold))
}

func (r certificateRule) Explain(in Input) string {
	threshold, ok := r.above[in.Request.Type]
	switch {
	case !ok:
		return "No certificate is required."
	case threshold == 0:
		return fmt.Sprintf("%s leave always requires a certificate.", in.Request.Type)
	default:
		return fmt.Sprintf("%s leave longer than %d working day(s) requires a certificate.", in.Request.Type, threshold)
	}
}

type overlapRule struct{ base }

func newOverlapRule() Rule {
	return overlapRule{base{id: "overlap", types: allTypes, priority: priorityOverlap}}
}

func (r overlapRule) Validate(in Input) Result {
	if !in.validRange() {
		return pass()
	}
	start, end := dateOf(in.Request.Start), dateOf(in.Request.End)
	for _, h := range in.others() {
		if !h.Status.CountsAgainstHistory() {
			continue
		}
		if dateOf(h.End).Before(start) || dateOf(h.Start).After(end) {
			continue
		}
		return fail(SeverityError, CodeOverlappingLeave,
			fmt.Sprintf("overlaps %s leave from %s to %s (%s)", h.Type, formatDate(h.Start), formatDate(h.End), h.Status),
			"Choose dates that do not overlap your existing leave")
	}
	return pass()
}

func (r overlapRule) Explain(Input) string {
	return "Leave may not overlap any other leave that is not cancelled or rejected."
}

type eligibilityRule struct {
	base
	minTenure map[domain.LeaveType]int
}

func newEligibilityRule(minTenure map[domain.LeaveType]int) Rule {
	return eligibilityRule{
		base:      base{id: "eligibility", types: sortedKeys(minTenure), priority: priorityEligibility},
		minTenure: minTenure,
	}
}

func (r eligibilityRule) Validate(in Input) Result {
	need, ok := r.minTenure[in.Request.Type]
	if !ok || !in.validRange() {
		return pass()
	}
	if in.Requester.HireDate.IsZero() {
		return fail(SeverityError, CodeNotEligible,
			fmt.Sprintf("%s leave requires %d days of service and no hire date is on record", in.Request.Type, need),
			"Ask HR to record your hire date")
	}
	tenure := daysBetween(in.Requester.HireDate, in.Request.Start)
	if tenure >= need {
		return pass()
	}
	eligibleFrom := in.Requester.HireDate.AddDate(0, 0, need)
	return fail(SeverityError, CodeNotEligible,
		fmt.Sprintf("%s leave requires %d days of service; %d completed by the start date", in.Request.Type, need, tenure),
		fmt.Sprintf("You become eligible on %s", formatDate(eligibleFrom)))
}

func (r eligibilityRule) Explain(in Input) string {
	need, ok := r.minTenure[in.Request.Type]
	if !ok {
		return "No minimum tenure applies."
	}
	return fmt.Sprintf("%s leave requires at least %d days of service.", in.Request.Type, need)
}
