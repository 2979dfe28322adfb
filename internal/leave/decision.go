package leave

import "go-leave/internal/domain"

type DecisionKind string

const (
	DecisionPending   DecisionKind = "PENDING"
	DecisionApproved  DecisionKind = "APPROVED"
	DecisionRejected  DecisionKind = "REJECTED"
	DecisionForwarded DecisionKind = "FORWARDED"
	DecisionReturned  DecisionKind = "RETURNED"
	DecisionWithdrawn DecisionKind = "WITHDRAWN"
)

// Decision is the outcome of one approval step. The set of implementations
// is closed: Pending, Approved, Rejected, ForwardedTo, ReturnedToEmployee,
// Withdrawn.
type Decision interface {
	Kind() DecisionKind
	decision()
}

type Pending struct{}

type Approved struct{}

type Rejected struct {
	Reason string
}

// ForwardedTo hands the leave to the holder of Role without approving it.
type ForwardedTo struct {
	Role domain.Role
}

// ReturnedToEmployee sends the leave back for edits. The chain stays at the
// returning step.
type ReturnedToEmployee struct {
	Reason string
}

// Withdrawn closes a step that was still open when the requester cancelled.
type Withdrawn struct{}

func (Pending) Kind() DecisionKind            { return DecisionPending }
func (Approved) Kind() DecisionKind           { return DecisionApproved }
func (Rejected) Kind() DecisionKind           { return DecisionRejected }
func (ForwardedTo) Kind() DecisionKind        { return DecisionForwarded }
func (ReturnedToEmployee) Kind() DecisionKind { return DecisionReturned }
func (Withdrawn) Kind() DecisionKind          { return DecisionWithdrawn }

func (Pending) decision()            {}
func (Approved) decision()           {}
func (Rejected) decision()           {}
func (ForwardedTo) decision()        {}
func (ReturnedToEmployee) decision() {}
func (Withdrawn) decision()          {}

// encode maps a decision onto the decision, forwarded_to_role and comment
// columns. Reasons of Rejected and ReturnedToEmployee are stored as the comment.
func encode(d Decision, comment string) (DecisionKind, *domain.Role, string) {
	switch v := d.(type) {
	case ForwardedTo:
		role := v.Role
		return DecisionForwarded, &role, comment
	case Rejected:
		return DecisionRejected, nil, v.Reason
	case ReturnedToEmployee:
		return DecisionReturned, nil, v.Reason
	case Approved:
		return DecisionApproved, nil, comment
	case Withdrawn:
		return DecisionWithdrawn, nil, comment
	default:
		return DecisionPending, nil, comment
	}
}

func decode(kind DecisionKind, forwardedTo *domain.Role, comment string) Decision {
	switch kind {
	case DecisionApproved:
		return Approved{}
	case DecisionRejected:
		return Rejected{Reason: comment}
	case DecisionReturned:
		return ReturnedToEmployee{Reason: comment}
	case DecisionWithdrawn:
		return Withdrawn{}
	case DecisionForwarded:
		var role domain.Role
		if forwardedTo != nil {
			role = *forwardedTo
		}
		return ForwardedTo{Role: role}
	default:
		return Pending{}
	}
}
