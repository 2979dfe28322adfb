package chain

import (
	"slices"
	"sync"

	"go-leave/internal/domain"
)

type key struct {
	leaveType domain.LeaveType
	requester domain.Role
}

// Resolver derives approval chains from static tables. Results are memoised
// per (leave type, requester role); the tables never change after
// construction, so a cached chain can not drift from policy.
type Resolver struct {
	cfg   Config
	cache sync.Map // key -> []domain.Role
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// ChainFor returns the ordered approver roles for a request. Roles ranked at
// or below the requester are dropped, so nobody approves their own or a
// superior's leave. If that empties the chain, the first escalation role that
// is not the requester's own role approves alone.
func (r *Resolver) ChainFor(leaveType domain.LeaveType, requesterRole domain.Role) []domain.Role {
	k := key{leaveType: leaveType, requester: requesterRole}
	if v, ok := r.cache.Load(k); ok {
		return slices.Clone(v.([]domain.Role))
	}

	chain := r.build(leaveType, requesterRole)
	r.cache.Store(k, chain)
	return slices.Clone(chain)
}

func (r *Resolver) build(leaveType domain.LeaveType, requesterRole domain.Role) []domain.Role {
	base := r.cfg.Chains[leaveType]
	chain := make([]domain.Role, 0, len(base))
	for _, role := range base {
		if role.Outranks(requesterRole) {
			chain = append(chain, role)
		}
	}
	if len(chain) > 0 || len(base) == 0 {
		return chain
	}

	for _, role := range r.cfg.Escalation {
		if role != requesterRole {
			return []domain.Role{role}
		}
	}
	return chain
}

// FirstRole is the role that acts on step 1.
func (r *Resolver) FirstRole(leaveType domain.LeaveType, requesterRole domain.Role) (domain.Role, bool) {
	chain := r.ChainFor(leaveType, requesterRole)
	if len(chain) == 0 {
		return "", false
	}
	return chain[0], true
}

// NextRole returns the role after current, or false when current is last or
// not part of the chain.
func (r *Resolver) NextRole(current domain.Role, leaveType domain.LeaveType, requesterRole domain.Role) (domain.Role, bool) {
	chain := r.ChainFor(leaveType, requesterRole)
	i := slices.Index(chain, current)
	if i < 0 || i == len(chain)-1 {
		return "", false
	}
	return chain[i+1], true
}

func (r *Resolver) IsFinal(role domain.Role, leaveType domain.LeaveType, requesterRole domain.Role) bool {
	chain := r.ChainFor(leaveType, requesterRole)
	return len(chain) > 0 && chain[len(chain)-1] == role
}
