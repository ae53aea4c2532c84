package domain

import (
	"fmt"
	"slices"
)

const (
	PolicyPermissive = "permissive"
	PolicyStrict     = "strict"
)

// TransitionPolicy decides which status edges an order may take. A nil edge
// table allows every edge.
type TransitionPolicy struct {
	name  string
	edges map[Status][]Status
}

func PermissivePolicy() TransitionPolicy {
	return TransitionPolicy{name: PolicyPermissive}
}

// StrictPolicy follows the business lifecycle: Pending is reviewed into
// Accepted or Rejected, Accepted work is Completed. Rejected and Completed
// are terminal.
func StrictPolicy() TransitionPolicy {
	return TransitionPolicy{
		name: PolicyStrict,
		edges: map[Status][]Status{
			StatusPending:  {StatusAccepted, StatusRejected},
			StatusAccepted: {StatusCompleted},
		},
	}
}

func ParseTransitionPolicy(name string) (TransitionPolicy, error) {
	switch name {
	case "", PolicyPermissive:
		return PermissivePolicy(), nil
	case PolicyStrict:
		return StrictPolicy(), nil
	default:
		return TransitionPolicy{}, fmt.Errorf("unknown transition policy %q", name)
	}
}

func (p TransitionPolicy) Name() string {
	if p.name == "" {
		return PolicyPermissive
	}
	return p.name
}

// Enforced reports whether the policy needs the current status to decide.
func (p TransitionPolicy) Enforced() bool {
	return p.edges != nil
}

// Allows reports whether an order in status from may move to status to.
// Re-applying the current status is always allowed.
func (p TransitionPolicy) Allows(from, to Status) bool {
	if p.edges == nil || from == to {
		return true
	}
	return slices.Contains(p.edges[from], to)
}
