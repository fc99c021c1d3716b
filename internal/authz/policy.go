// Package authz holds the pure role-based access decisions. Functions
// here never touch storage and never return errors; they hand back a
// Decision the operation layer interprets.
package authz

import (
	"employees/internal/auth"
	"employees/internal/employee"
)

// Reason says why a decision denied, so callers can render "log in"
// differently from "forbidden".
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonWrongRole       Reason = "wrong_role"
	ReasonNotSelf         Reason = "not_self"
)

// Decision is the outcome of a policy check. ScopeID, when set,
// restricts row visibility to that single record id. Fields, when
// non-nil, whitelists the update payload keys the caller may change;
// nil means unrestricted.
type Decision struct {
	Allowed bool
	Reason  Reason
	ScopeID string
	Fields  map[string]bool
}

// selfUpdatable is the static field table for a self-update: role ×
// operation → allowed payload keys.
var selfUpdatable = map[string]bool{
	"name":     true,
	"avatar":   true,
	"subjects": true,
	"class":    true,
}

func denied(r Reason) Decision {
	return Decision{Reason: r}
}

// CanList permits any authenticated principal. Non-admins get a row
// scope of their own id: their list is always the singleton set
// containing their record, or empty if it was deleted.
func CanList(p *auth.Principal) Decision {
	if p == nil {
		return denied(ReasonUnauthenticated)
	}
	if p.Role != employee.RoleAdmin {
		return Decision{Allowed: true, ScopeID: p.ID}
	}
	return Decision{Allowed: true}
}

// CanReadOne permits admins for any target and non-admins for
// themselves only.
func CanReadOne(p *auth.Principal, targetID string) Decision {
	if p == nil {
		return denied(ReasonUnauthenticated)
	}
	if p.Role == employee.RoleAdmin || p.ID == targetID {
		return Decision{Allowed: true}
	}
	return denied(ReasonNotSelf)
}

// CanCreate permits admins only.
func CanCreate(p *auth.Principal) Decision {
	if p == nil {
		return denied(ReasonUnauthenticated)
	}
	if p.Role != employee.RoleAdmin {
		return denied(ReasonWrongRole)
	}
	return Decision{Allowed: true}
}

// CanDelete permits admins only.
func CanDelete(p *auth.Principal) Decision {
	return CanCreate(p)
}

// CanUpdate permits admins unrestricted, and self-updates restricted
// to the static whitelist. Anyone else is denied.
func CanUpdate(p *auth.Principal, targetID string) Decision {
	if p == nil {
		return denied(ReasonUnauthenticated)
	}
	if p.Role == employee.RoleAdmin {
		return Decision{Allowed: true}
	}
	if p.ID == targetID {
		return Decision{Allowed: true, Fields: selfUpdatable}
	}
	return denied(ReasonNotSelf)
}
