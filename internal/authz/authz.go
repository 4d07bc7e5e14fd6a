// Package authz is the single rule table deciding whether an account may
// perform an action. Every mutating and listing operation goes through Decide.
package authz

import (
	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/identity"
)

// Action names an operation guarded by the rule table.
type Action string

const (
	ActionSignup                  Action = "signup"
	ActionLogin                   Action = "login"
	ActionJobCreate               Action = "job.create"
	ActionJobUpdate               Action = "job.update"
	ActionJobDelete               Action = "job.delete"
	ActionJobList                 Action = "job.list"
	ActionJobListOwn              Action = "job.listOwn"
	ActionJobRetrieve             Action = "job.retrieve"
	ActionApplicationCreate       Action = "application.create"
	ActionApplicationList         Action = "application.list"
	ActionApplicationRetrieve     Action = "application.retrieve"
	ActionApplicationUpdateStatus Action = "application.updateStatus"
)

// Target describes the entity an action touches. OwnerID is the company that
// owns the job (directly, or as the parent of an application). ApplicantID is
// set for applications.
type Target struct {
	OwnerID     string
	ApplicantID string
}

// Decision is the outcome of a rule evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Decide evaluates the rule table. A nil target skips ownership checks, which
// lets callers gate on role before loading the target.
func Decide(acct identity.Account, action Action, target *Target) Decision {
	switch action {
	case ActionSignup, ActionLogin:
		return allow()
	}

	if acct.ID == "" {
		return deny("not authenticated")
	}

	switch action {
	case ActionJobCreate, ActionJobListOwn:
		return requireRole(acct, identity.RoleCompany)
	case ActionJobUpdate, ActionJobDelete, ActionApplicationUpdateStatus:
		if d := requireRole(acct, identity.RoleCompany); !d.Allowed {
			return d
		}
		if target != nil && target.OwnerID != acct.ID {
			return deny("not the job owner")
		}
		return allow()
	case ActionJobList, ActionApplicationCreate:
		return requireRole(acct, identity.RoleApplicant)
	case ActionJobRetrieve:
		return allow()
	case ActionApplicationList:
		if !acct.Role.Valid() {
			return deny("role cannot list applications")
		}
		return allow()
	case ActionApplicationRetrieve:
		if !acct.Role.Valid() {
			return deny("role cannot view applications")
		}
		if target == nil {
			return allow()
		}
		switch acct.Role {
		case identity.RoleApplicant:
			if target.ApplicantID == acct.ID {
				return allow()
			}
		case identity.RoleCompany:
			if target.OwnerID == acct.ID {
				return allow()
			}
		}
		return deny("not a party to the application")
	}
	return deny("unknown action")
}

// Authorize is Decide folded into the error taxonomy.
func Authorize(acct identity.Account, action Action, target *Target) error {
	if d := Decide(acct, action, target); !d.Allowed {
		return apperr.PermissionDenied()
	}
	return nil
}

func requireRole(acct identity.Account, role identity.Role) Decision {
	if acct.Role != role {
		return deny("requires role " + role.String())
	}
	return allow()
}
