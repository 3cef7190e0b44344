// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin gates and prepares every catalog mutation before it reaches a
repository.

All authorization goes through [Can], which answers with a tagged [Decision].
The [Workflow] runs the checks of a write in a fixed order: structural
validation (first failing field only), the featured quota, then the
authorization re-check. Nothing here performs I/O.
*/
package admin

import (
	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/sec"
)

// # Actions

// Action is a mutation an actor may attempt.
type Action string

const (
	ActionCreate         Action = "create"
	ActionEdit           Action = "edit"
	ActionDelete         Action = "delete"
	ActionToggleFeatured Action = "toggle_featured"
	ActionManageGenres   Action = "manage_genres"
	ActionManageUsers    Action = "manage_users"
)

// Reason tags why a [Decision] went the way it did.
type Reason string

const (
	ReasonPrivileged    Reason = "privileged"
	ReasonMaster        Reason = "master"
	ReasonOwner         Reason = "owner"
	ReasonAuthenticated Reason = "authenticated"
	ReasonAnonymous     Reason = "anonymous"
	ReasonNotOwner      Reason = "not_owner"
	ReasonRoleRequired  Reason = "role_required"
)

// # Actors

// Actor is the user performing an action. The zero value is anonymous.
type Actor struct {
	ID   string
	Role sec.UserRole
}

// ActorFromClaims builds an actor from verified token claims; nil claims
// yield the anonymous actor.
func ActorFromClaims(claims *sec.AuthClaims) Actor {
	if claims == nil {
		return Actor{}
	}
	return Actor{ID: claims.UserID, Role: claims.UserRole()}
}

// IsAnonymous reports whether nobody is logged in.
func (a Actor) IsAnonymous() bool { return a.ID == "" }

// # Decisions

// Decision is the outcome of [Can].
type Decision struct {
	Action  Action `json:"action"`
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`
}

// Err returns nil for an allowed decision and a generic FORBIDDEN otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperr.Forbidden("You do not have permission to perform this action")
}

func allow(action Action, reason Reason) Decision {
	return Decision{Action: action, Allowed: true, Reason: reason}
}

func deny(action Action, reason Reason) Decision {
	return Decision{Action: action, Allowed: false, Reason: reason}
}

// Can decides whether actor may perform action on movie. movie may be nil for
// actions that do not target one.
//
//   - create: any logged-in user.
//   - edit, delete: admin and master, or the movie's creator.
//   - toggle_featured: admin and master only.
//   - manage_genres, manage_users: master only.
func Can(action Action, actor Actor, movie *catalog.Movie) Decision {
	if actor.IsAnonymous() {
		return deny(action, ReasonAnonymous)
	}

	switch action {
	case ActionCreate:
		return allow(action, ReasonAuthenticated)

	case ActionEdit, ActionDelete:
		if actor.Role.IsPrivileged() {
			return allow(action, ReasonPrivileged)
		}
		if movie != nil && movie.IsOwnedBy(actor.ID) {
			return allow(action, ReasonOwner)
		}
		return deny(action, ReasonNotOwner)

	case ActionToggleFeatured:
		if actor.Role.IsPrivileged() {
			return allow(action, ReasonPrivileged)
		}
		return deny(action, ReasonRoleRequired)

	case ActionManageGenres, ActionManageUsers:
		if actor.Role.IsMaster() {
			return allow(action, ReasonMaster)
		}
		return deny(action, ReasonRoleRequired)
	}

	return deny(action, ReasonRoleRequired)
}

// # Entity State

// EntityState is how a movie looks from the acting user's side.
type EntityState string

const (
	StateViewable    EntityState = "viewable"
	StateEditable    EntityState = "editable"
	StateNotEditable EntityState = "not_editable"
)

// StateOf places movie in the actor's state machine: anonymous visitors only
// view, everyone else may edit it or not.
func StateOf(actor Actor, movie catalog.Movie) EntityState {
	if actor.IsAnonymous() {
		return StateViewable
	}
	if Can(ActionEdit, actor, &movie).Allowed {
		return StateEditable
	}
	return StateNotEditable
}

// Capabilities is what the presentation layer may offer on a movie.
type Capabilities struct {
	State             EntityState `json:"state"`
	CanEdit           bool        `json:"can_edit"`
	CanDelete         bool        `json:"can_delete"`
	CanToggleFeatured bool        `json:"can_toggle_featured"`
}

// CapabilitiesOf summarises [Can] for every movie action.
func CapabilitiesOf(actor Actor, movie catalog.Movie) Capabilities {
	return Capabilities{
		State:             StateOf(actor, movie),
		CanEdit:           Can(ActionEdit, actor, &movie).Allowed,
		CanDelete:         Can(ActionDelete, actor, &movie).Allowed,
		CanToggleFeatured: Can(ActionToggleFeatured, actor, &movie).Allowed,
	}
}
