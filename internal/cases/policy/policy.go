// Package policy holds the pure authorization predicates gating the case
// operations. Each predicate is a stateless function over the request actor;
// callers pass the actor explicitly so every check is independently testable.
package policy

import "sangamsetu/pkg/domain"

// IsVolunteerOrPolice gates found-person report creation.
//
// Despite the name, only the VOLUNTEER group is checked, so police officers
// need VOLUNTEER membership to file found reports. This matches the deployed
// behavior exactly and is kept as-is pending a product decision; see
// DESIGN.md.
func IsVolunteerOrPolice(actor domain.Actor) bool {
	return actor.Authenticated && actor.InGroup(domain.GroupVolunteer)
}

// IsAdminRole gates suggestion listing: authenticated actors whose flat role
// classifier is ADMIN (upper-case role space, distinct from group checks).
func IsAdminRole(actor domain.Actor) bool {
	return actor.Authenticated && actor.Role == domain.RoleAdmin
}

// IsReporter checks the lower-case "reporter" role attribute. Note the
// distinct string space from IsAdminRole's upper-case check.
func IsReporter(actor domain.Actor) bool {
	return actor.Role == domain.RoleReporter
}

// IsPoliceOrAdmin gates match confirmation: membership in either the POLICE
// or the ADMIN group.
func IsPoliceOrAdmin(actor domain.Actor) bool {
	return actor.Authenticated && (actor.InGroup(domain.GroupPolice) || actor.InGroup(domain.GroupAdmin))
}

// IsCreatorOrAdmin is the object-level check: superusers, or the actor who
// originally reported the missing person the object refers to. reportedBy is
// nil when the reporter's account has been removed.
func IsCreatorOrAdmin(actor domain.Actor, reportedBy *domain.UserID) bool {
	if actor.Superuser {
		return true
	}
	return reportedBy != nil && *reportedBy == actor.ID
}
