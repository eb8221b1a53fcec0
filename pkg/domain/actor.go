package domain

// Actor is the authenticated identity acting on a request. It is built by the
// auth middleware from verified token claims and passed explicitly into every
// service operation; there is no ambient current-user state.
//
// Role is a flat classifier ("ADMIN", "reporter", ...); Groups carries the
// coarse group memberships ("VOLUNTEER", "POLICE", "ADMIN"). Both spaces exist
// in the identity system and the policy predicates check them independently.
type Actor struct {
	ID            UserID
	Username      string
	Role          string
	Groups        []string
	Superuser     bool
	Authenticated bool
}

// Role classifiers and group names as stored by the identity system. Note the
// differing string spaces: the admin role is upper-case while the reporter
// role is lower-case, and groups are always upper-case.
const (
	RoleAdmin     = "ADMIN"
	RolePolice    = "POLICE"
	RoleVolunteer = "VOLUNTEER"
	RoleReporter  = "reporter"

	GroupAdmin     = "ADMIN"
	GroupPolice    = "POLICE"
	GroupVolunteer = "VOLUNTEER"
)

// InGroup reports whether the actor belongs to the named group.
func (a Actor) InGroup(name string) bool {
	for _, g := range a.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// Anonymous is the zero actor used when no credentials were presented.
func Anonymous() Actor {
	return Actor{}
}
