// Package dispatch decides where an authenticated session lands after
// sign-in. Resolve is a pure function of the session fields; nothing is
// cached between calls.
package dispatch

// Destination identifies a post-authentication landing point.
type Destination string

const (
	Login      Destination = "login"
	SelectRole Destination = "select-role"
	HR         Destination = "hr"
	TeamLead   Destination = "team-lead"
	TeamMember Destination = "team-member"
	Admin      Destination = "admin"
)

// Roles recognized by Resolve.
const (
	RoleHR         = "hr"
	RoleTeamLead   = "team_lead"
	RoleTeamMember = "team_member"
	RoleSuperAdmin = "super_admin"
)

// Session is the subset of the authenticated session that routing needs.
// An empty Role means no role has been chosen yet.
type Session struct {
	Authenticated bool
	Role          string
	Onboarded     bool
}

// Resolve maps a session to its destination. Rules apply in order:
// unauthenticated sessions go to Login, sessions without a role go to
// SelectRole, known roles go to their dashboard, and unrecognized roles
// fall back to Login.
//
// Onboarded does not affect the destination; it is carried so hosts can
// decide whether a dashboard should open its onboarding flow.
func Resolve(s Session) Destination {
	if !s.Authenticated {
		return Login
	}
	switch s.Role {
	case "":
		return SelectRole
	case RoleHR:
		return HR
	case RoleTeamLead:
		return TeamLead
	case RoleTeamMember:
		return TeamMember
	case RoleSuperAdmin:
		return Admin
	default:
		return Login
	}
}

// Path returns the route path for d, or "/login" for an unknown value.
func (d Destination) Path() string {
	switch d {
	case SelectRole, HR, TeamLead, TeamMember, Admin:
		return "/" + string(d)
	default:
		return "/login"
	}
}

// String returns the destination identifier.
func (d Destination) String() string { return string(d) }

// Roles returns every role Resolve recognizes.
func Roles() []string {
	return []string{RoleHR, RoleTeamLead, RoleTeamMember, RoleSuperAdmin}
}

// IsKnownRole reports whether role is recognized by Resolve.
func IsKnownRole(role string) bool {
	for _, r := range Roles() {
		if r == role {
			return true
		}
	}
	return false
}
