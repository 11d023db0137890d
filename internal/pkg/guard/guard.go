// internal/pkg/guard/guard.go
package guard

import (
	"net/url"

	"github.com/your-org/ticketing-storefront/internal/domain/session"
)

// Verdict is the outcome of a route guard decision
type Verdict int

const (
	// Allow lets the request through
	Allow Verdict = iota
	// Redirect sends the browser elsewhere; Target carries the location
	Redirect
)

// Decision is a guard verdict plus the redirect target when applicable
type Decision struct {
	Verdict Verdict
	Target  string
}

// Decide evaluates access to a protected route. An anonymous caller is
// redirected to the login page with the original path preserved so the
// flow can resume after authentication. An authenticated caller whose
// role does not satisfy the requirement is sent back to the home page
// rather than the login page, since logging in again would not help.
func Decide(sess *session.Session, requiredRole session.Role, originalPath string) Decision {
	if sess == nil {
		target := "/login"
		if originalPath != "" && originalPath != "/" {
			target += "?redirect=" + url.QueryEscape(originalPath)
		}
		return Decision{Verdict: Redirect, Target: target}
	}

	if requiredRole != "" && !satisfies(sess.User.Role, requiredRole) {
		return Decision{Verdict: Redirect, Target: "/"}
	}

	return Decision{Verdict: Allow}
}

// satisfies reports whether the caller's role meets the requirement.
// Admins pass every check, and the organizer requirement is also met by
// admins through Role.IsOrganizer.
func satisfies(have, want session.Role) bool {
	if have == session.RoleAdmin {
		return true
	}
	if want == session.RoleOrganizer {
		return have.IsOrganizer()
	}
	return have == want
}
