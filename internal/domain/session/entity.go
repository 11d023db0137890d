// internal/domain/session/entity.go
package session

// Role represents the access level of an authenticated user
type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// IsOrganizer reports whether the role grants organizer console access
func (r Role) IsOrganizer() bool {
	return r == RoleOrganizer || r == RoleAdmin
}

// User is the storefront-side projection of the authenticated user profile
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Avatar    string `json:"avatar,omitempty"`
	Role      Role   `json:"role"`
	Location  string `json:"location,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
}

// Session is the client-held record of the currently authenticated user and
// their bearer token. A non-nil session implies the token is not known to be
// expired; staleness beyond that is detected lazily on the first 401.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Event is published to session observers on every session transition
type Event struct {
	ClientID string
	// Session is nil when the session was cleared (logout or expiry)
	Session *Session
	// Expired is true when the clear was forced by an upstream 401
	Expired bool
}
