package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
)

func sessionWithRole(role session.Role) *session.Session {
	return &session.Session{
		User:  &session.User{ID: "user-1", Role: role},
		Token: "tok",
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name         string
		sess         *session.Session
		requiredRole session.Role
		originalPath string
		want         Decision
	}{
		{
			name:         "anonymous redirected to login with path preserved",
			sess:         nil,
			originalPath: "/checkout",
			want:         Decision{Verdict: Redirect, Target: "/login?redirect=%2Fcheckout"},
		},
		{
			name:         "anonymous on root gets plain login redirect",
			sess:         nil,
			originalPath: "/",
			want:         Decision{Verdict: Redirect, Target: "/login"},
		},
		{
			name:         "authenticated user allowed without role requirement",
			sess:         sessionWithRole(session.RoleUser),
			originalPath: "/checkout",
			want:         Decision{Verdict: Allow},
		},
		{
			name:         "user blocked from organizer console goes home",
			sess:         sessionWithRole(session.RoleUser),
			requiredRole: session.RoleOrganizer,
			originalPath: "/organizer/dashboard",
			want:         Decision{Verdict: Redirect, Target: "/"},
		},
		{
			name:         "organizer allowed into organizer console",
			sess:         sessionWithRole(session.RoleOrganizer),
			requiredRole: session.RoleOrganizer,
			originalPath: "/organizer/dashboard",
			want:         Decision{Verdict: Allow},
		},
		{
			name:         "admin satisfies organizer requirement",
			sess:         sessionWithRole(session.RoleAdmin),
			requiredRole: session.RoleOrganizer,
			originalPath: "/organizer/dashboard",
			want:         Decision{Verdict: Allow},
		},
		{
			name:         "admin satisfies any role requirement",
			sess:         sessionWithRole(session.RoleAdmin),
			requiredRole: session.RoleUser,
			originalPath: "/profile",
			want:         Decision{Verdict: Allow},
		},
		{
			name:         "organizer does not satisfy admin requirement",
			sess:         sessionWithRole(session.RoleOrganizer),
			requiredRole: session.RoleAdmin,
			originalPath: "/admin",
			want:         Decision{Verdict: Redirect, Target: "/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.sess, tt.requiredRole, tt.originalPath)
			assert.Equal(t, tt.want, got)
		})
	}
}
