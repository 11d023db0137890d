package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assetURL(path string) string {
	if path == "" {
		return ""
	}
	return "http://assets.example.com/" + path
}

func TestDecodeUserEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"user envelope", `{"user": {"_id": "u1", "name": "Awa", "role": "organizer"}}`},
		{"data envelope", `{"data": {"_id": "u1", "name": "Awa", "role": "organizer"}}`},
		{"bare user", `{"_id": "u1", "name": "Awa", "role": "organizer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := DecodeUser(json.RawMessage(tt.body), assetURL)
			require.NoError(t, err)
			assert.Equal(t, "u1", user.ID)
			assert.Equal(t, "Awa", user.Name)
			assert.Equal(t, RoleOrganizer, user.Role)
		})
	}
}

func TestDecodeUserIDFallback(t *testing.T) {
	user, err := DecodeUser(json.RawMessage(`{"id": "plain-1", "name": "X"}`), assetURL)
	require.NoError(t, err)
	assert.Equal(t, "plain-1", user.ID)
}

func TestDecodeUserUnknownRoleDefaultsToUser(t *testing.T) {
	user, err := DecodeUser(json.RawMessage(`{"_id": "u1", "role": "superhero"}`), assetURL)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
}

func TestDecodeUserAbsolutizesAvatar(t *testing.T) {
	user, err := DecodeUser(json.RawMessage(`{"_id": "u1", "avatar": "uploads/a.png"}`), assetURL)
	require.NoError(t, err)
	assert.Equal(t, "http://assets.example.com/uploads/a.png", user.Avatar)
}

func TestDecodeUserMissingID(t *testing.T) {
	_, err := DecodeUser(json.RawMessage(`{"name": "No ID"}`), assetURL)
	assert.Error(t, err)
}

func TestRoleIsOrganizer(t *testing.T) {
	assert.True(t, RoleOrganizer.IsOrganizer())
	assert.True(t, RoleAdmin.IsOrganizer())
	assert.False(t, RoleUser.IsOrganizer())
}
