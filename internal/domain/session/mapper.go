// internal/domain/session/mapper.go
package session

import (
	"encoding/json"
	"fmt"
)

// rawUser matches the user shape the upstream API returns. The API has been
// observed to use either "_id" or "id" depending on the endpoint.
type rawUser struct {
	MongoID   string `json:"_id"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Avatar    string `json:"avatar"`
	Role      string `json:"role"`
	Location  string `json:"location"`
	Birthdate string `json:"birthdate"`
}

// DecodeUser maps an upstream profile payload into the storefront user shape.
// The API wraps the user as {"user": …}, {"data": …} or returns it bare;
// all three are accepted. assetURL absolutizes a relative avatar path.
func DecodeUser(data json.RawMessage, assetURL func(string) string) (*User, error) {
	var envelope struct {
		User *rawUser `json:"user"`
		Data *rawUser `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode user payload: %w", err)
	}

	raw := envelope.User
	if raw == nil {
		raw = envelope.Data
	}
	if raw == nil {
		var bare rawUser
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, fmt.Errorf("failed to decode user payload: %w", err)
		}
		raw = &bare
	}

	return mapUser(raw, assetURL)
}

// mapUser translates an upstream user into the storefront shape
func mapUser(raw *rawUser, assetURL func(string) string) (*User, error) {
	if raw == nil || (raw.MongoID == "" && raw.ID == "") {
		return nil, fmt.Errorf("invalid user data: upstream user is missing")
	}

	id := raw.MongoID
	if id == "" {
		id = raw.ID
	}

	role := Role(raw.Role)
	switch role {
	case RoleUser, RoleOrganizer, RoleAdmin:
	default:
		role = RoleUser
	}

	return &User{
		ID:        id,
		Name:      raw.Name,
		Email:     raw.Email,
		Phone:     raw.Phone,
		Avatar:    assetURL(raw.Avatar),
		Role:      role,
		Location:  raw.Location,
		Birthdate: raw.Birthdate,
	}, nil
}
