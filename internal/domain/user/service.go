// internal/domain/user/service.go
package user

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/pkg/apperrors"
	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// MinPasswordLength is the client-side minimum enforced before a password
// change request reaches the network
const MinPasswordLength = 8

// Service exposes profile operations backed by the upstream API. Every
// profile mutation flows back through the session store so the durable
// client storage stays in sync with what the user sees.
type Service struct {
	api      *upstream.Client
	sessions *session.Store
}

// NewService creates a new user service
func NewService(api *upstream.Client, sessions *session.Store) *Service {
	return &Service{api: api, sessions: sessions}
}

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
}

// Profile fetches the caller's full profile
func (s *Service) Profile(ctx context.Context, cred upstream.Credential) (*session.User, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, cred, "/users/profile", nil, &raw); err != nil {
		return nil, err
	}
	return session.DecodeUser(raw, s.api.AssetURL)
}

// UpdateProfile applies a profile patch upstream and re-persists the
// updated user locally
func (s *Service) UpdateProfile(ctx context.Context, cred upstream.Credential, req *UpdateProfileRequest) (*session.User, error) {
	var raw json.RawMessage
	if err := s.api.Put(ctx, cred, "/users/profile", req, &raw); err != nil {
		return nil, err
	}

	user, err := session.DecodeUser(raw, s.api.AssetURL)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.UpdateUser(ctx, cred.ClientID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar forwards a new profile picture and refreshes the profile.
// The upload endpoint only acknowledges the file, so the full profile is
// re-fetched afterwards to pick up the stored avatar reference.
func (s *Service) UploadAvatar(ctx context.Context, cred upstream.Credential, filename string, file io.Reader) (*session.User, error) {
	if err := s.api.Upload(ctx, cred, "/users/avatar", "avatar", filename, file, nil); err != nil {
		return nil, err
	}

	user, err := s.Profile(ctx, cred)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.UpdateUser(ctx, cred.ClientID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePasswordRequest carries a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ChangePassword validates the form client-side and forwards the change.
// Validation failures never reach the network.
func (s *Service) ChangePassword(ctx context.Context, cred upstream.Credential, req *ChangePasswordRequest) error {
	if len(req.NewPassword) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, MinPasswordLength)
	}
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", apperrors.ErrValidation)
	}

	body := map[string]string{
		"currentPassword": req.CurrentPassword,
		"newPassword":     req.NewPassword,
	}
	return s.api.Put(ctx, cred, "/users/password", body, nil)
}

// Favorites lists the caller's favorite event ids
func (s *Service) Favorites(ctx context.Context, cred upstream.Credential) ([]string, error) {
	var resp struct {
		Favorites []string `json:"favorites"`
	}
	if err := s.api.Get(ctx, cred, "/users/favorites", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// AddFavorite marks an event as favorite
func (s *Service) AddFavorite(ctx context.Context, cred upstream.Credential, eventID string) error {
	return s.api.Post(ctx, cred, "/users/favorites/"+eventID, nil, nil)
}

// RemoveFavorite unmarks an event as favorite
func (s *Service) RemoveFavorite(ctx context.Context, cred upstream.Credential, eventID string) error {
	return s.api.Delete(ctx, cred, "/users/favorites/"+eventID, nil)
}
