// internal/domain/session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ticketing-storefront/internal/pkg/auth"
	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// Store holds the session of every active client and keeps it in sync with
// durable client storage. It is the only component allowed to create or
// destroy sessions; the upstream adapter routes 401s here through
// HandleAuthRejected.
type Store struct {
	api       *upstream.Client
	storage   Storage
	inspector *auth.TokenInspector
	logger    *logrus.Logger

	mu sync.RWMutex
	// sessions holds restored client sessions; a nil entry means the client
	// is known and logged out, a missing entry means not yet restored.
	sessions  map[string]*Session
	observers []func(Event)
}

// NewStore creates a new session store
func NewStore(api *upstream.Client, storage Storage, logger *logrus.Logger) *Store {
	return &Store{
		api:       api,
		storage:   storage,
		inspector: auth.NewTokenInspector(),
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Subscribe registers an observer notified on every session transition
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// authResponse matches the auth endpoints' response, which returns the token
// either at the top level or inside a data envelope.
type authResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
	Data  *struct {
		Token       string          `json:"token"`
		AccessToken string          `json:"access_token"`
		User        json.RawMessage `json:"user"`
	} `json:"data"`
}

func (r *authResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	if r.Data != nil {
		if r.Data.Token != "" {
			return r.Data.Token
		}
		return r.Data.AccessToken
	}
	return ""
}

func (r *authResponse) user() json.RawMessage {
	if len(r.User) > 0 {
		return r.User
	}
	if r.Data != nil {
		return r.Data.User
	}
	return nil
}

// Login authenticates against the upstream API and establishes a session.
// After the token is issued the full profile is fetched; if that follow-up
// fails the partial profile from the login response is used instead.
func (s *Store) Login(ctx context.Context, clientID, email, password string) (*Session, error) {
	var resp authResponse
	err := s.api.Post(ctx, upstream.Credential{ClientID: clientID}, "/auth/login", credentialsRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	token := resp.token()
	if token == "" {
		return nil, fmt.Errorf("login response did not include a token")
	}

	cred := upstream.Credential{ClientID: clientID, Token: token}
	user, err := s.fetchProfile(ctx, cred)
	if err != nil {
		s.logger.WithField("client_id", clientID).
			Warn("Could not fetch full profile, using login response data")
		user, err = DecodeUser(resp.user(), s.api.AssetURL)
		if err != nil {
			return nil, fmt.Errorf("login succeeded but user profile is unusable: %w", err)
		}
	}

	return s.establish(ctx, clientID, user, token)
}

// Register creates an account upstream and establishes a session like Login
func (s *Store) Register(ctx context.Context, clientID, name, email, password, phone string) (*Session, error) {
	var resp authResponse
	err := s.api.Post(ctx, upstream.Credential{ClientID: clientID}, "/auth/register", registrationRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Phone:    phone,
	}, &resp)
	if err != nil {
		return nil, err
	}

	token := resp.token()
	if token == "" {
		return nil, fmt.Errorf("registration response did not include a token")
	}

	user, err := DecodeUser(resp.user(), s.api.AssetURL)
	if err != nil {
		return nil, fmt.Errorf("registration succeeded but user profile is unusable: %w", err)
	}

	return s.establish(ctx, clientID, user, token)
}

// Logout notifies the upstream API best-effort and clears the session
// unconditionally, even when the network call fails.
func (s *Store) Logout(ctx context.Context, clientID string) {
	if sess := s.Current(ctx, clientID); sess != nil {
		cred := upstream.Credential{ClientID: clientID, Token: sess.Token}
		if err := s.api.Post(ctx, cred, "/auth/logout", nil, nil); err != nil {
			s.logger.WithField("client_id", clientID).
				WithError(err).Warn("Logout call failed, clearing session anyway")
		}
	}
	s.clear(ctx, clientID, false)
}

// UpdateUser applies a local-only profile patch and re-persists it.
// It performs no network call.
func (s *Store) UpdateUser(ctx context.Context, clientID string, user *User) (*Session, error) {
	s.mu.Lock()
	current := s.sessions[clientID]
	if current == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("no active session for client")
	}
	updated := &Session{User: user, Token: current.Token}
	s.sessions[clientID] = updated
	s.mu.Unlock()

	if err := s.storage.SaveUser(ctx, clientID, user); err != nil {
		return nil, fmt.Errorf("failed to persist user profile: %w", err)
	}

	s.publish(Event{ClientID: clientID, Session: updated})
	return updated, nil
}

// Current returns the client's session, restoring it from durable storage on
// first touch. Restoration is trust-on-read: a stored token is accepted
// without a verification round-trip, except when its exp claim has already
// passed, in which case the client is treated as logged out.
func (s *Store) Current(ctx context.Context, clientID string) *Session {
	s.mu.RLock()
	sess, known := s.sessions[clientID]
	s.mu.RUnlock()
	if known {
		return sess
	}

	restored := s.restore(ctx, clientID)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have restored or cleared in the meantime
	if sess, known := s.sessions[clientID]; known {
		return sess
	}
	s.sessions[clientID] = restored
	return restored
}

// Credential builds the upstream credential for a client session
func (s *Store) Credential(ctx context.Context, clientID string) upstream.Credential {
	cred := upstream.Credential{ClientID: clientID}
	if sess := s.Current(ctx, clientID); sess != nil {
		cred.Token = sess.Token
	}
	return cred
}

// HandleAuthRejected clears the session after an upstream 401. The clear and
// the published expiry event happen exactly once per session, no matter how
// many concurrent calls observe the 401.
func (s *Store) HandleAuthRejected(ctx context.Context, clientID string) {
	s.clear(ctx, clientID, true)
}

func (s *Store) establish(ctx context.Context, clientID string, user *User, token string) (*Session, error) {
	sess := &Session{User: user, Token: token}

	if err := s.storage.SaveToken(ctx, clientID, token); err != nil {
		return nil, fmt.Errorf("failed to persist auth token: %w", err)
	}
	if err := s.storage.SaveUser(ctx, clientID, user); err != nil {
		return nil, fmt.Errorf("failed to persist user profile: %w", err)
	}

	s.mu.Lock()
	s.sessions[clientID] = sess
	s.mu.Unlock()

	s.publish(Event{ClientID: clientID, Session: sess})
	return sess, nil
}

func (s *Store) restore(ctx context.Context, clientID string) *Session {
	token, err := s.storage.LoadToken(ctx, clientID)
	if err != nil || token == "" {
		return nil
	}
	if s.inspector.Expired(token, time.Now().UTC()) {
		return nil
	}

	user, err := s.storage.LoadUser(ctx, clientID)
	if err != nil || user == nil {
		return nil
	}

	return &Session{User: user, Token: token}
}

func (s *Store) clear(ctx context.Context, clientID string, expired bool) {
	s.mu.Lock()
	previous := s.sessions[clientID]
	s.sessions[clientID] = nil
	s.mu.Unlock()

	if err := s.storage.Clear(ctx, clientID); err != nil {
		s.logger.WithField("client_id", clientID).
			WithError(err).Warn("Failed to clear durable session storage")
	}

	if previous != nil {
		s.publish(Event{ClientID: clientID, Expired: expired})
	}
}

func (s *Store) fetchProfile(ctx context.Context, cred upstream.Credential) (*User, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, cred, "/users/profile", nil, &raw); err != nil {
		return nil, err
	}
	return DecodeUser(raw, s.api.AssetURL)
}

func (s *Store) publish(event Event) {
	s.mu.RLock()
	observers := make([]func(Event), len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(event)
	}
}
