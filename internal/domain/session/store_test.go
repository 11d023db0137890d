package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ticketing-storefront/internal/config"
	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// fakeStorage is an in-memory Storage for tests
type fakeStorage struct {
	mu     sync.Mutex
	tokens map[string]string
	users  map[string]*User
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		tokens: make(map[string]string),
		users:  make(map[string]*User),
	}
}

func (f *fakeStorage) SaveToken(ctx context.Context, clientID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[clientID] = token
	return nil
}

func (f *fakeStorage) SaveUser(ctx context.Context, clientID string, user *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[clientID] = user
	return nil
}

func (f *fakeStorage) LoadToken(ctx context.Context, clientID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokens[clientID], nil
}

func (f *fakeStorage) LoadUser(ctx context.Context, clientID string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[clientID], nil
}

func (f *fakeStorage) Clear(ctx context.Context, clientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, clientID)
	delete(f.users, clientID)
	return nil
}

func testAPI(baseURL string) *upstream.Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return upstream.NewClient(&config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:      baseURL,
			AssetBaseURL: baseURL,
			Timeout:      5 * time.Second,
		},
	}, logger)
}

func testStore(baseURL string, storage Storage) *Store {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewStore(testAPI(baseURL), storage, logger)
}

func freshToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func staleToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestLoginEstablishesSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"token": "tok-login",
				"user":  map[string]string{"_id": "u1", "name": "Awa", "email": "awa@example.com", "role": "user"},
			})
		case "/users/profile":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"user": map[string]string{"_id": "u1", "name": "Awa Diop", "email": "awa@example.com", "role": "user"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	storage := newFakeStorage()
	store := testStore(ts.URL, storage)

	var events []Event
	store.Subscribe(func(e Event) { events = append(events, e) })

	sess, err := store.Login(context.Background(), "client-1", "awa@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, sess)

	// The full profile from the follow-up fetch wins over the login response
	assert.Equal(t, "Awa Diop", sess.User.Name)
	assert.Equal(t, "tok-login", sess.Token)

	// Both keys persisted to durable storage
	assert.Equal(t, "tok-login", storage.tokens["client-1"])
	require.NotNil(t, storage.users["client-1"])

	require.Len(t, events, 1)
	assert.NotNil(t, events[0].Session)
	assert.False(t, events[0].Expired)
}

func TestLoginFallsBackToLoginResponseUser(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{
					"access_token": "tok-2",
					"user":         map[string]string{"id": "u2", "name": "Moussa", "email": "m@example.com"},
				},
			})
		default:
			// Profile fetch fails
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "boom"}`))
		}
	}))
	defer ts.Close()

	store := testStore(ts.URL, newFakeStorage())

	sess, err := store.Login(context.Background(), "client-1", "m@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Moussa", sess.User.Name)
	assert.Equal(t, "tok-2", sess.Token)
	// Role defaults when the upstream omits it
	assert.Equal(t, RoleUser, sess.User.Role)
}

func TestCurrentRestoresFromStorageWithoutNetwork(t *testing.T) {
	// No live upstream: restore must not perform any network call
	storage := newFakeStorage()
	token := freshToken(t)
	storage.tokens["client-1"] = token
	storage.users["client-1"] = &User{ID: "u1", Name: "Awa", Role: RoleUser}

	store := testStore("http://localhost:0", storage)

	sess := store.Current(context.Background(), "client-1")
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Equal(t, token, sess.Token)
}

func TestCurrentSkipsExpiredToken(t *testing.T) {
	storage := newFakeStorage()
	storage.tokens["client-1"] = staleToken(t)
	storage.users["client-1"] = &User{ID: "u1"}

	store := testStore("http://localhost:0", storage)

	assert.Nil(t, store.Current(context.Background(), "client-1"))
}

func TestCurrentUnknownClientIsNil(t *testing.T) {
	store := testStore("http://localhost:0", newFakeStorage())
	assert.Nil(t, store.Current(context.Background(), "never-seen"))
}

func TestHandleAuthRejectedClearsExactlyOnce(t *testing.T) {
	storage := newFakeStorage()
	storage.tokens["client-1"] = freshToken(t)
	storage.users["client-1"] = &User{ID: "u1"}

	store := testStore("http://localhost:0", storage)

	var mu sync.Mutex
	var expiredEvents int
	store.Subscribe(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if e.Expired {
			expiredEvents++
		}
	})

	// Restore the session, then observe two concurrent 401s
	require.NotNil(t, store.Current(context.Background(), "client-1"))

	store.HandleAuthRejected(context.Background(), "client-1")
	store.HandleAuthRejected(context.Background(), "client-1")

	assert.Equal(t, 1, expiredEvents)
	assert.Nil(t, store.Current(context.Background(), "client-1"))
	assert.Empty(t, storage.tokens)
}

func TestLogoutClearsEvenWhenUpstreamFails(t *testing.T) {
	storage := newFakeStorage()
	storage.tokens["client-1"] = freshToken(t)
	storage.users["client-1"] = &User{ID: "u1"}

	// Upstream is unreachable; logout must still clear locally
	store := testStore("http://localhost:0", storage)

	var events []Event
	store.Subscribe(func(e Event) { events = append(events, e) })

	require.NotNil(t, store.Current(context.Background(), "client-1"))
	store.Logout(context.Background(), "client-1")

	assert.Nil(t, store.Current(context.Background(), "client-1"))
	assert.Empty(t, storage.tokens)

	require.Len(t, events, 1)
	assert.False(t, events[0].Expired)
	assert.Nil(t, events[0].Session)
}

func TestUpdateUserRequiresSession(t *testing.T) {
	store := testStore("http://localhost:0", newFakeStorage())

	_, err := store.UpdateUser(context.Background(), "client-1", &User{ID: "u1"})
	assert.Error(t, err)
}

func TestUpdateUserPersistsAndPublishes(t *testing.T) {
	storage := newFakeStorage()
	storage.tokens["client-1"] = freshToken(t)
	storage.users["client-1"] = &User{ID: "u1", Name: "Old Name"}

	store := testStore("http://localhost:0", storage)
	require.NotNil(t, store.Current(context.Background(), "client-1"))

	var events []Event
	store.Subscribe(func(e Event) { events = append(events, e) })

	updated, err := store.UpdateUser(context.Background(), "client-1", &User{ID: "u1", Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.User.Name)
	assert.Equal(t, "New Name", storage.users["client-1"].Name)

	require.Len(t, events, 1)
	assert.Equal(t, "New Name", events[0].Session.User.Name)
}

func TestCredential(t *testing.T) {
	storage := newFakeStorage()
	token := freshToken(t)
	storage.tokens["client-1"] = token
	storage.users["client-1"] = &User{ID: "u1"}

	store := testStore("http://localhost:0", storage)

	cred := store.Credential(context.Background(), "client-1")
	assert.Equal(t, "client-1", cred.ClientID)
	assert.Equal(t, token, cred.Token)

	anon := store.Credential(context.Background(), "client-2")
	assert.Equal(t, "client-2", anon.ClientID)
	assert.Empty(t, anon.Token)
}
