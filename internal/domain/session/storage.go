// internal/domain/session/storage.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/ticketing-storefront/internal/config"
	"github.com/your-org/ticketing-storefront/internal/infrastructure/database/redis"
)

// Storage is the durable client storage behind the session store. It holds
// exactly two keys per client session: the auth token and the serialized
// user profile. Both are written on login/registration/profile update and
// cleared together on logout or 401.
type Storage interface {
	SaveToken(ctx context.Context, clientID, token string) error
	SaveUser(ctx context.Context, clientID string, user *User) error
	LoadToken(ctx context.Context, clientID string) (string, error)
	LoadUser(ctx context.Context, clientID string) (*User, error)
	Clear(ctx context.Context, clientID string) error
}

// RedisStorage implements Storage on the shared Redis connection
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage creates durable client storage backed by Redis
func NewRedisStorage(client *redis.Client, cfg *config.Config) *RedisStorage {
	return &RedisStorage{
		client: client,
		ttl:    cfg.Session.TTL,
	}
}

func tokenKey(clientID string) string {
	return fmt.Sprintf("client:%s:auth_token", clientID)
}

func userKey(clientID string) string {
	return fmt.Sprintf("client:%s:auth_user", clientID)
}

// SaveToken stores the bearer token for a client session
func (s *RedisStorage) SaveToken(ctx context.Context, clientID, token string) error {
	return s.client.Set(ctx, tokenKey(clientID), token, s.ttl)
}

// SaveUser stores the serialized user profile for a client session
func (s *RedisStorage) SaveUser(ctx context.Context, clientID string, user *User) error {
	return s.client.SetJSON(ctx, userKey(clientID), user, s.ttl)
}

// LoadToken reads the bearer token; an absent key yields an empty token
func (s *RedisStorage) LoadToken(ctx context.Context, clientID string) (string, error) {
	token, err := s.client.Get(ctx, tokenKey(clientID))
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	return token, err
}

// LoadUser reads the user profile; an absent key yields a nil user
func (s *RedisStorage) LoadUser(ctx context.Context, clientID string) (*User, error) {
	var user User
	err := s.client.GetJSON(ctx, userKey(clientID), &user)
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Clear removes both keys for a client session
func (s *RedisStorage) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, tokenKey(clientID), userKey(clientID))
}
