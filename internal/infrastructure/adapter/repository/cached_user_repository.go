package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	"github.com/go-redis/redis/v8"
)

// DefaultUserCacheTTL is how long a cached directory entry stays valid
const DefaultUserCacheTTL = 10 * time.Minute

const allUsersKey = "users:all"

// CachedUserRepository fronts a UserRepository with Redis.
// Redis errors are logged and the call falls through to the wrapped repository.
type CachedUserRepository struct {
	next   persistence.UserRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger coreport.Logger
}

var _ persistence.UserRepository = (*CachedUserRepository)(nil)

// NewCachedUserRepository wraps next with a Redis read-through cache
func NewCachedUserRepository(next persistence.UserRepository, rdb *redis.Client, ttl time.Duration, logger coreport.Logger) *CachedUserRepository {
	if ttl <= 0 {
		ttl = DefaultUserCacheTTL
	}
	return &CachedUserRepository{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func userKey(id string) string {
	return fmt.Sprintf("user:%s:data", id)
}

func roleKey(role entity.Role, activeOnly bool) string {
	if activeOnly {
		return fmt.Sprintf("users:role:%s:active", role)
	}
	return fmt.Sprintf("users:role:%s", role)
}

// GetByID reads user:<id>:data before hitting the database
func (r *CachedUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var cached entity.User
	if r.read(ctx, userKey(id), &cached) {
		return &cached, nil
	}

	user, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.write(ctx, userKey(id), user)
	return user, nil
}

// GetByEmail always goes to the database; it backs uniqueness checks
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.next.GetByEmail(ctx, email)
}

// Create stores the user and drops the listings it would appear in
func (r *CachedUserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.next.Create(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, roleKey(user.Role, true), roleKey(user.Role, false), allUsersKey)
	return nil
}

// ListByRole caches the role listing, executor assignment reads it on every validation
func (r *CachedUserRepository) ListByRole(ctx context.Context, role entity.Role, activeOnly bool) ([]*entity.User, error) {
	key := roleKey(role, activeOnly)
	var cached []*entity.User
	if r.read(ctx, key, &cached) {
		return cached, nil
	}

	users, err := r.next.ListByRole(ctx, role, activeOnly)
	if err != nil {
		return nil, err
	}
	r.write(ctx, key, users)
	return users, nil
}

// List caches the full directory listing
func (r *CachedUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	var cached []*entity.User
	if r.read(ctx, allUsersKey, &cached) {
		return cached, nil
	}

	users, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	r.write(ctx, allUsersKey, users)
	return users, nil
}

// read decodes key into dst and reports whether it was a usable hit
func (r *CachedUserRepository) read(ctx context.Context, key string, dst any) bool {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		r.logger.Warn("User cache read failed", map[string]any{"key": key, "error": err.Error()})
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn("Discarding corrupt user cache entry", map[string]any{"key": key, "error": err.Error()})
		r.invalidate(ctx, key)
		return false
	}
	return true
}

func (r *CachedUserRepository) write(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.logger.Warn("User cache write failed", map[string]any{"key": key, "error": err.Error()})
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("User cache invalidation failed", map[string]any{"keys": keys, "error": err.Error()})
	}
}
