package policy

import (
	"context"
	"time"

	"github.com/dropDatabas3/fluency/internal/cache"
	"github.com/dropDatabas3/fluency/internal/store/core"
)

// StoreRoleSource resuelve roles contra el record store.
type StoreRoleSource struct {
	Users interface {
		GetUserByEmail(ctx context.Context, email string) (*core.User, error)
	}
}

func (s StoreRoleSource) RoleByEmail(ctx context.Context, email string) (core.Role, error) {
	u, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return core.RoleUnset, err
	}
	return u.Role, nil
}

// CachedRoleSource decora un RoleSource con un cache (email → role) de TTL
// corto. El miss o cualquier error de cache degrada al lookup directo.
// Invalidate debe llamarse al mutar el rol de un usuario.
type CachedRoleSource struct {
	Inner RoleSource
	Cache cache.Client
	TTL   time.Duration
}

const roleKeyPrefix = "role:"

func (c *CachedRoleSource) RoleByEmail(ctx context.Context, email string) (core.Role, error) {
	key := roleKeyPrefix + normalize(email)

	if v, err := c.Cache.Get(ctx, key); err == nil {
		if r, ok := core.ParseRole(v); ok && r != core.RoleUnset {
			return r, nil
		}
	}

	r, err := c.Inner.RoleByEmail(ctx, email)
	if err != nil {
		return core.RoleUnset, err
	}
	if r != core.RoleUnset {
		ttl := c.TTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		_ = c.Cache.Set(ctx, key, string(r), ttl)
	}
	return r, nil
}

// Invalidate borra la entrada cacheada de un email.
func (c *CachedRoleSource) Invalidate(ctx context.Context, email string) {
	_ = c.Cache.Delete(ctx, roleKeyPrefix+normalize(email))
}
