package policy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/fluency/internal/cache"
	"github.com/dropDatabas3/fluency/internal/store/core"
	"github.com/dropDatabas3/fluency/internal/token"
)

type fakeRoleSource struct {
	roles map[string]core.Role
	err   error
	calls int
}

func (f *fakeRoleSource) RoleByEmail(_ context.Context, email string) (core.Role, error) {
	f.calls++
	if f.err != nil {
		return core.RoleUnset, f.err
	}
	r, ok := f.roles[email]
	if !ok {
		return core.RoleUnset, core.ErrNotFound
	}
	return r, nil
}

func claimFor(email string) token.Claim {
	return token.Claim{Subject: email}
}

func TestAuthorizeOwner_AllOps(t *testing.T) {
	ops := []Operation{OpCartRead, OpCartCreate, OpCartDelete, OpUserRoleQuery}

	for _, op := range ops {
		// Allow sii subject == owner
		if d := AuthorizeOwner(claimFor("a@x.com"), op, "a@x.com"); d.Deny() {
			t.Fatalf("%s: self access denied: %+v", op, d)
		}
		// Case-insensitive
		if d := AuthorizeOwner(claimFor("A@X.com"), op, "a@x.com"); d.Deny() {
			t.Fatalf("%s: case-insensitive match denied", op)
		}
		// Mismatch → deny forbidden
		d := AuthorizeOwner(claimFor("b@x.com"), op, "a@x.com")
		if !d.Deny() || d.Reason != ReasonOwnerMismatch {
			t.Fatalf("%s: got %+v, want owner_mismatch deny", op, d)
		}
		// Claim vacío nunca pasa, ni contra owner vacío
		if d := AuthorizeOwner(claimFor(""), op, ""); !d.Deny() {
			t.Fatalf("%s: empty claim allowed", op)
		}
	}
}

func TestAuthorizeRole(t *testing.T) {
	ctx := context.Background()
	src := &fakeRoleSource{roles: map[string]core.Role{
		"admin@x.com":   core.RoleAdmin,
		"student@x.com": core.RoleStudent,
	}}

	d, err := AuthorizeRole(ctx, claimFor("admin@x.com"), core.RoleAdmin, src)
	if err != nil || d.Deny() {
		t.Fatalf("admin: %+v err=%v", d, err)
	}

	d, err = AuthorizeRole(ctx, claimFor("student@x.com"), core.RoleAdmin, src)
	if err != nil || !d.Deny() || d.Reason != ReasonRoleMismatch {
		t.Fatalf("student vs admin: %+v err=%v", d, err)
	}

	// Usuario inexistente → role_missing, sin error
	d, err = AuthorizeRole(ctx, claimFor("ghost@x.com"), core.RoleAdmin, src)
	if err != nil || !d.Deny() || d.Reason != ReasonRoleMissing {
		t.Fatalf("ghost: %+v err=%v", d, err)
	}

	// Error de store se propaga
	boom := &fakeRoleSource{err: errors.New("boom")}
	if _, err := AuthorizeRole(ctx, claimFor("a@x.com"), core.RoleAdmin, boom); err == nil {
		t.Fatal("expected store error to propagate")
	}
}

func TestAuthorize_OwnershipBeforeRoleLookup(t *testing.T) {
	ctx := context.Background()
	src := &fakeRoleSource{roles: map[string]core.Role{"b@x.com": core.RoleAdmin}}

	// Ownership falla → el RoleSource nunca se consulta (fail fast).
	d, err := Authorize(ctx, claimFor("b@x.com"), OpRoleMutate, "a@x.com", core.RoleAdmin, src)
	if err != nil || !d.Deny() || d.Reason != ReasonOwnerMismatch {
		t.Fatalf("got %+v err=%v", d, err)
	}
	if src.calls != 0 {
		t.Fatalf("role lookup performed despite ownership deny (%d calls)", src.calls)
	}

	// Sin owner, solo role-gated.
	d, err = Authorize(ctx, claimFor("b@x.com"), OpRoleMutate, "", core.RoleAdmin, src)
	if err != nil || d.Deny() {
		t.Fatalf("role-only: %+v err=%v", d, err)
	}

	// Sin owner ni rol: público → allow.
	d, err = Authorize(ctx, claimFor("anyone@x.com"), OpCartRead, "", core.RoleUnset, src)
	if err != nil || d.Deny() {
		t.Fatalf("public: %+v err=%v", d, err)
	}
}

func TestCachedRoleSource(t *testing.T) {
	ctx := context.Background()
	src := &fakeRoleSource{roles: map[string]core.Role{"a@x.com": core.RoleInstructor}}
	cached := &CachedRoleSource{
		Inner: src,
		Cache: cache.NewMemory(cache.Config{DefaultTTL: time.Minute}),
		TTL:   time.Minute,
	}

	for i := 0; i < 3; i++ {
		r, err := cached.RoleByEmail(ctx, "A@X.com")
		if err != nil || r != core.RoleInstructor {
			t.Fatalf("lookup %d: %v %v", i, r, err)
		}
	}
	if src.calls != 1 {
		t.Fatalf("inner lookups: got %d, want 1 (cached)", src.calls)
	}

	// Invalidate fuerza un nuevo lookup (rol mutado).
	src.roles["a@x.com"] = core.RoleAdmin
	cached.Invalidate(ctx, "a@x.com")
	r, err := cached.RoleByEmail(ctx, "a@x.com")
	if err != nil || r != core.RoleAdmin {
		t.Fatalf("after invalidate: %v %v", r, err)
	}
	if src.calls != 2 {
		t.Fatalf("inner lookups after invalidate: got %d, want 2", src.calls)
	}
}
