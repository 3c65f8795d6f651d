package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dropDatabas3/fluency/internal/store/core"
)

func TestCreateUser_UniqueEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := &core.User{Email: "A@X.com", Name: "Ana"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated id")
	}

	// mismo email (case-insensitive) → conflicto
	dup := &core.User{Email: "a@x.com"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("got id %q, want %q", got.ID, u.ID)
	}
}

func TestUpdateUserRole(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := &core.User{Email: "a@x.com"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	upd, err := s.UpdateUserRole(ctx, u.ID, core.RoleInstructor)
	if err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	if upd.Role != core.RoleInstructor {
		t.Fatalf("got role %q", upd.Role)
	}

	if _, err := s.UpdateUserRole(ctx, "nope", core.RoleAdmin); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCartItem_NaturalKeyAndDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	it := &core.CartItem{StudentEmail: "a@x.com", ClassID: "c1"}
	if err := s.CreateCartItem(ctx, it); err != nil {
		t.Fatalf("CreateCartItem: %v", err)
	}

	dup := &core.CartItem{StudentEmail: "a@x.com", ClassID: "c1"}
	if err := s.CreateCartItem(ctx, dup); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}

	// otra clase sí
	if err := s.CreateCartItem(ctx, &core.CartItem{StudentEmail: "a@x.com", ClassID: "c2"}); err != nil {
		t.Fatalf("CreateCartItem c2: %v", err)
	}

	items, err := s.ListCartItems(ctx, "a@x.com", "")
	if err != nil || len(items) != 2 {
		t.Fatalf("ListCartItems: %v items=%d", err, len(items))
	}

	if err := s.DeleteCartItem(ctx, it.ID); err != nil {
		t.Fatalf("DeleteCartItem: %v", err)
	}
	// borrar libera la natural key: present -> absent -> present
	if err := s.CreateCartItem(ctx, &core.CartItem{StudentEmail: "a@x.com", ClassID: "c1"}); err != nil {
		t.Fatalf("re-create after delete: %v", err)
	}
}

func TestCreateCartItem_ConcurrentDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateCartItem(ctx, &core.CartItem{StudentEmail: "a@x.com", ClassID: "c1"})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else if !errors.Is(err, core.ErrConflict) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 {
		t.Fatalf("exactly one insert must win, got %d", okCount)
	}

	items, err := s.ListCartItems(ctx, "a@x.com", "")
	if err != nil || len(items) != 1 {
		t.Fatalf("converged records: %v items=%d", err, len(items))
	}
}

func TestListClasses_StatusFilter(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.SeedClass(core.Class{Name: "English A1", Status: "approved"})
	s.SeedClass(core.Class{Name: "French B2", Status: "pending"})

	all, err := s.ListClasses(ctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("all: %v n=%d", err, len(all))
	}
	approved, err := s.ListClasses(ctx, "approved")
	if err != nil || len(approved) != 1 || approved[0].Name != "English A1" {
		t.Fatalf("approved: %v %+v", err, approved)
	}
}
