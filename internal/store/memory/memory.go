// Package memory implementa el Repository en memoria.
// Pensado para desarrollo local y tests; respeta las mismas garantías de
// unicidad que el driver postgres (ErrConflict en natural keys duplicadas).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/fluency/internal/store/core"
	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	users   map[string]core.User // por id
	byEmail map[string]string    // email -> id

	classes map[string]core.Class // por id

	cart      map[string]core.CartItem // por id
	byCartKey map[string]string        // student_email|class_id -> id
}

func New() *Store {
	return &Store{
		users:     make(map[string]core.User),
		byEmail:   make(map[string]string),
		classes:   make(map[string]core.Class),
		cart:      make(map[string]core.CartItem),
		byCartKey: make(map[string]string),
	}
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close()                     {}

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func cartKey(email, classID string) string { return normEmail(email) + "|" + classID }

// ─────────────── Users ───────────────

func (s *Store) ListUsers(_ context.Context, role core.Role) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		if role != core.RoleUnset && u.Role != role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normEmail(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	u := s.users[id]
	cp := u
	return &cp, nil
}

func (s *Store) CreateUser(_ context.Context, u *core.User) error {
	if u == nil || normEmail(u.Email) == "" {
		return core.ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normEmail(u.Email)
	if _, exists := s.byEmail[key]; exists {
		return core.ErrConflict
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = key
	s.users[u.ID] = *u
	s.byEmail[key] = u.ID
	return nil
}

func (s *Store) UpdateUserRole(_ context.Context, id string, role core.Role) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	u.Role = role
	s.users[id] = u
	cp := u
	return &cp, nil
}

// ─────────────── Classes ───────────────

func (s *Store) ListClasses(_ context.Context, status string) ([]core.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Class, 0, len(s.classes))
	for _, c := range s.classes {
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SeedClass inserta una clase directamente (seed/test; las clases son
// read-only para la API).
func (s *Store) SeedClass(c core.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.classes[c.ID] = c
}

// ─────────────── Cart ───────────────

func (s *Store) ListCartItems(_ context.Context, studentEmail, status string) ([]core.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email := normEmail(studentEmail)
	out := make([]core.CartItem, 0)
	for _, it := range s.cart {
		if it.StudentEmail != email {
			continue
		}
		if status != "" && it.Status != status {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetCartItem(_ context.Context, id string) (*core.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.cart[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := it
	return &cp, nil
}

func (s *Store) FindCartItem(_ context.Context, studentEmail, classID string) (*core.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCartKey[cartKey(studentEmail, classID)]
	if !ok {
		return nil, core.ErrNotFound
	}
	it := s.cart[id]
	cp := it
	return &cp, nil
}

func (s *Store) CreateCartItem(_ context.Context, it *core.CartItem) error {
	if it == nil || normEmail(it.StudentEmail) == "" || it.ClassID == "" {
		return core.ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cartKey(it.StudentEmail, it.ClassID)
	if _, exists := s.byCartKey[key]; exists {
		return core.ErrConflict
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}
	it.StudentEmail = normEmail(it.StudentEmail)
	s.cart[it.ID] = *it
	s.byCartKey[key] = it.ID
	return nil
}

func (s *Store) DeleteCartItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.cart[id]
	if !ok {
		return core.ErrNotFound
	}
	delete(s.cart, id)
	delete(s.byCartKey, cartKey(it.StudentEmail, it.ClassID))
	return nil
}
