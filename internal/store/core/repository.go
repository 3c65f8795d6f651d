package core

import "context"

// Repository es el record store abstracto que consumen los services.
// Las implementaciones deben garantizar unicidad sobre las natural keys
// (users.email y cart(student_email, class_id)): una carrera perdida en el
// probe-then-insert produce ErrConflict a nivel de store, nunca un duplicado
// silencioso.
type Repository interface {
	Ping(ctx context.Context) error
	Close()

	// ─── Users ───
	// ListUsers filtra por rol si role != RoleUnset.
	ListUsers(ctx context.Context, role Role) ([]User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// CreateUser inserta; ErrConflict si el email ya existe.
	CreateUser(ctx context.Context, u *User) error
	UpdateUserRole(ctx context.Context, id string, role Role) (*User, error)

	// ─── Classes ───
	// ListClasses filtra por status si status != "".
	ListClasses(ctx context.Context, status string) ([]Class, error)

	// ─── Cart ───
	// ListCartItems filtra por email del dueño y, opcionalmente, por status.
	ListCartItems(ctx context.Context, studentEmail, status string) ([]CartItem, error)
	GetCartItem(ctx context.Context, id string) (*CartItem, error)
	// FindCartItem busca por natural key; ErrNotFound si no existe.
	FindCartItem(ctx context.Context, studentEmail, classID string) (*CartItem, error)
	// CreateCartItem inserta; ErrConflict si (studentEmail, classID) ya existe.
	CreateCartItem(ctx context.Context, it *CartItem) error
	DeleteCartItem(ctx context.Context, id string) error
}
