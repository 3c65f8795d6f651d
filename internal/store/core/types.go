package core

import "time"

// Role es el rol de un usuario dentro de la plataforma.
type Role string

const (
	RoleUnset      Role = ""
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole normaliza y valida un rol recibido por la API.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUnset, RoleStudent, RoleInstructor, RoleAdmin:
		return Role(s), true
	default:
		return RoleUnset, false
	}
}

// User es un registro de usuario. Email es único (natural key).
// El rol solo se muta vía update admin-gated; nunca se borra en este scope.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Class es read-only desde el punto de vista del core; se filtra por status.
type Class struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Image           string  `json:"image,omitempty"`
	InstructorName  string  `json:"instructor_name,omitempty"`
	InstructorEmail string  `json:"instructor_email,omitempty"`
	Price           float64 `json:"price"`
	AvailableSeats  int     `json:"available_seats"`
	Status          string  `json:"status"`
}

// CartItem es un item del carrito de un estudiante.
// Natural key: (StudentEmail, ClassID) — a lo sumo un item por par.
type CartItem struct {
	ID           string    `json:"id"`
	StudentEmail string    `json:"student_email"`
	ClassID      string    `json:"class_id"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
