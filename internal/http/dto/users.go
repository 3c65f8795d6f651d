package dto

// RegisterUserRequest body de POST /users.
// El rol NO se acepta en el registro: solo se muta vía PATCH admin-gated.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// SetRoleRequest body de PATCH /users/{id}.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// AdminFlagResponse respuesta de GET /users/admin/{email}.
type AdminFlagResponse struct {
	Admin bool `json:"admin"`
}

// InstructorFlagResponse respuesta de GET /users/instructor/{email}.
type InstructorFlagResponse struct {
	Instructor bool `json:"instructor"`
}

// RoleResponse respuesta de GET /users/user.
type RoleResponse struct {
	Role string `json:"role"`
}
