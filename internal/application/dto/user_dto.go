package dto

// LoginRequest credenciais de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido e dados do usuário.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}

// CreateUserRequest cadastro de usuário (somente admin). Sem senha, o usuário
// recebe um convite por e-mail para defini-la.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin estoquista vendedor"`
	CargoID  string `json:"cargo_id"`
}

// UpdateUserRequest edição de usuário (somente admin). Campos vazios ou
// ausentes ficam como estão; cargo_id "" remove o cargo.
type UpdateUserRequest struct {
	Name     string  `json:"name" validate:"omitempty,min=2"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Role     string  `json:"role" validate:"omitempty,oneof=admin estoquista vendedor"`
	IsActive *bool   `json:"is_active"`
	CargoID  *string `json:"cargo_id"`
}

// AcceptInviteRequest define a senha a partir do token do convite.
type AcceptInviteRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserResponse saída de usuário (sem hash de senha).
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	IsActive      bool   `json:"is_active"`
	PendingInvite bool   `json:"convite_pendente"`
	CargoID       string `json:"cargo_id,omitempty"`
	CargoName     string `json:"cargo_nome,omitempty"`
}
