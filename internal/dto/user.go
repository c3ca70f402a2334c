package dto

// CreateUserRequest provisions a new account. The temporary password is
// generated server-side and mailed to the worker.
type CreateUserRequest struct {
	Nome              string `json:"nome"               binding:"required,min=2,max=100"`
	Email             string `json:"email"              binding:"required,email"`
	Telefono          string `json:"telefono"           binding:"omitempty,max=30"`
	Role              string `json:"role"               binding:"required,oneof=admin user"`
	PatenteCamion     bool   `json:"patente_camion"`
	PatenteEscavatore bool   `json:"patente_escavatore"`
}

// CreateUserResponse returns the created user together with the temporary
// password, so the admin can hand it over even when SMTP is down.
type CreateUserResponse struct {
	User         *UserResponse `json:"user"`
	TempPassword string        `json:"temp_password"`
}

// UpdateUserRequest updates an account; only non-nil fields are applied.
type UpdateUserRequest struct {
	Nome              *string `json:"nome"               binding:"omitempty,min=2,max=100"`
	Email             *string `json:"email"              binding:"omitempty,email"`
	Telefono          *string `json:"telefono"           binding:"omitempty,max=30"`
	Role              *string `json:"role"               binding:"omitempty,oneof=admin user"`
	PatenteCamion     *bool   `json:"patente_camion"`
	PatenteEscavatore *bool   `json:"patente_escavatore"`
}

// BloccoRequest bans or unbans a worker.
type BloccoRequest struct {
	Bloccato bool   `json:"bloccato"`
	Motivo   string `json:"motivo" binding:"omitempty,max=300"`
}

// UserListRequest filters the user list.
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin user"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// AssegnaCantieriRequest replaces a worker's job-site assignment set.
type AssegnaCantieriRequest struct {
	CantiereIDs []string `json:"cantiere_ids" binding:"required,dive,uuid"`
}

// AssegnaMezziRequest replaces a worker's vehicle assignment set.
type AssegnaMezziRequest struct {
	MezzoIDs []string `json:"mezzo_ids" binding:"required,dive,uuid"`
}

// ResetPasswordResponse carries the newly generated temporary password.
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}

// UserResponse is the user representation returned to clients.
type UserResponse struct {
	ID                 string        `json:"id"`
	Nome               string        `json:"nome"`
	Email              string        `json:"email"`
	Telefono           string        `json:"telefono,omitempty"`
	Role               string        `json:"role"`
	PatenteCamion      bool          `json:"patente_camion"`
	PatenteEscavatore  bool          `json:"patente_escavatore"`
	Bloccato           bool          `json:"bloccato"`
	MotivoBlocco       string        `json:"motivo_blocco,omitempty"`
	MustChangePassword bool          `json:"must_change_password"`
	Cantieri           []RifResponse `json:"cantieri,omitempty"`
	Mezzi              []RifResponse `json:"mezzi,omitempty"`
}
