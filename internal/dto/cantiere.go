package dto

// CreateCantiereRequest creates a job site.
type CreateCantiereRequest struct {
	Nome        string `json:"nome"        binding:"required,min=2,max=150"`
	Descrizione string `json:"descrizione" binding:"omitempty,max=500"`
}

// UpdateCantiereRequest updates a job site; only non-nil fields are applied.
// Setting Aperto to false stamps the closing time.
type UpdateCantiereRequest struct {
	Nome        *string `json:"nome"        binding:"omitempty,min=2,max=150"`
	Descrizione *string `json:"descrizione" binding:"omitempty,max=500"`
	Aperto      *bool   `json:"aperto"`
}

// CantiereListRequest filters the job-site list.
type CantiereListRequest struct {
	PaginationRequest
	IncludeChiusi bool `form:"include_chiusi"`
}

// CantiereResponse is the job-site representation returned to clients.
type CantiereResponse struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	Descrizione string `json:"descrizione,omitempty"`
	Aperto      bool   `json:"aperto"`
	ChiusoIl    string `json:"chiuso_il,omitempty"`
}
