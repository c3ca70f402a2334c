package dto

// CreateMezzoRequest creates a vehicle.
type CreateMezzoRequest struct {
	Nome                      string `json:"nome"        binding:"required,min=2,max=150"`
	Descrizione               string `json:"descrizione" binding:"omitempty,max=500"`
	RichiedePatenteCamion     bool   `json:"richiede_patente_camion"`
	RichiedePatenteEscavatore bool   `json:"richiede_patente_escavatore"`
}

// UpdateMezzoRequest updates a vehicle; only non-nil fields are applied.
type UpdateMezzoRequest struct {
	Nome                      *string `json:"nome"        binding:"omitempty,min=2,max=150"`
	Descrizione               *string `json:"descrizione" binding:"omitempty,max=500"`
	RichiedePatenteCamion     *bool   `json:"richiede_patente_camion"`
	RichiedePatenteEscavatore *bool   `json:"richiede_patente_escavatore"`
}

// MezzoResponse is the vehicle representation returned to clients.
type MezzoResponse struct {
	ID                        string `json:"id"`
	Nome                      string `json:"nome"`
	Descrizione               string `json:"descrizione,omitempty"`
	RichiedePatenteCamion     bool   `json:"richiede_patente_camion"`
	RichiedePatenteEscavatore bool   `json:"richiede_patente_escavatore"`
}

// CreateAttrezzaturaRequest creates a tool.
type CreateAttrezzaturaRequest struct {
	Nome string `json:"nome" binding:"required,min=2,max=150"`
}

// UpdateAttrezzaturaRequest renames a tool.
type UpdateAttrezzaturaRequest struct {
	Nome string `json:"nome" binding:"required,min=2,max=150"`
}

// AttrezzaturaResponse is the tool representation returned to clients.
type AttrezzaturaResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}
