package model

// Mezzo is a vehicle — table mezzi. The licence flags gate which workers the
// vehicle can be assigned to.
type Mezzo struct {
	MezzoID                   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"mezzo_id"`
	Nome                      string `gorm:"type:varchar(150);not null"                     json:"nome"`
	Descrizione               string `gorm:"type:varchar(500)"                              json:"descrizione,omitempty"`
	RichiedePatenteCamion     bool   `gorm:"not null;default:false"                         json:"richiede_patente_camion"`
	RichiedePatenteEscavatore bool   `gorm:"not null;default:false"                         json:"richiede_patente_escavatore"`
	BaseModel
}

// TableName sets the table name.
func (Mezzo) TableName() string { return "mezzi" }
