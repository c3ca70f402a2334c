package model

import "github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"

// Absence types. The identifiers are part of the wire contract and must not
// be renamed.
const (
	TipoFerie             = "FERIE"
	TipoPermesso          = "PERMESSO"
	TipoCassaIntegrazione = "CASSA_INTEGRAZIONE"
	TipoMutua             = "MUTUA"
	TipoPaternita         = "PATERNITA"
)

// TipiAssenza lists every absence type in report order.
var TipiAssenza = []string{
	TipoFerie,
	TipoPermesso,
	TipoCassaIntegrazione,
	TipoMutua,
	TipoPaternita,
}

// IsValidTipoAssenza reports whether tipo is one of the fixed absence types.
func IsValidTipoAssenza(tipo string) bool {
	for _, t := range TipiAssenza {
		if t == tipo {
			return true
		}
	}
	return false
}

// Assenza is a typed span of time away from work — table assenze.
type Assenza struct {
	AssenzaID   string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assenza_id"`
	AttivitaID  string        `gorm:"type:uuid;not null;index"                       json:"attivita_id"`
	UserID      string        `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Tipo        string        `gorm:"type:varchar(30);not null"                      json:"tipo"`
	Ore         int           `gorm:"not null"                                       json:"ore"`
	Minuti      int           `gorm:"not null"                                       json:"minuti"`
	TempoTotale durata.Millis `gorm:"not null"                                       json:"tempo_totale"`
	Note        string        `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Assenza) TableName() string { return "assenze" }
