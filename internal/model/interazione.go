package model

import "github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"

// Interazione is a span of time spent at a job site, optionally with a
// vehicle and a tool — table interazioni. TempoTotale is derived from
// Ore/Minuti on every write and is never set directly.
type Interazione struct {
	InterazioneID  string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"interazione_id"`
	AttivitaID     string        `gorm:"type:uuid;not null;index"                       json:"attivita_id"`
	UserID         string        `gorm:"type:uuid;not null;index"                       json:"user_id"`
	CantiereID     string        `gorm:"type:uuid;not null"                             json:"cantiere_id"`
	MezzoID        *string       `gorm:"type:uuid"                                      json:"mezzo_id,omitempty"`
	AttrezzaturaID *string       `gorm:"type:uuid"                                      json:"attrezzatura_id,omitempty"`
	Ore            int           `gorm:"not null"                                       json:"ore"`
	Minuti         int           `gorm:"not null"                                       json:"minuti"`
	TempoTotale    durata.Millis `gorm:"not null"                                       json:"tempo_totale"`
	Note           string        `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	BaseModel

	Cantiere     *Cantiere     `gorm:"foreignKey:CantiereID;references:CantiereID"             json:"cantiere,omitempty"`
	Mezzo        *Mezzo        `gorm:"foreignKey:MezzoID;references:MezzoID"                   json:"mezzo,omitempty"`
	Attrezzatura *Attrezzatura `gorm:"foreignKey:AttrezzaturaID;references:AttrezzaturaID"     json:"attrezzatura,omitempty"`
}

// TableName sets the table name.
func (Interazione) TableName() string { return "interazioni" }
