package model

import "github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"

// Trasporto is a span of time moving between two distinct job sites with a
// vehicle, optionally towing a second one — table trasporti.
type Trasporto struct {
	TrasportoID        string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"trasporto_id"`
	AttivitaID         string        `gorm:"type:uuid;not null;index"                       json:"attivita_id"`
	UserID             string        `gorm:"type:uuid;not null;index"                       json:"user_id"`
	PartenzaID         string        `gorm:"type:uuid;not null"                             json:"partenza_id"`
	DestinazioneID     string        `gorm:"type:uuid;not null"                             json:"destinazione_id"`
	MezzoID            string        `gorm:"type:uuid;not null"                             json:"mezzo_id"`
	MezzoTrasportatoID *string       `gorm:"type:uuid"                                      json:"mezzo_trasportato_id,omitempty"`
	Ore                int           `gorm:"not null"                                       json:"ore"`
	Minuti             int           `gorm:"not null"                                       json:"minuti"`
	TempoTotale        durata.Millis `gorm:"not null"                                       json:"tempo_totale"`
	Note               string        `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	BaseModel

	Partenza         *Cantiere `gorm:"foreignKey:PartenzaID;references:CantiereID"         json:"partenza,omitempty"`
	Destinazione     *Cantiere `gorm:"foreignKey:DestinazioneID;references:CantiereID"     json:"destinazione,omitempty"`
	Mezzo            *Mezzo    `gorm:"foreignKey:MezzoID;references:MezzoID"               json:"mezzo,omitempty"`
	MezzoTrasportato *Mezzo    `gorm:"foreignKey:MezzoTrasportatoID;references:MezzoID"    json:"mezzo_trasportato,omitempty"`
}

// TableName sets the table name.
func (Trasporto) TableName() string { return "trasporti" }
