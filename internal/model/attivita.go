package model

import "time"

// Attivita is one worker's record for one calendar date — table attivita.
// Verificata starts false, is set true only by the admin verify action, and
// falls back to false whenever a non-admin edits the record or any child.
type Attivita struct {
	AttivitaID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"attivita_id"`
	ExternalID string    `gorm:"type:uuid;not null;uniqueIndex;default:gen_random_uuid()" json:"external_id"`
	Data       time.Time `gorm:"type:date;not null"                                    json:"data"`
	UserID     string    `gorm:"type:uuid;not null;index:idx_attivita_user_data"       json:"user_id"`
	Verificata bool      `gorm:"not null;default:false"                                json:"verificata"`
	BaseModel

	User        *User         `gorm:"foreignKey:UserID;references:UserID"         json:"user,omitempty"`
	Interazioni []Interazione `gorm:"foreignKey:AttivitaID;references:AttivitaID" json:"interazioni,omitempty"`
	Trasporti   []Trasporto   `gorm:"foreignKey:AttivitaID;references:AttivitaID" json:"trasporti,omitempty"`
	Assenze     []Assenza     `gorm:"foreignKey:AttivitaID;references:AttivitaID" json:"assenze,omitempty"`
}

// TableName sets the table name.
func (Attivita) TableName() string { return "attivita" }
