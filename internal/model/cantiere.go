package model

import "time"

// Cantiere is a job site — table cantieri.
type Cantiere struct {
	CantiereID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cantiere_id"`
	Nome        string     `gorm:"type:varchar(150);not null"                     json:"nome"`
	Descrizione string     `gorm:"type:varchar(500)"                              json:"descrizione,omitempty"`
	Aperto      bool       `gorm:"not null;default:true"                          json:"aperto"`
	ChiusoIl    *time.Time `json:"chiuso_il,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Cantiere) TableName() string { return "cantieri" }
