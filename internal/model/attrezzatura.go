package model

// Attrezzatura is a tool — table attrezzature.
type Attrezzatura struct {
	AttrezzaturaID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attrezzatura_id"`
	Nome           string `gorm:"type:varchar(150);not null"                     json:"nome"`
	BaseModel
}

// TableName sets the table name.
func (Attrezzatura) TableName() string { return "attrezzature" }
