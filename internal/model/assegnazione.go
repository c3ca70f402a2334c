package model

import "time"

// UserCantiere is the worker↔job-site assignment edge — table user_cantieri.
type UserCantiere struct {
	UserID     string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CantiereID string    `gorm:"type:uuid;primaryKey" json:"cantiere_id"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the table name.
func (UserCantiere) TableName() string { return "user_cantieri" }

// UserMezzo is the worker↔vehicle assignment edge — table user_mezzi.
type UserMezzo struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	MezzoID   string    `gorm:"type:uuid;primaryKey" json:"mezzo_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the table name.
func (UserMezzo) TableName() string { return "user_mezzi" }
