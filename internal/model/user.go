package model

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a worker or an administrator — table users.
type User struct {
	UserID             string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Nome               string  `gorm:"type:varchar(100);not null"                     json:"nome"`
	Email              string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Telefono           string  `gorm:"type:varchar(30)"                               json:"telefono,omitempty"`
	PasswordHash       string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string  `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	PatenteCamion      bool    `gorm:"not null;default:false"                         json:"patente_camion"`
	PatenteEscavatore  bool    `gorm:"not null;default:false"                         json:"patente_escavatore"`
	Bloccato           bool    `gorm:"not null;default:false"                         json:"bloccato"`
	MotivoBlocco       *string `gorm:"type:varchar(300)"                              json:"motivo_blocco,omitempty"`
	MustChangePassword bool    `gorm:"not null;default:false"                         json:"must_change_password"`
	BaseModel

	Cantieri []Cantiere `gorm:"many2many:user_cantieri;foreignKey:UserID;joinForeignKey:UserID;references:CantiereID;joinReferences:CantiereID" json:"cantieri,omitempty"`
	Mezzi    []Mezzo    `gorm:"many2many:user_mezzi;foreignKey:UserID;joinForeignKey:UserID;references:MezzoID;joinReferences:MezzoID"          json:"mezzi,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
