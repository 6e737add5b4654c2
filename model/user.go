// Package model defines database models
package model

import "time"

// Role is an explicit, provisioned attribute. The admin account is created
// at bootstrap and can never be obtained through self-registration.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
	RoleStaff   = "staff"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"usuario_id"`
	Username     string `gorm:"uniqueIndex;not null" json:"nombre_usuario"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"type:varchar(20);not null" json:"rol"`

	FirstName       string `gorm:"not null" json:"nombres"`
	PaternalSurname string `gorm:"not null" json:"apellido_paterno"`
	MaternalSurname string `json:"apellido_materno"`

	Email string `gorm:"uniqueIndex;not null" json:"correo_electronico"`
	Phone string `json:"telefono"`

	// RFC for staff, control number for students
	ControlNumber string `gorm:"uniqueIndex;not null;column:rfc_o_num_control" json:"rfc_o_num_control"`

	// Program is only recorded for students
	Program *string `gorm:"column:carrera" json:"carrera,omitempty"`

	// Active carries no column default. Every create path sets it
	// explicitly, otherwise gorm would skip a false value on insert
	Active       bool      `gorm:"not null" json:"esta_activo"`
	RegisteredAt time.Time `gorm:"not null" json:"fecha_registro"`

	Vehicles   []Vehicle   `gorm:"foreignKey:UserID" json:"-"`
	Payments   []Payment   `gorm:"foreignKey:UserID" json:"-"`
	AccessLogs []AccessLog `gorm:"foreignKey:UserID" json:"-"`
	QRCode     *QRCode     `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
