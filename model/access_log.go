package model

import "time"

const (
	AccessTypeEntry = "entrada"
	AccessTypeExit  = "salida"
)

// AccessLog is append-only. Rows are created by staff from the scanner
// flow and are never updated afterwards
type AccessLog struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"registro_id"`
	UserID uint `gorm:"not null" json:"usuario_id"`

	Type      string    `gorm:"type:varchar(10);not null;column:tipo_acceso" json:"tipo_acceso"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
