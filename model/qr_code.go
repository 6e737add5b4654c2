package model

import "time"

// QRCode is 1:1 with its user. Regeneration replaces the previous row
// instead of accumulating history
type QRCode struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"codigo_qr_id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"usuario_id"`

	Data        string    `gorm:"uniqueIndex;not null;column:datos_codigo_qr" json:"datos_codigo_qr"`
	GeneratedAt time.Time `gorm:"not null;column:generado_en" json:"generado_en"`
	Active      bool      `gorm:"not null" json:"esta_activo"`
}
