package model

import "time"

type Payment struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"pago_id"`
	UserID uint `gorm:"not null" json:"usuario_id"`

	ReceiptNumber string    `gorm:"uniqueIndex;not null;column:numero_recibo" json:"numero_recibo"`
	Concept       string    `gorm:"not null;column:concepto" json:"concepto"`
	Amount        string    `gorm:"type:decimal(10,2);not null;column:cantidad" json:"cantidad"`
	PaidAt        time.Time `gorm:"not null;column:fecha_pago" json:"fecha_pago"`

	// Storage key of the proof of payment, if one was uploaded
	ProofKey string `gorm:"column:ruta_prueba_pago" json:"ruta_prueba_pago"`
}
