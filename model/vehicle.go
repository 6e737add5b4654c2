package model

type Vehicle struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"vehiculo_id"`
	UserID uint `gorm:"not null" json:"usuario_id"`

	Type  string `gorm:"not null;column:tipo_vehiculo" json:"tipo_vehiculo"`
	Plate string `gorm:"uniqueIndex;not null;column:placa" json:"placa"`

	// Storage keys of the uploaded vehicle photo and registration card.
	// Empty means nothing is on file and the frontend falls back to
	// placeholder assets
	PhotoKey            string `gorm:"column:ruta_foto_vehiculo" json:"ruta_foto_vehiculo"`
	RegistrationCardKey string `gorm:"column:ruta_tarjeta_circulacion" json:"ruta_tarjeta_circulacion"`

	Owner *User `gorm:"foreignKey:UserID" json:"-"`
}
