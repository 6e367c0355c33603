package models

import "time"

// Pedido represents a garment order
type Pedido struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Telefono   string    `gorm:"not null" json:"telefono"`
	TipoPrenda string    `gorm:"column:tipo_prenda;not null" json:"tipo_prenda"`
	Talla      string    `gorm:"not null" json:"talla"`
	Color      string    `gorm:"not null" json:"color"`
	Codigo     string    `gorm:"not null" json:"codigo"`
	Precio     float64   `gorm:"not null" json:"precio"`
	MetodoPago string    `gorm:"column:metodo_pago" json:"metodo_pago"`
	Estado     string    `gorm:"default:'activo'" json:"estado"`
	Notas      string    `json:"notas"`
	FechaEnvio string    `gorm:"column:fecha_envio" json:"fecha_envio"` // requested ship date, free-form
	CreatedAt  time.Time `gorm:"column:fecha" json:"fecha"`
}

// TableName specifies the table name for the Pedido model
func (Pedido) TableName() string {
	return "pedidos"
}
