package models

import "time"

// Incidencia represents an issue ticket, optionally assigned to a user.
// AssignedTo and CreatedBy are weak references: deleting a user does not
// cascade, so listings must tolerate dangling ids.
type Incidencia struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Titulo       string    `gorm:"not null" json:"titulo"`
	Descripcion  string    `json:"descripcion"`
	Estado       string    `gorm:"default:'pendiente'" json:"estado"`
	Contestacion string    `json:"contestacion"`
	AssignedTo   *uint     `gorm:"column:assigned_to;index" json:"assigned_to"`
	Assignee     *User     `gorm:"foreignKey:AssignedTo" json:"-"`
	CreatedBy    *uint     `gorm:"column:created_by" json:"created_by"`
	Creator      *User     `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt    time.Time `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt    time.Time `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

// TableName specifies the table name for the Incidencia model
func (Incidencia) TableName() string {
	return "incidencias"
}
