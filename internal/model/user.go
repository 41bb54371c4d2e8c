package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles del sistema.
const (
	RolAdmin    = "ADMIN"
	RolVendedor = "VENDEDOR"
	RolInventor = "INVENTOR"
)

// User stores system users with role-based access.
// Rol: "ADMIN" | "VENDEDOR" | "INVENTOR"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          string    `gorm:"type:varchar(20);not null;default:'VENDEDOR'"`
	Activo       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Ventas []Venta `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }
