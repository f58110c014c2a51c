package entity

import "time"

// Proveedores de autenticación soportados.
const (
	AuthProviderPassword = "password"
	AuthProviderGoogle   = "google"
)

// Estados de usuario.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User representa al dueño del negocio (pertenece a un Business).
type User struct {
	ID           string
	BusinessID   string
	Email        string
	PasswordHash string // bcrypt; vacío para usuarios que solo entran por OAuth
	Name         string
	Provider     string // password, google
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
