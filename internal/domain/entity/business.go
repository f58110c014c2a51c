package entity

import "time"

// Business representa el negocio dueño de los datos (un único dueño por negocio).
// Todas las demás entidades se filtran por BusinessID.
type Business struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
