package repository

import "time"

// Period filtro opcional de fechas (inclusivo). nil = sin límite.
type Period struct {
	From *time.Time
	To   *time.Time
}

// Contains indica si t cae dentro del período.
func (p Period) Contains(t time.Time) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && t.After(*p.To) {
		return false
	}
	return true
}

// Page paginación; Limit <= 0 devuelve todos los registros.
type Page struct {
	Limit  int
	Offset int
}

// AllRows página sin límite (para agregados y Smart Buy).
var AllRows = Page{}
