package entity

// Identity es la identidad de la petición en curso (extraída del JWT).
// Se pasa explícitamente a cada caso de uso; no hay sesión global.
type Identity struct {
	UserID     string
	BusinessID string
	Email      string
}

// Valid indica si la identidad tiene negocio asociado.
func (i Identity) Valid() bool {
	return i.UserID != "" && i.BusinessID != ""
}
