package inventory

import "github.com/shopspring/decimal"

// Escalas de las columnas NUMERIC: cantidades con 4 decimales, montos con 2.
const (
	QuantityPlaces int32 = 4
	MoneyPlaces    int32 = 2
)

// FitsPlaces indica si d se representa sin pérdida con places decimales ("1.50000" sí cabe en 2).
func FitsPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}
