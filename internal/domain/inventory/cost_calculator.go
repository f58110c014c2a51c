package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// totalCostEntrada es el costo total de la compra, no el unitario.
// NuevoCosto = ((StockActual * CostoActual) + CostoTotalEntrada) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, totalCostEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(totalCostEntrada)
	return num.Div(sum).Round(4)
}

// UnitCost devuelve el costo unitario de una compra (totalCost / quantity), 0 si quantity <= 0.
func UnitCost(totalCost, quantity decimal.Decimal) decimal.Decimal {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalCost.Div(quantity).Round(4)
}

// PurchasePrice devuelve la base de costo total del producto tras una compra.
func PurchasePrice(costPerUnit, quantity decimal.Decimal) decimal.Decimal {
	return costPerUnit.Mul(quantity).Round(2)
}
