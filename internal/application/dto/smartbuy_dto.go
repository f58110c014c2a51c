package dto

// SmartBuyRequest entrada del gateway de IA: cinco bloques de texto opacos
// (normalmente listas serializadas en JSON).
type SmartBuyRequest struct {
	DailySales   string `json:"dailySales" jsonschema:"description=Ventas diarias serializadas"`
	Expenses     string `json:"expenses" jsonschema:"description=Gastos serializados"`
	Purchases    string `json:"purchases" jsonschema:"description=Compras serializadas"`
	Products     string `json:"products" jsonschema:"description=Catálogo de productos serializado"`
	SupplierInfo string `json:"supplierInfo" jsonschema:"description=Información de proveedores serializada"`
}

// SmartBuyResponse salida del gateway: texto del modelo sin modificar o el mensaje de respaldo.
type SmartBuyResponse struct {
	Suggestion string `json:"suggestion" jsonschema:"description=Sugerencia de compra generada por el modelo"`
}
