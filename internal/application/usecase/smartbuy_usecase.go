package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// SmartBuyFallback es el texto que se devuelve cuando el modelo falla o no responde a tiempo.
const SmartBuyFallback = "Lo sentimos, no pudimos generar una sugerencia de compra en este momento. Intenta de nuevo más tarde."

const smartBuyPrompt = `Eres un asesor de compras para un pequeño negocio. Con los datos siguientes sugiere qué productos comprar, en qué cantidad y a qué proveedor, teniendo en cuenta los días de compra de cada proveedor.

Ventas diarias:
{{.DailySales}}

Gastos:
{{.Expenses}}

Compras:
{{.Purchases}}

Productos (con stock actual):
{{.Products}}

Proveedores:
{{.SupplierInfo}}

Responde en español, en texto breve y accionable.`

var smartBuyTemplate = template.Must(template.New("smartbuy").Option("missingkey=error").Parse(smartBuyPrompt))

// SmartBuyReaders repositorios de lectura que usa SuggestForBusiness.
type SmartBuyReaders struct {
	Sales     repository.SaleRepository
	Expenses  repository.ExpenseRepository
	Purchases repository.PurchaseRepository
	Products  repository.ProductRepository
	Suppliers repository.SupplierRepository
}

// SmartBuyUseCase arma el prompt fijo con los cinco bloques de datos y llama una vez al modelo.
// Sin reintentos ni streaming; cualquier fallo degrada al texto de respaldo.
type SmartBuyUseCase struct {
	gen     ports.TextGenerator
	readers SmartBuyReaders
	log     *logger.Logger
	timeout time.Duration
}

// NewSmartBuyUseCase construye el caso de uso. timeout <= 0 usa 30 s.
func NewSmartBuyUseCase(gen ports.TextGenerator, readers SmartBuyReaders, log *logger.Logger, timeout time.Duration) *SmartBuyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SmartBuyUseCase{gen: gen, readers: readers, log: log, timeout: timeout}
}

// RenderPrompt sustituye los cinco bloques en la plantilla.
func RenderPrompt(in dto.SmartBuyRequest) (string, error) {
	var buf bytes.Buffer
	if err := smartBuyTemplate.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("smartbuy: renderizar prompt: %w", err)
	}
	return buf.String(), nil
}

// Suggest devuelve el texto del modelo sin modificar o SmartBuyFallback. Nunca devuelve error.
func (uc *SmartBuyUseCase) Suggest(ctx context.Context, in dto.SmartBuyRequest) dto.SmartBuyResponse {
	prompt, err := RenderPrompt(in)
	if err != nil {
		uc.log.Error().Err(err).Msg("smartbuy: plantilla")
		return dto.SmartBuyResponse{Suggestion: SmartBuyFallback}
	}
	if uc.gen == nil {
		return dto.SmartBuyResponse{Suggestion: SmartBuyFallback}
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	text, err := uc.gen.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("respuesta vacía")
	}
	if err != nil {
		uc.log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("smartbuy: generador falló, se usa respaldo")
		return dto.SmartBuyResponse{Suggestion: SmartBuyFallback}
	}
	uc.log.Info().Dur("elapsed", time.Since(start)).Int("prompt_len", len(prompt)).Msg("smartbuy: sugerencia generada")
	return dto.SmartBuyResponse{Suggestion: text}
}

// SuggestForBusiness carga ventas, gastos, compras, productos y proveedores del negocio,
// los serializa como JSON y llama a Suggest. Solo devuelve error si falla la lectura.
func (uc *SmartBuyUseCase) SuggestForBusiness(ctx context.Context, id entity.Identity) (*dto.SmartBuyResponse, error) {
	in, err := uc.collect(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := uc.Suggest(ctx, *in)
	return &resp, nil
}

func (uc *SmartBuyUseCase) collect(ctx context.Context, id entity.Identity) (*dto.SmartBuyRequest, error) {
	var (
		sales     []*entity.Sale
		expenses  []*entity.Expense
		purchases []*entity.Purchase
		products  []*entity.Product
		suppliers []*entity.Supplier
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sales, err = uc.readers.Sales.ListByBusiness(gctx, id.BusinessID, repository.Period{}, repository.AllRows)
		return
	})
	g.Go(func() (err error) {
		expenses, err = uc.readers.Expenses.ListByBusiness(gctx, id.BusinessID, repository.Period{}, repository.AllRows)
		return
	})
	g.Go(func() (err error) {
		purchases, err = uc.readers.Purchases.ListByBusiness(gctx, id.BusinessID, repository.Period{}, repository.AllRows)
		return
	})
	g.Go(func() (err error) {
		products, err = uc.readers.Products.ListByBusiness(gctx, id.BusinessID, repository.AllRows)
		return
	})
	g.Go(func() (err error) {
		suppliers, err = uc.readers.Suppliers.ListByBusiness(gctx, id.BusinessID, repository.AllRows)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("smartbuy: cargar datos: %w", err)
	}

	in := &dto.SmartBuyRequest{}
	var err error
	if in.DailySales, err = toJSON(DailySales(sales)); err != nil {
		return nil, err
	}
	if in.Expenses, err = toJSON(expenseRows(expenses)); err != nil {
		return nil, err
	}
	if in.Purchases, err = toJSON(purchaseRows(purchases)); err != nil {
		return nil, err
	}
	if in.Products, err = toJSON(productRows(products)); err != nil {
		return nil, err
	}
	if in.SupplierInfo, err = toJSON(supplierRows(suppliers)); err != nil {
		return nil, err
	}
	return in, nil
}

// DailySale total de ventas de un día.
type DailySale struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// DailySales agrupa las ventas por día (YYYY-MM-DD), en orden cronológico.
func DailySales(sales []*entity.Sale) []DailySale {
	byDay := map[string]*DailySale{}
	for _, s := range sales {
		day := s.Date.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &DailySale{Date: day, Amount: decimal.Zero}
			byDay[day] = d
		}
		d.Amount = d.Amount.Add(s.Amount)
		d.Count++
	}
	out := make([]DailySale, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type promptExpense struct {
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

type promptPurchase struct {
	Date       string          `json:"date"`
	Product    string          `json:"product"`
	SupplierID string          `json:"supplier_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}

type promptProduct struct {
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
}

type promptSupplier struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProductTypes string `json:"product_types"`
	PurchaseDays string `json:"purchase_days"`
}

func expenseRows(list []*entity.Expense) []promptExpense {
	out := make([]promptExpense, 0, len(list))
	for _, e := range list {
		out = append(out, promptExpense{Date: e.Date.Format("2006-01-02"), Category: e.Category, Description: e.Description, Amount: e.Amount})
	}
	return out
}

func purchaseRows(list []*entity.Purchase) []promptPurchase {
	out := make([]promptPurchase, 0, len(list))
	for _, p := range list {
		out = append(out, promptPurchase{Date: p.Date.Format("2006-01-02"), Product: p.ProductName, SupplierID: p.SupplierID, Quantity: p.Quantity, TotalCost: p.TotalCost})
	}
	return out
}

func productRows(list []*entity.Product) []promptProduct {
	out := make([]promptProduct, 0, len(list))
	for _, p := range list {
		out = append(out, promptProduct{Name: p.Name, Quantity: p.Quantity, SellingPrice: p.SellingPrice, CostPerUnit: p.CostPerUnit})
	}
	return out
}

func supplierRows(list []*entity.Supplier) []promptSupplier {
	out := make([]promptSupplier, 0, len(list))
	for _, s := range list {
		out = append(out, promptSupplier{ID: s.ID, Name: s.Name, ProductTypes: s.ProductTypes, PurchaseDays: s.PurchaseDays})
	}
	return out
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("smartbuy: serializar: %w", err)
	}
	return string(b), nil
}

// SmartBuySchemas devuelve los JSON Schema de entrada y salida del gateway.
func SmartBuySchemas() map[string]*jsonschema.Schema {
	r := jsonschema.Reflector{AllowAdditionalProperties: false, DoNotReference: true}
	return map[string]*jsonschema.Schema{
		"input":  r.Reflect(&dto.SmartBuyRequest{}),
		"output": r.Reflect(&dto.SmartBuyResponse{}),
	}
}
