// Package ledger implementa las operaciones atómicas que mueven stock:
// registrar/borrar ventas y registrar/borrar compras.
package ledger

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/inventory"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// Nombres de operación usados en logs y métricas.
const (
	OpRecordSale     = "record_sale"
	OpDeleteSale     = "delete_sale"
	OpRecordPurchase = "record_purchase"
	OpDeletePurchase = "delete_purchase"
)

// StockLedgerUseCase registra ventas y compras de forma transaccional.
// Cada operación bloquea la fila del producto (SELECT FOR UPDATE) antes de leer el stock,
// así dos ventas concurrentes del último ítem no pueden pasar ambas la verificación.
type StockLedgerUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	recorder OperationRecorder
	now      func() time.Time
}

// NewStockLedgerUseCase construye el caso de uso. log y recorder pueden ser nil.
func NewStockLedgerUseCase(txRunner TxRunner, log *logger.Logger, recorder OperationRecorder) *StockLedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &StockLedgerUseCase{
		txRunner: txRunner,
		log:      log,
		recorder: recorder,
		now:      time.Now,
	}
}

// finish registra métrica y log de la operación y devuelve err sin modificar.
func (uc *StockLedgerUseCase) finish(op string, id entity.Identity, err error, fields func(e *zerolog.Event)) error {
	uc.recorder.ObserveLedgerOperation(op, err)
	log := uc.log.Business(id.BusinessID)
	var ev *zerolog.Event
	if err != nil {
		ev = log.Warn().Err(err)
	} else {
		ev = log.Info()
	}
	ev = ev.Str("op", op)
	if fields != nil {
		fields(ev)
	}
	if err != nil {
		ev.Msg("operación de libro rechazada")
	} else {
		ev.Msg("operación de libro registrada")
	}
	return err
}

func (uc *StockLedgerUseCase) dateOrToday(d time.Time) time.Time {
	if d.IsZero() {
		return uc.now().UTC()
	}
	return d
}

func strPtr(s string) *string { return &s }

const (
	msgQuantityPlaces = "máximo 4 decimales"
	msgMoneyPlaces    = "máximo 2 decimales"
)

// checkMoney valida un monto opcional: no negativo y con escala de columna de dinero.
func checkMoney(fields map[string]string, name string, v *decimal.Decimal) {
	switch {
	case v == nil:
	case v.IsNegative():
		fields[name] = "no puede ser negativo"
	case !inventory.FitsPlaces(*v, inventory.MoneyPlaces):
		fields[name] = msgMoneyPlaces
	}
}
