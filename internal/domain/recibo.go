package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrReciboNoEncontrado    = errors.New("recibo not found")
	ErrReciboConPagoParcial  = errors.New("recibo has a partial payment applied and cannot be regenerated")
	ErrMesAplicacionInvalido = errors.New("mes_aplicacion must be a YYYY-MM-DD date")
)

type EstadoRecibo string

const (
	ReciboPendiente EstadoRecibo = "Pendiente"
	ReciboPagado    EstadoRecibo = "Pagado"
)

type Recibo struct {
	ID                 int32           `json:"id"`
	NumeroRecibo       string          `json:"numeroRecibo"`
	InmuebleID         int32           `json:"inmuebleId"`
	FechaEmision       time.Time       `json:"fechaEmision"`
	MontoDeudaAnterior decimal.Decimal `json:"montoDeudaAnterior"`
	MontoCargosMes     decimal.Decimal `json:"montoCargosMes"`
	MontoInteresMora   decimal.Decimal `json:"montoInteresMora"`
	MontoTotalPagar    decimal.Decimal `json:"montoTotalPagar"`
	SaldoPendiente     decimal.Decimal `json:"saldoPendiente"`
	Estado             EstadoRecibo    `json:"estado"`
}

// DetalleRecibo is one line item of a receipt, tagged with the calculation
// mode of the expense that produced it.
type DetalleRecibo struct {
	ID               int32           `json:"id"`
	ReciboID         int32           `json:"reciboId"`
	DescripcionGasto string          `json:"descripcionGasto"`
	TipoGasto        TipoCalculo     `json:"tipoGasto"`
	MontoCalculado   decimal.Decimal `json:"montoCalculado"`
}

// ReciboDetalle joins owner/unit labels and line items for API responses.
type ReciboDetalle struct {
	Recibo
	Propietario   string           `json:"propietario"`
	PropietarioID int32            `json:"propietarioId"`
	Inmueble      string           `json:"inmueble"`
	Detalles      []*DetalleRecibo `json:"detalles,omitempty"`
}

// TienePagoParcial reports whether any payment has been applied without fully
// settling the receipt. Such receipts must never be silently regenerated.
func (r *Recibo) TienePagoParcial() bool {
	return r.SaldoPendiente.GreaterThan(decimal.Zero) &&
		r.SaldoPendiente.LessThan(r.MontoTotalPagar)
}

// CalcularInteresMora computes one month of late interest over the carried
// debt at the configured annual rate, rounded to cents.
func CalcularInteresMora(deudaAnterior, tasaAnual decimal.Decimal) decimal.Decimal {
	if deudaAnterior.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return deudaAnterior.Mul(tasaAnual).DivRound(decimal.NewFromInt(12), 2)
}

// NumeroRecibo formats a receipt number for a period: YYYYMM-NNNN.
func NumeroRecibo(periodo string, secuencia int) string {
	return fmt.Sprintf("%s-%04d", periodo, secuencia)
}

type ReciboFiltros struct {
	Mes            *string // YYYY-MM prefix of fecha_emision
	NumeroRecibo   *string
	PropietarioID  *int32
	InmuebleID     *int32
	SoloPendientes bool
}

// MorosoResumen is the per-unit aggregation the delinquency report works
// over: outstanding totals plus the age of the oldest pending receipt. The
// report lists every unit with an outstanding balance; EsMoroso marks the
// ones past the delinquency thresholds.
type MorosoResumen struct {
	PropietarioID     int32
	Propietario       string
	InmuebleID        int32
	Inmueble          string
	SaldoPendiente    decimal.Decimal
	RecibosPendientes int
	EmisionMasAntigua time.Time
	EsMoroso          bool
}

// ResultadoGeneracion summarizes one batch generation run.
type ResultadoGeneracion struct {
	Periodo           string `json:"periodo"`
	RecibosCreados    int    `json:"recibosCreados"`
	InmueblesOmitidos int    `json:"inmueblesOmitidos"`
}

// ResultadoActualizacion summarizes a regeneration run: how many untouched
// receipts were replaced and how many were preserved because they already
// carry payments.
type ResultadoActualizacion struct {
	Periodo            string `json:"periodo"`
	RecibosEliminados  int    `json:"recibosEliminados"`
	RecibosCreados     int    `json:"recibosCreados"`
	RecibosConservados int    `json:"recibosConservados"`
}

type ReciboRepository interface {
	// CrearLote persists a period's receipts and their line items in one
	// transaction, guarded by a period-level advisory lock. Units that
	// already hold a receipt in the period are skipped. Receipt numbers
	// continue past the highest sequence already used in the period. When a
	// new receipt carries prior debt, the unit's older pending receipts are
	// settled in the same transaction with a Traslado_Saldo trail row each,
	// so the balance lives on exactly one receipt.
	CrearLote(periodo string, recibos []*Recibo, detalles map[int32][]DetalleCargo) (int, error)
	// EliminarSinPagosDelPeriodo removes the period's receipts that carry no
	// payment history and a full outstanding balance, returning the count.
	// Balances a deleted receipt had absorbed are restored onto the original
	// receipts and their Traslado_Saldo rows withdrawn.
	EliminarSinPagosDelPeriodo(periodo string) (int, error)
	GetByID(id int32) (*ReciboDetalle, error)
	GetAll(filtros *ReciboFiltros) ([]*ReciboDetalle, error)
	GetDelPeriodo(periodo string) ([]*Recibo, error)
	// SaldosPendientesPorInmueble sums outstanding balances per unit for the
	// prior-debt carry-forward.
	SaldosPendientesPorInmueble() (map[int32]decimal.Decimal, error)
	// ActualizarEstados reconciles Estado with SaldoPendiente both ways and
	// returns how many rows moved to Pagado and back to Pendiente.
	ActualizarEstados() (pagados int, pendientes int, err error)
	ResumenMorosidad() ([]*MorosoResumen, error)
}
