package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPagoNoEncontrado   = errors.New("pago not found")
	ErrPagoYaProcesado    = errors.New("pago has already been verified or rejected")
)

type EstadoVerificacion string

const (
	PagoPorVerificar EstadoVerificacion = "Por_Verificar"
	PagoVerificado   EstadoVerificacion = "Verificado"
	PagoRechazado    EstadoVerificacion = "Rechazado"
)

type Pago struct {
	ID                 int32              `json:"id"`
	ReciboID           int32              `json:"reciboId"`
	FechaPago          time.Time          `json:"fechaPago"`
	MontoPagado        decimal.Decimal    `json:"montoPagado"`
	ReferenciaBancaria string             `json:"referenciaBancaria"`
	MetodoPago         string             `json:"metodoPago"`
	EstadoVerificacion EstadoVerificacion `json:"estadoVerificacion"`
	Nota               string             `json:"nota"`
	ComprobanteKey     *string            `json:"comprobanteKey,omitempty"`
}

type PagoDetalle struct {
	Pago
	NumeroRecibo  string `json:"numeroRecibo"`
	Propietario   string `json:"propietario"`
	PropietarioID int32  `json:"propietarioId"`
	Inmueble      string `json:"inmueble"`
}

func (p *Pago) Validate() error {
	if p.ReciboID <= 0 {
		return ErrInvalidInput
	}
	if p.MontoPagado.LessThanOrEqual(decimal.Zero) {
		return ErrMontoPagoInvalido
	}
	if p.ReferenciaBancaria == "" {
		return ErrReferenciaRequerida
	}
	return nil
}

type PagoFiltros struct {
	Estado *EstadoVerificacion
	Fecha  *time.Time
}

// ResultadoPago is what the allocator reports back after one payment is
// applied: every receipt it touched, the leftover kept as credit, and the
// total that actually reduced debt.
type ResultadoPago struct {
	PagoID          int32
	OperacionID     uuid.UUID
	PagosAplicados  []PagoAplicado
	CreditoRestante decimal.Decimal
	TotalAplicado   decimal.Decimal
}

type PagoAplicado struct {
	NumeroRecibo  string          `json:"recibo"`
	MontoAplicado decimal.Decimal `json:"-"`
	SaldoRestante decimal.Decimal `json:"-"`
}

// FlujoCajaMes is one month's realized (verified) payment volume.
type FlujoCajaMes struct {
	Mes   time.Time       `json:"mes"`
	Total decimal.Decimal `json:"-"`
}

type PagoRepository interface {
	// RegistrarVerificado creates a verified payment and applies it across
	// the owner's outstanding receipts, credit first, in one transaction.
	RegistrarVerificado(reciboID, propietarioID int32, monto decimal.Decimal, referencia string, operacionID uuid.UUID) (*ResultadoPago, error)
	// Create stores an unverified payment with no financial effect.
	Create(p *Pago) (*Pago, error)
	GetByID(id int32) (*PagoDetalle, error)
	GetAll(filtros *PagoFiltros) ([]*PagoDetalle, error)
	// Verificar marks a pending payment verified and runs the allocation for
	// its amount, atomically.
	Verificar(pagoID int32, fechaPago *time.Time, monto *decimal.Decimal, nota string, comprobanteKey *string, operacionID uuid.UUID) (*ResultadoPago, error)
	Rechazar(pagoID int32, nota string) error
	SumVerificadosPorMes(year int) ([]*FlujoCajaMes, error)
}
