package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMovimientoNoEncontrado = errors.New("movimiento de gasto not found")
	ErrMontoRealInvalido      = errors.New("monto_real must be positive")
)

// MovimientoGasto records realized spend against a monthly expense template,
// as opposed to the template's planned monto_base.
type MovimientoGasto struct {
	ID                    int32           `json:"id"`
	GastoMesID            int32           `json:"gastoMesId"`
	MontoReal             decimal.Decimal `json:"montoReal"`
	FechaGasto            time.Time       `json:"fechaGasto"`
	MesAplicacion         time.Time       `json:"mesAplicacion"`
	DescripcionAdicional  string          `json:"descripcionAdicional"`
}

type MovimientoGastoDetalle struct {
	MovimientoGasto
	ConceptoDescripcion string `json:"conceptoDescripcion"`
}

func (m *MovimientoGasto) Validate() error {
	if m.GastoMesID <= 0 {
		return ErrInvalidInput
	}
	if m.MontoReal.LessThanOrEqual(decimal.Zero) {
		return ErrMontoRealInvalido
	}
	return nil
}

type MovimientoGastoRepository interface {
	Create(m *MovimientoGasto) (*MovimientoGasto, error)
	GetByID(id int32) (*MovimientoGasto, error)
	GetAll() ([]*MovimientoGastoDetalle, error)
	GetByMes(mesAplicacion time.Time) ([]*MovimientoGastoDetalle, error)
	ExisteParaMes(gastoMesID int32, mesAplicacion time.Time) (bool, error)
	Update(m *MovimientoGasto) (*MovimientoGasto, error)
	Delete(id int32) error
}
