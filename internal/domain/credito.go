package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditoPropietario is an owner's standing credit. It only grows from
// overpayment remainders and only shrinks when the allocator consumes it
// against a later payment; it is never negative.
type CreditoPropietario struct {
	PropietarioID      int32           `json:"propietarioId"`
	SaldoCredito       decimal.Decimal `json:"saldoCredito"`
	FechaActualizacion time.Time       `json:"fechaActualizacion"`
}

type CreditoDetalle struct {
	CreditoPropietario
	Propietario string `json:"propietario"`
}

type CreditoRepository interface {
	GetByPropietario(propietarioID int32) (*CreditoPropietario, error)
	GetConSaldo() ([]*CreditoDetalle, error)
}
