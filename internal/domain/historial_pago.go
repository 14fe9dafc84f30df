package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoTransaccion classifies one audit row of the payment trail.
type TipoTransaccion string

const (
	TransaccionPagoCompleto      TipoTransaccion = "Pago_Completo"
	TransaccionPagoParcial       TipoTransaccion = "Pago_Parcial"
	TransaccionSobrepago         TipoTransaccion = "Sobrepago"
	TransaccionAplicacionCredito TipoTransaccion = "Aplicacion_Credito"
	// TransaccionTrasladoSaldo records a prior receipt's balance being carried
	// onto a newly generated receipt. ReferenciaBancaria holds the carrying
	// receipt's number so the move can be reversed if that receipt is deleted
	// on regeneration.
	TransaccionTrasladoSaldo TipoTransaccion = "Traslado_Saldo"
)

// HistorialPago is the append-only audit trail of the payment allocator. All
// rows produced by one incoming payment share an OperacionID.
type HistorialPago struct {
	ID                    int32           `json:"id"`
	ReciboID              int32           `json:"reciboId"`
	PropietarioID         int32           `json:"propietarioId"`
	OperacionID           uuid.UUID       `json:"operacionId"`
	MontoAplicado         decimal.Decimal `json:"montoAplicado"`
	MontoCreditoGenerado  decimal.Decimal `json:"montoCreditoGenerado"`
	TipoTransaccion       TipoTransaccion `json:"tipoTransaccion"`
	ReferenciaBancaria    string          `json:"referenciaBancaria"`
	FechaTransaccion      time.Time       `json:"fechaTransaccion"`
	Notas                 string          `json:"notas"`
}

type HistorialPagoDetalle struct {
	HistorialPago
	NumeroRecibo string `json:"recibo"`
}

type HistorialPagoRepository interface {
	GetByPropietario(propietarioID int32) ([]*HistorialPagoDetalle, error)
}
