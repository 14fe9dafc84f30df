package domain

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	ErrMontoPagoInvalido     = errors.New("monto_pagado must be positive")
	ErrReferenciaRequerida   = errors.New("referencia_bancaria is required")
	ErrReferenciaDuplicada   = errors.New("a verified payment with this referencia_bancaria already exists")
)

// AplicacionPago is the result of applying part of a payment to one receipt.
type AplicacionPago struct {
	Recibo        *Recibo
	MontoAplicado decimal.Decimal
}

// AsignarPago walks the owner's outstanding receipts oldest-first (ties broken
// by id) and applies the available amount until it runs out or the receipts
// are exhausted. Receipt balances are decremented in place and Estado flips
// to Pagado when a balance reaches zero. The returned remainder is the
// overpayment to be kept as standing credit.
func AsignarPago(pendientes []*Recibo, disponible decimal.Decimal) ([]AplicacionPago, decimal.Decimal) {
	ordenados := make([]*Recibo, len(pendientes))
	copy(ordenados, pendientes)
	sort.SliceStable(ordenados, func(i, j int) bool {
		if !ordenados[i].FechaEmision.Equal(ordenados[j].FechaEmision) {
			return ordenados[i].FechaEmision.Before(ordenados[j].FechaEmision)
		}
		return ordenados[i].ID < ordenados[j].ID
	})

	var aplicaciones []AplicacionPago
	restante := disponible

	for _, recibo := range ordenados {
		if restante.LessThanOrEqual(decimal.Zero) {
			break
		}
		if recibo.SaldoPendiente.LessThanOrEqual(decimal.Zero) {
			continue
		}

		aplicar := decimal.Min(restante, recibo.SaldoPendiente)
		recibo.SaldoPendiente = recibo.SaldoPendiente.Sub(aplicar)
		if recibo.SaldoPendiente.IsZero() {
			recibo.Estado = ReciboPagado
		}
		restante = restante.Sub(aplicar)

		aplicaciones = append(aplicaciones, AplicacionPago{
			Recibo:        recibo,
			MontoAplicado: aplicar,
		})
	}

	return aplicaciones, restante
}
