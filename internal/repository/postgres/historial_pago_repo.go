package postgres

import (
	"context"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistorialPagoRepository implements domain.HistorialPagoRepository using
// PostgreSQL. The trail is written by the payment allocator and the receipt
// generator inside their own transactions, so only reads live here.
type HistorialPagoRepository struct {
	pool *pgxpool.Pool
}

// NewHistorialPagoRepository creates a new HistorialPagoRepository
func NewHistorialPagoRepository(pool *pgxpool.Pool) *HistorialPagoRepository {
	return &HistorialPagoRepository{pool: pool}
}

func (r *HistorialPagoRepository) GetByPropietario(propietarioID int32) ([]*domain.HistorialPagoDetalle, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT h.id, h.recibo_id, h.propietario_id, h.operacion_id, h.monto_aplicado,
		       h.monto_credito_generado, h.tipo_transaccion, h.referencia_bancaria,
		       h.fecha_transaccion, h.notas, r.numero_recibo
		FROM historial_pagos h
		JOIN recibos r ON r.id = h.recibo_id
		WHERE h.propietario_id = $1
		ORDER BY h.fecha_transaccion DESC, h.id DESC`, propietarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var historial []*domain.HistorialPagoDetalle
	for rows.Next() {
		h := &domain.HistorialPagoDetalle{}
		var aplicado, credito pgtype.Numeric
		if err := rows.Scan(&h.ID, &h.ReciboID, &h.PropietarioID, &h.OperacionID, &aplicado,
			&credito, &h.TipoTransaccion, &h.ReferenciaBancaria,
			&h.FechaTransaccion, &h.Notas, &h.NumeroRecibo); err != nil {
			return nil, err
		}
		h.MontoAplicado = pgNumericToDecimal(aplicado)
		h.MontoCreditoGenerado = pgNumericToDecimal(credito)
		historial = append(historial, h)
	}
	return historial, rows.Err()
}
