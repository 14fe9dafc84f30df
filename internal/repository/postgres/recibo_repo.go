package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ReciboRepository implements domain.ReciboRepository using PostgreSQL
type ReciboRepository struct {
	pool *pgxpool.Pool
}

// NewReciboRepository creates a new ReciboRepository
func NewReciboRepository(pool *pgxpool.Pool) *ReciboRepository {
	return &ReciboRepository{pool: pool}
}

// CrearLote persists a period's receipts atomically. An advisory lock on the
// period key serializes concurrent generation requests, so the existing-receipt
// check and the sequential numbering stay consistent.
func (r *ReciboRepository) CrearLote(periodo string, recibos []*domain.Recibo, detalles map[int32][]domain.DetalleCargo) (int, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "recibos:"+periodo); err != nil {
		return 0, err
	}

	existentes, err := inmueblesConReciboDelPeriodo(ctx, tx, periodo)
	if err != nil {
		return 0, err
	}

	// Sequence picks up after the highest number already issued in the
	// period, so receipts preserved through a forced regeneration never get
	// their numbers reused.
	var secuencia int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(split_part(numero_recibo, '-', 2)::int), 0)
		FROM recibos WHERE numero_recibo LIKE $1`, periodo+"-%",
	).Scan(&secuencia)
	if err != nil {
		return 0, err
	}

	creados := 0
	for _, recibo := range recibos {
		if existentes[recibo.InmuebleID] {
			continue
		}

		secuencia++
		recibo.NumeroRecibo = domain.NumeroRecibo(periodo, secuencia)

		deuda, err := decimalToPgNumeric(recibo.MontoDeudaAnterior)
		if err != nil {
			return 0, err
		}
		cargos, err := decimalToPgNumeric(recibo.MontoCargosMes)
		if err != nil {
			return 0, err
		}
		interes, err := decimalToPgNumeric(recibo.MontoInteresMora)
		if err != nil {
			return 0, err
		}
		total, err := decimalToPgNumeric(recibo.MontoTotalPagar)
		if err != nil {
			return 0, err
		}
		saldo, err := decimalToPgNumeric(recibo.SaldoPendiente)
		if err != nil {
			return 0, err
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO recibos (numero_recibo, inmueble_id, fecha_emision,
				monto_deuda_anterior, monto_cargos_mes, monto_interes_mora,
				monto_total_pagar, saldo_pendiente, estado)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			recibo.NumeroRecibo, recibo.InmuebleID, recibo.FechaEmision,
			deuda, cargos, interes, total, saldo, string(recibo.Estado),
		).Scan(&recibo.ID)
		if err != nil {
			return 0, fmt.Errorf("recibo %s: %w", recibo.NumeroRecibo, err)
		}

		for _, d := range detalles[recibo.InmuebleID] {
			monto, err := decimalToPgNumeric(d.Monto)
			if err != nil {
				return 0, err
			}
			_, err = tx.Exec(ctx, `
				INSERT INTO detalle_recibos (recibo_id, descripcion_gasto, tipo_gasto, monto_calculado)
				VALUES ($1, $2, $3, $4)`,
				recibo.ID, d.Descripcion, string(d.TipoGasto), monto)
			if err != nil {
				return 0, fmt.Errorf("detalle de recibo %s: %w", recibo.NumeroRecibo, err)
			}
		}

		// The new receipt carries the unit's prior debt, so the older
		// pending receipts are settled here with a trail row each. The
		// balance must live on exactly one receipt or the allocator and the
		// reports would count it twice.
		if recibo.MontoDeudaAnterior.IsPositive() {
			if err := absorberSaldosAnteriores(ctx, tx, recibo); err != nil {
				return 0, fmt.Errorf("traslado de saldos a %s: %w", recibo.NumeroRecibo, err)
			}
		}
		creados++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return creados, nil
}

// absorberSaldosAnteriores settles the unit's older pending receipts whose
// balance was carried onto the freshly inserted receipt. Each settled receipt
// gets a Traslado_Saldo trail row referencing the carrying receipt's number.
func absorberSaldosAnteriores(ctx context.Context, tx pgx.Tx, recibo *domain.Recibo) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO historial_pagos (recibo_id, propietario_id, operacion_id, monto_aplicado,
			monto_credito_generado, tipo_transaccion, referencia_bancaria, fecha_transaccion, notas)
		SELECT r.id, i.propietario_id, $3, r.saldo_pendiente, 0, $4, $2, now(),
		       'Saldo trasladado al recibo ' || $2
		FROM recibos r
		JOIN inmuebles i ON i.id = r.inmueble_id
		WHERE r.inmueble_id = $1 AND r.id <> $5
		  AND r.estado = 'Pendiente' AND r.saldo_pendiente > 0`,
		recibo.InmuebleID, recibo.NumeroRecibo, uuid.New(),
		string(domain.TransaccionTrasladoSaldo), recibo.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE recibos SET saldo_pendiente = 0, estado = 'Pagado'
		WHERE inmueble_id = $1 AND id <> $2
		  AND estado = 'Pendiente' AND saldo_pendiente > 0`,
		recibo.InmuebleID, recibo.ID)
	return err
}

// EliminarSinPagosDelPeriodo deletes the period's untouched receipts: no audit
// trail rows and a balance still equal to the original total. Balances those
// receipts had absorbed from prior periods go back onto the original receipts
// first, so a regeneration re-reads the same debt it started from.
func (r *ReciboRepository) EliminarSinPagosDelPeriodo(periodo string) (int, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "recibos:"+periodo); err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE recibos r
		SET saldo_pendiente = r.saldo_pendiente + h.monto_aplicado, estado = 'Pendiente'
		FROM historial_pagos h
		WHERE h.recibo_id = r.id
		  AND h.tipo_transaccion = 'Traslado_Saldo'
		  AND h.referencia_bancaria IN (
			SELECT numero_recibo FROM recibos
			WHERE numero_recibo LIKE $1
			  AND saldo_pendiente = monto_total_pagar
			  AND NOT EXISTS (
				SELECT 1 FROM historial_pagos hp WHERE hp.recibo_id = recibos.id
			  )
		  )`, periodo+"-%")
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM historial_pagos h
		WHERE h.tipo_transaccion = 'Traslado_Saldo'
		  AND h.referencia_bancaria IN (
			SELECT numero_recibo FROM recibos
			WHERE numero_recibo LIKE $1
			  AND saldo_pendiente = monto_total_pagar
			  AND NOT EXISTS (
				SELECT 1 FROM historial_pagos hp WHERE hp.recibo_id = recibos.id
			  )
		  )`, periodo+"-%")
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM detalle_recibos
		WHERE recibo_id IN (
			SELECT id FROM recibos
			WHERE numero_recibo LIKE $1
			  AND saldo_pendiente = monto_total_pagar
			  AND NOT EXISTS (
				SELECT 1 FROM historial_pagos h WHERE h.recibo_id = recibos.id
			  )
		)`, periodo+"-%")
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM recibos
		WHERE numero_recibo LIKE $1
		  AND saldo_pendiente = monto_total_pagar
		  AND NOT EXISTS (
			SELECT 1 FROM historial_pagos h WHERE h.recibo_id = recibos.id
		  )`, periodo+"-%")
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

const reciboDetalleColumns = `
	r.id, r.numero_recibo, r.inmueble_id, r.fecha_emision,
	r.monto_deuda_anterior, r.monto_cargos_mes, r.monto_interes_mora,
	r.monto_total_pagar, r.saldo_pendiente, r.estado,
	p.nombre || ' ' || p.apellido, p.id,
	'Edif. ' || e.numero_edificio || ' Piso ' || i.piso || ' Apto ' || i.apartamento`

const reciboDetalleJoins = `
	FROM recibos r
	JOIN inmuebles i ON i.id = r.inmueble_id
	JOIN propietarios p ON p.id = i.propietario_id
	JOIN edificios e ON e.id = i.edificio_id`

func (r *ReciboRepository) GetByID(id int32) (*domain.ReciboDetalle, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+reciboDetalleColumns+reciboDetalleJoins+` WHERE r.id = $1`, id)
	recibo, err := scanReciboDetalle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReciboNoEncontrado
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, recibo_id, descripcion_gasto, tipo_gasto, monto_calculado
		FROM detalle_recibos WHERE recibo_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		d := &domain.DetalleRecibo{}
		var monto pgtype.Numeric
		if err := rows.Scan(&d.ID, &d.ReciboID, &d.DescripcionGasto, &d.TipoGasto, &monto); err != nil {
			return nil, err
		}
		d.MontoCalculado = pgNumericToDecimal(monto)
		recibo.Detalles = append(recibo.Detalles, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recibo, nil
}

func (r *ReciboRepository) GetAll(filtros *domain.ReciboFiltros) ([]*domain.ReciboDetalle, error) {
	ctx := context.Background()

	query := `SELECT ` + reciboDetalleColumns + reciboDetalleJoins + ` WHERE 1=1`
	var args []any

	if filtros != nil {
		if filtros.Mes != nil {
			args = append(args, *filtros.Mes)
			query += fmt.Sprintf(" AND to_char(r.fecha_emision, 'YYYY-MM') = $%d", len(args))
		}
		if filtros.NumeroRecibo != nil {
			args = append(args, *filtros.NumeroRecibo)
			query += fmt.Sprintf(" AND r.numero_recibo = $%d", len(args))
		}
		if filtros.PropietarioID != nil {
			args = append(args, *filtros.PropietarioID)
			query += fmt.Sprintf(" AND p.id = $%d", len(args))
		}
		if filtros.InmuebleID != nil {
			args = append(args, *filtros.InmuebleID)
			query += fmt.Sprintf(" AND r.inmueble_id = $%d", len(args))
		}
		if filtros.SoloPendientes {
			query += " AND r.estado = 'Pendiente'"
		}
	}
	query += " ORDER BY r.fecha_emision DESC, r.id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recibos []*domain.ReciboDetalle
	for rows.Next() {
		recibo, err := scanReciboDetalle(rows)
		if err != nil {
			return nil, err
		}
		recibos = append(recibos, recibo)
	}
	return recibos, rows.Err()
}

func (r *ReciboRepository) GetDelPeriodo(periodo string) ([]*domain.Recibo, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, numero_recibo, inmueble_id, fecha_emision,
		       monto_deuda_anterior, monto_cargos_mes, monto_interes_mora,
		       monto_total_pagar, saldo_pendiente, estado
		FROM recibos WHERE numero_recibo LIKE $1 ORDER BY id`, periodo+"-%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recibos []*domain.Recibo
	for rows.Next() {
		recibo, err := scanRecibo(rows)
		if err != nil {
			return nil, err
		}
		recibos = append(recibos, recibo)
	}
	return recibos, rows.Err()
}

func (r *ReciboRepository) SaldosPendientesPorInmueble() (map[int32]decimal.Decimal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT inmueble_id, COALESCE(SUM(saldo_pendiente), 0)
		FROM recibos
		WHERE estado = 'Pendiente' AND saldo_pendiente > 0
		GROUP BY inmueble_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	saldos := make(map[int32]decimal.Decimal)
	for rows.Next() {
		var inmuebleID int32
		var saldo pgtype.Numeric
		if err := rows.Scan(&inmuebleID, &saldo); err != nil {
			return nil, err
		}
		saldos[inmuebleID] = pgNumericToDecimal(saldo)
	}
	return saldos, rows.Err()
}

func (r *ReciboRepository) ActualizarEstados() (int, int, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback(ctx)

	pagados, err := tx.Exec(ctx, `
		UPDATE recibos SET estado = 'Pagado'
		WHERE saldo_pendiente <= 0 AND estado <> 'Pagado'`)
	if err != nil {
		return 0, 0, err
	}

	pendientes, err := tx.Exec(ctx, `
		UPDATE recibos SET estado = 'Pendiente'
		WHERE saldo_pendiente > 0 AND estado <> 'Pendiente'`)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return int(pagados.RowsAffected()), int(pendientes.RowsAffected()), nil
}

func (r *ReciboRepository) ResumenMorosidad() ([]*domain.MorosoResumen, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.nombre || ' ' || p.apellido,
		       i.id, 'Edif. ' || e.numero_edificio || ' Piso ' || i.piso || ' Apto ' || i.apartamento,
		       COALESCE(SUM(r.saldo_pendiente), 0), COUNT(r.id), MIN(r.fecha_emision)
		FROM recibos r
		JOIN inmuebles i ON i.id = r.inmueble_id
		JOIN propietarios p ON p.id = i.propietario_id
		JOIN edificios e ON e.id = i.edificio_id
		WHERE r.estado = 'Pendiente' AND r.saldo_pendiente > 0
		GROUP BY p.id, p.nombre, p.apellido, i.id, e.numero_edificio, i.piso, i.apartamento
		ORDER BY COUNT(r.id) DESC, SUM(r.saldo_pendiente) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumen []*domain.MorosoResumen
	for rows.Next() {
		m := &domain.MorosoResumen{}
		var saldo pgtype.Numeric
		if err := rows.Scan(&m.PropietarioID, &m.Propietario, &m.InmuebleID, &m.Inmueble,
			&saldo, &m.RecibosPendientes, &m.EmisionMasAntigua); err != nil {
			return nil, err
		}
		m.SaldoPendiente = pgNumericToDecimal(saldo)
		resumen = append(resumen, m)
	}
	return resumen, rows.Err()
}

func inmueblesConReciboDelPeriodo(ctx context.Context, tx pgx.Tx, periodo string) (map[int32]bool, error) {
	rows, err := tx.Query(ctx, `
		SELECT inmueble_id FROM recibos WHERE numero_recibo LIKE $1`, periodo+"-%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existentes := make(map[int32]bool)
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existentes[id] = true
	}
	return existentes, rows.Err()
}

func scanRecibo(row pgx.Row) (*domain.Recibo, error) {
	recibo := &domain.Recibo{}
	var deuda, cargos, interes, total, saldo pgtype.Numeric
	err := row.Scan(&recibo.ID, &recibo.NumeroRecibo, &recibo.InmuebleID, &recibo.FechaEmision,
		&deuda, &cargos, &interes, &total, &saldo, &recibo.Estado)
	if err != nil {
		return nil, err
	}
	recibo.MontoDeudaAnterior = pgNumericToDecimal(deuda)
	recibo.MontoCargosMes = pgNumericToDecimal(cargos)
	recibo.MontoInteresMora = pgNumericToDecimal(interes)
	recibo.MontoTotalPagar = pgNumericToDecimal(total)
	recibo.SaldoPendiente = pgNumericToDecimal(saldo)
	return recibo, nil
}

func scanReciboDetalle(row pgx.Row) (*domain.ReciboDetalle, error) {
	recibo := &domain.ReciboDetalle{}
	var deuda, cargos, interes, total, saldo pgtype.Numeric
	err := row.Scan(&recibo.ID, &recibo.NumeroRecibo, &recibo.InmuebleID, &recibo.FechaEmision,
		&deuda, &cargos, &interes, &total, &saldo, &recibo.Estado,
		&recibo.Propietario, &recibo.PropietarioID, &recibo.Inmueble)
	if err != nil {
		return nil, err
	}
	recibo.MontoDeudaAnterior = pgNumericToDecimal(deuda)
	recibo.MontoCargosMes = pgNumericToDecimal(cargos)
	recibo.MontoInteresMora = pgNumericToDecimal(interes)
	recibo.MontoTotalPagar = pgNumericToDecimal(total)
	recibo.SaldoPendiente = pgNumericToDecimal(saldo)
	return recibo, nil
}
