package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PagoRepository implements domain.PagoRepository using PostgreSQL
type PagoRepository struct {
	pool *pgxpool.Pool
}

// NewPagoRepository creates a new PagoRepository
func NewPagoRepository(pool *pgxpool.Pool) *PagoRepository {
	return &PagoRepository{pool: pool}
}

// RegistrarVerificado stores a verified payment and allocates it in the same
// transaction. The credit row and the owner's pending receipts are locked FOR
// UPDATE so concurrent payments for the same owner serialize.
func (r *PagoRepository) RegistrarVerificado(reciboID, propietarioID int32, monto decimal.Decimal, referencia string, operacionID uuid.UUID) (*domain.ResultadoPago, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	montoPg, err := decimalToPgNumeric(monto)
	if err != nil {
		return nil, err
	}

	var pagoID int32
	err = tx.QueryRow(ctx, `
		INSERT INTO pagos (recibo_id, fecha_pago, monto_pagado, referencia_bancaria, metodo_pago, estado_verificacion)
		VALUES ($1, now(), $2, $3, 'Transferencia', 'Verificado')
		RETURNING id`,
		reciboID, montoPg, referencia,
	).Scan(&pagoID)
	if err != nil {
		return nil, err
	}

	resultado, err := aplicarPagoTx(ctx, tx, pagoID, reciboID, propietarioID, monto, referencia, operacionID)
	if err != nil {
		return nil, err
	}
	resultado.PagoID = pagoID

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return resultado, nil
}

func (r *PagoRepository) Create(p *domain.Pago) (*domain.Pago, error) {
	ctx := context.Background()

	monto, err := decimalToPgNumeric(p.MontoPagado)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO pagos (recibo_id, fecha_pago, monto_pagado, referencia_bancaria, metodo_pago, estado_verificacion, nota)
		VALUES ($1, $2, $3, $4, $5, 'Por_Verificar', $6)
		RETURNING id`,
		p.ReciboID, p.FechaPago, monto, p.ReferenciaBancaria, p.MetodoPago, p.Nota,
	).Scan(&p.ID)
	if err != nil {
		return nil, err
	}
	p.EstadoVerificacion = domain.PagoPorVerificar
	return p, nil
}

const pagoDetalleQuery = `
	SELECT pg.id, pg.recibo_id, pg.fecha_pago, pg.monto_pagado, pg.referencia_bancaria,
	       pg.metodo_pago, pg.estado_verificacion, pg.nota, pg.comprobante_key,
	       r.numero_recibo, p.nombre || ' ' || p.apellido, p.id,
	       'Edif. ' || e.numero_edificio || ' Piso ' || i.piso || ' Apto ' || i.apartamento
	FROM pagos pg
	JOIN recibos r ON r.id = pg.recibo_id
	JOIN inmuebles i ON i.id = r.inmueble_id
	JOIN propietarios p ON p.id = i.propietario_id
	JOIN edificios e ON e.id = i.edificio_id`

func (r *PagoRepository) GetByID(id int32) (*domain.PagoDetalle, error) {
	ctx := context.Background()

	pago, err := scanPagoDetalle(r.pool.QueryRow(ctx, pagoDetalleQuery+` WHERE pg.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPagoNoEncontrado
		}
		return nil, err
	}
	return pago, nil
}

func (r *PagoRepository) GetAll(filtros *domain.PagoFiltros) ([]*domain.PagoDetalle, error) {
	ctx := context.Background()

	query := pagoDetalleQuery + ` WHERE 1=1`
	var args []any

	if filtros != nil {
		if filtros.Estado != nil {
			args = append(args, string(*filtros.Estado))
			query += fmt.Sprintf(" AND pg.estado_verificacion = $%d", len(args))
		}
		if filtros.Fecha != nil {
			args = append(args, *filtros.Fecha)
			query += fmt.Sprintf(" AND pg.fecha_pago::date = $%d::date", len(args))
		}
	}
	query += " ORDER BY pg.fecha_pago DESC, pg.id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pagos []*domain.PagoDetalle
	for rows.Next() {
		pago, err := scanPagoDetalle(rows)
		if err != nil {
			return nil, err
		}
		pagos = append(pagos, pago)
	}
	return pagos, rows.Err()
}

// Verificar promotes a pending payment to Verificado and runs the allocation
// for its amount. The payment row is locked so a double verification of the
// same payment fails with ErrPagoYaProcesado instead of applying twice.
func (r *PagoRepository) Verificar(pagoID int32, fechaPago *time.Time, monto *decimal.Decimal, nota string, comprobanteKey *string, operacionID uuid.UUID) (*domain.ResultadoPago, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var (
		reciboID      int32
		propietarioID int32
		estado        string
		fecha         time.Time
		referencia    string
		montoPg       pgtype.Numeric
	)
	err = tx.QueryRow(ctx, `
		SELECT pg.recibo_id, i.propietario_id, pg.estado_verificacion, pg.fecha_pago,
		       pg.referencia_bancaria, pg.monto_pagado
		FROM pagos pg
		JOIN recibos r ON r.id = pg.recibo_id
		JOIN inmuebles i ON i.id = r.inmueble_id
		WHERE pg.id = $1
		FOR UPDATE OF pg`, pagoID,
	).Scan(&reciboID, &propietarioID, &estado, &fecha, &referencia, &montoPg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPagoNoEncontrado
		}
		return nil, err
	}
	if estado != string(domain.PagoPorVerificar) {
		return nil, domain.ErrPagoYaProcesado
	}

	montoFinal := pgNumericToDecimal(montoPg)
	if monto != nil {
		montoFinal = *monto
	}
	if montoFinal.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrMontoPagoInvalido
	}
	fechaFinal := fecha
	if fechaPago != nil {
		fechaFinal = *fechaPago
	}

	resultado, err := aplicarPagoTx(ctx, tx, pagoID, reciboID, propietarioID, montoFinal, referencia, operacionID)
	if err != nil {
		return nil, err
	}
	resultado.PagoID = pagoID

	montoFinalPg, err := decimalToPgNumeric(montoFinal)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, `
		UPDATE pagos
		SET estado_verificacion = 'Verificado', fecha_pago = $2, monto_pagado = $3,
		    nota = $4, comprobante_key = COALESCE($5, comprobante_key)
		WHERE id = $1`,
		pagoID, fechaFinal, montoFinalPg, nota, comprobanteKey)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return resultado, nil
}

func (r *PagoRepository) Rechazar(pagoID int32, nota string) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		UPDATE pagos SET estado_verificacion = 'Rechazado', nota = $2
		WHERE id = $1 AND estado_verificacion = 'Por_Verificar'`,
		pagoID, nota)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var existe bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pagos WHERE id = $1)`, pagoID).Scan(&existe); err != nil {
			return err
		}
		if !existe {
			return domain.ErrPagoNoEncontrado
		}
		return domain.ErrPagoYaProcesado
	}
	return nil
}

func (r *PagoRepository) SumVerificadosPorMes(year int) ([]*domain.FlujoCajaMes, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', fecha_pago), COALESCE(SUM(monto_pagado), 0)
		FROM pagos
		WHERE estado_verificacion = 'Verificado' AND EXTRACT(YEAR FROM fecha_pago) = $1
		GROUP BY date_trunc('month', fecha_pago)
		ORDER BY date_trunc('month', fecha_pago)`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meses []*domain.FlujoCajaMes
	for rows.Next() {
		m := &domain.FlujoCajaMes{}
		var total pgtype.Numeric
		if err := rows.Scan(&m.Mes, &total); err != nil {
			return nil, err
		}
		m.Total = pgNumericToDecimal(total)
		meses = append(meses, m)
	}
	return meses, rows.Err()
}

// aplicarPagoTx runs the credit-first allocation inside the caller's
// transaction: it merges the owner's standing credit into the available
// amount, walks the pending receipts oldest first, writes the audit trail
// rows under one operacion_id, and stores any remainder as the new credit.
func aplicarPagoTx(ctx context.Context, tx pgx.Tx, pagoID, reciboID, propietarioID int32, monto decimal.Decimal, referencia string, operacionID uuid.UUID) (*domain.ResultadoPago, error) {
	var duplicada bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pagos
			WHERE referencia_bancaria = $1 AND estado_verificacion = 'Verificado'
			  AND id <> $2
		)`, referencia, pagoID,
	).Scan(&duplicada)
	if err != nil {
		return nil, err
	}
	if duplicada {
		return nil, domain.ErrReferenciaDuplicada
	}

	// Upsert guarantees the credit row exists before it is locked.
	_, err = tx.Exec(ctx, `
		INSERT INTO creditos_propietarios (propietario_id, saldo_credito, fecha_actualizacion)
		VALUES ($1, 0, now())
		ON CONFLICT (propietario_id) DO NOTHING`, propietarioID)
	if err != nil {
		return nil, err
	}

	var creditoPg pgtype.Numeric
	err = tx.QueryRow(ctx, `
		SELECT saldo_credito FROM creditos_propietarios
		WHERE propietario_id = $1 FOR UPDATE`, propietarioID,
	).Scan(&creditoPg)
	if err != nil {
		return nil, err
	}
	credito := pgNumericToDecimal(creditoPg)
	disponible := monto.Add(credito)

	rows, err := tx.Query(ctx, `
		SELECT r.id, r.numero_recibo, r.inmueble_id, r.fecha_emision,
		       r.monto_deuda_anterior, r.monto_cargos_mes, r.monto_interes_mora,
		       r.monto_total_pagar, r.saldo_pendiente, r.estado
		FROM recibos r
		JOIN inmuebles i ON i.id = r.inmueble_id
		WHERE i.propietario_id = $1 AND r.estado = 'Pendiente' AND r.saldo_pendiente > 0
		ORDER BY r.fecha_emision, r.id
		FOR UPDATE OF r`, propietarioID)
	if err != nil {
		return nil, err
	}
	var pendientes []*domain.Recibo
	for rows.Next() {
		recibo, err := scanRecibo(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		pendientes = append(pendientes, recibo)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	aplicaciones, restante := domain.AsignarPago(pendientes, disponible)

	resultado := &domain.ResultadoPago{
		OperacionID:     operacionID,
		CreditoRestante: restante,
		TotalAplicado:   disponible.Sub(restante),
	}

	for _, ap := range aplicaciones {
		saldo, err := decimalToPgNumeric(ap.Recibo.SaldoPendiente)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, `
			UPDATE recibos SET saldo_pendiente = $2, estado = $3 WHERE id = $1`,
			ap.Recibo.ID, saldo, string(ap.Recibo.Estado))
		if err != nil {
			return nil, err
		}

		tipo := domain.TransaccionPagoParcial
		if ap.Recibo.Estado == domain.ReciboPagado {
			tipo = domain.TransaccionPagoCompleto
		}
		if err := insertarHistorial(ctx, tx, ap.Recibo.ID, propietarioID, operacionID,
			ap.MontoAplicado, decimal.Zero, tipo, referencia); err != nil {
			return nil, err
		}

		resultado.PagosAplicados = append(resultado.PagosAplicados, domain.PagoAplicado{
			NumeroRecibo:  ap.Recibo.NumeroRecibo,
			MontoAplicado: ap.MontoAplicado,
			SaldoRestante: ap.Recibo.SaldoPendiente,
		})
	}

	if restante.GreaterThan(decimal.Zero) {
		if err := insertarHistorial(ctx, tx, reciboID, propietarioID, operacionID,
			decimal.Zero, restante, domain.TransaccionSobrepago, referencia); err != nil {
			return nil, err
		}
	}

	nuevoCredito, err := decimalToPgNumeric(restante)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, `
		UPDATE creditos_propietarios SET saldo_credito = $2, fecha_actualizacion = now()
		WHERE propietario_id = $1`, propietarioID, nuevoCredito)
	if err != nil {
		return nil, err
	}

	return resultado, nil
}

func insertarHistorial(ctx context.Context, tx pgx.Tx, reciboID, propietarioID int32, operacionID uuid.UUID,
	montoAplicado, creditoGenerado decimal.Decimal, tipo domain.TipoTransaccion, referencia string) error {

	aplicado, err := decimalToPgNumeric(montoAplicado)
	if err != nil {
		return err
	}
	credito, err := decimalToPgNumeric(creditoGenerado)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO historial_pagos (recibo_id, propietario_id, operacion_id, monto_aplicado,
			monto_credito_generado, tipo_transaccion, referencia_bancaria, fecha_transaccion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		reciboID, propietarioID, operacionID, aplicado, credito, string(tipo), referencia)
	return err
}

func scanPagoDetalle(row pgx.Row) (*domain.PagoDetalle, error) {
	pago := &domain.PagoDetalle{}
	var monto pgtype.Numeric
	err := row.Scan(&pago.ID, &pago.ReciboID, &pago.FechaPago, &monto, &pago.ReferenciaBancaria,
		&pago.MetodoPago, &pago.EstadoVerificacion, &pago.Nota, &pago.ComprobanteKey,
		&pago.NumeroRecibo, &pago.Propietario, &pago.PropietarioID, &pago.Inmueble)
	if err != nil {
		return nil, err
	}
	pago.MontoPagado = pgNumericToDecimal(monto)
	return pago, nil
}
