package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MovimientoGastoRepository implements domain.MovimientoGastoRepository using PostgreSQL
type MovimientoGastoRepository struct {
	pool *pgxpool.Pool
}

// NewMovimientoGastoRepository creates a new MovimientoGastoRepository
func NewMovimientoGastoRepository(pool *pgxpool.Pool) *MovimientoGastoRepository {
	return &MovimientoGastoRepository{pool: pool}
}

func (r *MovimientoGastoRepository) Create(m *domain.MovimientoGasto) (*domain.MovimientoGasto, error) {
	ctx := context.Background()

	monto, err := decimalToPgNumeric(m.MontoReal)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO movimientos_gastos (gasto_mes_id, monto_real, fecha_gasto, mes_aplicacion, descripcion_adicional)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		m.GastoMesID, monto, m.FechaGasto, m.MesAplicacion, m.DescripcionAdicional,
	).Scan(&m.ID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MovimientoGastoRepository) GetByID(id int32) (*domain.MovimientoGasto, error) {
	ctx := context.Background()
	m := &domain.MovimientoGasto{}
	var monto pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT id, gasto_mes_id, monto_real, fecha_gasto, mes_aplicacion, descripcion_adicional
		FROM movimientos_gastos WHERE id = $1`, id,
	).Scan(&m.ID, &m.GastoMesID, &monto, &m.FechaGasto, &m.MesAplicacion, &m.DescripcionAdicional)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovimientoNoEncontrado
		}
		return nil, err
	}
	m.MontoReal = pgNumericToDecimal(monto)
	return m, nil
}

func (r *MovimientoGastoRepository) GetAll() ([]*domain.MovimientoGastoDetalle, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.gasto_mes_id, m.monto_real, m.fecha_gasto, m.mes_aplicacion, m.descripcion_adicional,
		       c.descripcion
		FROM movimientos_gastos m
		JOIN gastos_mes g ON g.id = m.gasto_mes_id
		JOIN conceptos_gastos c ON c.id = g.concepto_id
		ORDER BY m.fecha_gasto DESC, m.id DESC`)
	if err != nil {
		return nil, err
	}
	return scanMovimientos(rows)
}

func (r *MovimientoGastoRepository) GetByMes(mesAplicacion time.Time) ([]*domain.MovimientoGastoDetalle, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.gasto_mes_id, m.monto_real, m.fecha_gasto, m.mes_aplicacion, m.descripcion_adicional,
		       c.descripcion
		FROM movimientos_gastos m
		JOIN gastos_mes g ON g.id = m.gasto_mes_id
		JOIN conceptos_gastos c ON c.id = g.concepto_id
		WHERE m.mes_aplicacion = $1
		ORDER BY m.fecha_gasto DESC, m.id DESC`, mesAplicacion)
	if err != nil {
		return nil, err
	}
	return scanMovimientos(rows)
}

func (r *MovimientoGastoRepository) ExisteParaMes(gastoMesID int32, mesAplicacion time.Time) (bool, error) {
	ctx := context.Background()
	var existe bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM movimientos_gastos
			WHERE gasto_mes_id = $1 AND mes_aplicacion = $2
		)`, gastoMesID, mesAplicacion,
	).Scan(&existe)
	return existe, err
}

func (r *MovimientoGastoRepository) Update(m *domain.MovimientoGasto) (*domain.MovimientoGasto, error) {
	ctx := context.Background()

	monto, err := decimalToPgNumeric(m.MontoReal)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE movimientos_gastos
		SET gasto_mes_id = $2, monto_real = $3, fecha_gasto = $4, mes_aplicacion = $5, descripcion_adicional = $6
		WHERE id = $1`,
		m.ID, m.GastoMesID, monto, m.FechaGasto, m.MesAplicacion, m.DescripcionAdicional)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrMovimientoNoEncontrado
	}
	return m, nil
}

func (r *MovimientoGastoRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM movimientos_gastos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovimientoNoEncontrado
	}
	return nil
}

func scanMovimientos(rows pgx.Rows) ([]*domain.MovimientoGastoDetalle, error) {
	defer rows.Close()

	var movimientos []*domain.MovimientoGastoDetalle
	for rows.Next() {
		m := &domain.MovimientoGastoDetalle{}
		var monto pgtype.Numeric
		if err := rows.Scan(&m.ID, &m.GastoMesID, &monto, &m.FechaGasto, &m.MesAplicacion,
			&m.DescripcionAdicional, &m.ConceptoDescripcion); err != nil {
			return nil, err
		}
		m.MontoReal = pgNumericToDecimal(monto)
		movimientos = append(movimientos, m)
	}
	return movimientos, rows.Err()
}
