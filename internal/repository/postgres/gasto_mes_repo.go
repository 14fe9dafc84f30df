package postgres

import (
	"context"
	"errors"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GastoMesRepository implements domain.GastoMesRepository using PostgreSQL
type GastoMesRepository struct {
	pool *pgxpool.Pool
}

// NewGastoMesRepository creates a new GastoMesRepository
func NewGastoMesRepository(pool *pgxpool.Pool) *GastoMesRepository {
	return &GastoMesRepository{pool: pool}
}

func (r *GastoMesRepository) Create(g *domain.GastoMes) (*domain.GastoMes, error) {
	ctx := context.Background()

	monto, err := decimalToPgNumeric(g.MontoBase)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO gastos_mes (concepto_id, monto_base, es_recurrente, tipo_distribucion, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		g.ConceptoID, monto, g.EsRecurrente, string(g.TipoDistribucion), string(g.Estado),
	).Scan(&g.ID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GastoMesRepository) GetByID(id int32) (*domain.GastoMesDetalle, error) {
	ctx := context.Background()
	g := &domain.GastoMesDetalle{}
	var monto pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT g.id, g.concepto_id, g.monto_base, g.es_recurrente, g.tipo_distribucion, g.estado,
		       c.descripcion, t.tipo_calculo
		FROM gastos_mes g
		JOIN conceptos_gastos c ON c.id = g.concepto_id
		JOIN tipos_gastos t ON t.id = c.tipo_gasto_id
		WHERE g.id = $1`, id,
	).Scan(&g.ID, &g.ConceptoID, &monto, &g.EsRecurrente, &g.TipoDistribucion, &g.Estado,
		&g.ConceptoDescripcion, &g.TipoCalculo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGastoMesNoEncontrado
		}
		return nil, err
	}
	g.MontoBase = pgNumericToDecimal(monto)

	g.EdificioIDs, err = r.edificiosDe(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GastoMesRepository) GetAll() ([]*domain.GastoMesDetalle, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.concepto_id, g.monto_base, g.es_recurrente, g.tipo_distribucion, g.estado,
		       c.descripcion, t.tipo_calculo
		FROM gastos_mes g
		JOIN conceptos_gastos c ON c.id = g.concepto_id
		JOIN tipos_gastos t ON t.id = c.tipo_gasto_id
		ORDER BY g.id`)
	if err != nil {
		return nil, err
	}

	gastos, err := scanGastosDetalle(rows)
	if err != nil {
		return nil, err
	}

	for _, g := range gastos {
		g.EdificioIDs, err = r.edificiosDe(ctx, g.ID)
		if err != nil {
			return nil, err
		}
	}
	return gastos, nil
}

func (r *GastoMesRepository) Update(g *domain.GastoMes) (*domain.GastoMes, error) {
	ctx := context.Background()

	monto, err := decimalToPgNumeric(g.MontoBase)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE gastos_mes
		SET concepto_id = $2, monto_base = $3, es_recurrente = $4, tipo_distribucion = $5, estado = $6
		WHERE id = $1`,
		g.ID, g.ConceptoID, monto, g.EsRecurrente, string(g.TipoDistribucion), string(g.Estado))
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrGastoMesNoEncontrado
	}
	return g, nil
}

func (r *GastoMesRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM gastos_mes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGastoMesNoEncontrado
	}
	return nil
}

func (r *GastoMesRepository) GetActivosParaDistribucion() ([]*domain.GastoActivo, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, c.descripcion, t.tipo_calculo, g.tipo_distribucion, g.monto_base
		FROM gastos_mes g
		JOIN conceptos_gastos c ON c.id = g.concepto_id
		JOIN tipos_gastos t ON t.id = c.tipo_gasto_id
		WHERE g.estado = 'Activo'
		ORDER BY g.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gastos []*domain.GastoActivo
	for rows.Next() {
		g := &domain.GastoActivo{}
		var monto pgtype.Numeric
		if err := rows.Scan(&g.GastoMesID, &g.Descripcion, &g.TipoCalculo, &g.Distribucion, &monto); err != nil {
			return nil, err
		}
		g.Monto = pgNumericToDecimal(monto)
		gastos = append(gastos, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, g := range gastos {
		if g.Distribucion != domain.DistribucionEdificios {
			continue
		}
		g.EdificioIDs, err = r.edificiosDe(ctx, g.GastoMesID)
		if err != nil {
			return nil, err
		}
	}
	return gastos, nil
}

func (r *GastoMesRepository) GetRecurrentesActivos() ([]*domain.GastoMesDetalle, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.concepto_id, g.monto_base, g.es_recurrente, g.tipo_distribucion, g.estado,
		       c.descripcion, t.tipo_calculo
		FROM gastos_mes g
		JOIN conceptos_gastos c ON c.id = g.concepto_id
		JOIN tipos_gastos t ON t.id = c.tipo_gasto_id
		WHERE g.es_recurrente AND g.estado = 'Activo'
		ORDER BY g.id`)
	if err != nil {
		return nil, err
	}
	return scanGastosDetalle(rows)
}

func (r *GastoMesRepository) AgregarEdificio(gastoMesID, edificioID int32) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO gastos_edificios (gasto_mes_id, edificio_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		gastoMesID, edificioID)
	return err
}

func (r *GastoMesRepository) EliminarEdificio(gastoMesID, edificioID int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM gastos_edificios WHERE gasto_mes_id = $1 AND edificio_id = $2`,
		gastoMesID, edificioID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GastoMesRepository) edificiosDe(ctx context.Context, gastoMesID int32) ([]int32, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT edificio_id FROM gastos_edificios WHERE gasto_mes_id = $1 ORDER BY edificio_id`,
		gastoMesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanGastosDetalle(rows pgx.Rows) ([]*domain.GastoMesDetalle, error) {
	defer rows.Close()

	var gastos []*domain.GastoMesDetalle
	for rows.Next() {
		g := &domain.GastoMesDetalle{}
		var monto pgtype.Numeric
		if err := rows.Scan(&g.ID, &g.ConceptoID, &monto, &g.EsRecurrente, &g.TipoDistribucion, &g.Estado,
			&g.ConceptoDescripcion, &g.TipoCalculo); err != nil {
			return nil, err
		}
		g.MontoBase = pgNumericToDecimal(monto)
		gastos = append(gastos, g)
	}
	return gastos, rows.Err()
}
