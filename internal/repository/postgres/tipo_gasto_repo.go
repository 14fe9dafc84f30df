package postgres

import (
	"context"
	"errors"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TipoGastoRepository implements domain.TipoGastoRepository using PostgreSQL
type TipoGastoRepository struct {
	pool *pgxpool.Pool
}

// NewTipoGastoRepository creates a new TipoGastoRepository
func NewTipoGastoRepository(pool *pgxpool.Pool) *TipoGastoRepository {
	return &TipoGastoRepository{pool: pool}
}

func (r *TipoGastoRepository) Create(t *domain.TipoGasto) (*domain.TipoGasto, error) {
	ctx := context.Background()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tipos_gastos (nombre, descripcion, tipo_calculo, estado)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		t.Nombre, t.Descripcion, string(t.TipoCalculo), string(t.Estado),
	).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return t, nil
}

func (r *TipoGastoRepository) GetByID(id int32) (*domain.TipoGasto, error) {
	ctx := context.Background()
	t := &domain.TipoGasto{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, nombre, descripcion, tipo_calculo, estado
		FROM tipos_gastos WHERE id = $1`, id,
	).Scan(&t.ID, &t.Nombre, &t.Descripcion, &t.TipoCalculo, &t.Estado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTipoGastoNoEncontrado
		}
		return nil, err
	}
	return t, nil
}

func (r *TipoGastoRepository) GetAll() ([]*domain.TipoGasto, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, nombre, descripcion, tipo_calculo, estado
		FROM tipos_gastos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tipos []*domain.TipoGasto
	for rows.Next() {
		t := &domain.TipoGasto{}
		if err := rows.Scan(&t.ID, &t.Nombre, &t.Descripcion, &t.TipoCalculo, &t.Estado); err != nil {
			return nil, err
		}
		tipos = append(tipos, t)
	}
	return tipos, rows.Err()
}

func (r *TipoGastoRepository) Update(t *domain.TipoGasto) (*domain.TipoGasto, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE tipos_gastos
		SET nombre = $2, descripcion = $3, tipo_calculo = $4, estado = $5
		WHERE id = $1`,
		t.ID, t.Nombre, t.Descripcion, string(t.TipoCalculo), string(t.Estado))
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTipoGastoNoEncontrado
	}
	return t, nil
}

func (r *TipoGastoRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM tipos_gastos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTipoGastoNoEncontrado
	}
	return nil
}
