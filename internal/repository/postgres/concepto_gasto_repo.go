package postgres

import (
	"context"
	"errors"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConceptoGastoRepository implements domain.ConceptoGastoRepository using PostgreSQL
type ConceptoGastoRepository struct {
	pool *pgxpool.Pool
}

// NewConceptoGastoRepository creates a new ConceptoGastoRepository
func NewConceptoGastoRepository(pool *pgxpool.Pool) *ConceptoGastoRepository {
	return &ConceptoGastoRepository{pool: pool}
}

func (r *ConceptoGastoRepository) Create(c *domain.ConceptoGasto) (*domain.ConceptoGasto, error) {
	ctx := context.Background()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conceptos_gastos (descripcion, tipo_gasto_id)
		VALUES ($1, $2)
		RETURNING id`,
		c.Descripcion, c.TipoGastoID,
	).Scan(&c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ConceptoGastoRepository) GetByID(id int32) (*domain.ConceptoGasto, error) {
	ctx := context.Background()
	c := &domain.ConceptoGasto{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, descripcion, tipo_gasto_id
		FROM conceptos_gastos WHERE id = $1`, id,
	).Scan(&c.ID, &c.Descripcion, &c.TipoGastoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConceptoNoEncontrado
		}
		return nil, err
	}
	return c, nil
}

func (r *ConceptoGastoRepository) GetAll() ([]*domain.ConceptoGastoDetalle, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.descripcion, c.tipo_gasto_id, t.nombre, t.tipo_calculo
		FROM conceptos_gastos c
		JOIN tipos_gastos t ON t.id = c.tipo_gasto_id
		ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conceptos []*domain.ConceptoGastoDetalle
	for rows.Next() {
		c := &domain.ConceptoGastoDetalle{}
		if err := rows.Scan(&c.ID, &c.Descripcion, &c.TipoGastoID, &c.TipoGastoNombre, &c.TipoCalculo); err != nil {
			return nil, err
		}
		conceptos = append(conceptos, c)
	}
	return conceptos, rows.Err()
}

func (r *ConceptoGastoRepository) Update(c *domain.ConceptoGasto) (*domain.ConceptoGasto, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE conceptos_gastos SET descripcion = $2, tipo_gasto_id = $3
		WHERE id = $1`,
		c.ID, c.Descripcion, c.TipoGastoID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrConceptoNoEncontrado
	}
	return c, nil
}

func (r *ConceptoGastoRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM conceptos_gastos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConceptoNoEncontrado
	}
	return nil
}
