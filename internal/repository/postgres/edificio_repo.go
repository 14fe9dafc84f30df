package postgres

import (
	"context"
	"errors"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EdificioRepository implements domain.EdificioRepository using PostgreSQL
type EdificioRepository struct {
	pool *pgxpool.Pool
}

// NewEdificioRepository creates a new EdificioRepository
func NewEdificioRepository(pool *pgxpool.Pool) *EdificioRepository {
	return &EdificioRepository{pool: pool}
}

func (r *EdificioRepository) Create(e *domain.Edificio) (*domain.Edificio, error) {
	ctx := context.Background()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO edificios (numero_edificio, descripcion, estado)
		VALUES ($1, $2, $3)
		RETURNING id`,
		e.NumeroEdificio, e.Descripcion, string(e.Estado),
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return e, nil
}

func (r *EdificioRepository) GetByID(id int32) (*domain.Edificio, error) {
	ctx := context.Background()
	e := &domain.Edificio{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, numero_edificio, descripcion, estado
		FROM edificios WHERE id = $1`, id,
	).Scan(&e.ID, &e.NumeroEdificio, &e.Descripcion, &e.Estado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEdificioNoEncontrado
		}
		return nil, err
	}
	return e, nil
}

func (r *EdificioRepository) GetAll() ([]*domain.Edificio, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, numero_edificio, descripcion, estado
		FROM edificios ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edificios []*domain.Edificio
	for rows.Next() {
		e := &domain.Edificio{}
		if err := rows.Scan(&e.ID, &e.NumeroEdificio, &e.Descripcion, &e.Estado); err != nil {
			return nil, err
		}
		edificios = append(edificios, e)
	}
	return edificios, rows.Err()
}

func (r *EdificioRepository) Update(e *domain.Edificio) (*domain.Edificio, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE edificios SET numero_edificio = $2, descripcion = $3, estado = $4
		WHERE id = $1`,
		e.ID, e.NumeroEdificio, e.Descripcion, string(e.Estado))
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrEdificioNoEncontrado
	}
	return e, nil
}

func (r *EdificioRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM edificios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEdificioNoEncontrado
	}
	return nil
}
