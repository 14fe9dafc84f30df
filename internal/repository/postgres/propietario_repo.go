package postgres

import (
	"context"
	"errors"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PropietarioRepository implements domain.PropietarioRepository using PostgreSQL
type PropietarioRepository struct {
	pool *pgxpool.Pool
}

// NewPropietarioRepository creates a new PropietarioRepository
func NewPropietarioRepository(pool *pgxpool.Pool) *PropietarioRepository {
	return &PropietarioRepository{pool: pool}
}

func (r *PropietarioRepository) Create(p *domain.Propietario) (*domain.Propietario, error) {
	ctx := context.Background()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO propietarios (nombre, apellido, cedula, telefono, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.Nombre, p.Apellido, domain.NormalizarCedula(p.Cedula), p.Telefono, p.Email,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCedulaDuplicada
		}
		return nil, err
	}
	p.Cedula = domain.NormalizarCedula(p.Cedula)
	return p, nil
}

func (r *PropietarioRepository) GetByID(id int32) (*domain.Propietario, error) {
	ctx := context.Background()
	p := &domain.Propietario{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, nombre, apellido, cedula, telefono, email
		FROM propietarios WHERE id = $1`, id,
	).Scan(&p.ID, &p.Nombre, &p.Apellido, &p.Cedula, &p.Telefono, &p.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPropietarioNoEncontrado
		}
		return nil, err
	}
	return p, nil
}

func (r *PropietarioRepository) GetAll() ([]*domain.Propietario, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, nombre, apellido, cedula, telefono, email
		FROM propietarios ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var propietarios []*domain.Propietario
	for rows.Next() {
		p := &domain.Propietario{}
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Apellido, &p.Cedula, &p.Telefono, &p.Email); err != nil {
			return nil, err
		}
		propietarios = append(propietarios, p)
	}
	return propietarios, rows.Err()
}

func (r *PropietarioRepository) Update(p *domain.Propietario) (*domain.Propietario, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE propietarios
		SET nombre = $2, apellido = $3, cedula = $4, telefono = $5, email = $6
		WHERE id = $1`,
		p.ID, p.Nombre, p.Apellido, domain.NormalizarCedula(p.Cedula), p.Telefono, p.Email)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCedulaDuplicada
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrPropietarioNoEncontrado
	}
	p.Cedula = domain.NormalizarCedula(p.Cedula)
	return p, nil
}

func (r *PropietarioRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM propietarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropietarioNoEncontrado
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
