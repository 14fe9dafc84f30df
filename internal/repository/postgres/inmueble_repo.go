package postgres

import (
	"context"
	"errors"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InmuebleRepository implements domain.InmuebleRepository using PostgreSQL
type InmuebleRepository struct {
	pool *pgxpool.Pool
}

// NewInmuebleRepository creates a new InmuebleRepository
func NewInmuebleRepository(pool *pgxpool.Pool) *InmuebleRepository {
	return &InmuebleRepository{pool: pool}
}

func (r *InmuebleRepository) Create(i *domain.Inmueble) (*domain.Inmueble, error) {
	ctx := context.Background()

	alicuota, err := decimalToPgNumeric(i.Alicuota)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO inmuebles (propietario_id, edificio_id, piso, apartamento, alicuota)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		i.PropietarioID, i.EdificioID, i.Piso, i.Apartamento, alicuota,
	).Scan(&i.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrInmuebleDuplicado
		}
		return nil, err
	}
	return i, nil
}

func (r *InmuebleRepository) GetByID(id int32) (*domain.Inmueble, error) {
	ctx := context.Background()
	i := &domain.Inmueble{}
	var alicuota pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT id, propietario_id, edificio_id, piso, apartamento, alicuota
		FROM inmuebles WHERE id = $1`, id,
	).Scan(&i.ID, &i.PropietarioID, &i.EdificioID, &i.Piso, &i.Apartamento, &alicuota)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInmuebleNoEncontrado
		}
		return nil, err
	}
	i.Alicuota = pgNumericToDecimal(alicuota)
	return i, nil
}

func (r *InmuebleRepository) GetAll() ([]*domain.Inmueble, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, propietario_id, edificio_id, piso, apartamento, alicuota
		FROM inmuebles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inmuebles []*domain.Inmueble
	for rows.Next() {
		i := &domain.Inmueble{}
		var alicuota pgtype.Numeric
		if err := rows.Scan(&i.ID, &i.PropietarioID, &i.EdificioID, &i.Piso, &i.Apartamento, &alicuota); err != nil {
			return nil, err
		}
		i.Alicuota = pgNumericToDecimal(alicuota)
		inmuebles = append(inmuebles, i)
	}
	return inmuebles, rows.Err()
}

func (r *InmuebleRepository) GetAllDetalle() ([]*domain.InmuebleDetalle, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.propietario_id, i.edificio_id, i.piso, i.apartamento, i.alicuota,
		       p.nombre || ' ' || p.apellido, e.numero_edificio
		FROM inmuebles i
		JOIN propietarios p ON p.id = i.propietario_id
		JOIN edificios e ON e.id = i.edificio_id
		ORDER BY i.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detalles []*domain.InmuebleDetalle
	for rows.Next() {
		d := &domain.InmuebleDetalle{}
		var alicuota pgtype.Numeric
		if err := rows.Scan(&d.ID, &d.PropietarioID, &d.EdificioID, &d.Piso, &d.Apartamento,
			&alicuota, &d.Propietario, &d.NumeroEdificio); err != nil {
			return nil, err
		}
		d.Alicuota = pgNumericToDecimal(alicuota)
		detalles = append(detalles, d)
	}
	return detalles, rows.Err()
}

func (r *InmuebleRepository) Update(i *domain.Inmueble) (*domain.Inmueble, error) {
	ctx := context.Background()

	alicuota, err := decimalToPgNumeric(i.Alicuota)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE inmuebles
		SET propietario_id = $2, edificio_id = $3, piso = $4, apartamento = $5, alicuota = $6
		WHERE id = $1`,
		i.ID, i.PropietarioID, i.EdificioID, i.Piso, i.Apartamento, alicuota)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrInmuebleDuplicado
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrInmuebleNoEncontrado
	}
	return i, nil
}

func (r *InmuebleRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM inmuebles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInmuebleNoEncontrado
	}
	return nil
}
