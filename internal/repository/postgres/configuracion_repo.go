package postgres

import (
	"context"
	"errors"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConfiguracionRepository implements domain.ConfiguracionRepository using PostgreSQL
type ConfiguracionRepository struct {
	pool *pgxpool.Pool
}

// NewConfiguracionRepository creates a new ConfiguracionRepository
func NewConfiguracionRepository(pool *pgxpool.Pool) *ConfiguracionRepository {
	return &ConfiguracionRepository{pool: pool}
}

func (r *ConfiguracionRepository) Create(c *domain.ConfiguracionRecibos) (*domain.ConfiguracionRecibos, error) {
	ctx := context.Background()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO configuracion_recibos (dia_generacion, dia_recordatorio, activo, fecha_creacion, fecha_modificacion)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id, fecha_creacion, fecha_modificacion`,
		c.DiaGeneracion, c.DiaRecordatorio, c.Activo,
	).Scan(&c.ID, &c.FechaCreacion, &c.FechaModificacion)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ConfiguracionRepository) GetAll() ([]*domain.ConfiguracionRecibos, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, dia_generacion, dia_recordatorio, activo, fecha_creacion, fecha_modificacion
		FROM configuracion_recibos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.ConfiguracionRecibos
	for rows.Next() {
		c := &domain.ConfiguracionRecibos{}
		if err := rows.Scan(&c.ID, &c.DiaGeneracion, &c.DiaRecordatorio, &c.Activo,
			&c.FechaCreacion, &c.FechaModificacion); err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

func (r *ConfiguracionRepository) GetActiva() (*domain.ConfiguracionRecibos, error) {
	ctx := context.Background()
	c := &domain.ConfiguracionRecibos{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, dia_generacion, dia_recordatorio, activo, fecha_creacion, fecha_modificacion
		FROM configuracion_recibos WHERE activo ORDER BY id LIMIT 1`,
	).Scan(&c.ID, &c.DiaGeneracion, &c.DiaRecordatorio, &c.Activo, &c.FechaCreacion, &c.FechaModificacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConfiguracionNoEncontrada
		}
		return nil, err
	}
	return c, nil
}

func (r *ConfiguracionRepository) Update(c *domain.ConfiguracionRecibos) (*domain.ConfiguracionRecibos, error) {
	ctx := context.Background()
	err := r.pool.QueryRow(ctx, `
		UPDATE configuracion_recibos
		SET dia_generacion = $2, dia_recordatorio = $3, activo = $4, fecha_modificacion = now()
		WHERE id = $1
		RETURNING fecha_modificacion`,
		c.ID, c.DiaGeneracion, c.DiaRecordatorio, c.Activo,
	).Scan(&c.FechaModificacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConfiguracionNoEncontrada
		}
		return nil, err
	}
	return c, nil
}

func (r *ConfiguracionRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM configuracion_recibos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConfiguracionNoEncontrada
	}
	return nil
}
