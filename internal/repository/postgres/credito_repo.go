package postgres

import (
	"context"
	"errors"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CreditoRepository implements domain.CreditoRepository using PostgreSQL.
// Credit balances are only written by the payment allocator; this repository
// is read-only.
type CreditoRepository struct {
	pool *pgxpool.Pool
}

// NewCreditoRepository creates a new CreditoRepository
func NewCreditoRepository(pool *pgxpool.Pool) *CreditoRepository {
	return &CreditoRepository{pool: pool}
}

func (r *CreditoRepository) GetByPropietario(propietarioID int32) (*domain.CreditoPropietario, error) {
	ctx := context.Background()
	c := &domain.CreditoPropietario{}
	var saldo pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT propietario_id, saldo_credito, fecha_actualizacion
		FROM creditos_propietarios WHERE propietario_id = $1`, propietarioID,
	).Scan(&c.PropietarioID, &saldo, &c.FechaActualizacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// An owner with no credit row simply has zero credit.
			return &domain.CreditoPropietario{PropietarioID: propietarioID, SaldoCredito: decimal.Zero}, nil
		}
		return nil, err
	}
	c.SaldoCredito = pgNumericToDecimal(saldo)
	return c, nil
}

func (r *CreditoRepository) GetConSaldo() ([]*domain.CreditoDetalle, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT c.propietario_id, c.saldo_credito, c.fecha_actualizacion,
		       p.nombre || ' ' || p.apellido
		FROM creditos_propietarios c
		JOIN propietarios p ON p.id = c.propietario_id
		WHERE c.saldo_credito > 0
		ORDER BY c.saldo_credito DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creditos []*domain.CreditoDetalle
	for rows.Next() {
		c := &domain.CreditoDetalle{}
		var saldo pgtype.Numeric
		if err := rows.Scan(&c.PropietarioID, &saldo, &c.FechaActualizacion, &c.Propietario); err != nil {
			return nil, err
		}
		c.SaldoCredito = pgNumericToDecimal(saldo)
		creditos = append(creditos, c)
	}
	return creditos, rows.Err()
}
