package service

import (
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/util"
	"github.com/AdrianLS4/gestion-inmuebles/internal/websocket"
	"github.com/rs/zerolog/log"
)

// MovimientoGastoService handles realized spend business logic
type MovimientoGastoService struct {
	movimientoRepo domain.MovimientoGastoRepository
	gastoMesRepo   domain.GastoMesRepository
	eventPublisher websocket.EventPublisher
}

// NewMovimientoGastoService creates a new MovimientoGastoService
func NewMovimientoGastoService(movimientoRepo domain.MovimientoGastoRepository, gastoMesRepo domain.GastoMesRepository) *MovimientoGastoService {
	return &MovimientoGastoService{
		movimientoRepo: movimientoRepo,
		gastoMesRepo:   gastoMesRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *MovimientoGastoService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *MovimientoGastoService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateMovimiento validates the template and records a realized spend
func (s *MovimientoGastoService) CreateMovimiento(m *domain.MovimientoGasto) (*domain.MovimientoGasto, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.gastoMesRepo.GetByID(m.GastoMesID); err != nil {
		return nil, err
	}
	if m.FechaGasto.IsZero() {
		m.FechaGasto = time.Now()
	}
	m.MesAplicacion = util.PrimerDiaDelMes(m.MesAplicacion)

	created, err := s.movimientoRepo.Create(m)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.MovimientoCreado(created))
	return created, nil
}

// GetMovimientos retrieves realized spends, optionally scoped to one month
func (s *MovimientoGastoService) GetMovimientos(mesAplicacion *time.Time) ([]*domain.MovimientoGastoDetalle, error) {
	if mesAplicacion != nil {
		return s.movimientoRepo.GetByMes(util.PrimerDiaDelMes(*mesAplicacion))
	}
	return s.movimientoRepo.GetAll()
}

// GetMovimientoByID retrieves a realized spend by ID
func (s *MovimientoGastoService) GetMovimientoByID(id int32) (*domain.MovimientoGasto, error) {
	return s.movimientoRepo.GetByID(id)
}

// UpdateMovimiento validates and updates a realized spend
func (s *MovimientoGastoService) UpdateMovimiento(m *domain.MovimientoGasto) (*domain.MovimientoGasto, error) {
	if _, err := s.movimientoRepo.GetByID(m.ID); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.MesAplicacion = util.PrimerDiaDelMes(m.MesAplicacion)
	return s.movimientoRepo.Update(m)
}

// DeleteMovimiento deletes a realized spend
func (s *MovimientoGastoService) DeleteMovimiento(id int32) error {
	return s.movimientoRepo.Delete(id)
}

// GenerarRecurrentes materializes the month's recurring expense templates
// into realized spend rows at their planned amount. Templates that already
// have a movement in the month are skipped, so the call is idempotent.
func (s *MovimientoGastoService) GenerarRecurrentes(mesAplicacion time.Time) (int, error) {
	mes := util.PrimerDiaDelMes(mesAplicacion)

	recurrentes, err := s.gastoMesRepo.GetRecurrentesActivos()
	if err != nil {
		return 0, err
	}

	creados := 0
	for _, gasto := range recurrentes {
		existe, err := s.movimientoRepo.ExisteParaMes(gasto.ID, mes)
		if err != nil {
			return creados, err
		}
		if existe {
			continue
		}

		_, err = s.movimientoRepo.Create(&domain.MovimientoGasto{
			GastoMesID:           gasto.ID,
			MontoReal:            gasto.MontoBase,
			FechaGasto:           time.Now(),
			MesAplicacion:        mes,
			DescripcionAdicional: "Generado automaticamente",
		})
		if err != nil {
			return creados, err
		}
		creados++
	}

	log.Info().
		Str("mes", mes.Format("2006-01")).
		Int("creados", creados).
		Int("recurrentes", len(recurrentes)).
		Msg("Recurring expenses materialized")

	return creados, nil
}
