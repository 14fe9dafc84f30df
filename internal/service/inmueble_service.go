package service

import (
	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/shopspring/decimal"
)

// InmuebleService handles unit business logic
type InmuebleService struct {
	inmuebleRepo    domain.InmuebleRepository
	propietarioRepo domain.PropietarioRepository
	edificioRepo    domain.EdificioRepository
}

// NewInmuebleService creates a new InmuebleService
func NewInmuebleService(inmuebleRepo domain.InmuebleRepository, propietarioRepo domain.PropietarioRepository, edificioRepo domain.EdificioRepository) *InmuebleService {
	return &InmuebleService{
		inmuebleRepo:    inmuebleRepo,
		propietarioRepo: propietarioRepo,
		edificioRepo:    edificioRepo,
	}
}

// CreateInmueble validates references and creates a new unit
func (s *InmuebleService) CreateInmueble(i *domain.Inmueble) (*domain.Inmueble, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.propietarioRepo.GetByID(i.PropietarioID); err != nil {
		return nil, err
	}
	if _, err := s.edificioRepo.GetByID(i.EdificioID); err != nil {
		return nil, err
	}
	return s.inmuebleRepo.Create(i)
}

// GetInmuebles retrieves all units with owner and building labels
func (s *InmuebleService) GetInmuebles() ([]*domain.InmuebleDetalle, error) {
	return s.inmuebleRepo.GetAllDetalle()
}

// GetInmuebleByID retrieves a unit by ID
func (s *InmuebleService) GetInmuebleByID(id int32) (*domain.Inmueble, error) {
	return s.inmuebleRepo.GetByID(id)
}

// UpdateInmueble validates references and updates a unit
func (s *InmuebleService) UpdateInmueble(i *domain.Inmueble) (*domain.Inmueble, error) {
	if _, err := s.inmuebleRepo.GetByID(i.ID); err != nil {
		return nil, err
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.propietarioRepo.GetByID(i.PropietarioID); err != nil {
		return nil, err
	}
	if _, err := s.edificioRepo.GetByID(i.EdificioID); err != nil {
		return nil, err
	}
	return s.inmuebleRepo.Update(i)
}

// DeleteInmueble deletes a unit
func (s *InmuebleService) DeleteInmueble(id int32) error {
	return s.inmuebleRepo.Delete(id)
}

// SumaAlicuotas reports the current quota sum and whether it is consistent
// with a full distribution.
func (s *InmuebleService) SumaAlicuotas() (decimal.Decimal, error) {
	inmuebles, err := s.inmuebleRepo.GetAll()
	if err != nil {
		return decimal.Zero, err
	}
	suma, err := domain.ValidarAlicuotas(inmuebles)
	if err != nil {
		return suma, err
	}
	return suma, nil
}
