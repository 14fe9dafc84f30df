package service

import (
	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
)

// TipoGastoService handles expense type business logic
type TipoGastoService struct {
	tipoGastoRepo domain.TipoGastoRepository
}

// NewTipoGastoService creates a new TipoGastoService
func NewTipoGastoService(tipoGastoRepo domain.TipoGastoRepository) *TipoGastoService {
	return &TipoGastoService{tipoGastoRepo: tipoGastoRepo}
}

// CreateTipoGasto validates and creates a new expense type
func (s *TipoGastoService) CreateTipoGasto(t *domain.TipoGasto) (*domain.TipoGasto, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return s.tipoGastoRepo.Create(t)
}

// GetTiposGasto retrieves all expense types
func (s *TipoGastoService) GetTiposGasto() ([]*domain.TipoGasto, error) {
	return s.tipoGastoRepo.GetAll()
}

// GetTipoGastoByID retrieves an expense type by ID
func (s *TipoGastoService) GetTipoGastoByID(id int32) (*domain.TipoGasto, error) {
	return s.tipoGastoRepo.GetByID(id)
}

// UpdateTipoGasto validates and updates an expense type
func (s *TipoGastoService) UpdateTipoGasto(t *domain.TipoGasto) (*domain.TipoGasto, error) {
	if _, err := s.tipoGastoRepo.GetByID(t.ID); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return s.tipoGastoRepo.Update(t)
}

// DeleteTipoGasto deletes an expense type
func (s *TipoGastoService) DeleteTipoGasto(id int32) error {
	return s.tipoGastoRepo.Delete(id)
}
