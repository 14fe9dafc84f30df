package service

import (
	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
)

// PropietarioService handles owner business logic
type PropietarioService struct {
	propietarioRepo domain.PropietarioRepository
}

// NewPropietarioService creates a new PropietarioService
func NewPropietarioService(propietarioRepo domain.PropietarioRepository) *PropietarioService {
	return &PropietarioService{propietarioRepo: propietarioRepo}
}

// CreatePropietario validates and creates a new owner
func (s *PropietarioService) CreatePropietario(p *domain.Propietario) (*domain.Propietario, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.propietarioRepo.Create(p)
}

// GetPropietarios retrieves all owners
func (s *PropietarioService) GetPropietarios() ([]*domain.Propietario, error) {
	return s.propietarioRepo.GetAll()
}

// GetPropietarioByID retrieves an owner by ID
func (s *PropietarioService) GetPropietarioByID(id int32) (*domain.Propietario, error) {
	return s.propietarioRepo.GetByID(id)
}

// UpdatePropietario validates and updates an owner
func (s *PropietarioService) UpdatePropietario(p *domain.Propietario) (*domain.Propietario, error) {
	if _, err := s.propietarioRepo.GetByID(p.ID); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.propietarioRepo.Update(p)
}

// DeletePropietario deletes an owner
func (s *PropietarioService) DeletePropietario(id int32) error {
	return s.propietarioRepo.Delete(id)
}
