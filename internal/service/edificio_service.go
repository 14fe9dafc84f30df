package service

import (
	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
)

// EdificioService handles building business logic
type EdificioService struct {
	edificioRepo domain.EdificioRepository
}

// NewEdificioService creates a new EdificioService
func NewEdificioService(edificioRepo domain.EdificioRepository) *EdificioService {
	return &EdificioService{edificioRepo: edificioRepo}
}

// CreateEdificio validates and creates a new building
func (s *EdificioService) CreateEdificio(e *domain.Edificio) (*domain.Edificio, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return s.edificioRepo.Create(e)
}

// GetEdificios retrieves all buildings
func (s *EdificioService) GetEdificios() ([]*domain.Edificio, error) {
	return s.edificioRepo.GetAll()
}

// GetEdificioByID retrieves a building by ID
func (s *EdificioService) GetEdificioByID(id int32) (*domain.Edificio, error) {
	return s.edificioRepo.GetByID(id)
}

// UpdateEdificio validates and updates a building
func (s *EdificioService) UpdateEdificio(e *domain.Edificio) (*domain.Edificio, error) {
	if _, err := s.edificioRepo.GetByID(e.ID); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return s.edificioRepo.Update(e)
}

// DeleteEdificio deletes a building
func (s *EdificioService) DeleteEdificio(id int32) error {
	return s.edificioRepo.Delete(id)
}
