package service

import (
	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
)

// ConceptoGastoService handles expense concept business logic
type ConceptoGastoService struct {
	conceptoRepo  domain.ConceptoGastoRepository
	tipoGastoRepo domain.TipoGastoRepository
}

// NewConceptoGastoService creates a new ConceptoGastoService
func NewConceptoGastoService(conceptoRepo domain.ConceptoGastoRepository, tipoGastoRepo domain.TipoGastoRepository) *ConceptoGastoService {
	return &ConceptoGastoService{
		conceptoRepo:  conceptoRepo,
		tipoGastoRepo: tipoGastoRepo,
	}
}

// CreateConcepto validates the parent expense type and creates a new concept
func (s *ConceptoGastoService) CreateConcepto(c *domain.ConceptoGasto) (*domain.ConceptoGasto, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.tipoGastoRepo.GetByID(c.TipoGastoID); err != nil {
		return nil, err
	}
	return s.conceptoRepo.Create(c)
}

// GetConceptos retrieves all concepts with their expense type labels
func (s *ConceptoGastoService) GetConceptos() ([]*domain.ConceptoGastoDetalle, error) {
	return s.conceptoRepo.GetAll()
}

// GetConceptoByID retrieves a concept by ID
func (s *ConceptoGastoService) GetConceptoByID(id int32) (*domain.ConceptoGasto, error) {
	return s.conceptoRepo.GetByID(id)
}

// UpdateConcepto validates and updates a concept
func (s *ConceptoGastoService) UpdateConcepto(c *domain.ConceptoGasto) (*domain.ConceptoGasto, error) {
	if _, err := s.conceptoRepo.GetByID(c.ID); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.tipoGastoRepo.GetByID(c.TipoGastoID); err != nil {
		return nil, err
	}
	return s.conceptoRepo.Update(c)
}

// DeleteConcepto deletes a concept
func (s *ConceptoGastoService) DeleteConcepto(id int32) error {
	return s.conceptoRepo.Delete(id)
}
