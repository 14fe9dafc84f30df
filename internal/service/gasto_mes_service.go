package service

import (
	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
)

// GastoMesService handles monthly expense template business logic
type GastoMesService struct {
	gastoMesRepo domain.GastoMesRepository
	conceptoRepo domain.ConceptoGastoRepository
	edificioRepo domain.EdificioRepository
}

// NewGastoMesService creates a new GastoMesService
func NewGastoMesService(gastoMesRepo domain.GastoMesRepository, conceptoRepo domain.ConceptoGastoRepository, edificioRepo domain.EdificioRepository) *GastoMesService {
	return &GastoMesService{
		gastoMesRepo: gastoMesRepo,
		conceptoRepo: conceptoRepo,
		edificioRepo: edificioRepo,
	}
}

// CreateGastoMes validates the concept and creates a new monthly expense.
// Building assignments for Edificios_Especificos distributions are created in
// the same call.
func (s *GastoMesService) CreateGastoMes(g *domain.GastoMes, edificioIDs []int32) (*domain.GastoMesDetalle, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.conceptoRepo.GetByID(g.ConceptoID); err != nil {
		return nil, err
	}
	if g.TipoDistribucion == domain.DistribucionEdificios {
		if len(edificioIDs) == 0 {
			return nil, domain.ErrGastoSinEdificios
		}
		for _, id := range edificioIDs {
			if _, err := s.edificioRepo.GetByID(id); err != nil {
				return nil, err
			}
		}
	}

	created, err := s.gastoMesRepo.Create(g)
	if err != nil {
		return nil, err
	}

	if g.TipoDistribucion == domain.DistribucionEdificios {
		for _, id := range edificioIDs {
			if err := s.gastoMesRepo.AgregarEdificio(created.ID, id); err != nil {
				return nil, err
			}
		}
	}

	return s.gastoMesRepo.GetByID(created.ID)
}

// GetGastosMes retrieves all monthly expenses with labels and building sets
func (s *GastoMesService) GetGastosMes() ([]*domain.GastoMesDetalle, error) {
	return s.gastoMesRepo.GetAll()
}

// GetGastoMesByID retrieves a monthly expense by ID
func (s *GastoMesService) GetGastoMesByID(id int32) (*domain.GastoMesDetalle, error) {
	return s.gastoMesRepo.GetByID(id)
}

// UpdateGastoMes validates and updates a monthly expense
func (s *GastoMesService) UpdateGastoMes(g *domain.GastoMes) (*domain.GastoMesDetalle, error) {
	if _, err := s.gastoMesRepo.GetByID(g.ID); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.conceptoRepo.GetByID(g.ConceptoID); err != nil {
		return nil, err
	}
	if _, err := s.gastoMesRepo.Update(g); err != nil {
		return nil, err
	}
	return s.gastoMesRepo.GetByID(g.ID)
}

// DeleteGastoMes deletes a monthly expense
func (s *GastoMesService) DeleteGastoMes(id int32) error {
	return s.gastoMesRepo.Delete(id)
}

// AgregarEdificio assigns a building to a building-scoped expense
func (s *GastoMesService) AgregarEdificio(gastoMesID, edificioID int32) error {
	gasto, err := s.gastoMesRepo.GetByID(gastoMesID)
	if err != nil {
		return err
	}
	if gasto.TipoDistribucion != domain.DistribucionEdificios {
		return domain.ErrDistribucionInvalida
	}
	if _, err := s.edificioRepo.GetByID(edificioID); err != nil {
		return err
	}
	return s.gastoMesRepo.AgregarEdificio(gastoMesID, edificioID)
}

// EliminarEdificio removes a building from a building-scoped expense
func (s *GastoMesService) EliminarEdificio(gastoMesID, edificioID int32) error {
	if _, err := s.gastoMesRepo.GetByID(gastoMesID); err != nil {
		return err
	}
	return s.gastoMesRepo.EliminarEdificio(gastoMesID, edificioID)
}
