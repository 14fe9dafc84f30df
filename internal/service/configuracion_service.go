package service

import (
	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
)

// ConfiguracionService handles receipt scheduling configuration
type ConfiguracionService struct {
	configRepo domain.ConfiguracionRepository
}

// NewConfiguracionService creates a new ConfiguracionService
func NewConfiguracionService(configRepo domain.ConfiguracionRepository) *ConfiguracionService {
	return &ConfiguracionService{configRepo: configRepo}
}

// CreateConfiguracion validates and creates a scheduling configuration
func (s *ConfiguracionService) CreateConfiguracion(c *domain.ConfiguracionRecibos) (*domain.ConfiguracionRecibos, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return s.configRepo.Create(c)
}

// GetConfiguraciones retrieves all scheduling configurations
func (s *ConfiguracionService) GetConfiguraciones() ([]*domain.ConfiguracionRecibos, error) {
	return s.configRepo.GetAll()
}

// GetConfiguracionActiva retrieves the active scheduling configuration
func (s *ConfiguracionService) GetConfiguracionActiva() (*domain.ConfiguracionRecibos, error) {
	return s.configRepo.GetActiva()
}

// UpdateConfiguracion validates and updates a scheduling configuration
func (s *ConfiguracionService) UpdateConfiguracion(c *domain.ConfiguracionRecibos) (*domain.ConfiguracionRecibos, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return s.configRepo.Update(c)
}

// DeleteConfiguracion deletes a scheduling configuration
func (s *ConfiguracionService) DeleteConfiguracion(id int32) error {
	return s.configRepo.Delete(id)
}
