package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ConfiguracionHandler handles receipt scheduling configuration requests
type ConfiguracionHandler struct {
	configService *service.ConfiguracionService
}

// NewConfiguracionHandler creates a new ConfiguracionHandler
func NewConfiguracionHandler(configService *service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{configService: configService}
}

// ConfiguracionRequest represents the create/update configuration request body
type ConfiguracionRequest struct {
	DiaGeneracion   int  `json:"diaGeneracion"`
	DiaRecordatorio int  `json:"diaRecordatorio"`
	Activo          bool `json:"activo"`
}

// CreateConfiguracion handles POST /api/configuracion-recibos
func (h *ConfiguracionHandler) CreateConfiguracion(c echo.Context) error {
	var req ConfiguracionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	config, err := h.configService.CreateConfiguracion(&domain.ConfiguracionRecibos{
		DiaGeneracion:   req.DiaGeneracion,
		DiaRecordatorio: req.DiaRecordatorio,
		Activo:          req.Activo,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to create configuracion")
	}

	log.Info().Int32("configuracion_id", config.ID).Msg("Configuracion created")
	return c.JSON(http.StatusCreated, config)
}

// GetConfiguraciones handles GET /api/configuracion-recibos
func (h *ConfiguracionHandler) GetConfiguraciones(c echo.Context) error {
	configs, err := h.configService.GetConfiguraciones()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get configuraciones")
		return NewInternalError(c, "Failed to get configuraciones")
	}
	if configs == nil {
		configs = []*domain.ConfiguracionRecibos{}
	}
	return c.JSON(http.StatusOK, configs)
}

// GetConfiguracionActiva handles GET /api/configuracion-recibos/activa
func (h *ConfiguracionHandler) GetConfiguracionActiva(c echo.Context) error {
	config, err := h.configService.GetConfiguracionActiva()
	if err != nil {
		return h.mapError(c, err, "Failed to get active configuracion")
	}
	return c.JSON(http.StatusOK, config)
}

// UpdateConfiguracion handles PUT /api/configuracion-recibos/:id
func (h *ConfiguracionHandler) UpdateConfiguracion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid configuracion ID", nil)
	}

	var req ConfiguracionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	config, err := h.configService.UpdateConfiguracion(&domain.ConfiguracionRecibos{
		ID:              int32(id),
		DiaGeneracion:   req.DiaGeneracion,
		DiaRecordatorio: req.DiaRecordatorio,
		Activo:          req.Activo,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to update configuracion")
	}

	log.Info().Int32("configuracion_id", config.ID).Msg("Configuracion updated")
	return c.JSON(http.StatusOK, config)
}

// DeleteConfiguracion handles DELETE /api/configuracion-recibos/:id
func (h *ConfiguracionHandler) DeleteConfiguracion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid configuracion ID", nil)
	}

	if err := h.configService.DeleteConfiguracion(int32(id)); err != nil {
		return h.mapError(c, err, "Failed to delete configuracion")
	}

	log.Info().Int("configuracion_id", id).Msg("Configuracion deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *ConfiguracionHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrConfiguracionNoEncontrada):
		return NewNotFoundError(c, "Configuracion not found")
	case errors.Is(err, domain.ErrDiaInvalido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "diaGeneracion", Message: "Days must be between 1 and 31"},
		})
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
