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

// EdificioHandler handles building-related HTTP requests
type EdificioHandler struct {
	edificioService *service.EdificioService
}

// NewEdificioHandler creates a new EdificioHandler
func NewEdificioHandler(edificioService *service.EdificioService) *EdificioHandler {
	return &EdificioHandler{edificioService: edificioService}
}

// EdificioRequest represents the create/update building request body
type EdificioRequest struct {
	NumeroEdificio string `json:"numeroEdificio"`
	Descripcion    string `json:"descripcion"`
	Estado         string `json:"estado"`
}

// CreateEdificio handles POST /api/edificios
func (h *EdificioHandler) CreateEdificio(c echo.Context) error {
	var req EdificioRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	edificio, err := h.edificioService.CreateEdificio(&domain.Edificio{
		NumeroEdificio: req.NumeroEdificio,
		Descripcion:    req.Descripcion,
		Estado:         domain.Estado(req.Estado),
	})
	if err != nil {
		return h.mapError(c, err, "Failed to create edificio")
	}

	log.Info().Int32("edificio_id", edificio.ID).Str("numero", edificio.NumeroEdificio).Msg("Edificio created")
	return c.JSON(http.StatusCreated, edificio)
}

// GetEdificios handles GET /api/edificios
func (h *EdificioHandler) GetEdificios(c echo.Context) error {
	edificios, err := h.edificioService.GetEdificios()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get edificios")
		return NewInternalError(c, "Failed to get edificios")
	}
	if edificios == nil {
		edificios = []*domain.Edificio{}
	}
	return c.JSON(http.StatusOK, edificios)
}

// GetEdificio handles GET /api/edificios/:id
func (h *EdificioHandler) GetEdificio(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid edificio ID", nil)
	}

	edificio, err := h.edificioService.GetEdificioByID(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to get edificio")
	}
	return c.JSON(http.StatusOK, edificio)
}

// UpdateEdificio handles PUT /api/edificios/:id
func (h *EdificioHandler) UpdateEdificio(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid edificio ID", nil)
	}

	var req EdificioRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	edificio, err := h.edificioService.UpdateEdificio(&domain.Edificio{
		ID:             int32(id),
		NumeroEdificio: req.NumeroEdificio,
		Descripcion:    req.Descripcion,
		Estado:         domain.Estado(req.Estado),
	})
	if err != nil {
		return h.mapError(c, err, "Failed to update edificio")
	}

	log.Info().Int32("edificio_id", edificio.ID).Msg("Edificio updated")
	return c.JSON(http.StatusOK, edificio)
}

// DeleteEdificio handles DELETE /api/edificios/:id
func (h *EdificioHandler) DeleteEdificio(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid edificio ID", nil)
	}

	if err := h.edificioService.DeleteEdificio(int32(id)); err != nil {
		return h.mapError(c, err, "Failed to delete edificio")
	}

	log.Info().Int("edificio_id", id).Msg("Edificio deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *EdificioHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrEdificioNoEncontrado):
		return NewNotFoundError(c, "Edificio not found")
	case errors.Is(err, domain.ErrNumeroEdificioRequerido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "numeroEdificio", Message: "Numero de edificio is required"},
		})
	case errors.Is(err, domain.ErrEstadoInvalido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "estado", Message: "Estado must be Activo or Inactivo"},
		})
	case errors.Is(err, domain.ErrAlreadyExists):
		return NewConflictError(c, "An edificio with this numero already exists")
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
