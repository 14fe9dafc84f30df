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

// TipoGastoHandler handles expense type HTTP requests
type TipoGastoHandler struct {
	tipoGastoService *service.TipoGastoService
}

// NewTipoGastoHandler creates a new TipoGastoHandler
func NewTipoGastoHandler(tipoGastoService *service.TipoGastoService) *TipoGastoHandler {
	return &TipoGastoHandler{tipoGastoService: tipoGastoService}
}

// TipoGastoRequest represents the create/update expense type request body
type TipoGastoRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	TipoCalculo string `json:"tipoCalculo"`
	Estado      string `json:"estado"`
}

// CreateTipoGasto handles POST /api/tipos-gastos
func (h *TipoGastoHandler) CreateTipoGasto(c echo.Context) error {
	var req TipoGastoRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	tipo, err := h.tipoGastoService.CreateTipoGasto(&domain.TipoGasto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		TipoCalculo: domain.TipoCalculo(req.TipoCalculo),
		Estado:      domain.Estado(req.Estado),
	})
	if err != nil {
		return h.mapError(c, err, "Failed to create tipo de gasto")
	}

	log.Info().Int32("tipo_gasto_id", tipo.ID).Str("tipo_calculo", string(tipo.TipoCalculo)).Msg("Tipo de gasto created")
	return c.JSON(http.StatusCreated, tipo)
}

// GetTiposGasto handles GET /api/tipos-gastos
func (h *TipoGastoHandler) GetTiposGasto(c echo.Context) error {
	tipos, err := h.tipoGastoService.GetTiposGasto()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get tipos de gasto")
		return NewInternalError(c, "Failed to get tipos de gasto")
	}
	if tipos == nil {
		tipos = []*domain.TipoGasto{}
	}
	return c.JSON(http.StatusOK, tipos)
}

// GetTipoGasto handles GET /api/tipos-gastos/:id
func (h *TipoGastoHandler) GetTipoGasto(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid tipo de gasto ID", nil)
	}

	tipo, err := h.tipoGastoService.GetTipoGastoByID(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to get tipo de gasto")
	}
	return c.JSON(http.StatusOK, tipo)
}

// UpdateTipoGasto handles PUT /api/tipos-gastos/:id
func (h *TipoGastoHandler) UpdateTipoGasto(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid tipo de gasto ID", nil)
	}

	var req TipoGastoRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	tipo, err := h.tipoGastoService.UpdateTipoGasto(&domain.TipoGasto{
		ID:          int32(id),
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		TipoCalculo: domain.TipoCalculo(req.TipoCalculo),
		Estado:      domain.Estado(req.Estado),
	})
	if err != nil {
		return h.mapError(c, err, "Failed to update tipo de gasto")
	}

	log.Info().Int32("tipo_gasto_id", tipo.ID).Msg("Tipo de gasto updated")
	return c.JSON(http.StatusOK, tipo)
}

// DeleteTipoGasto handles DELETE /api/tipos-gastos/:id
func (h *TipoGastoHandler) DeleteTipoGasto(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid tipo de gasto ID", nil)
	}

	if err := h.tipoGastoService.DeleteTipoGasto(int32(id)); err != nil {
		return h.mapError(c, err, "Failed to delete tipo de gasto")
	}

	log.Info().Int("tipo_gasto_id", id).Msg("Tipo de gasto deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *TipoGastoHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrTipoGastoNoEncontrado):
		return NewNotFoundError(c, "Tipo de gasto not found")
	case errors.Is(err, domain.ErrNombreRequerido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "nombre", Message: "Nombre is required"},
		})
	case errors.Is(err, domain.ErrTipoCalculoInvalido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "tipoCalculo", Message: "Tipo de calculo must be Comun or No_Comun"},
		})
	case errors.Is(err, domain.ErrEstadoInvalido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "estado", Message: "Estado must be Activo or Inactivo"},
		})
	case errors.Is(err, domain.ErrAlreadyExists):
		return NewConflictError(c, "A tipo de gasto with this nombre already exists")
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
