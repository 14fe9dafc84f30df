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

// ConceptoGastoHandler handles expense concept HTTP requests
type ConceptoGastoHandler struct {
	conceptoService *service.ConceptoGastoService
}

// NewConceptoGastoHandler creates a new ConceptoGastoHandler
func NewConceptoGastoHandler(conceptoService *service.ConceptoGastoService) *ConceptoGastoHandler {
	return &ConceptoGastoHandler{conceptoService: conceptoService}
}

// ConceptoGastoRequest represents the create/update concept request body
type ConceptoGastoRequest struct {
	Descripcion string `json:"descripcion"`
	TipoGastoID int32  `json:"tipoGastoId"`
}

// CreateConcepto handles POST /api/conceptos-gastos
func (h *ConceptoGastoHandler) CreateConcepto(c echo.Context) error {
	var req ConceptoGastoRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	concepto, err := h.conceptoService.CreateConcepto(&domain.ConceptoGasto{
		Descripcion: req.Descripcion,
		TipoGastoID: req.TipoGastoID,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to create concepto de gasto")
	}

	log.Info().Int32("concepto_id", concepto.ID).Msg("Concepto de gasto created")
	return c.JSON(http.StatusCreated, concepto)
}

// GetConceptos handles GET /api/conceptos-gastos
func (h *ConceptoGastoHandler) GetConceptos(c echo.Context) error {
	conceptos, err := h.conceptoService.GetConceptos()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get conceptos de gasto")
		return NewInternalError(c, "Failed to get conceptos de gasto")
	}
	if conceptos == nil {
		conceptos = []*domain.ConceptoGastoDetalle{}
	}
	return c.JSON(http.StatusOK, conceptos)
}

// GetConcepto handles GET /api/conceptos-gastos/:id
func (h *ConceptoGastoHandler) GetConcepto(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid concepto ID", nil)
	}

	concepto, err := h.conceptoService.GetConceptoByID(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to get concepto de gasto")
	}
	return c.JSON(http.StatusOK, concepto)
}

// UpdateConcepto handles PUT /api/conceptos-gastos/:id
func (h *ConceptoGastoHandler) UpdateConcepto(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid concepto ID", nil)
	}

	var req ConceptoGastoRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	concepto, err := h.conceptoService.UpdateConcepto(&domain.ConceptoGasto{
		ID:          int32(id),
		Descripcion: req.Descripcion,
		TipoGastoID: req.TipoGastoID,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to update concepto de gasto")
	}

	log.Info().Int32("concepto_id", concepto.ID).Msg("Concepto de gasto updated")
	return c.JSON(http.StatusOK, concepto)
}

// DeleteConcepto handles DELETE /api/conceptos-gastos/:id
func (h *ConceptoGastoHandler) DeleteConcepto(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid concepto ID", nil)
	}

	if err := h.conceptoService.DeleteConcepto(int32(id)); err != nil {
		return h.mapError(c, err, "Failed to delete concepto de gasto")
	}

	log.Info().Int("concepto_id", id).Msg("Concepto de gasto deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *ConceptoGastoHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrConceptoNoEncontrado):
		return NewNotFoundError(c, "Concepto de gasto not found")
	case errors.Is(err, domain.ErrTipoGastoNoEncontrado):
		return NewNotFoundError(c, "Tipo de gasto not found")
	case errors.Is(err, domain.ErrDescripcionRequerida):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "descripcion", Message: "Descripcion is required"},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "tipoGastoId", Message: "Tipo de gasto reference is required"},
		})
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
