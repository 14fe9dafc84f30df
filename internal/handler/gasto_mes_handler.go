package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GastoMesHandler handles monthly expense template HTTP requests
type GastoMesHandler struct {
	gastoMesService *service.GastoMesService
}

// NewGastoMesHandler creates a new GastoMesHandler
func NewGastoMesHandler(gastoMesService *service.GastoMesService) *GastoMesHandler {
	return &GastoMesHandler{gastoMesService: gastoMesService}
}

// GastoMesRequest represents the create/update monthly expense request body.
// MontoBase travels as a string to avoid float precision loss.
type GastoMesRequest struct {
	ConceptoID       int32   `json:"conceptoId"`
	MontoBase        string  `json:"montoBase"`
	EsRecurrente     bool    `json:"esRecurrente"`
	TipoDistribucion string  `json:"tipoDistribucion"`
	Estado           string  `json:"estado"`
	EdificioIDs      []int32 `json:"edificioIds"`
}

func (r *GastoMesRequest) toDomain(id int32) (*domain.GastoMes, error) {
	monto, err := decimal.NewFromString(r.MontoBase)
	if err != nil {
		return nil, domain.ErrMontoBaseInvalido
	}
	return &domain.GastoMes{
		ID:               id,
		ConceptoID:       r.ConceptoID,
		MontoBase:        monto,
		EsRecurrente:     r.EsRecurrente,
		TipoDistribucion: domain.TipoDistribucion(r.TipoDistribucion),
		Estado:           domain.Estado(r.Estado),
	}, nil
}

// CreateGastoMes handles POST /api/gastos-mes
func (h *GastoMesHandler) CreateGastoMes(c echo.Context) error {
	var req GastoMesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	gasto, err := req.toDomain(0)
	if err != nil {
		return h.mapError(c, err, "Failed to create gasto del mes")
	}

	detalle, err := h.gastoMesService.CreateGastoMes(gasto, req.EdificioIDs)
	if err != nil {
		return h.mapError(c, err, "Failed to create gasto del mes")
	}

	log.Info().
		Int32("gasto_mes_id", detalle.ID).
		Str("distribucion", string(detalle.TipoDistribucion)).
		Msg("Gasto del mes created")
	return c.JSON(http.StatusCreated, detalle)
}

// GetGastosMes handles GET /api/gastos-mes
func (h *GastoMesHandler) GetGastosMes(c echo.Context) error {
	gastos, err := h.gastoMesService.GetGastosMes()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get gastos del mes")
		return NewInternalError(c, "Failed to get gastos del mes")
	}
	if gastos == nil {
		gastos = []*domain.GastoMesDetalle{}
	}
	return c.JSON(http.StatusOK, gastos)
}

// GetGastoMes handles GET /api/gastos-mes/:id
func (h *GastoMesHandler) GetGastoMes(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid gasto del mes ID", nil)
	}

	gasto, err := h.gastoMesService.GetGastoMesByID(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to get gasto del mes")
	}
	return c.JSON(http.StatusOK, gasto)
}

// UpdateGastoMes handles PUT /api/gastos-mes/:id
func (h *GastoMesHandler) UpdateGastoMes(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid gasto del mes ID", nil)
	}

	var req GastoMesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	gasto, err := req.toDomain(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to update gasto del mes")
	}

	detalle, err := h.gastoMesService.UpdateGastoMes(gasto)
	if err != nil {
		return h.mapError(c, err, "Failed to update gasto del mes")
	}

	log.Info().Int32("gasto_mes_id", detalle.ID).Msg("Gasto del mes updated")
	return c.JSON(http.StatusOK, detalle)
}

// DeleteGastoMes handles DELETE /api/gastos-mes/:id
func (h *GastoMesHandler) DeleteGastoMes(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid gasto del mes ID", nil)
	}

	if err := h.gastoMesService.DeleteGastoMes(int32(id)); err != nil {
		return h.mapError(c, err, "Failed to delete gasto del mes")
	}

	log.Info().Int("gasto_mes_id", id).Msg("Gasto del mes deleted")
	return c.NoContent(http.StatusNoContent)
}

// AgregarEdificio handles POST /api/gastos-mes/:id/edificios/:edificioId
func (h *GastoMesHandler) AgregarEdificio(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid gasto del mes ID", nil)
	}
	edificioID, err := strconv.Atoi(c.Param("edificioId"))
	if err != nil {
		return NewValidationError(c, "Invalid edificio ID", nil)
	}

	if err := h.gastoMesService.AgregarEdificio(int32(id), int32(edificioID)); err != nil {
		return h.mapError(c, err, "Failed to assign edificio to gasto del mes")
	}

	log.Info().Int("gasto_mes_id", id).Int("edificio_id", edificioID).Msg("Edificio assigned to gasto del mes")
	return c.NoContent(http.StatusNoContent)
}

// EliminarEdificio handles DELETE /api/gastos-mes/:id/edificios/:edificioId
func (h *GastoMesHandler) EliminarEdificio(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid gasto del mes ID", nil)
	}
	edificioID, err := strconv.Atoi(c.Param("edificioId"))
	if err != nil {
		return NewValidationError(c, "Invalid edificio ID", nil)
	}

	if err := h.gastoMesService.EliminarEdificio(int32(id), int32(edificioID)); err != nil {
		return h.mapError(c, err, "Failed to remove edificio from gasto del mes")
	}

	log.Info().Int("gasto_mes_id", id).Int("edificio_id", edificioID).Msg("Edificio removed from gasto del mes")
	return c.NoContent(http.StatusNoContent)
}

func (h *GastoMesHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrGastoMesNoEncontrado):
		return NewNotFoundError(c, "Gasto del mes not found")
	case errors.Is(err, domain.ErrConceptoNoEncontrado):
		return NewNotFoundError(c, "Concepto de gasto not found")
	case errors.Is(err, domain.ErrEdificioNoEncontrado):
		return NewNotFoundError(c, "Edificio not found")
	case errors.Is(err, domain.ErrMontoBaseInvalido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "montoBase", Message: "Monto base must be a positive amount"},
		})
	case errors.Is(err, domain.ErrGastoSinEdificios):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "edificioIds", Message: "Edificios_Especificos distribution requires at least one edificio"},
		})
	case errors.Is(err, domain.ErrDistribucionInvalida):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "tipoDistribucion", Message: "Tipo de distribucion must be Todos or Edificios_Especificos"},
		})
	case errors.Is(err, domain.ErrEstadoInvalido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "estado", Message: "Estado must be Activo or Inactivo"},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "conceptoId", Message: "Concepto reference is required"},
		})
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
