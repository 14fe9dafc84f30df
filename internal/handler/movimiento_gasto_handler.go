package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/service"
	"github.com/AdrianLS4/gestion-inmuebles/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MovimientoGastoHandler handles realized spend HTTP requests
type MovimientoGastoHandler struct {
	movimientoService *service.MovimientoGastoService
}

// NewMovimientoGastoHandler creates a new MovimientoGastoHandler
func NewMovimientoGastoHandler(movimientoService *service.MovimientoGastoService) *MovimientoGastoHandler {
	return &MovimientoGastoHandler{movimientoService: movimientoService}
}

// MovimientoGastoRequest represents the create/update realized spend request
// body. Dates travel as "YYYY-MM-DD" strings and the amount as a string.
type MovimientoGastoRequest struct {
	GastoMesID           int32  `json:"gastoMesId"`
	MontoReal            string `json:"montoReal"`
	FechaGasto           string `json:"fechaGasto"`
	MesAplicacion        string `json:"mesAplicacion"`
	DescripcionAdicional string `json:"descripcionAdicional"`
}

// GenerarRecurrentesRequest selects the month to materialize
type GenerarRecurrentesRequest struct {
	MesAplicacion string `json:"mesAplicacion"`
}

// GenerarRecurrentesResponse reports how many movements were created
type GenerarRecurrentesResponse struct {
	MesAplicacion      string `json:"mesAplicacion"`
	MovimientosCreados int    `json:"movimientosCreados"`
}

func (r *MovimientoGastoRequest) toDomain(id int32) (*domain.MovimientoGasto, error) {
	monto, err := decimal.NewFromString(r.MontoReal)
	if err != nil {
		return nil, domain.ErrMontoRealInvalido
	}
	mes, err := util.ParseMesAplicacion(r.MesAplicacion)
	if err != nil {
		return nil, domain.ErrMesAplicacionInvalido
	}

	var fechaGasto time.Time
	if r.FechaGasto != "" {
		fechaGasto, err = time.Parse("2006-01-02", r.FechaGasto)
		if err != nil {
			return nil, domain.ErrMesAplicacionInvalido
		}
	}

	return &domain.MovimientoGasto{
		ID:                   id,
		GastoMesID:           r.GastoMesID,
		MontoReal:            monto,
		FechaGasto:           fechaGasto,
		MesAplicacion:        mes,
		DescripcionAdicional: r.DescripcionAdicional,
	}, nil
}

// CreateMovimiento handles POST /api/movimientos-gastos
func (h *MovimientoGastoHandler) CreateMovimiento(c echo.Context) error {
	var req MovimientoGastoRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	movimiento, err := req.toDomain(0)
	if err == nil {
		movimiento, err = h.movimientoService.CreateMovimiento(movimiento)
	}
	if err != nil {
		return h.mapError(c, err, "Failed to create movimiento de gasto")
	}

	log.Info().
		Int32("movimiento_id", movimiento.ID).
		Str("mes_aplicacion", movimiento.MesAplicacion.Format("2006-01")).
		Msg("Movimiento de gasto created")
	return c.JSON(http.StatusCreated, movimiento)
}

// GetMovimientos handles GET /api/movimientos-gastos?mes=YYYY-MM-DD
func (h *MovimientoGastoHandler) GetMovimientos(c echo.Context) error {
	var mes *time.Time
	if raw := c.QueryParam("mes"); raw != "" {
		parsed, err := util.ParseMesAplicacion(raw)
		if err != nil {
			return NewValidationError(c, "Invalid mes filter, expected YYYY-MM-DD", nil)
		}
		mes = &parsed
	}

	movimientos, err := h.movimientoService.GetMovimientos(mes)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get movimientos de gasto")
		return NewInternalError(c, "Failed to get movimientos de gasto")
	}
	if movimientos == nil {
		movimientos = []*domain.MovimientoGastoDetalle{}
	}
	return c.JSON(http.StatusOK, movimientos)
}

// GetMovimiento handles GET /api/movimientos-gastos/:id
func (h *MovimientoGastoHandler) GetMovimiento(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid movimiento ID", nil)
	}

	movimiento, err := h.movimientoService.GetMovimientoByID(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to get movimiento de gasto")
	}
	return c.JSON(http.StatusOK, movimiento)
}

// UpdateMovimiento handles PUT /api/movimientos-gastos/:id
func (h *MovimientoGastoHandler) UpdateMovimiento(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid movimiento ID", nil)
	}

	var req MovimientoGastoRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	movimiento, err := req.toDomain(int32(id))
	if err == nil {
		movimiento, err = h.movimientoService.UpdateMovimiento(movimiento)
	}
	if err != nil {
		return h.mapError(c, err, "Failed to update movimiento de gasto")
	}

	log.Info().Int32("movimiento_id", movimiento.ID).Msg("Movimiento de gasto updated")
	return c.JSON(http.StatusOK, movimiento)
}

// DeleteMovimiento handles DELETE /api/movimientos-gastos/:id
func (h *MovimientoGastoHandler) DeleteMovimiento(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid movimiento ID", nil)
	}

	if err := h.movimientoService.DeleteMovimiento(int32(id)); err != nil {
		return h.mapError(c, err, "Failed to delete movimiento de gasto")
	}

	log.Info().Int("movimiento_id", id).Msg("Movimiento de gasto deleted")
	return c.NoContent(http.StatusNoContent)
}

// GenerarRecurrentes handles POST /api/movimientos-gastos/generar-recurrentes
func (h *MovimientoGastoHandler) GenerarRecurrentes(c echo.Context) error {
	var req GenerarRecurrentesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	mes := time.Now()
	if req.MesAplicacion != "" {
		parsed, err := util.ParseMesAplicacion(req.MesAplicacion)
		if err != nil {
			return NewValidationError(c, "Invalid mesAplicacion, expected YYYY-MM-DD", nil)
		}
		mes = parsed
	}

	creados, err := h.movimientoService.GenerarRecurrentes(mes)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate recurring movimientos")
		return NewInternalError(c, "Failed to generate recurring movimientos")
	}

	return c.JSON(http.StatusOK, GenerarRecurrentesResponse{
		MesAplicacion:      util.PrimerDiaDelMes(mes).Format("2006-01"),
		MovimientosCreados: creados,
	})
}

func (h *MovimientoGastoHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrMovimientoNoEncontrado):
		return NewNotFoundError(c, "Movimiento de gasto not found")
	case errors.Is(err, domain.ErrGastoMesNoEncontrado):
		return NewNotFoundError(c, "Gasto del mes not found")
	case errors.Is(err, domain.ErrMontoRealInvalido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "montoReal", Message: "Monto real must be a positive amount"},
		})
	case errors.Is(err, domain.ErrMesAplicacionInvalido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "mesAplicacion", Message: "Dates must use the YYYY-MM-DD format"},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "gastoMesId", Message: "Gasto del mes reference is required"},
		})
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
