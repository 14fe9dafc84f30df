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
)

// ReciboHandler handles receipt HTTP requests
type ReciboHandler struct {
	reciboService *service.ReciboService
}

// NewReciboHandler creates a new ReciboHandler
func NewReciboHandler(reciboService *service.ReciboService) *ReciboHandler {
	return &ReciboHandler{reciboService: reciboService}
}

// GenerarRecibosRequest selects the emission date for a generation run.
// An empty fechaEmision means today.
type GenerarRecibosRequest struct {
	FechaEmision string `json:"fechaEmision"`
}

// ActualizarRecibosRequest regenerates a period. Force allows the run to
// proceed when partially paid receipts exist; those receipts are preserved.
type ActualizarRecibosRequest struct {
	FechaEmision string `json:"fechaEmision"`
	Force        bool   `json:"force"`
}

// ActualizarEstadosResponse reports the state reconciliation counts
type ActualizarEstadosResponse struct {
	RecibosPagados    int `json:"recibosPagados"`
	RecibosPendientes int `json:"recibosPendientes"`
}

func parseFechaEmision(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// GenerarRecibos handles POST /api/recibos/generar
func (h *ReciboHandler) GenerarRecibos(c echo.Context) error {
	var req GenerarRecibosRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	fecha, err := parseFechaEmision(req.FechaEmision)
	if err != nil {
		return NewValidationError(c, "Invalid fechaEmision, expected YYYY-MM-DD", nil)
	}

	resultado, err := h.reciboService.GenerarRecibos(fecha)
	if err != nil {
		return h.mapError(c, err, "Failed to generate recibos")
	}

	return c.JSON(http.StatusCreated, resultado)
}

// ActualizarRecibos handles POST /api/recibos/actualizar
func (h *ReciboHandler) ActualizarRecibos(c echo.Context) error {
	var req ActualizarRecibosRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	fecha, err := parseFechaEmision(req.FechaEmision)
	if err != nil {
		return NewValidationError(c, "Invalid fechaEmision, expected YYYY-MM-DD", nil)
	}

	resultado, err := h.reciboService.ActualizarRecibos(fecha, req.Force)
	if err != nil {
		return h.mapError(c, err, "Failed to regenerate recibos")
	}

	return c.JSON(http.StatusOK, resultado)
}

// ActualizarEstados handles POST /api/recibos/actualizar-estados
func (h *ReciboHandler) ActualizarEstados(c echo.Context) error {
	pagados, pendientes, err := h.reciboService.ActualizarEstados()
	if err != nil {
		log.Error().Err(err).Msg("Failed to reconcile recibo states")
		return NewInternalError(c, "Failed to reconcile recibo states")
	}

	log.Info().Int("pagados", pagados).Int("pendientes", pendientes).Msg("Recibo states reconciled")
	return c.JSON(http.StatusOK, ActualizarEstadosResponse{
		RecibosPagados:    pagados,
		RecibosPendientes: pendientes,
	})
}

// GetRecibos handles GET /api/recibos with optional filters:
// mes=YYYY-MM-DD, numeroRecibo, propietarioId, inmuebleId, pendientes=true
func (h *ReciboHandler) GetRecibos(c echo.Context) error {
	filtros := &domain.ReciboFiltros{}

	if raw := c.QueryParam("mes"); raw != "" {
		parsed, err := util.ParseMesAplicacion(raw)
		if err != nil {
			return NewValidationError(c, "Invalid mes filter, expected YYYY-MM-DD", nil)
		}
		mes := parsed.Format("2006-01")
		filtros.Mes = &mes
	}
	if raw := c.QueryParam("numeroRecibo"); raw != "" {
		filtros.NumeroRecibo = &raw
	}
	if raw := c.QueryParam("propietarioId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid propietarioId filter", nil)
		}
		propietarioID := int32(id)
		filtros.PropietarioID = &propietarioID
	}
	if raw := c.QueryParam("inmuebleId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid inmuebleId filter", nil)
		}
		inmuebleID := int32(id)
		filtros.InmuebleID = &inmuebleID
	}
	filtros.SoloPendientes = c.QueryParam("pendientes") == "true"

	recibos, err := h.reciboService.GetRecibos(filtros)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get recibos")
		return NewInternalError(c, "Failed to get recibos")
	}
	if recibos == nil {
		recibos = []*domain.ReciboDetalle{}
	}
	return c.JSON(http.StatusOK, recibos)
}

// GetRecibo handles GET /api/recibos/:id
func (h *ReciboHandler) GetRecibo(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recibo ID", nil)
	}

	recibo, err := h.reciboService.GetReciboByID(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to get recibo")
	}
	return c.JSON(http.StatusOK, recibo)
}

func (h *ReciboHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrReciboNoEncontrado):
		return NewNotFoundError(c, "Recibo not found")
	case errors.Is(err, domain.ErrReciboConPagoParcial):
		return NewConflictError(c, "The period has partially paid recibos; retry with force to preserve them")
	case errors.Is(err, domain.ErrAlicuotasNoSuman):
		return NewConflictError(c, "Alicuotas do not sum to 1; fix the roster before generating")
	case errors.Is(err, domain.ErrGastoSinEdificios):
		return NewConflictError(c, "A No_Comun gasto has no applicable edificios")
	case errors.Is(err, domain.ErrEdificiosSinInmuebles):
		return NewConflictError(c, "The applicable edificios have no inmuebles")
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
