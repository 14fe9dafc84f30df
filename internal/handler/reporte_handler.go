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

// ReporteHandler handles report HTTP requests
type ReporteHandler struct {
	reporteService *service.ReporteService
}

// NewReporteHandler creates a new ReporteHandler
func NewReporteHandler(reporteService *service.ReporteService) *ReporteHandler {
	return &ReporteHandler{reporteService: reporteService}
}

// MorosoResponse is one indebted unit in the delinquency report
type MorosoResponse struct {
	PropietarioID     int32  `json:"propietarioId"`
	Propietario       string `json:"propietario"`
	InmuebleID        int32  `json:"inmuebleId"`
	Inmueble          string `json:"inmueble"`
	SaldoPendiente    string `json:"saldoPendiente"`
	RecibosPendientes int    `json:"recibosPendientes"`
	EmisionMasAntigua string `json:"emisionMasAntigua"`
	EsMoroso          bool   `json:"esMoroso"`
}

// FlujoCajaMesResponse is one month of verified payment volume
type FlujoCajaMesResponse struct {
	Mes   string `json:"mes"`
	Total string `json:"total"`
}

// GetMorosos handles GET /api/reportes/morosos
func (h *ReporteHandler) GetMorosos(c echo.Context) error {
	morosos, err := h.reporteService.Morosos()
	if err != nil {
		log.Error().Err(err).Msg("Failed to build morosos report")
		return NewInternalError(c, "Failed to build morosos report")
	}

	resp := make([]MorosoResponse, 0, len(morosos))
	for _, m := range morosos {
		resp = append(resp, MorosoResponse{
			PropietarioID:     m.PropietarioID,
			Propietario:       m.Propietario,
			InmuebleID:        m.InmuebleID,
			Inmueble:          m.Inmueble,
			SaldoPendiente:    m.SaldoPendiente.StringFixed(2),
			RecibosPendientes: m.RecibosPendientes,
			EmisionMasAntigua: m.EmisionMasAntigua.Format("2006-01-02"),
			EsMoroso:          m.EsMoroso,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCreditos handles GET /api/reportes/creditos
func (h *ReporteHandler) GetCreditos(c echo.Context) error {
	creditos, err := h.reporteService.CreditosPropietarios()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get creditos")
		return NewInternalError(c, "Failed to get creditos")
	}
	if creditos == nil {
		creditos = []*domain.CreditoDetalle{}
	}
	return c.JSON(http.StatusOK, creditos)
}

// GetCreditoPropietario handles GET /api/reportes/creditos/:propietarioId
func (h *ReporteHandler) GetCreditoPropietario(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("propietarioId"))
	if err != nil {
		return NewValidationError(c, "Invalid propietario ID", nil)
	}

	credito, err := h.reporteService.CreditoPropietario(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrPropietarioNoEncontrado) {
			return NewNotFoundError(c, "Propietario not found")
		}
		log.Error().Err(err).Msg("Failed to get credito")
		return NewInternalError(c, "Failed to get credito")
	}
	return c.JSON(http.StatusOK, credito)
}

// GetHistorialPagos handles GET /api/reportes/historial/:propietarioId
func (h *ReporteHandler) GetHistorialPagos(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("propietarioId"))
	if err != nil {
		return NewValidationError(c, "Invalid propietario ID", nil)
	}

	historial, err := h.reporteService.HistorialPagos(int32(id))
	if err != nil {
		log.Error().Err(err).Msg("Failed to get historial de pagos")
		return NewInternalError(c, "Failed to get historial de pagos")
	}
	if historial == nil {
		historial = []*domain.HistorialPagoDetalle{}
	}
	return c.JSON(http.StatusOK, historial)
}

// GetFlujoCaja handles GET /api/reportes/flujo-caja/:year
func (h *ReporteHandler) GetFlujoCaja(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		return NewValidationError(c, "Invalid year", nil)
	}

	meses, err := h.reporteService.FlujoCaja(year)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build flujo de caja report")
		return NewInternalError(c, "Failed to build flujo de caja report")
	}

	resp := make([]FlujoCajaMesResponse, 0, len(meses))
	for _, m := range meses {
		resp = append(resp, FlujoCajaMesResponse{
			Mes:   m.Mes.Format("2006-01"),
			Total: m.Total.StringFixed(2),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
