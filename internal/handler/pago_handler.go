package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PagoHandler handles payment HTTP requests
type PagoHandler struct {
	pagoService *service.PagoService
}

// NewPagoHandler creates a new PagoHandler
func NewPagoHandler(pagoService *service.PagoService) *PagoHandler {
	return &PagoHandler{pagoService: pagoService}
}

// RegistrarPagoRequest records a payment an administrator has already
// confirmed against a bank statement. Monto travels as a string.
type RegistrarPagoRequest struct {
	ReciboID           int32  `json:"reciboId"`
	Monto              string `json:"monto"`
	ReferenciaBancaria string `json:"referenciaBancaria"`
}

// CrearPagoRequest stores an owner-reported payment pending verification
type CrearPagoRequest struct {
	ReciboID           int32  `json:"reciboId"`
	MontoPagado        string `json:"montoPagado"`
	FechaPago          string `json:"fechaPago"`
	ReferenciaBancaria string `json:"referenciaBancaria"`
	MetodoPago         string `json:"metodoPago"`
	Nota               string `json:"nota"`
}

// RechazarPagoRequest carries the rejection reason
type RechazarPagoRequest struct {
	Nota string `json:"nota"`
}

// PagoAplicadoResponse is one receipt touched by an allocation
type PagoAplicadoResponse struct {
	NumeroRecibo  string `json:"numeroRecibo"`
	MontoAplicado string `json:"montoAplicado"`
	SaldoRestante string `json:"saldoRestante"`
}

// ResultadoPagoResponse reports the outcome of applying one payment
type ResultadoPagoResponse struct {
	PagoID          int32                  `json:"pagoId"`
	OperacionID     string                 `json:"operacionId"`
	PagosAplicados  []PagoAplicadoResponse `json:"pagosAplicados"`
	TotalAplicado   string                 `json:"totalAplicado"`
	CreditoRestante string                 `json:"creditoRestante"`
}

// ComprobanteURLResponse carries a temporary link to a stored payment proof
type ComprobanteURLResponse struct {
	URL string `json:"url"`
}

func toResultadoPagoResponse(r *domain.ResultadoPago) ResultadoPagoResponse {
	aplicados := make([]PagoAplicadoResponse, 0, len(r.PagosAplicados))
	for _, a := range r.PagosAplicados {
		aplicados = append(aplicados, PagoAplicadoResponse{
			NumeroRecibo:  a.NumeroRecibo,
			MontoAplicado: a.MontoAplicado.StringFixed(2),
			SaldoRestante: a.SaldoRestante.StringFixed(2),
		})
	}
	return ResultadoPagoResponse{
		PagoID:          r.PagoID,
		OperacionID:     r.OperacionID.String(),
		PagosAplicados:  aplicados,
		TotalAplicado:   r.TotalAplicado.StringFixed(2),
		CreditoRestante: r.CreditoRestante.StringFixed(2),
	}
}

// RegistrarPago handles POST /api/pagos/registrar
func (h *PagoHandler) RegistrarPago(c echo.Context) error {
	var req RegistrarPagoRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	monto, err := decimal.NewFromString(req.Monto)
	if err != nil {
		return h.mapError(c, domain.ErrMontoPagoInvalido, "Failed to register pago")
	}

	resultado, err := h.pagoService.RegistrarPago(req.ReciboID, monto, req.ReferenciaBancaria)
	if err != nil {
		return h.mapError(c, err, "Failed to register pago")
	}

	return c.JSON(http.StatusCreated, toResultadoPagoResponse(resultado))
}

// CrearPago handles POST /api/pagos
func (h *PagoHandler) CrearPago(c echo.Context) error {
	var req CrearPagoRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	monto, err := decimal.NewFromString(req.MontoPagado)
	if err != nil {
		return h.mapError(c, domain.ErrMontoPagoInvalido, "Failed to create pago")
	}

	var fechaPago time.Time
	if req.FechaPago != "" {
		fechaPago, err = time.Parse("2006-01-02", req.FechaPago)
		if err != nil {
			return NewValidationError(c, "Invalid fechaPago, expected YYYY-MM-DD", nil)
		}
	}

	pago, err := h.pagoService.CrearPago(&domain.Pago{
		ReciboID:           req.ReciboID,
		MontoPagado:        monto,
		FechaPago:          fechaPago,
		ReferenciaBancaria: req.ReferenciaBancaria,
		MetodoPago:         req.MetodoPago,
		Nota:               req.Nota,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to create pago")
	}

	log.Info().Int32("pago_id", pago.ID).Str("referencia", pago.ReferenciaBancaria).Msg("Pago reported, pending verification")
	return c.JSON(http.StatusCreated, pago)
}

// GetPagos handles GET /api/pagos with optional filters:
// estado=Por_Verificar|Verificado|Rechazado, fecha=YYYY-MM-DD
func (h *PagoHandler) GetPagos(c echo.Context) error {
	filtros := &domain.PagoFiltros{}

	if raw := c.QueryParam("estado"); raw != "" {
		estado := domain.EstadoVerificacion(raw)
		if estado != domain.PagoPorVerificar && estado != domain.PagoVerificado && estado != domain.PagoRechazado {
			return NewValidationError(c, "Invalid estado filter", nil)
		}
		filtros.Estado = &estado
	}
	if raw := c.QueryParam("fecha"); raw != "" {
		fecha, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return NewValidationError(c, "Invalid fecha filter, expected YYYY-MM-DD", nil)
		}
		filtros.Fecha = &fecha
	}

	pagos, err := h.pagoService.GetPagos(filtros)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get pagos")
		return NewInternalError(c, "Failed to get pagos")
	}
	if pagos == nil {
		pagos = []*domain.PagoDetalle{}
	}
	return c.JSON(http.StatusOK, pagos)
}

// GetPago handles GET /api/pagos/:id
func (h *PagoHandler) GetPago(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid pago ID", nil)
	}

	pago, err := h.pagoService.GetPagoByID(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to get pago")
	}
	return c.JSON(http.StatusOK, pago)
}

// VerificarPago handles POST /api/pagos/:id/verificar. The body is multipart
// form data: optional fechaPago, monto and nota fields plus an optional
// comprobante file with the payment proof.
func (h *PagoHandler) VerificarPago(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid pago ID", nil)
	}

	input := service.VerificarPagoInput{Nota: c.FormValue("nota")}

	if raw := c.FormValue("fechaPago"); raw != "" {
		fecha, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return NewValidationError(c, "Invalid fechaPago, expected YYYY-MM-DD", nil)
		}
		input.FechaPago = &fecha
	}
	if raw := c.FormValue("monto"); raw != "" {
		monto, err := decimal.NewFromString(raw)
		if err != nil {
			return h.mapError(c, domain.ErrMontoPagoInvalido, "Failed to verify pago")
		}
		input.Monto = &monto
	}

	if file, err := c.FormFile("comprobante"); err == nil {
		src, err := file.Open()
		if err != nil {
			log.Error().Err(err).Msg("Failed to open uploaded comprobante")
			return NewInternalError(c, "Failed to read uploaded comprobante")
		}
		defer src.Close()

		input.Comprobante = src
		input.NombreArchivo = file.Filename
		input.ContentType = file.Header.Get("Content-Type")
		input.TamanoArchivo = file.Size
	}

	resultado, err := h.pagoService.VerificarPago(c.Request().Context(), int32(id), input)
	if err != nil {
		return h.mapError(c, err, "Failed to verify pago")
	}

	return c.JSON(http.StatusOK, toResultadoPagoResponse(resultado))
}

// VerificarPagosMultiplesRequest selects the payments for a batch verification
type VerificarPagosMultiplesRequest struct {
	PagoIDs []int32 `json:"pagoIds"`
}

// VerificarPagosMultiples handles POST /api/pagos/verificar-multiples
func (h *PagoHandler) VerificarPagosMultiples(c echo.Context) error {
	var req VerificarPagosMultiplesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.PagoIDs) == 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "pagoIds", Message: "At least one pago ID is required"},
		})
	}

	resultado, err := h.pagoService.VerificarPagosMultiples(c.Request().Context(), req.PagoIDs)
	if err != nil {
		return h.mapError(c, err, "Failed to verify pagos")
	}

	return c.JSON(http.StatusOK, resultado)
}

// RechazarPago handles POST /api/pagos/:id/rechazar
func (h *PagoHandler) RechazarPago(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid pago ID", nil)
	}

	var req RechazarPagoRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.pagoService.RechazarPago(int32(id), req.Nota); err != nil {
		return h.mapError(c, err, "Failed to reject pago")
	}

	log.Info().Int("pago_id", id).Msg("Pago rejected")
	return c.NoContent(http.StatusNoContent)
}

// GetComprobanteURL handles GET /api/pagos/:id/comprobante
func (h *PagoHandler) GetComprobanteURL(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid pago ID", nil)
	}

	url, err := h.pagoService.ComprobanteURL(c.Request().Context(), int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "Pago has no stored comprobante")
		}
		return h.mapError(c, err, "Failed to generate comprobante URL")
	}

	return c.JSON(http.StatusOK, ComprobanteURLResponse{URL: url})
}

func (h *PagoHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrPagoNoEncontrado):
		return NewNotFoundError(c, "Pago not found")
	case errors.Is(err, domain.ErrReciboNoEncontrado):
		return NewNotFoundError(c, "Recibo not found")
	case errors.Is(err, domain.ErrMontoPagoInvalido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "monto", Message: "Monto must be a positive amount"},
		})
	case errors.Is(err, domain.ErrReferenciaRequerida):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "referenciaBancaria", Message: "Referencia bancaria is required"},
		})
	case errors.Is(err, domain.ErrReferenciaDuplicada):
		return NewConflictError(c, "A verified pago with this referencia bancaria already exists")
	case errors.Is(err, domain.ErrPagoYaProcesado):
		return NewConflictError(c, "Pago has already been verified or rejected")
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "reciboId", Message: "Recibo reference is required"},
		})
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
