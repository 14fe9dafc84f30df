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

// InmuebleHandler handles unit-related HTTP requests
type InmuebleHandler struct {
	inmuebleService *service.InmuebleService
}

// NewInmuebleHandler creates a new InmuebleHandler
func NewInmuebleHandler(inmuebleService *service.InmuebleService) *InmuebleHandler {
	return &InmuebleHandler{inmuebleService: inmuebleService}
}

// InmuebleRequest represents the create/update unit request body.
// Alicuota travels as a string to avoid float precision loss.
type InmuebleRequest struct {
	PropietarioID int32  `json:"propietarioId"`
	EdificioID    int32  `json:"edificioId"`
	Piso          string `json:"piso"`
	Apartamento   string `json:"apartamento"`
	Alicuota      string `json:"alicuota"`
}

// SumaAlicuotasResponse reports the quota roster consistency
type SumaAlicuotasResponse struct {
	Suma        string `json:"suma"`
	Consistente bool   `json:"consistente"`
}

func (r *InmuebleRequest) toDomain(id int32) (*domain.Inmueble, error) {
	alicuota, err := decimal.NewFromString(r.Alicuota)
	if err != nil {
		return nil, domain.ErrAlicuotaInvalida
	}
	return &domain.Inmueble{
		ID:            id,
		PropietarioID: r.PropietarioID,
		EdificioID:    r.EdificioID,
		Piso:          r.Piso,
		Apartamento:   r.Apartamento,
		Alicuota:      alicuota,
	}, nil
}

// CreateInmueble handles POST /api/inmuebles
func (h *InmuebleHandler) CreateInmueble(c echo.Context) error {
	var req InmuebleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	inmueble, err := req.toDomain(0)
	if err == nil {
		inmueble, err = h.inmuebleService.CreateInmueble(inmueble)
	}
	if err != nil {
		return h.mapError(c, err, "Failed to create inmueble")
	}

	log.Info().Int32("inmueble_id", inmueble.ID).Msg("Inmueble created")
	return c.JSON(http.StatusCreated, inmueble)
}

// GetInmuebles handles GET /api/inmuebles
func (h *InmuebleHandler) GetInmuebles(c echo.Context) error {
	inmuebles, err := h.inmuebleService.GetInmuebles()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get inmuebles")
		return NewInternalError(c, "Failed to get inmuebles")
	}
	if inmuebles == nil {
		inmuebles = []*domain.InmuebleDetalle{}
	}
	return c.JSON(http.StatusOK, inmuebles)
}

// GetInmueble handles GET /api/inmuebles/:id
func (h *InmuebleHandler) GetInmueble(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid inmueble ID", nil)
	}

	inmueble, err := h.inmuebleService.GetInmuebleByID(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to get inmueble")
	}
	return c.JSON(http.StatusOK, inmueble)
}

// UpdateInmueble handles PUT /api/inmuebles/:id
func (h *InmuebleHandler) UpdateInmueble(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid inmueble ID", nil)
	}

	var req InmuebleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	inmueble, err := req.toDomain(int32(id))
	if err == nil {
		inmueble, err = h.inmuebleService.UpdateInmueble(inmueble)
	}
	if err != nil {
		return h.mapError(c, err, "Failed to update inmueble")
	}

	log.Info().Int32("inmueble_id", inmueble.ID).Msg("Inmueble updated")
	return c.JSON(http.StatusOK, inmueble)
}

// DeleteInmueble handles DELETE /api/inmuebles/:id
func (h *InmuebleHandler) DeleteInmueble(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid inmueble ID", nil)
	}

	if err := h.inmuebleService.DeleteInmueble(int32(id)); err != nil {
		return h.mapError(c, err, "Failed to delete inmueble")
	}

	log.Info().Int("inmueble_id", id).Msg("Inmueble deleted")
	return c.NoContent(http.StatusNoContent)
}

// GetSumaAlicuotas handles GET /api/inmuebles/suma-alicuotas
func (h *InmuebleHandler) GetSumaAlicuotas(c echo.Context) error {
	suma, err := h.inmuebleService.SumaAlicuotas()
	if err != nil {
		if errors.Is(err, domain.ErrAlicuotasNoSuman) || errors.Is(err, domain.ErrAlicuotaInvalida) {
			return c.JSON(http.StatusOK, SumaAlicuotasResponse{
				Suma:        suma.StringFixed(4),
				Consistente: false,
			})
		}
		log.Error().Err(err).Msg("Failed to compute alicuota sum")
		return NewInternalError(c, "Failed to compute alicuota sum")
	}
	return c.JSON(http.StatusOK, SumaAlicuotasResponse{
		Suma:        suma.StringFixed(4),
		Consistente: true,
	})
}

func (h *InmuebleHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrInmuebleNoEncontrado):
		return NewNotFoundError(c, "Inmueble not found")
	case errors.Is(err, domain.ErrPropietarioNoEncontrado):
		return NewNotFoundError(c, "Propietario not found")
	case errors.Is(err, domain.ErrEdificioNoEncontrado):
		return NewNotFoundError(c, "Edificio not found")
	case errors.Is(err, domain.ErrAlicuotaInvalida):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "alicuota", Message: "Alicuota must be a fraction greater than 0 and at most 1"},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "propietarioId", Message: "Propietario and edificio references are required"},
		})
	case errors.Is(err, domain.ErrInmuebleDuplicado):
		return NewConflictError(c, "An inmueble already exists at this edificio/piso/apartamento")
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
