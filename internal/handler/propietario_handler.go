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

// PropietarioHandler handles owner-related HTTP requests
type PropietarioHandler struct {
	propietarioService *service.PropietarioService
}

// NewPropietarioHandler creates a new PropietarioHandler
func NewPropietarioHandler(propietarioService *service.PropietarioService) *PropietarioHandler {
	return &PropietarioHandler{propietarioService: propietarioService}
}

// PropietarioRequest represents the create/update owner request body
type PropietarioRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Cedula   string `json:"cedula"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

// CreatePropietario handles POST /api/propietarios
func (h *PropietarioHandler) CreatePropietario(c echo.Context) error {
	var req PropietarioRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	propietario, err := h.propietarioService.CreatePropietario(&domain.Propietario{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Cedula:   req.Cedula,
		Telefono: req.Telefono,
		Email:    req.Email,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to create propietario")
	}

	log.Info().Int32("propietario_id", propietario.ID).Str("cedula", propietario.Cedula).Msg("Propietario created")
	return c.JSON(http.StatusCreated, propietario)
}

// GetPropietarios handles GET /api/propietarios
func (h *PropietarioHandler) GetPropietarios(c echo.Context) error {
	propietarios, err := h.propietarioService.GetPropietarios()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get propietarios")
		return NewInternalError(c, "Failed to get propietarios")
	}
	if propietarios == nil {
		propietarios = []*domain.Propietario{}
	}
	return c.JSON(http.StatusOK, propietarios)
}

// GetPropietario handles GET /api/propietarios/:id
func (h *PropietarioHandler) GetPropietario(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid propietario ID", nil)
	}

	propietario, err := h.propietarioService.GetPropietarioByID(int32(id))
	if err != nil {
		return h.mapError(c, err, "Failed to get propietario")
	}
	return c.JSON(http.StatusOK, propietario)
}

// UpdatePropietario handles PUT /api/propietarios/:id
func (h *PropietarioHandler) UpdatePropietario(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid propietario ID", nil)
	}

	var req PropietarioRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	propietario, err := h.propietarioService.UpdatePropietario(&domain.Propietario{
		ID:       int32(id),
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Cedula:   req.Cedula,
		Telefono: req.Telefono,
		Email:    req.Email,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to update propietario")
	}

	log.Info().Int32("propietario_id", propietario.ID).Msg("Propietario updated")
	return c.JSON(http.StatusOK, propietario)
}

// DeletePropietario handles DELETE /api/propietarios/:id
func (h *PropietarioHandler) DeletePropietario(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid propietario ID", nil)
	}

	if err := h.propietarioService.DeletePropietario(int32(id)); err != nil {
		return h.mapError(c, err, "Failed to delete propietario")
	}

	log.Info().Int("propietario_id", id).Msg("Propietario deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *PropietarioHandler) mapError(c echo.Context, err error, internalDetail string) error {
	switch {
	case errors.Is(err, domain.ErrPropietarioNoEncontrado):
		return NewNotFoundError(c, "Propietario not found")
	case errors.Is(err, domain.ErrNombreRequerido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "nombre", Message: "Nombre is required"},
		})
	case errors.Is(err, domain.ErrApellidoRequerido):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "apellido", Message: "Apellido is required"},
		})
	case errors.Is(err, domain.ErrCedulaInvalida):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "cedula", Message: "Cedula must be V or E followed by 7-8 digits"},
		})
	case errors.Is(err, domain.ErrCedulaDuplicada):
		return NewConflictError(c, "A propietario with this cedula already exists")
	default:
		log.Error().Err(err).Msg(internalDetail)
		return NewInternalError(c, internalDetail)
	}
}
