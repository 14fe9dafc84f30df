package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/service"
	"github.com/AdrianLS4/gestion-inmuebles/internal/testutil"
	"github.com/labstack/echo/v4"
)

func TestCreatePropietario_Success(t *testing.T) {
	e := echo.New()
	propietarioRepo := testutil.NewMockPropietarioRepository()
	propietarioService := service.NewPropietarioService(propietarioRepo)
	handler := NewPropietarioHandler(propietarioService)

	reqBody := `{"nombre": "Maria", "apellido": "Perez", "cedula": "V-12345678", "telefono": "0414-1234567", "email": "maria@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/propietarios", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.CreatePropietario(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response domain.Propietario
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Nombre != "Maria" {
		t.Errorf("Expected nombre 'Maria', got %s", response.Nombre)
	}
	if response.ID == 0 {
		t.Error("Expected an assigned ID")
	}
}

func TestCreatePropietario_CedulaInvalida(t *testing.T) {
	e := echo.New()
	propietarioRepo := testutil.NewMockPropietarioRepository()
	propietarioService := service.NewPropietarioService(propietarioRepo)
	handler := NewPropietarioHandler(propietarioService)

	reqBody := `{"nombre": "Maria", "apellido": "Perez", "cedula": "X-123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/propietarios", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.CreatePropietario(c)
	if err != nil {
		t.Fatalf("Expected no error (error should be in response), got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(problem.Errors) == 0 {
		t.Error("Expected validation errors in response")
	}
}

func TestCreatePropietario_CedulaDuplicada(t *testing.T) {
	e := echo.New()
	propietarioRepo := testutil.NewMockPropietarioRepository()
	propietarioService := service.NewPropietarioService(propietarioRepo)
	handler := NewPropietarioHandler(propietarioService)

	propietarioRepo.Propietarios[1] = &domain.Propietario{
		ID: 1, Nombre: "Maria", Apellido: "Perez", Cedula: "V-12345678",
	}
	propietarioRepo.NextID = 2

	// Same cedula, different formatting
	reqBody := `{"nombre": "Otra", "apellido": "Persona", "cedula": "v12345678"}`
	req := httptest.NewRequest(http.MethodPost, "/api/propietarios", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.CreatePropietario(c)
	if err != nil {
		t.Fatalf("Expected no error (error should be in response), got %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestGetPropietarios_EmptyList(t *testing.T) {
	e := echo.New()
	propietarioRepo := testutil.NewMockPropietarioRepository()
	propietarioService := service.NewPropietarioService(propietarioRepo)
	handler := NewPropietarioHandler(propietarioService)

	req := httptest.NewRequest(http.MethodGet, "/api/propietarios", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetPropietarios(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []domain.Propietario
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 0 {
		t.Errorf("Expected 0 propietarios, got %d", len(response))
	}
}

func TestGetPropietario_NotFound(t *testing.T) {
	e := echo.New()
	propietarioRepo := testutil.NewMockPropietarioRepository()
	propietarioService := service.NewPropietarioService(propietarioRepo)
	handler := NewPropietarioHandler(propietarioService)

	req := httptest.NewRequest(http.MethodGet, "/api/propietarios/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	err := handler.GetPropietario(c)
	if err != nil {
		t.Fatalf("Expected no error (error should be in response), got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeletePropietario_Success(t *testing.T) {
	e := echo.New()
	propietarioRepo := testutil.NewMockPropietarioRepository()
	propietarioService := service.NewPropietarioService(propietarioRepo)
	handler := NewPropietarioHandler(propietarioService)

	propietarioRepo.Propietarios[1] = &domain.Propietario{
		ID: 1, Nombre: "Maria", Apellido: "Perez", Cedula: "V-12345678",
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/propietarios/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := handler.DeletePropietario(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(propietarioRepo.Propietarios) != 0 {
		t.Error("Expected the propietario removed from the repository")
	}
}
