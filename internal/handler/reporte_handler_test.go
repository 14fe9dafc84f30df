package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/service"
	"github.com/AdrianLS4/gestion-inmuebles/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func reporteHandlerDePrueba(reciboRepo *testutil.MockReciboRepository) *ReporteHandler {
	reporteService := service.NewReporteService(
		reciboRepo,
		testutil.NewMockCreditoRepository(),
		testutil.NewMockHistorialPagoRepository(),
		testutil.NewMockPagoRepository(reciboRepo),
		2,
		90,
	)
	return NewReporteHandler(reporteService)
}

func reciboConSaldo(id, inmuebleID, propietarioID int32, emision time.Time, saldo int64) *domain.ReciboDetalle {
	return &domain.ReciboDetalle{
		Recibo: domain.Recibo{
			ID: id, NumeroRecibo: domain.NumeroRecibo(emision.Format("200601"), int(id)),
			InmuebleID:      inmuebleID,
			FechaEmision:    emision,
			MontoTotalPagar: decimal.NewFromInt(saldo),
			SaldoPendiente:  decimal.NewFromInt(saldo),
			Estado:          domain.ReciboPendiente,
		},
		PropietarioID: propietarioID,
	}
}

func TestGetMorosos_ListaDeudoresConMarca(t *testing.T) {
	e := echo.New()
	reciboRepo := testutil.NewMockReciboRepository()

	// Unit 1 is four months behind, unit 2 owes a single recent receipt
	reciboRepo.Recibos[1] = reciboConSaldo(1, 1, 1, time.Now().AddDate(0, -4, 0), 250)
	reciboRepo.Recibos[2] = reciboConSaldo(2, 2, 2, time.Now().AddDate(0, 0, -10), 100)

	handler := reporteHandlerDePrueba(reciboRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/morosos", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetMorosos(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []MorosoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 indebted units, got %d", len(response))
	}

	porInmueble := make(map[int32]MorosoResponse)
	for _, m := range response {
		porInmueble[m.InmuebleID] = m
	}
	if !porInmueble[1].EsMoroso {
		t.Errorf("Expected inmueble 1 marked moroso")
	}
	if porInmueble[1].SaldoPendiente != "250.00" {
		t.Errorf("Expected saldo 250.00, got %s", porInmueble[1].SaldoPendiente)
	}
	if porInmueble[2].EsMoroso {
		t.Errorf("Expected inmueble 2 listed without the moroso mark")
	}
}
