package service

import (
	"testing"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/testutil"
	"github.com/shopspring/decimal"
)

func reporteServiceDePrueba(reciboRepo *testutil.MockReciboRepository) *ReporteService {
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)
	return NewReporteService(
		reciboRepo,
		testutil.NewMockCreditoRepository(),
		testutil.NewMockHistorialPagoRepository(),
		pagoRepo,
		2,  // umbral: more than 2 pending receipts
		90, // dias de gracia
	)
}

func reciboPendiente(id, inmuebleID, propietarioID int32, emision time.Time, saldo int64) *domain.ReciboDetalle {
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

func morosoDeInmueble(t *testing.T, morosos []*domain.MorosoResumen, inmuebleID int32) *domain.MorosoResumen {
	t.Helper()
	for _, m := range morosos {
		if m.InmuebleID == inmuebleID {
			return m
		}
	}
	t.Fatalf("Expected inmueble %d in the report", inmuebleID)
	return nil
}

func TestMorosos_MarcaPorCantidadDeRecibos(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()

	// Owner 1 accumulates 3 pending receipts, recent ones
	base := time.Now().AddDate(0, 0, -30)
	reciboRepo.Recibos[1] = reciboPendiente(1, 1, 1, base, 100)
	reciboRepo.Recibos[2] = reciboPendiente(2, 1, 1, base.AddDate(0, -1, 0), 100)
	reciboRepo.Recibos[3] = reciboPendiente(3, 1, 1, base.AddDate(0, -2, 0), 100)

	// Owner 2 has a single recent pending receipt
	reciboRepo.Recibos[4] = reciboPendiente(4, 2, 2, base, 100)

	reporteService := reporteServiceDePrueba(reciboRepo)

	morosos, err := reporteService.Morosos()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// Every indebted unit is listed; only the one past the threshold is marked
	if len(morosos) != 2 {
		t.Fatalf("Expected 2 indebted units in the report, got %d", len(morosos))
	}

	unidad1 := morosoDeInmueble(t, morosos, 1)
	if !unidad1.EsMoroso {
		t.Errorf("Expected inmueble 1 marked moroso")
	}
	if !unidad1.SaldoPendiente.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected saldo 300.00, got %s", unidad1.SaldoPendiente.String())
	}

	unidad2 := morosoDeInmueble(t, morosos, 2)
	if unidad2.EsMoroso {
		t.Errorf("Expected inmueble 2 listed without the moroso mark")
	}
}

func TestMorosos_MarcaPorAntiguedad(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()

	// A single receipt, but four months old: past the 90-day grace window
	reciboRepo.Recibos[1] = reciboPendiente(1, 1, 1, time.Now().AddDate(0, -4, 0), 250)

	reporteService := reporteServiceDePrueba(reciboRepo)

	morosos, err := reporteService.Morosos()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(morosos) != 1 {
		t.Fatalf("Expected 1 unit in the report, got %d", len(morosos))
	}
	if !morosos[0].EsMoroso {
		t.Errorf("Expected the aged receipt to mark the unit moroso")
	}
}

func TestMorosos_DeudaRecienteApareceSinMarca(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()

	reciboRepo.Recibos[1] = reciboPendiente(1, 1, 1, time.Now().AddDate(0, 0, -10), 100)

	reporteService := reporteServiceDePrueba(reciboRepo)

	morosos, err := reporteService.Morosos()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(morosos) != 1 {
		t.Fatalf("Expected the indebted unit listed, got %d entries", len(morosos))
	}
	if morosos[0].EsMoroso {
		t.Errorf("Expected a recent single receipt not to mark the unit moroso")
	}
}

func TestMorosos_SinDeudaEsVacio(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	reporteService := reporteServiceDePrueba(reciboRepo)

	morosos, err := reporteService.Morosos()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(morosos) != 0 {
		t.Fatalf("Expected an empty report, got %d entries", len(morosos))
	}
}

func TestCreditoPropietario_SinRegistroEsCero(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	reporteService := reporteServiceDePrueba(reciboRepo)

	credito, err := reporteService.CreditoPropietario(7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !credito.SaldoCredito.IsZero() {
		t.Errorf("Expected zero credit, got %s", credito.SaldoCredito.String())
	}
	if credito.PropietarioID != 7 {
		t.Errorf("Expected propietario 7, got %d", credito.PropietarioID)
	}
}
