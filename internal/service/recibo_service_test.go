package service

import (
	"errors"
	"testing"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/testutil"
	"github.com/shopspring/decimal"
)

func dosInmuebles(inmuebleRepo *testutil.MockInmuebleRepository) {
	inmuebleRepo.Inmuebles[1] = &domain.Inmueble{
		ID: 1, PropietarioID: 1, EdificioID: 1, Piso: "1", Apartamento: "A",
		Alicuota: decimal.NewFromFloat(0.5),
	}
	inmuebleRepo.Inmuebles[2] = &domain.Inmueble{
		ID: 2, PropietarioID: 2, EdificioID: 1, Piso: "1", Apartamento: "B",
		Alicuota: decimal.NewFromFloat(0.5),
	}
	inmuebleRepo.NextID = 3
}

// GenerarRecibos tests

func TestGenerarRecibos_DistribuyeCargos(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	inmuebleRepo := testutil.NewMockInmuebleRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	dosInmuebles(inmuebleRepo)

	gastoMesRepo.Activos = []*domain.GastoActivo{
		{GastoMesID: 1, Descripcion: "Vigilancia", TipoCalculo: domain.CalculoComun, Distribucion: domain.DistribucionTodos, Monto: decimal.NewFromInt(1000)},
		{GastoMesID: 2, Descripcion: "Hidroneumatico", TipoCalculo: domain.CalculoNoComun, Distribucion: domain.DistribucionTodos, Monto: decimal.NewFromInt(100)},
	}

	reciboService := NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, decimal.NewFromFloat(0.12))

	resultado, err := reciboService.GenerarRecibos(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resultado.Periodo != "202508" {
		t.Errorf("Expected periodo 202508, got %s", resultado.Periodo)
	}
	if resultado.RecibosCreados != 2 {
		t.Errorf("Expected 2 recibos created, got %d", resultado.RecibosCreados)
	}

	recibos, _ := reciboRepo.GetDelPeriodo("202508")
	if len(recibos) != 2 {
		t.Fatalf("Expected 2 recibos in the period, got %d", len(recibos))
	}

	// Each unit: 1000 * 0.5 + 100 / 2 = 550.00
	esperado := decimal.NewFromInt(550)
	for _, r := range recibos {
		if !r.MontoCargosMes.Equal(esperado) {
			t.Errorf("Expected cargos 550.00 for inmueble %d, got %s", r.InmuebleID, r.MontoCargosMes.String())
		}
		if !r.SaldoPendiente.Equal(r.MontoTotalPagar) {
			t.Errorf("Expected saldo equal to total for a fresh recibo")
		}
		if r.Estado != domain.ReciboPendiente {
			t.Errorf("Expected estado Pendiente, got %s", r.Estado)
		}
	}
}

func TestGenerarRecibos_ArrastraDeudaConInteres(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	inmuebleRepo := testutil.NewMockInmuebleRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	dosInmuebles(inmuebleRepo)

	// Unit 1 owes 200.00 from the previous period
	reciboRepo.Recibos[1] = &domain.ReciboDetalle{Recibo: domain.Recibo{
		ID: 1, NumeroRecibo: "202507-0001", InmuebleID: 1,
		FechaEmision:    time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		MontoTotalPagar: decimal.NewFromInt(200),
		SaldoPendiente:  decimal.NewFromInt(200),
		Estado:          domain.ReciboPendiente,
	}}
	reciboRepo.NextID = 2

	gastoMesRepo.Activos = []*domain.GastoActivo{
		{GastoMesID: 1, Descripcion: "Vigilancia", TipoCalculo: domain.CalculoComun, Distribucion: domain.DistribucionTodos, Monto: decimal.NewFromInt(1000)},
	}

	reciboService := NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, decimal.NewFromFloat(0.12))

	if _, err := reciboService.GenerarRecibos(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	recibos, _ := reciboRepo.GetDelPeriodo("202508")
	var unidad1 *domain.Recibo
	for _, r := range recibos {
		if r.InmuebleID == 1 {
			unidad1 = r
		}
	}
	if unidad1 == nil {
		t.Fatal("Expected a new recibo for inmueble 1")
	}

	if !unidad1.MontoDeudaAnterior.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected deuda anterior 200.00, got %s", unidad1.MontoDeudaAnterior.String())
	}
	// One month of interest: 200 * 0.12 / 12 = 2.00
	if !unidad1.MontoInteresMora.Equal(decimal.NewFromInt(2)) {
		t.Errorf("Expected interes 2.00, got %s", unidad1.MontoInteresMora.String())
	}
	// 500 cargos + 200 deuda + 2 interes
	if !unidad1.MontoTotalPagar.Equal(decimal.NewFromInt(702)) {
		t.Errorf("Expected total 702.00, got %s", unidad1.MontoTotalPagar.String())
	}

	// The carried balance moved onto the new receipt; the old one is settled
	anterior, err := reciboRepo.GetByID(1)
	if err != nil {
		t.Fatalf("Expected the prior recibo to survive, got %v", err)
	}
	if !anterior.SaldoPendiente.IsZero() {
		t.Errorf("Expected the absorbed recibo to end with saldo 0, got %s", anterior.SaldoPendiente.String())
	}
	if anterior.Estado != domain.ReciboPagado {
		t.Errorf("Expected the absorbed recibo marked Pagado, got %s", anterior.Estado)
	}
}

func TestGenerarRecibos_DeudaViveEnUnSoloRecibo(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	inmuebleRepo := testutil.NewMockInmuebleRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	dosInmuebles(inmuebleRepo)

	// Unit 1 owes 200.00 across two prior periods
	reciboRepo.Recibos[1] = &domain.ReciboDetalle{Recibo: domain.Recibo{
		ID: 1, NumeroRecibo: "202506-0001", InmuebleID: 1,
		FechaEmision:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		MontoTotalPagar: decimal.NewFromInt(120),
		SaldoPendiente:  decimal.NewFromInt(120),
		Estado:          domain.ReciboPendiente,
	}}
	reciboRepo.Recibos[2] = &domain.ReciboDetalle{Recibo: domain.Recibo{
		ID: 2, NumeroRecibo: "202507-0001", InmuebleID: 1,
		FechaEmision:    time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		MontoTotalPagar: decimal.NewFromInt(80),
		SaldoPendiente:  decimal.NewFromInt(80),
		Estado:          domain.ReciboPendiente,
	}}
	reciboRepo.NextID = 3

	gastoMesRepo.Activos = []*domain.GastoActivo{
		{GastoMesID: 1, Descripcion: "Vigilancia", TipoCalculo: domain.CalculoComun, Distribucion: domain.DistribucionTodos, Monto: decimal.NewFromInt(1000)},
	}

	reciboService := NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, decimal.NewFromFloat(0.12))

	if _, err := reciboService.GenerarRecibos(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// After generation the owner owes exactly deuda + interes + cargos, once:
	// 200 + 2 + 500 = 702.00 across every pending receipt
	saldos, err := reciboRepo.SaldosPendientesPorInmueble()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !saldos[1].Equal(decimal.NewFromInt(702)) {
		t.Errorf("Expected total pending saldo 702.00 for inmueble 1, got %s", saldos[1].String())
	}
}

func TestActualizarRecibos_RestauraDeudaAbsorbida(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	inmuebleRepo := testutil.NewMockInmuebleRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	dosInmuebles(inmuebleRepo)

	reciboRepo.Recibos[1] = &domain.ReciboDetalle{Recibo: domain.Recibo{
		ID: 1, NumeroRecibo: "202507-0001", InmuebleID: 1,
		FechaEmision:    time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		MontoTotalPagar: decimal.NewFromInt(200),
		SaldoPendiente:  decimal.NewFromInt(200),
		Estado:          domain.ReciboPendiente,
	}}
	reciboRepo.NextID = 2

	gastoMesRepo.Activos = []*domain.GastoActivo{
		{GastoMesID: 1, Descripcion: "Vigilancia", TipoCalculo: domain.CalculoComun, Distribucion: domain.DistribucionTodos, Monto: decimal.NewFromInt(1000)},
	}

	reciboService := NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, decimal.NewFromFloat(0.12))

	if _, err := reciboService.GenerarRecibos(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The expenses change and the period is regenerated: the July balance the
	// deleted receipt had absorbed must come back and be carried again
	gastoMesRepo.Activos[0].Monto = decimal.NewFromInt(800)

	if _, err := reciboService.ActualizarRecibos(time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), false); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	recibos, _ := reciboRepo.GetDelPeriodo("202508")
	var unidad1 *domain.Recibo
	for _, r := range recibos {
		if r.InmuebleID == 1 {
			unidad1 = r
		}
	}
	if unidad1 == nil {
		t.Fatal("Expected a regenerated recibo for inmueble 1")
	}
	if !unidad1.MontoDeudaAnterior.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected deuda anterior 200.00 after regeneration, got %s", unidad1.MontoDeudaAnterior.String())
	}
	// 400 cargos + 200 deuda + 2 interes
	if !unidad1.MontoTotalPagar.Equal(decimal.NewFromInt(602)) {
		t.Errorf("Expected total 602.00, got %s", unidad1.MontoTotalPagar.String())
	}

	saldos, _ := reciboRepo.SaldosPendientesPorInmueble()
	if !saldos[1].Equal(decimal.NewFromInt(602)) {
		t.Errorf("Expected total pending saldo 602.00 for inmueble 1, got %s", saldos[1].String())
	}
}

func TestGenerarRecibos_OmiteInmueblesSinCargosNiDeuda(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	inmuebleRepo := testutil.NewMockInmuebleRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	dosInmuebles(inmuebleRepo)

	// No active expenses and no debt: nothing to bill
	reciboService := NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, decimal.NewFromFloat(0.12))

	resultado, err := reciboService.GenerarRecibos(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resultado.RecibosCreados != 0 {
		t.Errorf("Expected 0 recibos created, got %d", resultado.RecibosCreados)
	}
	if resultado.InmueblesOmitidos != 2 {
		t.Errorf("Expected 2 inmuebles omitted, got %d", resultado.InmueblesOmitidos)
	}
}

func TestGenerarRecibos_NoDuplicaRecibosDelPeriodo(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	inmuebleRepo := testutil.NewMockInmuebleRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	dosInmuebles(inmuebleRepo)

	gastoMesRepo.Activos = []*domain.GastoActivo{
		{GastoMesID: 1, Descripcion: "Aseo", TipoCalculo: domain.CalculoComun, Distribucion: domain.DistribucionTodos, Monto: decimal.NewFromInt(100)},
	}

	reciboService := NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, decimal.NewFromFloat(0.12))
	fecha := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	if _, err := reciboService.GenerarRecibos(fecha); err != nil {
		t.Fatalf("Expected no error on first run, got %v", err)
	}

	resultado, err := reciboService.GenerarRecibos(fecha)
	if err != nil {
		t.Fatalf("Expected no error on second run, got %v", err)
	}
	if resultado.RecibosCreados != 0 {
		t.Errorf("Expected 0 recibos on the repeated run, got %d", resultado.RecibosCreados)
	}

	recibos, _ := reciboRepo.GetDelPeriodo("202508")
	if len(recibos) != 2 {
		t.Errorf("Expected the period to keep 2 recibos, got %d", len(recibos))
	}
}

func TestGenerarRecibos_AlicuotasInconsistentes(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	inmuebleRepo := testutil.NewMockInmuebleRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()

	inmuebleRepo.Inmuebles[1] = &domain.Inmueble{
		ID: 1, PropietarioID: 1, EdificioID: 1, Alicuota: decimal.NewFromFloat(0.4),
	}
	inmuebleRepo.Inmuebles[2] = &domain.Inmueble{
		ID: 2, PropietarioID: 2, EdificioID: 1, Alicuota: decimal.NewFromFloat(0.4),
	}

	reciboService := NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, decimal.NewFromFloat(0.12))

	_, err := reciboService.GenerarRecibos(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, domain.ErrAlicuotasNoSuman) {
		t.Fatalf("Expected ErrAlicuotasNoSuman, got %v", err)
	}
}

// ActualizarRecibos tests

func TestActualizarRecibos_PagoParcialBloqueaSinForce(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	inmuebleRepo := testutil.NewMockInmuebleRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	dosInmuebles(inmuebleRepo)

	// Partially paid receipt in the period
	reciboRepo.Recibos[1] = &domain.ReciboDetalle{Recibo: domain.Recibo{
		ID: 1, NumeroRecibo: "202508-0001", InmuebleID: 2,
		FechaEmision:    time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		MontoTotalPagar: decimal.NewFromInt(500),
		SaldoPendiente:  decimal.NewFromInt(300),
		Estado:          domain.ReciboPendiente,
	}}
	reciboRepo.HistorialPor[1] = true
	reciboRepo.NextID = 2

	reciboService := NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, decimal.NewFromFloat(0.12))

	_, err := reciboService.ActualizarRecibos(time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), false)
	if !errors.Is(err, domain.ErrReciboConPagoParcial) {
		t.Fatalf("Expected ErrReciboConPagoParcial, got %v", err)
	}
}

func TestActualizarRecibos_ForceConservaPagosParciales(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	inmuebleRepo := testutil.NewMockInmuebleRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	dosInmuebles(inmuebleRepo)

	// Untouched receipt for unit 1, partially paid receipt for unit 2
	reciboRepo.Recibos[1] = &domain.ReciboDetalle{Recibo: domain.Recibo{
		ID: 1, NumeroRecibo: "202508-0001", InmuebleID: 1,
		FechaEmision:    time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		MontoTotalPagar: decimal.NewFromInt(500),
		SaldoPendiente:  decimal.NewFromInt(500),
		Estado:          domain.ReciboPendiente,
	}}
	reciboRepo.Recibos[2] = &domain.ReciboDetalle{Recibo: domain.Recibo{
		ID: 2, NumeroRecibo: "202508-0002", InmuebleID: 2,
		FechaEmision:    time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		MontoTotalPagar: decimal.NewFromInt(500),
		SaldoPendiente:  decimal.NewFromInt(300),
		Estado:          domain.ReciboPendiente,
	}}
	reciboRepo.HistorialPor[2] = true
	reciboRepo.NextID = 3

	gastoMesRepo.Activos = []*domain.GastoActivo{
		{GastoMesID: 1, Descripcion: "Vigilancia", TipoCalculo: domain.CalculoComun, Distribucion: domain.DistribucionTodos, Monto: decimal.NewFromInt(800)},
	}

	reciboService := NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, decimal.NewFromFloat(0.12))

	resultado, err := reciboService.ActualizarRecibos(time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resultado.RecibosEliminados != 1 {
		t.Errorf("Expected 1 recibo replaced, got %d", resultado.RecibosEliminados)
	}
	if resultado.RecibosConservados != 1 {
		t.Errorf("Expected 1 recibo preserved, got %d", resultado.RecibosConservados)
	}
	if resultado.RecibosCreados != 1 {
		t.Errorf("Expected 1 recibo created, got %d", resultado.RecibosCreados)
	}

	// The partially paid receipt survives untouched
	conservado, err := reciboRepo.GetByID(2)
	if err != nil {
		t.Fatalf("Expected the partially paid recibo to survive, got %v", err)
	}
	if !conservado.SaldoPendiente.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected preserved saldo 300.00, got %s", conservado.SaldoPendiente.String())
	}

	// Numbering continues past the preserved receipt instead of reusing 0002
	recibos, _ := reciboRepo.GetDelPeriodo("202508")
	numeros := make(map[string]bool)
	for _, r := range recibos {
		if numeros[r.NumeroRecibo] {
			t.Errorf("Expected unique receipt numbers, %s issued twice", r.NumeroRecibo)
		}
		numeros[r.NumeroRecibo] = true
	}
	if !numeros["202508-0003"] {
		t.Errorf("Expected the regenerated recibo numbered 202508-0003, got %v", numeros)
	}
}
