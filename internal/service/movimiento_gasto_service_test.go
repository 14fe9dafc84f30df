package service

import (
	"errors"
	"testing"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestCreateMovimiento_NormalizaMesAplicacion(t *testing.T) {
	movimientoRepo := testutil.NewMockMovimientoGastoRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	gastoMesRepo.Gastos[1] = &domain.GastoMesDetalle{GastoMes: domain.GastoMes{
		ID: 1, ConceptoID: 1, MontoBase: decimal.NewFromInt(100), Estado: domain.EstadoActivo,
	}}

	movimientoService := NewMovimientoGastoService(movimientoRepo, gastoMesRepo)

	movimiento, err := movimientoService.CreateMovimiento(&domain.MovimientoGasto{
		GastoMesID:    1,
		MontoReal:     decimal.NewFromInt(120),
		MesAplicacion: time.Date(2025, 8, 17, 10, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	esperado := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if !movimiento.MesAplicacion.Equal(esperado) {
		t.Errorf("Expected mes normalized to %v, got %v", esperado, movimiento.MesAplicacion)
	}
	if movimiento.FechaGasto.IsZero() {
		t.Error("Expected fecha gasto defaulted to now")
	}
}

func TestCreateMovimiento_GastoInexistente(t *testing.T) {
	movimientoRepo := testutil.NewMockMovimientoGastoRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()

	movimientoService := NewMovimientoGastoService(movimientoRepo, gastoMesRepo)

	_, err := movimientoService.CreateMovimiento(&domain.MovimientoGasto{
		GastoMesID:    9,
		MontoReal:     decimal.NewFromInt(120),
		MesAplicacion: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrGastoMesNoEncontrado) {
		t.Fatalf("Expected ErrGastoMesNoEncontrado, got %v", err)
	}
}

func TestGenerarRecurrentes_CreaMovimientosDelMes(t *testing.T) {
	movimientoRepo := testutil.NewMockMovimientoGastoRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	gastoMesRepo.Gastos[1] = &domain.GastoMesDetalle{GastoMes: domain.GastoMes{
		ID: 1, ConceptoID: 1, MontoBase: decimal.NewFromInt(300), EsRecurrente: true, Estado: domain.EstadoActivo,
	}}
	gastoMesRepo.Gastos[2] = &domain.GastoMesDetalle{GastoMes: domain.GastoMes{
		ID: 2, ConceptoID: 2, MontoBase: decimal.NewFromInt(150), EsRecurrente: false, Estado: domain.EstadoActivo,
	}}
	gastoMesRepo.Gastos[3] = &domain.GastoMesDetalle{GastoMes: domain.GastoMes{
		ID: 3, ConceptoID: 3, MontoBase: decimal.NewFromInt(90), EsRecurrente: true, Estado: domain.EstadoInactivo,
	}}

	movimientoService := NewMovimientoGastoService(movimientoRepo, gastoMesRepo)

	mes := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	creados, err := movimientoService.GenerarRecurrentes(mes)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if creados != 1 {
		t.Fatalf("Expected 1 movimiento created, got %d", creados)
	}

	movimientos, _ := movimientoRepo.GetByMes(mes)
	if len(movimientos) != 1 {
		t.Fatalf("Expected 1 movimiento in the month, got %d", len(movimientos))
	}
	if !movimientos[0].MontoReal.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected monto real from the template, got %s", movimientos[0].MontoReal.String())
	}
}

func TestGenerarRecurrentes_EsIdempotente(t *testing.T) {
	movimientoRepo := testutil.NewMockMovimientoGastoRepository()
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	gastoMesRepo.Gastos[1] = &domain.GastoMesDetalle{GastoMes: domain.GastoMes{
		ID: 1, ConceptoID: 1, MontoBase: decimal.NewFromInt(300), EsRecurrente: true, Estado: domain.EstadoActivo,
	}}

	movimientoService := NewMovimientoGastoService(movimientoRepo, gastoMesRepo)

	mes := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if _, err := movimientoService.GenerarRecurrentes(mes); err != nil {
		t.Fatalf("Expected no error on first run, got %v", err)
	}

	creados, err := movimientoService.GenerarRecurrentes(mes)
	if err != nil {
		t.Fatalf("Expected no error on second run, got %v", err)
	}
	if creados != 0 {
		t.Errorf("Expected 0 movimientos on the repeated run, got %d", creados)
	}
}
