package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/testutil"
	"github.com/shopspring/decimal"
)

func recibosDelPropietario(reciboRepo *testutil.MockReciboRepository) {
	reciboRepo.Recibos[1] = &domain.ReciboDetalle{
		Recibo: domain.Recibo{
			ID: 1, NumeroRecibo: "202507-0001", InmuebleID: 1,
			FechaEmision:    time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			MontoTotalPagar: decimal.NewFromInt(200),
			SaldoPendiente:  decimal.NewFromInt(200),
			Estado:          domain.ReciboPendiente,
		},
		PropietarioID: 1,
	}
	reciboRepo.Recibos[2] = &domain.ReciboDetalle{
		Recibo: domain.Recibo{
			ID: 2, NumeroRecibo: "202508-0001", InmuebleID: 1,
			FechaEmision:    time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
			MontoTotalPagar: decimal.NewFromInt(500),
			SaldoPendiente:  decimal.NewFromInt(500),
			Estado:          domain.ReciboPendiente,
		},
		PropietarioID: 1,
	}
	reciboRepo.NextID = 3
}

// RegistrarPago tests

func TestRegistrarPago_AplicaMasAntiguoPrimero(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)
	recibosDelPropietario(reciboRepo)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	// Payment lands on the August receipt but the July debt settles first
	resultado, err := pagoService.RegistrarPago(2, decimal.NewFromInt(600), "REF-001")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(resultado.PagosAplicados) != 2 {
		t.Fatalf("Expected 2 applications, got %d", len(resultado.PagosAplicados))
	}
	if resultado.PagosAplicados[0].NumeroRecibo != "202507-0001" {
		t.Errorf("Expected the oldest receipt first, got %s", resultado.PagosAplicados[0].NumeroRecibo)
	}
	if !resultado.TotalAplicado.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Expected 600.00 applied, got %s", resultado.TotalAplicado.String())
	}
	if !resultado.CreditoRestante.IsZero() {
		t.Errorf("Expected no credit, got %s", resultado.CreditoRestante.String())
	}

	julio, _ := reciboRepo.GetByID(1)
	if julio.Estado != domain.ReciboPagado || !julio.SaldoPendiente.IsZero() {
		t.Errorf("Expected the July receipt settled, got estado %s saldo %s", julio.Estado, julio.SaldoPendiente.String())
	}
	agosto, _ := reciboRepo.GetByID(2)
	if !agosto.SaldoPendiente.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected August saldo 100.00, got %s", agosto.SaldoPendiente.String())
	}
}

func TestRegistrarPago_SobrepagoGeneraCredito(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)
	recibosDelPropietario(reciboRepo)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	resultado, err := pagoService.RegistrarPago(2, decimal.NewFromInt(800), "REF-002")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !resultado.TotalAplicado.Equal(decimal.NewFromInt(700)) {
		t.Errorf("Expected 700.00 applied, got %s", resultado.TotalAplicado.String())
	}
	if !resultado.CreditoRestante.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected 100.00 kept as credit, got %s", resultado.CreditoRestante.String())
	}
	if !pagoRepo.Creditos[1].Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected the owner's credit stored, got %s", pagoRepo.Creditos[1].String())
	}
}

func TestRegistrarPago_FusionaCreditoExistente(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)
	recibosDelPropietario(reciboRepo)
	pagoRepo.Creditos[1] = decimal.NewFromInt(50)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	resultado, err := pagoService.RegistrarPago(1, decimal.NewFromInt(100), "REF-003")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// 100 payment + 50 standing credit against the 200 July receipt
	if !resultado.TotalAplicado.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Expected 150.00 applied, got %s", resultado.TotalAplicado.String())
	}
	julio, _ := reciboRepo.GetByID(1)
	if !julio.SaldoPendiente.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected July saldo 50.00, got %s", julio.SaldoPendiente.String())
	}
	if !pagoRepo.Creditos[1].IsZero() {
		t.Errorf("Expected the credit consumed, got %s", pagoRepo.Creditos[1].String())
	}
}

func TestRegistrarPago_ReferenciaDuplicada(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)
	recibosDelPropietario(reciboRepo)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	if _, err := pagoService.RegistrarPago(1, decimal.NewFromInt(100), "REF-DUP"); err != nil {
		t.Fatalf("Expected no error on first payment, got %v", err)
	}

	_, err := pagoService.RegistrarPago(2, decimal.NewFromInt(100), "REF-DUP")
	if !errors.Is(err, domain.ErrReferenciaDuplicada) {
		t.Fatalf("Expected ErrReferenciaDuplicada, got %v", err)
	}
}

func TestRegistrarPago_MontoInvalido(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	_, err := pagoService.RegistrarPago(1, decimal.Zero, "REF-004")
	if !errors.Is(err, domain.ErrMontoPagoInvalido) {
		t.Fatalf("Expected ErrMontoPagoInvalido, got %v", err)
	}

	_, err = pagoService.RegistrarPago(1, decimal.NewFromInt(100), "")
	if !errors.Is(err, domain.ErrReferenciaRequerida) {
		t.Fatalf("Expected ErrReferenciaRequerida, got %v", err)
	}
}

// VerificarPago tests

func TestVerificarPago_AplicaElPago(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)
	recibosDelPropietario(reciboRepo)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	pago, err := pagoService.CrearPago(&domain.Pago{
		ReciboID:           1,
		MontoPagado:        decimal.NewFromInt(200),
		ReferenciaBancaria: "REF-005",
	})
	if err != nil {
		t.Fatalf("Expected no error creating pago, got %v", err)
	}
	if pago.EstadoVerificacion != domain.PagoPorVerificar {
		t.Fatalf("Expected estado Por_Verificar, got %s", pago.EstadoVerificacion)
	}

	// No financial effect before verification
	julio, _ := reciboRepo.GetByID(1)
	if !julio.SaldoPendiente.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("Expected saldo untouched before verification, got %s", julio.SaldoPendiente.String())
	}

	// The mock keys allocation on the receipt's PropietarioID
	pagoRepo.Pagos[pago.ID].PropietarioID = 1

	resultado, err := pagoService.VerificarPago(context.Background(), pago.ID, VerificarPagoInput{})
	if err != nil {
		t.Fatalf("Expected no error verifying, got %v", err)
	}
	if !resultado.TotalAplicado.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected 200.00 applied, got %s", resultado.TotalAplicado.String())
	}

	julio, _ = reciboRepo.GetByID(1)
	if julio.Estado != domain.ReciboPagado {
		t.Errorf("Expected the receipt settled after verification, got %s", julio.Estado)
	}
}

func TestVerificarPago_YaProcesado(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)
	recibosDelPropietario(reciboRepo)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	pago, _ := pagoService.CrearPago(&domain.Pago{
		ReciboID:           1,
		MontoPagado:        decimal.NewFromInt(100),
		ReferenciaBancaria: "REF-006",
	})
	pagoRepo.Pagos[pago.ID].PropietarioID = 1

	if _, err := pagoService.VerificarPago(context.Background(), pago.ID, VerificarPagoInput{}); err != nil {
		t.Fatalf("Expected no error on first verification, got %v", err)
	}

	_, err := pagoService.VerificarPago(context.Background(), pago.ID, VerificarPagoInput{})
	if !errors.Is(err, domain.ErrPagoYaProcesado) {
		t.Fatalf("Expected ErrPagoYaProcesado, got %v", err)
	}
}

func TestVerificarPagosMultiples_ContinuaTrasErrores(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)
	recibosDelPropietario(reciboRepo)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	pago1, _ := pagoService.CrearPago(&domain.Pago{
		ReciboID: 1, MontoPagado: decimal.NewFromInt(200), ReferenciaBancaria: "REF-010",
	})
	pago2, _ := pagoService.CrearPago(&domain.Pago{
		ReciboID: 2, MontoPagado: decimal.NewFromInt(100), ReferenciaBancaria: "REF-011",
	})
	pagoRepo.Pagos[pago1.ID].PropietarioID = 1
	pagoRepo.Pagos[pago2.ID].PropietarioID = 1

	// Already-processed payment in the batch
	if err := pagoService.RechazarPago(pago2.ID, "ilegible"); err != nil {
		t.Fatalf("Expected no error rejecting, got %v", err)
	}

	resultado, err := pagoService.VerificarPagosMultiples(context.Background(), []int32{pago1.ID, pago2.ID})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resultado.PagosVerificados != 1 {
		t.Errorf("Expected 1 pago verified, got %d", resultado.PagosVerificados)
	}
	if len(resultado.Errores) != 1 {
		t.Fatalf("Expected 1 failed pago, got %d", len(resultado.Errores))
	}
	if resultado.Errores[0].PagoID != pago2.ID {
		t.Errorf("Expected pago %d in the error list, got %d", pago2.ID, resultado.Errores[0].PagoID)
	}

	julio, _ := reciboRepo.GetByID(1)
	if julio.Estado != domain.ReciboPagado {
		t.Errorf("Expected the July receipt settled, got %s", julio.Estado)
	}
}

func TestVerificarPagosMultiples_SinIDs(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	_, err := pagoService.VerificarPagosMultiples(context.Background(), nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestRechazarPago(t *testing.T) {
	reciboRepo := testutil.NewMockReciboRepository()
	pagoRepo := testutil.NewMockPagoRepository(reciboRepo)
	recibosDelPropietario(reciboRepo)

	pagoService := NewPagoService(pagoRepo, reciboRepo, nil)

	pago, _ := pagoService.CrearPago(&domain.Pago{
		ReciboID:           1,
		MontoPagado:        decimal.NewFromInt(100),
		ReferenciaBancaria: "REF-007",
	})

	if err := pagoService.RechazarPago(pago.ID, "Referencia no encontrada en el estado de cuenta"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	almacenado, _ := pagoRepo.GetByID(pago.ID)
	if almacenado.EstadoVerificacion != domain.PagoRechazado {
		t.Errorf("Expected estado Rechazado, got %s", almacenado.EstadoVerificacion)
	}

	// A rejected payment never touches the receipts
	julio, _ := reciboRepo.GetByID(1)
	if !julio.SaldoPendiente.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected saldo untouched, got %s", julio.SaldoPendiente.String())
	}

	if err := pagoService.RechazarPago(pago.ID, "again"); !errors.Is(err, domain.ErrPagoYaProcesado) {
		t.Errorf("Expected ErrPagoYaProcesado on second rejection, got %v", err)
	}
}
