package service

import (
	"errors"
	"testing"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestCreateGastoMes_DistribucionTodos(t *testing.T) {
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	conceptoRepo := testutil.NewMockConceptoGastoRepository()
	edificioRepo := testutil.NewMockEdificioRepository()
	conceptoRepo.Conceptos[1] = &domain.ConceptoGasto{ID: 1, Descripcion: "Vigilancia", TipoGastoID: 1}
	conceptoRepo.NextID = 2

	gastoMesService := NewGastoMesService(gastoMesRepo, conceptoRepo, edificioRepo)

	detalle, err := gastoMesService.CreateGastoMes(&domain.GastoMes{
		ConceptoID: 1,
		MontoBase:  decimal.NewFromInt(1000),
	}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if detalle.TipoDistribucion != domain.DistribucionTodos {
		t.Errorf("Expected distribution defaulted to Todos, got %s", detalle.TipoDistribucion)
	}
	if detalle.Estado != domain.EstadoActivo {
		t.Errorf("Expected estado defaulted to Activo, got %s", detalle.Estado)
	}
}

func TestCreateGastoMes_EdificiosEspecificosRequiereEdificios(t *testing.T) {
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	conceptoRepo := testutil.NewMockConceptoGastoRepository()
	edificioRepo := testutil.NewMockEdificioRepository()
	conceptoRepo.Conceptos[1] = &domain.ConceptoGasto{ID: 1, Descripcion: "Ascensor", TipoGastoID: 1}

	gastoMesService := NewGastoMesService(gastoMesRepo, conceptoRepo, edificioRepo)

	_, err := gastoMesService.CreateGastoMes(&domain.GastoMes{
		ConceptoID:       1,
		MontoBase:        decimal.NewFromInt(500),
		TipoDistribucion: domain.DistribucionEdificios,
	}, nil)
	if !errors.Is(err, domain.ErrGastoSinEdificios) {
		t.Fatalf("Expected ErrGastoSinEdificios, got %v", err)
	}
}

func TestCreateGastoMes_AsignaEdificios(t *testing.T) {
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	conceptoRepo := testutil.NewMockConceptoGastoRepository()
	edificioRepo := testutil.NewMockEdificioRepository()
	conceptoRepo.Conceptos[1] = &domain.ConceptoGasto{ID: 1, Descripcion: "Ascensor", TipoGastoID: 1}
	edificioRepo.Edificios[1] = &domain.Edificio{ID: 1, NumeroEdificio: "A", Estado: domain.EstadoActivo}
	edificioRepo.Edificios[2] = &domain.Edificio{ID: 2, NumeroEdificio: "B", Estado: domain.EstadoActivo}

	gastoMesService := NewGastoMesService(gastoMesRepo, conceptoRepo, edificioRepo)

	detalle, err := gastoMesService.CreateGastoMes(&domain.GastoMes{
		ConceptoID:       1,
		MontoBase:        decimal.NewFromInt(500),
		TipoDistribucion: domain.DistribucionEdificios,
	}, []int32{1, 2})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(detalle.EdificioIDs) != 2 {
		t.Errorf("Expected 2 edificios assigned, got %d", len(detalle.EdificioIDs))
	}
}

func TestAgregarEdificio_RechazaDistribucionTodos(t *testing.T) {
	gastoMesRepo := testutil.NewMockGastoMesRepository()
	conceptoRepo := testutil.NewMockConceptoGastoRepository()
	edificioRepo := testutil.NewMockEdificioRepository()
	gastoMesRepo.Gastos[1] = &domain.GastoMesDetalle{GastoMes: domain.GastoMes{
		ID: 1, ConceptoID: 1, MontoBase: decimal.NewFromInt(100),
		TipoDistribucion: domain.DistribucionTodos, Estado: domain.EstadoActivo,
	}}
	edificioRepo.Edificios[1] = &domain.Edificio{ID: 1, NumeroEdificio: "A", Estado: domain.EstadoActivo}

	gastoMesService := NewGastoMesService(gastoMesRepo, conceptoRepo, edificioRepo)

	err := gastoMesService.AgregarEdificio(1, 1)
	if !errors.Is(err, domain.ErrDistribucionInvalida) {
		t.Fatalf("Expected ErrDistribucionInvalida, got %v", err)
	}
}
