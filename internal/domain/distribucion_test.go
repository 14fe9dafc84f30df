package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func inmueblesDePrueba() []*Inmueble {
	return []*Inmueble{
		{ID: 1, EdificioID: 1, Alicuota: decimal.NewFromFloat(0.25)},
		{ID: 2, EdificioID: 1, Alicuota: decimal.NewFromFloat(0.25)},
		{ID: 3, EdificioID: 2, Alicuota: decimal.NewFromFloat(0.30)},
		{ID: 4, EdificioID: 2, Alicuota: decimal.NewFromFloat(0.20)},
	}
}

func TestCalcularCargos_ComunPorAlicuota(t *testing.T) {
	gastos := []*GastoActivo{
		{GastoMesID: 1, Descripcion: "Vigilancia", TipoCalculo: CalculoComun, Distribucion: DistribucionTodos, Monto: decimal.NewFromInt(1000)},
	}

	cargos, err := CalcularCargos(gastos, inmueblesDePrueba())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	esperados := map[int32]string{1: "250", 2: "250", 3: "300", 4: "200"}
	for id, esperado := range esperados {
		cargo, ok := cargos[id]
		if !ok {
			t.Fatalf("Expected cargo for inmueble %d", id)
		}
		if !cargo.Total.Equal(decimal.RequireFromString(esperado)) {
			t.Errorf("Inmueble %d: expected %s, got %s", id, esperado, cargo.Total)
		}
		if len(cargo.Detalles) != 1 || cargo.Detalles[0].TipoGasto != CalculoComun {
			t.Errorf("Inmueble %d: expected one Comun detalle", id)
		}
	}

	// Conservation: the sum of distributed charges equals the expense total
	// when alicuotas sum to 1.
	suma := decimal.Zero
	for _, c := range cargos {
		suma = suma.Add(c.Total)
	}
	if !suma.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected distributed sum 1000, got %s", suma)
	}
}

func TestCalcularCargos_NoComunEdificiosEspecificos(t *testing.T) {
	gastos := []*GastoActivo{
		{GastoMesID: 2, Descripcion: "Pintura torre B", TipoCalculo: CalculoNoComun, Distribucion: DistribucionEdificios, Monto: decimal.NewFromInt(30), EdificioIDs: []int32{2}},
	}

	cargos, err := CalcularCargos(gastos, inmueblesDePrueba())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Units outside the selected building get no contribution.
	if _, ok := cargos[1]; ok {
		t.Error("Inmueble 1 should not be charged")
	}
	if _, ok := cargos[2]; ok {
		t.Error("Inmueble 2 should not be charged")
	}

	// The two applicable units split the amount equally and conserve it.
	quince := decimal.NewFromInt(15)
	for _, id := range []int32{3, 4} {
		if !cargos[id].Total.Equal(quince) {
			t.Errorf("Inmueble %d: expected 15, got %s", id, cargos[id].Total)
		}
	}
	if !cargos[3].Total.Add(cargos[4].Total).Equal(decimal.NewFromInt(30)) {
		t.Error("No_Comun distribution must conserve the expense total")
	}
}

func TestCalcularCargos_NoComunTodos(t *testing.T) {
	gastos := []*GastoActivo{
		{GastoMesID: 3, Descripcion: "Fumigación", TipoCalculo: CalculoNoComun, Distribucion: DistribucionTodos, Monto: decimal.NewFromInt(100)},
	}

	cargos, err := CalcularCargos(gastos, inmueblesDePrueba())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for id, cargo := range cargos {
		if !cargo.Total.Equal(decimal.NewFromInt(25)) {
			t.Errorf("Inmueble %d: expected 25, got %s", id, cargo.Total)
		}
	}
}

func TestCalcularCargos_SinEdificiosSeleccionados(t *testing.T) {
	gastos := []*GastoActivo{
		{GastoMesID: 4, Descripcion: "Ascensor", TipoCalculo: CalculoNoComun, Distribucion: DistribucionEdificios, Monto: decimal.NewFromInt(50)},
	}

	_, err := CalcularCargos(gastos, inmueblesDePrueba())
	if !errors.Is(err, ErrGastoSinEdificios) {
		t.Fatalf("Expected ErrGastoSinEdificios, got %v", err)
	}
}

func TestCalcularCargos_EdificioSinInmuebles(t *testing.T) {
	gastos := []*GastoActivo{
		{GastoMesID: 5, Descripcion: "Portón", TipoCalculo: CalculoNoComun, Distribucion: DistribucionEdificios, Monto: decimal.NewFromInt(50), EdificioIDs: []int32{99}},
	}

	_, err := CalcularCargos(gastos, inmueblesDePrueba())
	if !errors.Is(err, ErrEdificiosSinInmuebles) {
		t.Fatalf("Expected ErrEdificiosSinInmuebles, got %v", err)
	}
}

func TestCalcularCargos_AlicuotaInvalida(t *testing.T) {
	inmuebles := []*Inmueble{
		{ID: 1, EdificioID: 1, Alicuota: decimal.NewFromFloat(-0.5)},
	}
	gastos := []*GastoActivo{
		{GastoMesID: 1, TipoCalculo: CalculoComun, Monto: decimal.NewFromInt(10)},
	}

	_, err := CalcularCargos(gastos, inmuebles)
	if !errors.Is(err, ErrAlicuotaInvalida) {
		t.Fatalf("Expected ErrAlicuotaInvalida, got %v", err)
	}
}

func TestCalcularCargos_AcumulaVariosGastos(t *testing.T) {
	// The end-to-end scenario: a $50 Comun charge at 0.5 alicuota plus a $30
	// No_Comun charge split between 2 units leaves each unit owing 25+15.
	inmuebles := []*Inmueble{
		{ID: 1, EdificioID: 1, Alicuota: decimal.NewFromFloat(0.5)},
		{ID: 2, EdificioID: 1, Alicuota: decimal.NewFromFloat(0.5)},
	}
	gastos := []*GastoActivo{
		{GastoMesID: 1, Descripcion: "Limpieza", TipoCalculo: CalculoComun, Distribucion: DistribucionTodos, Monto: decimal.NewFromInt(50)},
		{GastoMesID: 2, Descripcion: "Bombillos", TipoCalculo: CalculoNoComun, Distribucion: DistribucionEdificios, Monto: decimal.NewFromInt(30), EdificioIDs: []int32{1}},
	}

	cargos, err := CalcularCargos(gastos, inmuebles)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, id := range []int32{1, 2} {
		if !cargos[id].Total.Equal(decimal.NewFromInt(40)) {
			t.Errorf("Inmueble %d: expected 40, got %s", id, cargos[id].Total)
		}
		if len(cargos[id].Detalles) != 2 {
			t.Errorf("Inmueble %d: expected 2 detalles, got %d", id, len(cargos[id].Detalles))
		}
	}
}

func TestValidarAlicuotas(t *testing.T) {
	suma, err := ValidarAlicuotas(inmueblesDePrueba())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !suma.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected sum 1, got %s", suma)
	}

	desbalanceados := []*Inmueble{
		{ID: 1, Alicuota: decimal.NewFromFloat(0.5)},
		{ID: 2, Alicuota: decimal.NewFromFloat(0.3)},
	}
	if _, err := ValidarAlicuotas(desbalanceados); !errors.Is(err, ErrAlicuotasNoSuman) {
		t.Fatalf("Expected ErrAlicuotasNoSuman, got %v", err)
	}
}
