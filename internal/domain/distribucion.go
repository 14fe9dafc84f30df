package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrGastoSinEdificios     = errors.New("gasto No_Comun has no applicable edificios")
	ErrEdificiosSinInmuebles = errors.New("applicable edificios have no inmuebles")
)

// GastoActivo is a monthly expense resolved for distribution: calculation
// mode from its expense type, and the applicable building ids when the
// distribution is building-scoped.
type GastoActivo struct {
	GastoMesID   int32
	Descripcion  string
	TipoCalculo  TipoCalculo
	Distribucion TipoDistribucion
	Monto        decimal.Decimal
	EdificioIDs  []int32
}

// DetalleCargo is one expense's contribution to one unit's monthly charge.
type DetalleCargo struct {
	GastoMesID  int32
	Descripcion string
	TipoGasto   TipoCalculo
	Monto       decimal.Decimal
}

// CargoInmueble accumulates a unit's charges for the period with the line
// items that produced them.
type CargoInmueble struct {
	InmuebleID int32
	Total      decimal.Decimal
	Detalles   []DetalleCargo
}

// CalcularMontoPorAlicuota distributes a Comun expense by ownership share.
func CalcularMontoPorAlicuota(monto, alicuota decimal.Decimal) decimal.Decimal {
	return monto.Mul(alicuota).Round(2)
}

// CalcularMontoPartesIguales splits a No_Comun expense equally.
func CalcularMontoPartesIguales(monto decimal.Decimal, totalInmuebles int) decimal.Decimal {
	return monto.DivRound(decimal.NewFromInt(int64(totalInmuebles)), 2)
}

// CalcularCargos runs the distribution over a snapshot of active expenses and
// the full unit roster. It is a pure computation: no I/O, no mutation of the
// inputs.
//
// Comun expenses reach every unit in proportion to its alicuota. No_Comun
// expenses split equally across the applicable units: the whole roster for
// Todos, or the units of the selected buildings for Edificios_Especificos.
// A No_Comun expense that resolves to zero units is a configuration error,
// never a silent skip or a division by zero.
func CalcularCargos(gastos []*GastoActivo, inmuebles []*Inmueble) (map[int32]*CargoInmueble, error) {
	for _, inm := range inmuebles {
		if inm.Alicuota.LessThanOrEqual(decimal.Zero) || inm.Alicuota.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("inmueble %d: %w", inm.ID, ErrAlicuotaInvalida)
		}
	}

	cargos := make(map[int32]*CargoInmueble, len(inmuebles))
	cargoDe := func(id int32) *CargoInmueble {
		c, ok := cargos[id]
		if !ok {
			c = &CargoInmueble{InmuebleID: id, Total: decimal.Zero}
			cargos[id] = c
		}
		return c
	}

	for _, gasto := range gastos {
		switch gasto.TipoCalculo {
		case CalculoComun:
			for _, inm := range inmuebles {
				monto := CalcularMontoPorAlicuota(gasto.Monto, inm.Alicuota)
				if monto.IsZero() {
					continue
				}
				c := cargoDe(inm.ID)
				c.Total = c.Total.Add(monto)
				c.Detalles = append(c.Detalles, DetalleCargo{
					GastoMesID:  gasto.GastoMesID,
					Descripcion: gasto.Descripcion,
					TipoGasto:   CalculoComun,
					Monto:       monto,
				})
			}

		case CalculoNoComun:
			aplicables, err := inmueblesAplicables(gasto, inmuebles)
			if err != nil {
				return nil, err
			}
			monto := CalcularMontoPartesIguales(gasto.Monto, len(aplicables))
			for _, inm := range aplicables {
				c := cargoDe(inm.ID)
				c.Total = c.Total.Add(monto)
				c.Detalles = append(c.Detalles, DetalleCargo{
					GastoMesID:  gasto.GastoMesID,
					Descripcion: gasto.Descripcion,
					TipoGasto:   CalculoNoComun,
					Monto:       monto,
				})
			}

		default:
			return nil, fmt.Errorf("gasto %d: %w", gasto.GastoMesID, ErrTipoCalculoInvalido)
		}
	}

	return cargos, nil
}

func inmueblesAplicables(gasto *GastoActivo, inmuebles []*Inmueble) ([]*Inmueble, error) {
	if gasto.Distribucion == DistribucionTodos {
		if len(inmuebles) == 0 {
			return nil, fmt.Errorf("gasto %d (%s): %w", gasto.GastoMesID, gasto.Descripcion, ErrEdificiosSinInmuebles)
		}
		return inmuebles, nil
	}

	if len(gasto.EdificioIDs) == 0 {
		return nil, fmt.Errorf("gasto %d (%s): %w", gasto.GastoMesID, gasto.Descripcion, ErrGastoSinEdificios)
	}

	seleccionados := make(map[int32]bool, len(gasto.EdificioIDs))
	for _, id := range gasto.EdificioIDs {
		seleccionados[id] = true
	}

	var aplicables []*Inmueble
	for _, inm := range inmuebles {
		if seleccionados[inm.EdificioID] {
			aplicables = append(aplicables, inm)
		}
	}
	if len(aplicables) == 0 {
		return nil, fmt.Errorf("gasto %d (%s): %w", gasto.GastoMesID, gasto.Descripcion, ErrEdificiosSinInmuebles)
	}
	return aplicables, nil
}
