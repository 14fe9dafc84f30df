package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrGastoMesNoEncontrado = errors.New("gasto del mes not found")
	ErrMontoBaseInvalido    = errors.New("monto_base must be positive")
	ErrDistribucionInvalida = errors.New("tipo_distribucion must be one of: Todos, Edificios_Especificos")
)

// TipoDistribucion controls which buildings a monthly expense reaches: the
// whole condominium, or an explicit building set held in gastos_edificios.
type TipoDistribucion string

const (
	DistribucionTodos      TipoDistribucion = "Todos"
	DistribucionEdificios  TipoDistribucion = "Edificios_Especificos"
)

func (t TipoDistribucion) Valid() bool {
	return t == DistribucionTodos || t == DistribucionEdificios
}

type GastoMes struct {
	ID               int32            `json:"id"`
	ConceptoID       int32            `json:"conceptoId"`
	MontoBase        decimal.Decimal  `json:"montoBase"`
	EsRecurrente     bool             `json:"esRecurrente"`
	TipoDistribucion TipoDistribucion `json:"tipoDistribucion"`
	Estado           Estado           `json:"estado"`
}

// GastoMesDetalle joins concept and type labels plus the applicable building
// ids for listings.
type GastoMesDetalle struct {
	GastoMes
	ConceptoDescripcion string      `json:"conceptoDescripcion"`
	TipoCalculo         TipoCalculo `json:"tipoCalculo"`
	EdificioIDs         []int32     `json:"edificioIds"`
}

func (g *GastoMes) Validate() error {
	if g.ConceptoID <= 0 {
		return ErrInvalidInput
	}
	if g.MontoBase.LessThanOrEqual(decimal.Zero) {
		return ErrMontoBaseInvalido
	}
	if g.TipoDistribucion == "" {
		g.TipoDistribucion = DistribucionTodos
	}
	if !g.TipoDistribucion.Valid() {
		return ErrDistribucionInvalida
	}
	if g.Estado == "" {
		g.Estado = EstadoActivo
	}
	if !g.Estado.Valid() {
		return ErrEstadoInvalido
	}
	return nil
}

type GastoMesRepository interface {
	Create(g *GastoMes) (*GastoMes, error)
	GetByID(id int32) (*GastoMesDetalle, error)
	GetAll() ([]*GastoMesDetalle, error)
	Update(g *GastoMes) (*GastoMes, error)
	Delete(id int32) error
	// GetActivosParaDistribucion resolves every active monthly expense with
	// its calculation mode and applicable building set, ready for CalcularCargos.
	GetActivosParaDistribucion() ([]*GastoActivo, error)
	GetRecurrentesActivos() ([]*GastoMesDetalle, error)
	AgregarEdificio(gastoMesID, edificioID int32) error
	EliminarEdificio(gastoMesID, edificioID int32) error
}
