package domain

import (
	"errors"
	"strings"
)

var (
	ErrTipoGastoNoEncontrado = errors.New("tipo de gasto not found")
	ErrTipoCalculoInvalido   = errors.New("tipo_calculo must be one of: Comun, No_Comun")
)

// TipoCalculo is the closed set of expense calculation modes: proportional by
// ownership quota, or equal split across the applicable units.
type TipoCalculo string

const (
	CalculoComun   TipoCalculo = "Comun"
	CalculoNoComun TipoCalculo = "No_Comun"
)

func (t TipoCalculo) Valid() bool {
	return t == CalculoComun || t == CalculoNoComun
}

type TipoGasto struct {
	ID          int32       `json:"id"`
	Nombre      string      `json:"nombre"`
	Descripcion string      `json:"descripcion"`
	TipoCalculo TipoCalculo `json:"tipoCalculo"`
	Estado      Estado      `json:"estado"`
}

func (t *TipoGasto) Validate() error {
	if strings.TrimSpace(t.Nombre) == "" {
		return ErrNombreRequerido
	}
	if t.TipoCalculo == "" {
		t.TipoCalculo = CalculoComun
	}
	if !t.TipoCalculo.Valid() {
		return ErrTipoCalculoInvalido
	}
	if t.Estado == "" {
		t.Estado = EstadoActivo
	}
	if !t.Estado.Valid() {
		return ErrEstadoInvalido
	}
	return nil
}

type TipoGastoRepository interface {
	Create(t *TipoGasto) (*TipoGasto, error)
	GetByID(id int32) (*TipoGasto, error)
	GetAll() ([]*TipoGasto, error)
	Update(t *TipoGasto) (*TipoGasto, error)
	Delete(id int32) error
}
