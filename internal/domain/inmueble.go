package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInmuebleNoEncontrado = errors.New("inmueble not found")
	ErrAlicuotaInvalida     = errors.New("alicuota must be a fraction in (0, 1]")
	ErrAlicuotasNoSuman     = errors.New("alicuotas do not sum to 1")
	ErrInmuebleDuplicado    = errors.New("inmueble already exists for edificio/piso/apartamento")
)

// ToleranciaAlicuotas is the accepted deviation of the alicuota sum from 1.
// The sum is validated, never auto-corrected.
var ToleranciaAlicuotas = decimal.NewFromFloat(0.01)

type Inmueble struct {
	ID            int32           `json:"id"`
	PropietarioID int32           `json:"propietarioId"`
	EdificioID    int32           `json:"edificioId"`
	Piso          string          `json:"piso"`
	Apartamento   string          `json:"apartamento"`
	Alicuota      decimal.Decimal `json:"alicuota"`
}

func (i *Inmueble) Validate() error {
	if i.PropietarioID <= 0 || i.EdificioID <= 0 {
		return ErrInvalidInput
	}
	if i.Alicuota.LessThanOrEqual(decimal.Zero) || i.Alicuota.GreaterThan(decimal.NewFromInt(1)) {
		return ErrAlicuotaInvalida
	}
	return nil
}

// ValidarAlicuotas checks that the full roster's quotas sum to 1 within
// tolerance. Returns the actual sum alongside the error so callers can report
// the deviation.
func ValidarAlicuotas(inmuebles []*Inmueble) (decimal.Decimal, error) {
	suma := decimal.Zero
	for _, inm := range inmuebles {
		if inm.Alicuota.LessThanOrEqual(decimal.Zero) {
			return suma, ErrAlicuotaInvalida
		}
		suma = suma.Add(inm.Alicuota)
	}
	if suma.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(ToleranciaAlicuotas) {
		return suma, ErrAlicuotasNoSuman
	}
	return suma, nil
}

// InmuebleDetalle carries the joined owner/building labels used by listings
// and reports.
type InmuebleDetalle struct {
	Inmueble
	Propietario    string `json:"propietario"`
	NumeroEdificio string `json:"numeroEdificio"`
}

type InmuebleRepository interface {
	Create(i *Inmueble) (*Inmueble, error)
	GetByID(id int32) (*Inmueble, error)
	GetAll() ([]*Inmueble, error)
	GetAllDetalle() ([]*InmuebleDetalle, error)
	Update(i *Inmueble) (*Inmueble, error)
	Delete(id int32) error
}
