package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrPropietarioNoEncontrado = errors.New("propietario not found")
	ErrNombreRequerido         = errors.New("nombre is required")
	ErrApellidoRequerido       = errors.New("apellido is required")
	ErrCedulaInvalida          = errors.New("cedula must match V/E followed by 7-8 digits")
	ErrCedulaDuplicada         = errors.New("cedula already registered")
)

// cedulaPattern accepts the national id with or without dot separators,
// e.g. "V-12345678", "V12.345.678", "E-1234567".
var cedulaPattern = regexp.MustCompile(`^[VE]-?\d{7,8}$`)

type Propietario struct {
	ID       int32  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Cedula   string `json:"cedula"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

func (p *Propietario) Validate() error {
	if strings.TrimSpace(p.Nombre) == "" {
		return ErrNombreRequerido
	}
	if strings.TrimSpace(p.Apellido) == "" {
		return ErrApellidoRequerido
	}
	if !cedulaPattern.MatchString(NormalizarCedula(p.Cedula)) {
		return ErrCedulaInvalida
	}
	return nil
}

// NormalizarCedula strips dot separators and uppercases the prefix so
// "v12.345.678" and "V-12345678" compare equal.
func NormalizarCedula(cedula string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(cedula), ".", ""))
}

type PropietarioRepository interface {
	Create(p *Propietario) (*Propietario, error)
	GetByID(id int32) (*Propietario, error)
	GetAll() ([]*Propietario, error)
	Update(p *Propietario) (*Propietario, error)
	Delete(id int32) error
}
