package domain

import (
	"errors"
	"strings"
)

var (
	ErrEdificioNoEncontrado   = errors.New("edificio not found")
	ErrNumeroEdificioRequerido = errors.New("numero_edificio is required")
	ErrEstadoInvalido         = errors.New("estado must be one of: Activo, Inactivo")
)

type Estado string

const (
	EstadoActivo   Estado = "Activo"
	EstadoInactivo Estado = "Inactivo"
)

func (e Estado) Valid() bool {
	return e == EstadoActivo || e == EstadoInactivo
}

type Edificio struct {
	ID             int32  `json:"id"`
	NumeroEdificio string `json:"numeroEdificio"`
	Descripcion    string `json:"descripcion"`
	Estado         Estado `json:"estado"`
}

func (e *Edificio) Validate() error {
	if strings.TrimSpace(e.NumeroEdificio) == "" {
		return ErrNumeroEdificioRequerido
	}
	if e.Estado == "" {
		e.Estado = EstadoActivo
	}
	if !e.Estado.Valid() {
		return ErrEstadoInvalido
	}
	return nil
}

type EdificioRepository interface {
	Create(e *Edificio) (*Edificio, error)
	GetByID(id int32) (*Edificio, error)
	GetAll() ([]*Edificio, error)
	Update(e *Edificio) (*Edificio, error)
	Delete(id int32) error
}
