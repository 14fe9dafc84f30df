package domain

import (
	"errors"
	"strings"
)

var (
	ErrConceptoNoEncontrado   = errors.New("concepto de gasto not found")
	ErrDescripcionRequerida   = errors.New("descripcion is required")
)

type ConceptoGasto struct {
	ID          int32  `json:"id"`
	Descripcion string `json:"descripcion"`
	TipoGastoID int32  `json:"tipoGastoId"`
}

// ConceptoGastoDetalle joins the parent expense type for listings.
type ConceptoGastoDetalle struct {
	ConceptoGasto
	TipoGastoNombre string      `json:"tipoGastoNombre"`
	TipoCalculo     TipoCalculo `json:"tipoCalculo"`
}

func (c *ConceptoGasto) Validate() error {
	if strings.TrimSpace(c.Descripcion) == "" {
		return ErrDescripcionRequerida
	}
	if c.TipoGastoID <= 0 {
		return ErrInvalidInput
	}
	return nil
}

type ConceptoGastoRepository interface {
	Create(c *ConceptoGasto) (*ConceptoGasto, error)
	GetByID(id int32) (*ConceptoGasto, error)
	GetAll() ([]*ConceptoGastoDetalle, error)
	Update(c *ConceptoGasto) (*ConceptoGasto, error)
	Delete(id int32) error
}
