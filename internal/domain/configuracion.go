package domain

import (
	"errors"
	"time"
)

var (
	ErrConfiguracionNoEncontrada = errors.New("configuracion de recibos not found")
	ErrDiaInvalido               = errors.New("dia must be between 1 and 31")
)

// ConfiguracionRecibos holds the scheduling knobs for automatic receipt
// generation and payment reminders.
type ConfiguracionRecibos struct {
	ID                int32     `json:"id"`
	DiaGeneracion     int       `json:"diaGeneracion"`
	DiaRecordatorio   int       `json:"diaRecordatorio"`
	Activo            bool      `json:"activo"`
	FechaCreacion     time.Time `json:"fechaCreacion"`
	FechaModificacion time.Time `json:"fechaModificacion"`
}

func (c *ConfiguracionRecibos) Validate() error {
	if c.DiaGeneracion < 1 || c.DiaGeneracion > 31 {
		return ErrDiaInvalido
	}
	if c.DiaRecordatorio < 1 || c.DiaRecordatorio > 31 {
		return ErrDiaInvalido
	}
	return nil
}

type ConfiguracionRepository interface {
	Create(c *ConfiguracionRecibos) (*ConfiguracionRecibos, error)
	GetAll() ([]*ConfiguracionRecibos, error)
	GetActiva() (*ConfiguracionRecibos, error)
	Update(c *ConfiguracionRecibos) (*ConfiguracionRecibos, error)
	Delete(id int32) error
}
