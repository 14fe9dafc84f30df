package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeCreated    EventType = "created"
	EventTypeUpdated    EventType = "updated"
	EventTypeDeleted    EventType = "deleted"
	EventTypeGenerados  EventType = "generados"
	EventTypeRegistrado EventType = "registrado"
	EventTypeVerificado EventType = "verificado"
	EventTypeRechazado  EventType = "rechazado"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeRecibo     EntityType = "recibo"
	EntityTypePago       EntityType = "pago"
	EntityTypeMovimiento EntityType = "movimiento_gasto"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "pago.verificado"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "pago"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RecibosGenerados creates a recibo.generados event after a batch run
func RecibosGenerados(payload interface{}) Event {
	return NewEvent(EventTypeGenerados, EntityTypeRecibo, payload)
}

// RecibosActualizados creates a recibo.updated event
func RecibosActualizados(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeRecibo, payload)
}

// PagoRegistrado creates a pago.registrado event
func PagoRegistrado(payload interface{}) Event {
	return NewEvent(EventTypeRegistrado, EntityTypePago, payload)
}

// PagoVerificado creates a pago.verificado event
func PagoVerificado(payload interface{}) Event {
	return NewEvent(EventTypeVerificado, EntityTypePago, payload)
}

// PagoRechazado creates a pago.rechazado event
func PagoRechazado(payload interface{}) Event {
	return NewEvent(EventTypeRechazado, EntityTypePago, payload)
}

// MovimientoCreado creates a movimiento_gasto.created event
func MovimientoCreado(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeMovimiento, payload)
}
