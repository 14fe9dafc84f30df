package service

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/repository/storage"
	"github.com/AdrianLS4/gestion-inmuebles/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// presignedURLExpiry is how long a payment proof link stays valid
const presignedURLExpiry = 15 * time.Minute

// PagoService handles payment registration, verification and allocation
type PagoService struct {
	pagoRepo        domain.PagoRepository
	reciboRepo      domain.ReciboRepository
	comprobanteRepo storage.ComprobanteRepository
	eventPublisher  websocket.EventPublisher
}

// NewPagoService creates a new PagoService
func NewPagoService(pagoRepo domain.PagoRepository, reciboRepo domain.ReciboRepository, comprobanteRepo storage.ComprobanteRepository) *PagoService {
	return &PagoService{
		pagoRepo:        pagoRepo,
		reciboRepo:      reciboRepo,
		comprobanteRepo: comprobanteRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *PagoService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PagoService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// RegistrarPago records a verified payment against a receipt and applies it
// across the owner's debt, oldest receipt first, merging any standing credit.
func (s *PagoService) RegistrarPago(reciboID int32, monto decimal.Decimal, referencia string) (*domain.ResultadoPago, error) {
	if monto.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrMontoPagoInvalido
	}
	if referencia == "" {
		return nil, domain.ErrReferenciaRequerida
	}

	recibo, err := s.reciboRepo.GetByID(reciboID)
	if err != nil {
		return nil, err
	}

	operacionID := uuid.New()
	resultado, err := s.pagoRepo.RegistrarVerificado(reciboID, recibo.PropietarioID, monto, referencia, operacionID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int32("pago_id", resultado.PagoID).
		Str("operacion_id", operacionID.String()).
		Str("monto", monto.StringFixed(2)).
		Str("aplicado", resultado.TotalAplicado.StringFixed(2)).
		Str("credito", resultado.CreditoRestante.StringFixed(2)).
		Msg("Payment registered and allocated")

	s.publishEvent(websocket.PagoRegistrado(resultado))
	return resultado, nil
}

// CrearPago stores an owner-reported payment pending verification. It has no
// financial effect until an administrator verifies it.
func (s *PagoService) CrearPago(p *domain.Pago) (*domain.Pago, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.reciboRepo.GetByID(p.ReciboID); err != nil {
		return nil, err
	}
	if p.FechaPago.IsZero() {
		p.FechaPago = time.Now()
	}
	return s.pagoRepo.Create(p)
}

// VerificarPagoInput carries the optional corrections an administrator makes
// while verifying, plus the uploaded payment proof if any.
type VerificarPagoInput struct {
	FechaPago     *time.Time
	Monto         *decimal.Decimal
	Nota          string
	Comprobante   io.Reader
	NombreArchivo string
	ContentType   string
	TamanoArchivo int64
}

// VerificarPago promotes a pending payment to verified, stores the payment
// proof, and runs the allocation for its amount.
func (s *PagoService) VerificarPago(ctx context.Context, pagoID int32, input VerificarPagoInput) (*domain.ResultadoPago, error) {
	if input.Monto != nil && input.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrMontoPagoInvalido
	}

	var comprobanteKey *string
	if input.Comprobante != nil {
		if s.comprobanteRepo == nil {
			return nil, domain.ErrInternalError
		}
		objectPath := storage.GenerateObjectPath(pagoID, filepath.Ext(input.NombreArchivo))
		key, err := s.comprobanteRepo.Upload(ctx, objectPath, input.Comprobante, input.ContentType, input.TamanoArchivo)
		if err != nil {
			return nil, err
		}
		comprobanteKey = &key
	}

	operacionID := uuid.New()
	resultado, err := s.pagoRepo.Verificar(pagoID, input.FechaPago, input.Monto, input.Nota, comprobanteKey, operacionID)
	if err != nil {
		// The allocation failed after the proof was stored; drop the orphan.
		if comprobanteKey != nil {
			if delErr := s.comprobanteRepo.Delete(ctx, *comprobanteKey); delErr != nil {
				log.Warn().Err(delErr).Str("key", *comprobanteKey).Msg("Failed to delete orphan payment proof")
			}
		}
		return nil, err
	}

	log.Info().
		Int32("pago_id", pagoID).
		Str("operacion_id", operacionID.String()).
		Str("aplicado", resultado.TotalAplicado.StringFixed(2)).
		Msg("Payment verified and allocated")

	s.publishEvent(websocket.PagoVerificado(resultado))
	return resultado, nil
}

// ResultadoVerificacionMultiple summarizes a batch verification run
type ResultadoVerificacionMultiple struct {
	PagosVerificados int             `json:"pagosVerificados"`
	Errores          []ErrorPagoLote `json:"errores"`
}

// ErrorPagoLote reports one payment that failed during a batch run
type ErrorPagoLote struct {
	PagoID int32  `json:"pagoId"`
	Error  string `json:"error"`
}

// VerificarPagosMultiples verifies a batch of pending payments. Each payment
// runs through the full verification path so its allocation and audit trail
// are recorded; failures are collected instead of aborting the batch.
func (s *PagoService) VerificarPagosMultiples(ctx context.Context, pagoIDs []int32) (*ResultadoVerificacionMultiple, error) {
	if len(pagoIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	resultado := &ResultadoVerificacionMultiple{Errores: []ErrorPagoLote{}}
	for _, id := range pagoIDs {
		if _, err := s.VerificarPago(ctx, id, VerificarPagoInput{}); err != nil {
			resultado.Errores = append(resultado.Errores, ErrorPagoLote{PagoID: id, Error: err.Error()})
			continue
		}
		resultado.PagosVerificados++
	}

	log.Info().
		Int("verificados", resultado.PagosVerificados).
		Int("fallidos", len(resultado.Errores)).
		Msg("Batch payment verification finished")
	return resultado, nil
}

// RechazarPago marks a pending payment as rejected with a reason
func (s *PagoService) RechazarPago(pagoID int32, nota string) error {
	if err := s.pagoRepo.Rechazar(pagoID, nota); err != nil {
		return err
	}
	s.publishEvent(websocket.PagoRechazado(map[string]int32{"pagoId": pagoID}))
	return nil
}

// GetPagos retrieves payments matching the filters
func (s *PagoService) GetPagos(filtros *domain.PagoFiltros) ([]*domain.PagoDetalle, error) {
	return s.pagoRepo.GetAll(filtros)
}

// GetPagoByID retrieves a payment by ID
func (s *PagoService) GetPagoByID(id int32) (*domain.PagoDetalle, error) {
	return s.pagoRepo.GetByID(id)
}

// ComprobanteURL returns a temporary link to a payment's stored proof
func (s *PagoService) ComprobanteURL(ctx context.Context, pagoID int32) (string, error) {
	pago, err := s.pagoRepo.GetByID(pagoID)
	if err != nil {
		return "", err
	}
	if pago.ComprobanteKey == nil {
		return "", domain.ErrNotFound
	}
	return s.comprobanteRepo.GeneratePresignedURL(ctx, *pago.ComprobanteKey, presignedURLExpiry)
}
