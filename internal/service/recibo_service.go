package service

import (
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/AdrianLS4/gestion-inmuebles/internal/util"
	"github.com/AdrianLS4/gestion-inmuebles/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReciboService composes and maintains the monthly receipts
type ReciboService struct {
	reciboRepo      domain.ReciboRepository
	inmuebleRepo    domain.InmuebleRepository
	gastoMesRepo    domain.GastoMesRepository
	tasaInteresMora decimal.Decimal
	eventPublisher  websocket.EventPublisher
}

// NewReciboService creates a new ReciboService
func NewReciboService(reciboRepo domain.ReciboRepository, inmuebleRepo domain.InmuebleRepository, gastoMesRepo domain.GastoMesRepository, tasaInteresMora decimal.Decimal) *ReciboService {
	return &ReciboService{
		reciboRepo:      reciboRepo,
		inmuebleRepo:    inmuebleRepo,
		gastoMesRepo:    gastoMesRepo,
		tasaInteresMora: tasaInteresMora,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ReciboService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ReciboService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// GenerarRecibos runs the full billing pipeline for the period of
// fechaEmision: validates the quota roster, distributes every active expense,
// carries forward prior debt with one month of late interest, and persists
// the batch. Units that already hold a receipt in the period keep it.
func (s *ReciboService) GenerarRecibos(fechaEmision time.Time) (*domain.ResultadoGeneracion, error) {
	inmuebles, err := s.inmuebleRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if len(inmuebles) == 0 {
		return nil, domain.ErrEdificiosSinInmuebles
	}
	if _, err := domain.ValidarAlicuotas(inmuebles); err != nil {
		return nil, err
	}

	gastos, err := s.gastoMesRepo.GetActivosParaDistribucion()
	if err != nil {
		return nil, err
	}

	cargos, err := domain.CalcularCargos(gastos, inmuebles)
	if err != nil {
		return nil, err
	}

	saldos, err := s.reciboRepo.SaldosPendientesPorInmueble()
	if err != nil {
		return nil, err
	}

	periodo := util.Periodo(fechaEmision)
	recibos := make([]*domain.Recibo, 0, len(inmuebles))
	detalles := make(map[int32][]domain.DetalleCargo, len(inmuebles))
	omitidos := 0

	for _, inm := range inmuebles {
		cargosMes := decimal.Zero
		if cargo, ok := cargos[inm.ID]; ok {
			cargosMes = cargo.Total
			detalles[inm.ID] = cargo.Detalles
		}
		deuda := saldos[inm.ID]
		interes := domain.CalcularInteresMora(deuda, s.tasaInteresMora)
		total := cargosMes.Add(deuda).Add(interes)

		// A unit with no charges and no carried debt gets no receipt.
		if total.LessThanOrEqual(decimal.Zero) {
			omitidos++
			continue
		}

		recibos = append(recibos, &domain.Recibo{
			InmuebleID:         inm.ID,
			FechaEmision:       fechaEmision,
			MontoDeudaAnterior: deuda,
			MontoCargosMes:     cargosMes,
			MontoInteresMora:   interes,
			MontoTotalPagar:    total,
			SaldoPendiente:     total,
			Estado:             domain.ReciboPendiente,
		})
	}

	creados, err := s.reciboRepo.CrearLote(periodo, recibos, detalles)
	if err != nil {
		return nil, err
	}

	resultado := &domain.ResultadoGeneracion{
		Periodo:           periodo,
		RecibosCreados:    creados,
		InmueblesOmitidos: omitidos + (len(recibos) - creados),
	}

	log.Info().
		Str("periodo", periodo).
		Int("creados", creados).
		Int("omitidos", resultado.InmueblesOmitidos).
		Msg("Receipts generated")

	s.publishEvent(websocket.RecibosGenerados(resultado))
	return resultado, nil
}

// ActualizarRecibos regenerates the period's receipts after expense changes.
// Receipts with a partial payment block the run unless force is set, in which
// case they are preserved untouched; receipts with any payment history are
// always preserved. Only untouched receipts are replaced.
func (s *ReciboService) ActualizarRecibos(fechaEmision time.Time, force bool) (*domain.ResultadoActualizacion, error) {
	periodo := util.Periodo(fechaEmision)

	existentes, err := s.reciboRepo.GetDelPeriodo(periodo)
	if err != nil {
		return nil, err
	}

	conservados := 0
	for _, recibo := range existentes {
		if recibo.TienePagoParcial() || recibo.Estado == domain.ReciboPagado {
			if recibo.TienePagoParcial() && !force {
				return nil, domain.ErrReciboConPagoParcial
			}
			conservados++
		}
	}

	eliminados, err := s.reciboRepo.EliminarSinPagosDelPeriodo(periodo)
	if err != nil {
		return nil, err
	}

	generacion, err := s.GenerarRecibos(fechaEmision)
	if err != nil {
		return nil, err
	}

	resultado := &domain.ResultadoActualizacion{
		Periodo:            periodo,
		RecibosEliminados:  eliminados,
		RecibosCreados:     generacion.RecibosCreados,
		RecibosConservados: conservados,
	}

	log.Info().
		Str("periodo", periodo).
		Int("eliminados", eliminados).
		Int("creados", generacion.RecibosCreados).
		Int("conservados", conservados).
		Bool("force", force).
		Msg("Receipts regenerated")

	s.publishEvent(websocket.RecibosActualizados(resultado))
	return resultado, nil
}

// ActualizarEstados reconciles receipt states with their balances
func (s *ReciboService) ActualizarEstados() (int, int, error) {
	return s.reciboRepo.ActualizarEstados()
}

// GetRecibos retrieves receipts matching the filters
func (s *ReciboService) GetRecibos(filtros *domain.ReciboFiltros) ([]*domain.ReciboDetalle, error) {
	return s.reciboRepo.GetAll(filtros)
}

// GetReciboByID retrieves one receipt with its line items
func (s *ReciboService) GetReciboByID(id int32) (*domain.ReciboDetalle, error) {
	return s.reciboRepo.GetByID(id)
}
