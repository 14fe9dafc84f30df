package service

import (
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
)

// ReporteService builds the financial reports: delinquency, standing credit,
// payment history and cash flow.
type ReporteService struct {
	reciboRepo      domain.ReciboRepository
	creditoRepo     domain.CreditoRepository
	historialRepo   domain.HistorialPagoRepository
	pagoRepo        domain.PagoRepository
	umbralMorosidad int
	diasGracia      int
}

// NewReporteService creates a new ReporteService
func NewReporteService(reciboRepo domain.ReciboRepository, creditoRepo domain.CreditoRepository, historialRepo domain.HistorialPagoRepository, pagoRepo domain.PagoRepository, umbralMorosidad, diasGracia int) *ReporteService {
	return &ReporteService{
		reciboRepo:      reciboRepo,
		creditoRepo:     creditoRepo,
		historialRepo:   historialRepo,
		pagoRepo:        pagoRepo,
		umbralMorosidad: umbralMorosidad,
		diasGracia:      diasGracia,
	}
}

// Morosos lists every unit with an outstanding balance and flags the
// delinquent ones. A unit is delinquent when it accumulates more pending
// receipts than the threshold, or when its oldest pending receipt has aged
// past the grace window.
func (s *ReporteService) Morosos() ([]*domain.MorosoResumen, error) {
	resumen, err := s.reciboRepo.ResumenMorosidad()
	if err != nil {
		return nil, err
	}

	limite := time.Now().AddDate(0, 0, -s.diasGracia)
	for _, m := range resumen {
		m.EsMoroso = m.RecibosPendientes > s.umbralMorosidad || m.EmisionMasAntigua.Before(limite)
	}
	if resumen == nil {
		resumen = []*domain.MorosoResumen{}
	}
	return resumen, nil
}

// CreditosPropietarios lists every owner holding standing credit
func (s *ReporteService) CreditosPropietarios() ([]*domain.CreditoDetalle, error) {
	return s.creditoRepo.GetConSaldo()
}

// CreditoPropietario returns one owner's standing credit, zero if none
func (s *ReporteService) CreditoPropietario(propietarioID int32) (*domain.CreditoPropietario, error) {
	return s.creditoRepo.GetByPropietario(propietarioID)
}

// HistorialPagos returns the owner's full allocation audit trail
func (s *ReporteService) HistorialPagos(propietarioID int32) ([]*domain.HistorialPagoDetalle, error) {
	return s.historialRepo.GetByPropietario(propietarioID)
}

// FlujoCaja returns the verified payment volume per month of a year
func (s *ReporteService) FlujoCaja(year int) ([]*domain.FlujoCajaMes, error) {
	return s.pagoRepo.SumVerificadosPorMes(year)
}
