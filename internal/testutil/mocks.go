package testutil

import (
	"strconv"
	"strings"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockPropietarioRepository is a mock implementation of domain.PropietarioRepository
type MockPropietarioRepository struct {
	Propietarios map[int32]*domain.Propietario
	NextID       int32
}

// NewMockPropietarioRepository creates a new MockPropietarioRepository
func NewMockPropietarioRepository() *MockPropietarioRepository {
	return &MockPropietarioRepository{
		Propietarios: make(map[int32]*domain.Propietario),
		NextID:       1,
	}
}

func (m *MockPropietarioRepository) Create(p *domain.Propietario) (*domain.Propietario, error) {
	for _, existing := range m.Propietarios {
		if domain.NormalizarCedula(existing.Cedula) == domain.NormalizarCedula(p.Cedula) {
			return nil, domain.ErrCedulaDuplicada
		}
	}
	p.ID = m.NextID
	m.NextID++
	m.Propietarios[p.ID] = p
	return p, nil
}

func (m *MockPropietarioRepository) GetByID(id int32) (*domain.Propietario, error) {
	if p, ok := m.Propietarios[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPropietarioNoEncontrado
}

func (m *MockPropietarioRepository) GetAll() ([]*domain.Propietario, error) {
	propietarios := make([]*domain.Propietario, 0, len(m.Propietarios))
	for _, p := range m.Propietarios {
		propietarios = append(propietarios, p)
	}
	return propietarios, nil
}

func (m *MockPropietarioRepository) Update(p *domain.Propietario) (*domain.Propietario, error) {
	if _, ok := m.Propietarios[p.ID]; !ok {
		return nil, domain.ErrPropietarioNoEncontrado
	}
	m.Propietarios[p.ID] = p
	return p, nil
}

func (m *MockPropietarioRepository) Delete(id int32) error {
	if _, ok := m.Propietarios[id]; !ok {
		return domain.ErrPropietarioNoEncontrado
	}
	delete(m.Propietarios, id)
	return nil
}

// MockEdificioRepository is a mock implementation of domain.EdificioRepository
type MockEdificioRepository struct {
	Edificios map[int32]*domain.Edificio
	NextID    int32
}

// NewMockEdificioRepository creates a new MockEdificioRepository
func NewMockEdificioRepository() *MockEdificioRepository {
	return &MockEdificioRepository{
		Edificios: make(map[int32]*domain.Edificio),
		NextID:    1,
	}
}

func (m *MockEdificioRepository) Create(e *domain.Edificio) (*domain.Edificio, error) {
	for _, existing := range m.Edificios {
		if existing.NumeroEdificio == e.NumeroEdificio {
			return nil, domain.ErrAlreadyExists
		}
	}
	e.ID = m.NextID
	m.NextID++
	m.Edificios[e.ID] = e
	return e, nil
}

func (m *MockEdificioRepository) GetByID(id int32) (*domain.Edificio, error) {
	if e, ok := m.Edificios[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEdificioNoEncontrado
}

func (m *MockEdificioRepository) GetAll() ([]*domain.Edificio, error) {
	edificios := make([]*domain.Edificio, 0, len(m.Edificios))
	for _, e := range m.Edificios {
		edificios = append(edificios, e)
	}
	return edificios, nil
}

func (m *MockEdificioRepository) Update(e *domain.Edificio) (*domain.Edificio, error) {
	if _, ok := m.Edificios[e.ID]; !ok {
		return nil, domain.ErrEdificioNoEncontrado
	}
	m.Edificios[e.ID] = e
	return e, nil
}

func (m *MockEdificioRepository) Delete(id int32) error {
	if _, ok := m.Edificios[id]; !ok {
		return domain.ErrEdificioNoEncontrado
	}
	delete(m.Edificios, id)
	return nil
}

// MockInmuebleRepository is a mock implementation of domain.InmuebleRepository
type MockInmuebleRepository struct {
	Inmuebles map[int32]*domain.Inmueble
	NextID    int32
}

// NewMockInmuebleRepository creates a new MockInmuebleRepository
func NewMockInmuebleRepository() *MockInmuebleRepository {
	return &MockInmuebleRepository{
		Inmuebles: make(map[int32]*domain.Inmueble),
		NextID:    1,
	}
}

func (m *MockInmuebleRepository) Create(i *domain.Inmueble) (*domain.Inmueble, error) {
	for _, existing := range m.Inmuebles {
		if existing.EdificioID == i.EdificioID && existing.Piso == i.Piso && existing.Apartamento == i.Apartamento {
			return nil, domain.ErrInmuebleDuplicado
		}
	}
	i.ID = m.NextID
	m.NextID++
	m.Inmuebles[i.ID] = i
	return i, nil
}

func (m *MockInmuebleRepository) GetByID(id int32) (*domain.Inmueble, error) {
	if i, ok := m.Inmuebles[id]; ok {
		return i, nil
	}
	return nil, domain.ErrInmuebleNoEncontrado
}

func (m *MockInmuebleRepository) GetAll() ([]*domain.Inmueble, error) {
	inmuebles := make([]*domain.Inmueble, 0, len(m.Inmuebles))
	for _, i := range m.Inmuebles {
		inmuebles = append(inmuebles, i)
	}
	return inmuebles, nil
}

func (m *MockInmuebleRepository) GetAllDetalle() ([]*domain.InmuebleDetalle, error) {
	detalles := make([]*domain.InmuebleDetalle, 0, len(m.Inmuebles))
	for _, i := range m.Inmuebles {
		detalles = append(detalles, &domain.InmuebleDetalle{Inmueble: *i})
	}
	return detalles, nil
}

func (m *MockInmuebleRepository) Update(i *domain.Inmueble) (*domain.Inmueble, error) {
	if _, ok := m.Inmuebles[i.ID]; !ok {
		return nil, domain.ErrInmuebleNoEncontrado
	}
	m.Inmuebles[i.ID] = i
	return i, nil
}

func (m *MockInmuebleRepository) Delete(id int32) error {
	if _, ok := m.Inmuebles[id]; !ok {
		return domain.ErrInmuebleNoEncontrado
	}
	delete(m.Inmuebles, id)
	return nil
}

// MockTipoGastoRepository is a mock implementation of domain.TipoGastoRepository
type MockTipoGastoRepository struct {
	Tipos  map[int32]*domain.TipoGasto
	NextID int32
}

// NewMockTipoGastoRepository creates a new MockTipoGastoRepository
func NewMockTipoGastoRepository() *MockTipoGastoRepository {
	return &MockTipoGastoRepository{
		Tipos:  make(map[int32]*domain.TipoGasto),
		NextID: 1,
	}
}

func (m *MockTipoGastoRepository) Create(t *domain.TipoGasto) (*domain.TipoGasto, error) {
	t.ID = m.NextID
	m.NextID++
	m.Tipos[t.ID] = t
	return t, nil
}

func (m *MockTipoGastoRepository) GetByID(id int32) (*domain.TipoGasto, error) {
	if t, ok := m.Tipos[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTipoGastoNoEncontrado
}

func (m *MockTipoGastoRepository) GetAll() ([]*domain.TipoGasto, error) {
	tipos := make([]*domain.TipoGasto, 0, len(m.Tipos))
	for _, t := range m.Tipos {
		tipos = append(tipos, t)
	}
	return tipos, nil
}

func (m *MockTipoGastoRepository) Update(t *domain.TipoGasto) (*domain.TipoGasto, error) {
	if _, ok := m.Tipos[t.ID]; !ok {
		return nil, domain.ErrTipoGastoNoEncontrado
	}
	m.Tipos[t.ID] = t
	return t, nil
}

func (m *MockTipoGastoRepository) Delete(id int32) error {
	if _, ok := m.Tipos[id]; !ok {
		return domain.ErrTipoGastoNoEncontrado
	}
	delete(m.Tipos, id)
	return nil
}

// MockConceptoGastoRepository is a mock implementation of domain.ConceptoGastoRepository
type MockConceptoGastoRepository struct {
	Conceptos map[int32]*domain.ConceptoGasto
	NextID    int32
}

// NewMockConceptoGastoRepository creates a new MockConceptoGastoRepository
func NewMockConceptoGastoRepository() *MockConceptoGastoRepository {
	return &MockConceptoGastoRepository{
		Conceptos: make(map[int32]*domain.ConceptoGasto),
		NextID:    1,
	}
}

func (m *MockConceptoGastoRepository) Create(c *domain.ConceptoGasto) (*domain.ConceptoGasto, error) {
	c.ID = m.NextID
	m.NextID++
	m.Conceptos[c.ID] = c
	return c, nil
}

func (m *MockConceptoGastoRepository) GetByID(id int32) (*domain.ConceptoGasto, error) {
	if c, ok := m.Conceptos[id]; ok {
		return c, nil
	}
	return nil, domain.ErrConceptoNoEncontrado
}

func (m *MockConceptoGastoRepository) GetAll() ([]*domain.ConceptoGastoDetalle, error) {
	detalles := make([]*domain.ConceptoGastoDetalle, 0, len(m.Conceptos))
	for _, c := range m.Conceptos {
		detalles = append(detalles, &domain.ConceptoGastoDetalle{ConceptoGasto: *c})
	}
	return detalles, nil
}

func (m *MockConceptoGastoRepository) Update(c *domain.ConceptoGasto) (*domain.ConceptoGasto, error) {
	if _, ok := m.Conceptos[c.ID]; !ok {
		return nil, domain.ErrConceptoNoEncontrado
	}
	m.Conceptos[c.ID] = c
	return c, nil
}

func (m *MockConceptoGastoRepository) Delete(id int32) error {
	if _, ok := m.Conceptos[id]; !ok {
		return domain.ErrConceptoNoEncontrado
	}
	delete(m.Conceptos, id)
	return nil
}

// MockGastoMesRepository is a mock implementation of domain.GastoMesRepository
type MockGastoMesRepository struct {
	Gastos    map[int32]*domain.GastoMesDetalle
	Activos   []*domain.GastoActivo
	Edificios map[int32][]int32
	NextID    int32
}

// NewMockGastoMesRepository creates a new MockGastoMesRepository
func NewMockGastoMesRepository() *MockGastoMesRepository {
	return &MockGastoMesRepository{
		Gastos:    make(map[int32]*domain.GastoMesDetalle),
		Edificios: make(map[int32][]int32),
		NextID:    1,
	}
}

func (m *MockGastoMesRepository) Create(g *domain.GastoMes) (*domain.GastoMes, error) {
	g.ID = m.NextID
	m.NextID++
	m.Gastos[g.ID] = &domain.GastoMesDetalle{GastoMes: *g}
	return g, nil
}

func (m *MockGastoMesRepository) GetByID(id int32) (*domain.GastoMesDetalle, error) {
	if g, ok := m.Gastos[id]; ok {
		detalle := *g
		detalle.EdificioIDs = m.Edificios[id]
		return &detalle, nil
	}
	return nil, domain.ErrGastoMesNoEncontrado
}

func (m *MockGastoMesRepository) GetAll() ([]*domain.GastoMesDetalle, error) {
	gastos := make([]*domain.GastoMesDetalle, 0, len(m.Gastos))
	for id, g := range m.Gastos {
		detalle := *g
		detalle.EdificioIDs = m.Edificios[id]
		gastos = append(gastos, &detalle)
	}
	return gastos, nil
}

func (m *MockGastoMesRepository) Update(g *domain.GastoMes) (*domain.GastoMes, error) {
	if _, ok := m.Gastos[g.ID]; !ok {
		return nil, domain.ErrGastoMesNoEncontrado
	}
	m.Gastos[g.ID] = &domain.GastoMesDetalle{GastoMes: *g}
	return g, nil
}

func (m *MockGastoMesRepository) Delete(id int32) error {
	if _, ok := m.Gastos[id]; !ok {
		return domain.ErrGastoMesNoEncontrado
	}
	delete(m.Gastos, id)
	delete(m.Edificios, id)
	return nil
}

func (m *MockGastoMesRepository) GetActivosParaDistribucion() ([]*domain.GastoActivo, error) {
	return m.Activos, nil
}

func (m *MockGastoMesRepository) GetRecurrentesActivos() ([]*domain.GastoMesDetalle, error) {
	var recurrentes []*domain.GastoMesDetalle
	for _, g := range m.Gastos {
		if g.EsRecurrente && g.Estado == domain.EstadoActivo {
			recurrentes = append(recurrentes, g)
		}
	}
	return recurrentes, nil
}

func (m *MockGastoMesRepository) AgregarEdificio(gastoMesID, edificioID int32) error {
	for _, id := range m.Edificios[gastoMesID] {
		if id == edificioID {
			return nil
		}
	}
	m.Edificios[gastoMesID] = append(m.Edificios[gastoMesID], edificioID)
	return nil
}

func (m *MockGastoMesRepository) EliminarEdificio(gastoMesID, edificioID int32) error {
	ids := m.Edificios[gastoMesID]
	for i, id := range ids {
		if id == edificioID {
			m.Edificios[gastoMesID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockMovimientoGastoRepository is a mock implementation of domain.MovimientoGastoRepository
type MockMovimientoGastoRepository struct {
	Movimientos map[int32]*domain.MovimientoGasto
	NextID      int32
}

// NewMockMovimientoGastoRepository creates a new MockMovimientoGastoRepository
func NewMockMovimientoGastoRepository() *MockMovimientoGastoRepository {
	return &MockMovimientoGastoRepository{
		Movimientos: make(map[int32]*domain.MovimientoGasto),
		NextID:      1,
	}
}

func (m *MockMovimientoGastoRepository) Create(mov *domain.MovimientoGasto) (*domain.MovimientoGasto, error) {
	mov.ID = m.NextID
	m.NextID++
	m.Movimientos[mov.ID] = mov
	return mov, nil
}

func (m *MockMovimientoGastoRepository) GetByID(id int32) (*domain.MovimientoGasto, error) {
	if mov, ok := m.Movimientos[id]; ok {
		return mov, nil
	}
	return nil, domain.ErrMovimientoNoEncontrado
}

func (m *MockMovimientoGastoRepository) GetAll() ([]*domain.MovimientoGastoDetalle, error) {
	detalles := make([]*domain.MovimientoGastoDetalle, 0, len(m.Movimientos))
	for _, mov := range m.Movimientos {
		detalles = append(detalles, &domain.MovimientoGastoDetalle{MovimientoGasto: *mov})
	}
	return detalles, nil
}

func (m *MockMovimientoGastoRepository) GetByMes(mesAplicacion time.Time) ([]*domain.MovimientoGastoDetalle, error) {
	var detalles []*domain.MovimientoGastoDetalle
	for _, mov := range m.Movimientos {
		if mov.MesAplicacion.Equal(mesAplicacion) {
			detalles = append(detalles, &domain.MovimientoGastoDetalle{MovimientoGasto: *mov})
		}
	}
	return detalles, nil
}

func (m *MockMovimientoGastoRepository) ExisteParaMes(gastoMesID int32, mesAplicacion time.Time) (bool, error) {
	for _, mov := range m.Movimientos {
		if mov.GastoMesID == gastoMesID && mov.MesAplicacion.Equal(mesAplicacion) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockMovimientoGastoRepository) Update(mov *domain.MovimientoGasto) (*domain.MovimientoGasto, error) {
	if _, ok := m.Movimientos[mov.ID]; !ok {
		return nil, domain.ErrMovimientoNoEncontrado
	}
	m.Movimientos[mov.ID] = mov
	return mov, nil
}

func (m *MockMovimientoGastoRepository) Delete(id int32) error {
	if _, ok := m.Movimientos[id]; !ok {
		return domain.ErrMovimientoNoEncontrado
	}
	delete(m.Movimientos, id)
	return nil
}

// MockReciboRepository is a mock implementation of domain.ReciboRepository.
// Receipts are stored with their period encoded in NumeroRecibo, matching the
// real repository's YYYYMM-NNNN numbering. Balances absorbed into a carrying
// receipt are remembered per receipt number so a later deletion restores them,
// like the real repository does through its Traslado_Saldo trail rows.
type MockReciboRepository struct {
	Recibos      map[int32]*domain.ReciboDetalle
	NextID       int32
	HistorialPor map[int32]bool // recibo ids that carry payment history

	traslados map[string][]trasladoSaldo
}

// trasladoSaldo is one prior receipt's balance carried onto a new receipt.
type trasladoSaldo struct {
	reciboID int32
	monto    decimal.Decimal
}

// NewMockReciboRepository creates a new MockReciboRepository
func NewMockReciboRepository() *MockReciboRepository {
	return &MockReciboRepository{
		Recibos:      make(map[int32]*domain.ReciboDetalle),
		NextID:       1,
		HistorialPor: make(map[int32]bool),
		traslados:    make(map[string][]trasladoSaldo),
	}
}

func (m *MockReciboRepository) CrearLote(periodo string, recibos []*domain.Recibo, detalles map[int32][]domain.DetalleCargo) (int, error) {
	ocupados := make(map[int32]bool)
	secuencia := 0
	for _, r := range m.Recibos {
		if strings.HasPrefix(r.NumeroRecibo, periodo+"-") {
			ocupados[r.InmuebleID] = true
			if n, err := strconv.Atoi(strings.TrimPrefix(r.NumeroRecibo, periodo+"-")); err == nil && n > secuencia {
				secuencia = n
			}
		}
	}

	creados := 0
	for _, r := range recibos {
		if ocupados[r.InmuebleID] {
			continue
		}
		secuencia++
		clone := *r
		clone.ID = m.NextID
		clone.NumeroRecibo = domain.NumeroRecibo(periodo, secuencia)
		m.NextID++
		m.Recibos[clone.ID] = &domain.ReciboDetalle{Recibo: clone}

		if clone.MontoDeudaAnterior.IsPositive() {
			for _, prev := range m.Recibos {
				if prev.InmuebleID != clone.InmuebleID || prev.ID == clone.ID {
					continue
				}
				if prev.Estado != domain.ReciboPendiente || !prev.SaldoPendiente.IsPositive() {
					continue
				}
				m.traslados[clone.NumeroRecibo] = append(m.traslados[clone.NumeroRecibo],
					trasladoSaldo{reciboID: prev.ID, monto: prev.SaldoPendiente})
				prev.SaldoPendiente = decimal.Zero
				prev.Estado = domain.ReciboPagado
			}
		}
		creados++
	}
	return creados, nil
}

func (m *MockReciboRepository) EliminarSinPagosDelPeriodo(periodo string) (int, error) {
	eliminados := 0
	for id, r := range m.Recibos {
		if !strings.HasPrefix(r.NumeroRecibo, periodo+"-") {
			continue
		}
		if m.HistorialPor[id] || !r.SaldoPendiente.Equal(r.MontoTotalPagar) {
			continue
		}
		for _, t := range m.traslados[r.NumeroRecibo] {
			if prev, ok := m.Recibos[t.reciboID]; ok {
				prev.SaldoPendiente = prev.SaldoPendiente.Add(t.monto)
				prev.Estado = domain.ReciboPendiente
			}
		}
		delete(m.traslados, r.NumeroRecibo)
		delete(m.Recibos, id)
		eliminados++
	}
	return eliminados, nil
}

func (m *MockReciboRepository) GetByID(id int32) (*domain.ReciboDetalle, error) {
	if r, ok := m.Recibos[id]; ok {
		return r, nil
	}
	return nil, domain.ErrReciboNoEncontrado
}

func (m *MockReciboRepository) GetAll(filtros *domain.ReciboFiltros) ([]*domain.ReciboDetalle, error) {
	var recibos []*domain.ReciboDetalle
	for _, r := range m.Recibos {
		if filtros != nil {
			if filtros.SoloPendientes && r.Estado != domain.ReciboPendiente {
				continue
			}
			if filtros.NumeroRecibo != nil && r.NumeroRecibo != *filtros.NumeroRecibo {
				continue
			}
			if filtros.PropietarioID != nil && r.PropietarioID != *filtros.PropietarioID {
				continue
			}
			if filtros.InmuebleID != nil && r.InmuebleID != *filtros.InmuebleID {
				continue
			}
		}
		recibos = append(recibos, r)
	}
	return recibos, nil
}

func (m *MockReciboRepository) GetDelPeriodo(periodo string) ([]*domain.Recibo, error) {
	var recibos []*domain.Recibo
	for _, r := range m.Recibos {
		if strings.HasPrefix(r.NumeroRecibo, periodo+"-") {
			clone := r.Recibo
			recibos = append(recibos, &clone)
		}
	}
	return recibos, nil
}

func (m *MockReciboRepository) SaldosPendientesPorInmueble() (map[int32]decimal.Decimal, error) {
	saldos := make(map[int32]decimal.Decimal)
	for _, r := range m.Recibos {
		if r.Estado == domain.ReciboPendiente && r.SaldoPendiente.GreaterThan(decimal.Zero) {
			saldos[r.InmuebleID] = saldos[r.InmuebleID].Add(r.SaldoPendiente)
		}
	}
	return saldos, nil
}

func (m *MockReciboRepository) ActualizarEstados() (int, int, error) {
	pagados, pendientes := 0, 0
	for _, r := range m.Recibos {
		if r.SaldoPendiente.LessThanOrEqual(decimal.Zero) && r.Estado != domain.ReciboPagado {
			r.Estado = domain.ReciboPagado
			pagados++
		} else if r.SaldoPendiente.GreaterThan(decimal.Zero) && r.Estado != domain.ReciboPendiente {
			r.Estado = domain.ReciboPendiente
			pendientes++
		}
	}
	return pagados, pendientes, nil
}

func (m *MockReciboRepository) ResumenMorosidad() ([]*domain.MorosoResumen, error) {
	porInmueble := make(map[int32]*domain.MorosoResumen)
	for _, r := range m.Recibos {
		if r.Estado != domain.ReciboPendiente || r.SaldoPendiente.LessThanOrEqual(decimal.Zero) {
			continue
		}
		resumen, ok := porInmueble[r.InmuebleID]
		if !ok {
			resumen = &domain.MorosoResumen{
				PropietarioID:     r.PropietarioID,
				Propietario:       r.Propietario,
				InmuebleID:        r.InmuebleID,
				Inmueble:          r.Inmueble,
				EmisionMasAntigua: r.FechaEmision,
			}
			porInmueble[r.InmuebleID] = resumen
		}
		resumen.SaldoPendiente = resumen.SaldoPendiente.Add(r.SaldoPendiente)
		resumen.RecibosPendientes++
		if r.FechaEmision.Before(resumen.EmisionMasAntigua) {
			resumen.EmisionMasAntigua = r.FechaEmision
		}
	}

	resumenes := make([]*domain.MorosoResumen, 0, len(porInmueble))
	for _, resumen := range porInmueble {
		resumenes = append(resumenes, resumen)
	}
	return resumenes, nil
}

// MockPagoRepository is a mock implementation of domain.PagoRepository. The
// allocation itself is exercised through domain.AsignarPago against the
// receipts of the paired MockReciboRepository.
type MockPagoRepository struct {
	Pagos      map[int32]*domain.PagoDetalle
	NextID     int32
	ReciboRepo *MockReciboRepository
	Creditos   map[int32]decimal.Decimal
	FlujoCaja  []*domain.FlujoCajaMes
}

// NewMockPagoRepository creates a new MockPagoRepository
func NewMockPagoRepository(reciboRepo *MockReciboRepository) *MockPagoRepository {
	return &MockPagoRepository{
		Pagos:      make(map[int32]*domain.PagoDetalle),
		NextID:     1,
		ReciboRepo: reciboRepo,
		Creditos:   make(map[int32]decimal.Decimal),
	}
}

func (m *MockPagoRepository) referenciaVerificada(referencia string, exceptoID int32) bool {
	for _, p := range m.Pagos {
		if p.ReferenciaBancaria == referencia && p.EstadoVerificacion == domain.PagoVerificado && p.ID != exceptoID {
			return true
		}
	}
	return false
}

func (m *MockPagoRepository) aplicar(pagoID, propietarioID int32, monto decimal.Decimal, operacionID uuid.UUID) (*domain.ResultadoPago, error) {
	disponible := monto.Add(m.Creditos[propietarioID])

	var pendientes []*domain.Recibo
	for _, r := range m.ReciboRepo.Recibos {
		if r.PropietarioID == propietarioID && r.Estado == domain.ReciboPendiente && r.SaldoPendiente.GreaterThan(decimal.Zero) {
			pendientes = append(pendientes, &r.Recibo)
		}
	}

	aplicaciones, restante := domain.AsignarPago(pendientes, disponible)

	resultado := &domain.ResultadoPago{
		PagoID:          pagoID,
		OperacionID:     operacionID,
		CreditoRestante: restante,
	}
	for _, a := range aplicaciones {
		m.ReciboRepo.HistorialPor[a.Recibo.ID] = true
		resultado.PagosAplicados = append(resultado.PagosAplicados, domain.PagoAplicado{
			NumeroRecibo:  a.Recibo.NumeroRecibo,
			MontoAplicado: a.MontoAplicado,
			SaldoRestante: a.Recibo.SaldoPendiente,
		})
		resultado.TotalAplicado = resultado.TotalAplicado.Add(a.MontoAplicado)
	}

	m.Creditos[propietarioID] = restante
	return resultado, nil
}

func (m *MockPagoRepository) RegistrarVerificado(reciboID, propietarioID int32, monto decimal.Decimal, referencia string, operacionID uuid.UUID) (*domain.ResultadoPago, error) {
	if m.referenciaVerificada(referencia, 0) {
		return nil, domain.ErrReferenciaDuplicada
	}

	pago := &domain.PagoDetalle{
		Pago: domain.Pago{
			ID:                 m.NextID,
			ReciboID:           reciboID,
			FechaPago:          time.Now(),
			MontoPagado:        monto,
			ReferenciaBancaria: referencia,
			MetodoPago:         "Transferencia",
			EstadoVerificacion: domain.PagoVerificado,
		},
		PropietarioID: propietarioID,
	}
	m.NextID++
	m.Pagos[pago.ID] = pago

	return m.aplicar(pago.ID, propietarioID, monto, operacionID)
}

func (m *MockPagoRepository) Create(p *domain.Pago) (*domain.Pago, error) {
	p.ID = m.NextID
	p.EstadoVerificacion = domain.PagoPorVerificar
	m.NextID++
	m.Pagos[p.ID] = &domain.PagoDetalle{Pago: *p}
	return p, nil
}

func (m *MockPagoRepository) GetByID(id int32) (*domain.PagoDetalle, error) {
	if p, ok := m.Pagos[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPagoNoEncontrado
}

func (m *MockPagoRepository) GetAll(filtros *domain.PagoFiltros) ([]*domain.PagoDetalle, error) {
	var pagos []*domain.PagoDetalle
	for _, p := range m.Pagos {
		if filtros != nil && filtros.Estado != nil && p.EstadoVerificacion != *filtros.Estado {
			continue
		}
		pagos = append(pagos, p)
	}
	return pagos, nil
}

func (m *MockPagoRepository) Verificar(pagoID int32, fechaPago *time.Time, monto *decimal.Decimal, nota string, comprobanteKey *string, operacionID uuid.UUID) (*domain.ResultadoPago, error) {
	pago, ok := m.Pagos[pagoID]
	if !ok {
		return nil, domain.ErrPagoNoEncontrado
	}
	if pago.EstadoVerificacion != domain.PagoPorVerificar {
		return nil, domain.ErrPagoYaProcesado
	}
	if m.referenciaVerificada(pago.ReferenciaBancaria, pagoID) {
		return nil, domain.ErrReferenciaDuplicada
	}

	if fechaPago != nil {
		pago.FechaPago = *fechaPago
	}
	if monto != nil {
		pago.MontoPagado = *monto
	}
	if nota != "" {
		pago.Nota = nota
	}
	if comprobanteKey != nil {
		pago.ComprobanteKey = comprobanteKey
	}
	pago.EstadoVerificacion = domain.PagoVerificado

	return m.aplicar(pagoID, pago.PropietarioID, pago.MontoPagado, operacionID)
}

func (m *MockPagoRepository) Rechazar(pagoID int32, nota string) error {
	pago, ok := m.Pagos[pagoID]
	if !ok {
		return domain.ErrPagoNoEncontrado
	}
	if pago.EstadoVerificacion != domain.PagoPorVerificar {
		return domain.ErrPagoYaProcesado
	}
	pago.EstadoVerificacion = domain.PagoRechazado
	pago.Nota = nota
	return nil
}

func (m *MockPagoRepository) SumVerificadosPorMes(year int) ([]*domain.FlujoCajaMes, error) {
	return m.FlujoCaja, nil
}

// MockCreditoRepository is a mock implementation of domain.CreditoRepository
type MockCreditoRepository struct {
	Creditos map[int32]*domain.CreditoPropietario
}

// NewMockCreditoRepository creates a new MockCreditoRepository
func NewMockCreditoRepository() *MockCreditoRepository {
	return &MockCreditoRepository{
		Creditos: make(map[int32]*domain.CreditoPropietario),
	}
}

func (m *MockCreditoRepository) GetByPropietario(propietarioID int32) (*domain.CreditoPropietario, error) {
	if c, ok := m.Creditos[propietarioID]; ok {
		return c, nil
	}
	return &domain.CreditoPropietario{PropietarioID: propietarioID, SaldoCredito: decimal.Zero}, nil
}

func (m *MockCreditoRepository) GetConSaldo() ([]*domain.CreditoDetalle, error) {
	var detalles []*domain.CreditoDetalle
	for _, c := range m.Creditos {
		if c.SaldoCredito.GreaterThan(decimal.Zero) {
			detalles = append(detalles, &domain.CreditoDetalle{CreditoPropietario: *c})
		}
	}
	return detalles, nil
}

// MockHistorialPagoRepository is a mock implementation of domain.HistorialPagoRepository
type MockHistorialPagoRepository struct {
	Historial map[int32][]*domain.HistorialPagoDetalle
}

// NewMockHistorialPagoRepository creates a new MockHistorialPagoRepository
func NewMockHistorialPagoRepository() *MockHistorialPagoRepository {
	return &MockHistorialPagoRepository{
		Historial: make(map[int32][]*domain.HistorialPagoDetalle),
	}
}

func (m *MockHistorialPagoRepository) GetByPropietario(propietarioID int32) ([]*domain.HistorialPagoDetalle, error) {
	return m.Historial[propietarioID], nil
}

// MockConfiguracionRepository is a mock implementation of domain.ConfiguracionRepository
type MockConfiguracionRepository struct {
	Configuraciones map[int32]*domain.ConfiguracionRecibos
	NextID          int32
}

// NewMockConfiguracionRepository creates a new MockConfiguracionRepository
func NewMockConfiguracionRepository() *MockConfiguracionRepository {
	return &MockConfiguracionRepository{
		Configuraciones: make(map[int32]*domain.ConfiguracionRecibos),
		NextID:          1,
	}
}

func (m *MockConfiguracionRepository) Create(c *domain.ConfiguracionRecibos) (*domain.ConfiguracionRecibos, error) {
	c.ID = m.NextID
	c.FechaCreacion = time.Now()
	c.FechaModificacion = c.FechaCreacion
	m.NextID++
	m.Configuraciones[c.ID] = c
	return c, nil
}

func (m *MockConfiguracionRepository) GetAll() ([]*domain.ConfiguracionRecibos, error) {
	configs := make([]*domain.ConfiguracionRecibos, 0, len(m.Configuraciones))
	for _, c := range m.Configuraciones {
		configs = append(configs, c)
	}
	return configs, nil
}

func (m *MockConfiguracionRepository) GetActiva() (*domain.ConfiguracionRecibos, error) {
	for _, c := range m.Configuraciones {
		if c.Activo {
			return c, nil
		}
	}
	return nil, domain.ErrConfiguracionNoEncontrada
}

func (m *MockConfiguracionRepository) Update(c *domain.ConfiguracionRecibos) (*domain.ConfiguracionRecibos, error) {
	if _, ok := m.Configuraciones[c.ID]; !ok {
		return nil, domain.ErrConfiguracionNoEncontrada
	}
	c.FechaModificacion = time.Now()
	m.Configuraciones[c.ID] = c
	return c, nil
}

func (m *MockConfiguracionRepository) Delete(id int32) error {
	if _, ok := m.Configuraciones[id]; !ok {
		return domain.ErrConfiguracionNoEncontrada
	}
	delete(m.Configuraciones, id)
	return nil
}
