package handler

import (
	"github.com/AdrianLS4/gestion-inmuebles/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler for route registration
type Handlers struct {
	Propietario   *PropietarioHandler
	Edificio      *EdificioHandler
	Inmueble      *InmuebleHandler
	TipoGasto     *TipoGastoHandler
	ConceptoGasto *ConceptoGastoHandler
	GastoMes      *GastoMesHandler
	Movimiento    *MovimientoGastoHandler
	Recibo        *ReciboHandler
	Pago          *PagoHandler
	Reporte       *ReporteHandler
	Configuracion *ConfiguracionHandler
	WebSocket     *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, h *Handlers, pagoLimiter *middleware.RateLimiter) {
	api := e.Group("/api")

	// Owner routes
	propietarios := api.Group("/propietarios")
	propietarios.POST("", h.Propietario.CreatePropietario)
	propietarios.GET("", h.Propietario.GetPropietarios)
	propietarios.GET("/:id", h.Propietario.GetPropietario)
	propietarios.PUT("/:id", h.Propietario.UpdatePropietario)
	propietarios.DELETE("/:id", h.Propietario.DeletePropietario)

	// Building routes
	edificios := api.Group("/edificios")
	edificios.POST("", h.Edificio.CreateEdificio)
	edificios.GET("", h.Edificio.GetEdificios)
	edificios.GET("/:id", h.Edificio.GetEdificio)
	edificios.PUT("/:id", h.Edificio.UpdateEdificio)
	edificios.DELETE("/:id", h.Edificio.DeleteEdificio)

	// Unit routes
	inmuebles := api.Group("/inmuebles")
	inmuebles.POST("", h.Inmueble.CreateInmueble)
	inmuebles.GET("", h.Inmueble.GetInmuebles)
	inmuebles.GET("/suma-alicuotas", h.Inmueble.GetSumaAlicuotas)
	inmuebles.GET("/:id", h.Inmueble.GetInmueble)
	inmuebles.PUT("/:id", h.Inmueble.UpdateInmueble)
	inmuebles.DELETE("/:id", h.Inmueble.DeleteInmueble)

	// Expense type routes
	tiposGastos := api.Group("/tipos-gastos")
	tiposGastos.POST("", h.TipoGasto.CreateTipoGasto)
	tiposGastos.GET("", h.TipoGasto.GetTiposGasto)
	tiposGastos.GET("/:id", h.TipoGasto.GetTipoGasto)
	tiposGastos.PUT("/:id", h.TipoGasto.UpdateTipoGasto)
	tiposGastos.DELETE("/:id", h.TipoGasto.DeleteTipoGasto)

	// Expense concept routes
	conceptos := api.Group("/conceptos-gastos")
	conceptos.POST("", h.ConceptoGasto.CreateConcepto)
	conceptos.GET("", h.ConceptoGasto.GetConceptos)
	conceptos.GET("/:id", h.ConceptoGasto.GetConcepto)
	conceptos.PUT("/:id", h.ConceptoGasto.UpdateConcepto)
	conceptos.DELETE("/:id", h.ConceptoGasto.DeleteConcepto)

	// Monthly expense template routes
	gastosMes := api.Group("/gastos-mes")
	gastosMes.POST("", h.GastoMes.CreateGastoMes)
	gastosMes.GET("", h.GastoMes.GetGastosMes)
	gastosMes.GET("/:id", h.GastoMes.GetGastoMes)
	gastosMes.PUT("/:id", h.GastoMes.UpdateGastoMes)
	gastosMes.DELETE("/:id", h.GastoMes.DeleteGastoMes)
	gastosMes.POST("/:id/edificios/:edificioId", h.GastoMes.AgregarEdificio)
	gastosMes.DELETE("/:id/edificios/:edificioId", h.GastoMes.EliminarEdificio)

	// Realized spend routes
	movimientos := api.Group("/movimientos-gastos")
	movimientos.POST("", h.Movimiento.CreateMovimiento)
	movimientos.POST("/generar-recurrentes", h.Movimiento.GenerarRecurrentes)
	movimientos.GET("", h.Movimiento.GetMovimientos)
	movimientos.GET("/:id", h.Movimiento.GetMovimiento)
	movimientos.PUT("/:id", h.Movimiento.UpdateMovimiento)
	movimientos.DELETE("/:id", h.Movimiento.DeleteMovimiento)

	// Receipt routes
	recibos := api.Group("/recibos")
	recibos.POST("/generar", h.Recibo.GenerarRecibos)
	recibos.POST("/actualizar", h.Recibo.ActualizarRecibos)
	recibos.POST("/actualizar-estados", h.Recibo.ActualizarEstados)
	recibos.GET("", h.Recibo.GetRecibos)
	recibos.GET("/:id", h.Recibo.GetRecibo)

	// Payment routes (rate limited)
	pagos := api.Group("/pagos")
	pagos.Use(middleware.RateLimitMiddleware(pagoLimiter))
	pagos.POST("", h.Pago.CrearPago)
	pagos.POST("/registrar", h.Pago.RegistrarPago)
	pagos.GET("", h.Pago.GetPagos)
	pagos.GET("/:id", h.Pago.GetPago)
	pagos.GET("/:id/comprobante", h.Pago.GetComprobanteURL)
	pagos.POST("/verificar-multiples", h.Pago.VerificarPagosMultiples)
	pagos.POST("/:id/verificar", h.Pago.VerificarPago)
	pagos.POST("/:id/rechazar", h.Pago.RechazarPago)

	// Report routes
	reportes := api.Group("/reportes")
	reportes.GET("/morosos", h.Reporte.GetMorosos)
	reportes.GET("/creditos", h.Reporte.GetCreditos)
	reportes.GET("/creditos/:propietarioId", h.Reporte.GetCreditoPropietario)
	reportes.GET("/historial/:propietarioId", h.Reporte.GetHistorialPagos)
	reportes.GET("/flujo-caja/:year", h.Reporte.GetFlujoCaja)

	// Receipt scheduling configuration routes
	configuracion := api.Group("/configuracion-recibos")
	configuracion.POST("", h.Configuracion.CreateConfiguracion)
	configuracion.GET("", h.Configuracion.GetConfiguraciones)
	configuracion.GET("/activa", h.Configuracion.GetConfiguracionActiva)
	configuracion.PUT("/:id", h.Configuracion.UpdateConfiguracion)
	configuracion.DELETE("/:id", h.Configuracion.DeleteConfiguracion)

	// WebSocket endpoint for real-time events
	e.GET("/ws", h.WebSocket.HandleWS)
}
