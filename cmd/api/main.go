package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdrianLS4/gestion-inmuebles/internal/config"
	"github.com/AdrianLS4/gestion-inmuebles/internal/handler"
	"github.com/AdrianLS4/gestion-inmuebles/internal/middleware"
	"github.com/AdrianLS4/gestion-inmuebles/internal/repository/postgres"
	"github.com/AdrianLS4/gestion-inmuebles/internal/repository/storage"
	"github.com/AdrianLS4/gestion-inmuebles/internal/service"
	"github.com/AdrianLS4/gestion-inmuebles/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	propietarioRepo := postgres.NewPropietarioRepository(pool)
	edificioRepo := postgres.NewEdificioRepository(pool)
	inmuebleRepo := postgres.NewInmuebleRepository(pool)
	tipoGastoRepo := postgres.NewTipoGastoRepository(pool)
	conceptoRepo := postgres.NewConceptoGastoRepository(pool)
	gastoMesRepo := postgres.NewGastoMesRepository(pool)
	movimientoRepo := postgres.NewMovimientoGastoRepository(pool)
	reciboRepo := postgres.NewReciboRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	creditoRepo := postgres.NewCreditoRepository(pool)
	historialRepo := postgres.NewHistorialPagoRepository(pool)
	configRepo := postgres.NewConfiguracionRepository(pool)

	// Payment proof storage is optional; without credentials the API runs
	// with proof uploads disabled.
	var comprobanteRepo storage.ComprobanteRepository
	if cfg.S3.AccessKeyID != "" {
		s3Repo, err := storage.NewS3ComprobanteRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
		}
		comprobanteRepo = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Payment proof storage enabled")
	} else {
		log.Warn().Msg("S3 credentials not set; payment proof uploads disabled")
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()

	// Initialize services
	propietarioService := service.NewPropietarioService(propietarioRepo)
	edificioService := service.NewEdificioService(edificioRepo)
	inmuebleService := service.NewInmuebleService(inmuebleRepo, propietarioRepo, edificioRepo)
	tipoGastoService := service.NewTipoGastoService(tipoGastoRepo)
	conceptoService := service.NewConceptoGastoService(conceptoRepo, tipoGastoRepo)
	gastoMesService := service.NewGastoMesService(gastoMesRepo, conceptoRepo, edificioRepo)
	movimientoService := service.NewMovimientoGastoService(movimientoRepo, gastoMesRepo)
	reciboService := service.NewReciboService(reciboRepo, inmuebleRepo, gastoMesRepo, cfg.TasaInteresMora)
	pagoService := service.NewPagoService(pagoRepo, reciboRepo, comprobanteRepo)
	reporteService := service.NewReporteService(reciboRepo, creditoRepo, historialRepo, pagoRepo, cfg.UmbralMorosidad, cfg.DiasGracia)
	configService := service.NewConfiguracionService(configRepo)

	// Wire real-time events
	movimientoService.SetEventPublisher(hub)
	reciboService.SetEventPublisher(hub)
	pagoService.SetEventPublisher(hub)

	// Initialize handlers
	handlers := &handler.Handlers{
		Propietario:   handler.NewPropietarioHandler(propietarioService),
		Edificio:      handler.NewEdificioHandler(edificioService),
		Inmueble:      handler.NewInmuebleHandler(inmuebleService),
		TipoGasto:     handler.NewTipoGastoHandler(tipoGastoService),
		ConceptoGasto: handler.NewConceptoGastoHandler(conceptoService),
		GastoMes:      handler.NewGastoMesHandler(gastoMesService),
		Movimiento:    handler.NewMovimientoGastoHandler(movimientoService),
		Recibo:        handler.NewReciboHandler(reciboService),
		Pago:          handler.NewPagoHandler(pagoService),
		Reporte:       handler.NewReporteHandler(reporteService),
		Configuracion: handler.NewConfiguracionHandler(configService),
		WebSocket:     handler.NewWebSocketHandler(hub, cfg.CORSOrigins),
	}

	// Rate limiter for the payment routes
	pagoLimiter := middleware.NewRateLimiter()
	defer pagoLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger UI
	handler.RegisterSwagger(e)

	// Register API routes
	handler.RegisterRoutes(e, handlers, pagoLimiter)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
