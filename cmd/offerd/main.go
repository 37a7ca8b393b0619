package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
	"github.com/vehiclefin/financing-offer/internal/application/usecase"
	"github.com/vehiclefin/financing-offer/internal/domain/port"
	"github.com/vehiclefin/financing-offer/internal/domain/service"
	"github.com/vehiclefin/financing-offer/internal/infrastructure/config"
	"github.com/vehiclefin/financing-offer/internal/infrastructure/messaging"
	"github.com/vehiclefin/financing-offer/internal/infrastructure/persistence/memory"
	pgRepo "github.com/vehiclefin/financing-offer/internal/infrastructure/persistence/postgres"
	"github.com/vehiclefin/financing-offer/internal/infrastructure/security"
	"github.com/vehiclefin/financing-offer/internal/infrastructure/telemetry"
	grpcPresentation "github.com/vehiclefin/financing-offer/internal/presentation/grpc"
	"github.com/vehiclefin/financing-offer/internal/presentation/rest"
	"github.com/vehiclefin/financing-offer/pkg/auth"
	pkgkafka "github.com/vehiclefin/financing-offer/pkg/kafka"
	"github.com/vehiclefin/financing-offer/pkg/observability"
	pkgpostgres "github.com/vehiclefin/financing-offer/pkg/postgres"
)

type repositories struct {
	settings port.SettingsRepository
	offers   port.OfferRepository
	users    port.UserRepository
	db       pkgpostgres.Pinger
	close    func()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting financing-offer",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPC.Port,
		"storage", cfg.Storage,
		"default_country", cfg.Simulation.DefaultCountry,
	)

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := telemetry.NewRecorder(meterProvider.Meter("github.com/vehiclefin/financing-offer"))
	if err != nil {
		logger.Error("failed to create metric instruments", "error", err)
		os.Exit(1)
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer repos.close()

	var publisher port.EventPublisher = messaging.NewLogEventPublisher(logger)
	if cfg.Kafka.Enabled() {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
		if err != nil {
			logger.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing events to kafka", "topic", cfg.Kafka.Topic)
	}

	jwtSvc, err := newJWTService(cfg.JWT)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rates := service.NewRateSimulator(rand.New(rand.NewPCG(seed, seed>>1)))
	store := service.NewSettingsStore(repos.settings, time.Now)
	simulator := service.NewOfferSimulator(
		service.NewOfferValidator(store),
		rates,
		service.NewSimulationEngine(rates),
		cfg.Simulation.ReuseReferencePrice,
	)

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := security.NewJWTIssuer(jwtSvc)
	country := cfg.DefaultCountry()

	uc := usecase.Set{
		SimulateOffer:   usecase.NewSimulateOfferUseCase(simulator, repos.offers, publisher, recorder, country, time.Now),
		GetOffer:        usecase.NewGetOfferUseCase(repos.offers),
		ListOffers:      usecase.NewListOffersUseCase(repos.offers),
		GetSettings:     usecase.NewGetSettingsUseCase(store, country),
		UpdateSettings:  usecase.NewUpdateSettingsUseCase(store, publisher, recorder, country, time.Now),
		SettingsHistory: usecase.NewSettingsHistoryUseCase(store, country),
		ListCountries:   usecase.NewListCountriesUseCase(),
		Register:        usecase.NewRegisterUseCase(repos.users, hasher, tokens, time.Now),
		Login:           usecase.NewLoginUseCase(repos.users, hasher, tokens),
	}

	if cfg.Admin.Password != "" {
		created, err := usecase.NewSeedAdminUseCase(repos.users, hasher, time.Now).Execute(ctx, dto.CredentialsRequest{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			logger.Error("failed to seed admin account", "error", err)
			os.Exit(1)
		}
		if created {
			logger.Info("admin account created", "username", cfg.Admin.Username)
		}
	}

	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewFinancingHandler(uc, logger),
		logger,
		jwtSvc,
		grpcPresentation.ServerOptions{
			ServiceName: cfg.ServiceName,
			Reflection:  cfg.GRPC.Reflection,
			TLSCertFile: cfg.GRPC.TLSCertFile,
			TLSKeyFile:  cfg.GRPC.TLSKeyFile,
		},
	)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: rest.NewRouter(rest.RouterConfig{
			Financing:      rest.NewFinancingHandler(uc, logger),
			Health:         rest.NewHealthHandler(cfg.ServiceName, repos.db, logger),
			Metrics:        metricsHandler,
			JWT:            jwtSvc,
			RateLimit:      cfg.RateLimit,
			AllowedOrigins: cfg.CORSOrigins,
			Logger:         logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("financing-offer stopped")
}

// openRepositories connects the configured storage backend. Postgres runs
// migrations before returning.
func openRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		return repositories{
			settings: memory.NewSettingsRepo(),
			offers:   memory.NewOfferRepo(),
			users:    memory.NewUserRepo(),
			close:    func() {},
		}, nil
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		return repositories{}, fmt.Errorf("connect: %w", err)
	}
	logger.Info("connected to database", "host", cfg.DB.Host, "database", cfg.DB.Database)

	if err := pkgpostgres.RunMigrations(cfg.DB.DSN(), cfg.MigrationsPath); err != nil {
		pool.Close()
		return repositories{}, fmt.Errorf("migrate: %w", err)
	}

	return repositories{
		settings: pgRepo.NewSettingsRepo(pool),
		offers:   pgRepo.NewOfferRepo(pool),
		users:    pgRepo.NewUserRepo(pool),
		db:       pool,
		close:    pool.Close,
	}, nil
}

// newJWTService prefers an RSA key pair and falls back to the shared secret.
func newJWTService(cfg config.JWTConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Secret:     cfg.Secret,
		Issuer:     cfg.Issuer,
		Expiration: cfg.Expiration,
	}
	if cfg.PrivateKeyFile != "" {
		key, err := auth.LoadKeyFromFile(cfg.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load private key: %w", err)
		}
		jwtCfg.PrivateKeyPEM = string(key)
	}
	if cfg.PublicKeyFile != "" {
		key, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(key)
	}
	return auth.NewJWTService(jwtCfg)
}
