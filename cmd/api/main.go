package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/bootstrap"
	"github.com/jhoicas/Cotizador-api/internal/application/inquiry"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/project"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	infraexcel "github.com/jhoicas/Cotizador-api/internal/infrastructure/excel"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Cotizador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Cotizador-api/internal/infrastructure/redis"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// backend repositorios y transacciones de un motor de persistencia.
type backend struct {
	tx        ports.TxRunner
	repos     ports.TxRepos
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var be backend
	switch cfg.App.Storage {
	case config.StorageMemory:
		be = memoryBackend()
		if cfg.App.SeedAdminPassword == "" {
			log.Fatal().Msg("APP_STORAGE=memory requiere SEED_ADMIN_PASSWORD para crear el admin inicial")
		}
		rep, err := bootstrap.Seed(ctx, be.tx, be.users, bootstrap.Options{
			AdminUsername: cfg.App.SeedAdminUser,
			AdminPassword: cfg.App.SeedAdminPassword,
			AdminFullName: "Administrador",
			SampleDevices: true,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("seed en memoria")
		}
		log.Warn().Int("devices", rep.Devices).Msg("backend en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.Migrate {
			if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.DB.MigrationsPath, log.Zerolog()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		be, err = postgresBackend(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
	}
	defer be.close()

	// Lista de tokens revocados: Redis si está configurado, si no en proceso.
	var blacklist ports.TokenBlacklist = memory.NewTokenBlacklist()
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		blacklist = infraredis.NewTokenBlacklist(client)
	}

	// Archivo de PDFs: opcional.
	var docStore ports.DocumentStore
	if cfg.MinIO.Endpoint != "" {
		s, err := storage.NewMinIOStore(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey,
			cfg.MinIO.Bucket, cfg.MinIO.UseSSL, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MinIO")
		}
		docStore = s
	}

	r := be.repos
	log.Component("bootstrap").Info().Bool("blacklist_redis", cfg.Redis.Addr != "").Bool("pdf_archive", docStore != nil).Msg("dependencias listas")
	projectUC := project.NewProjectUseCase(be.tx, r.Projects, r.History, r.Comments, r.Inquiries)
	inquiryUC := inquiry.NewInquiryUseCase(be.tx, r.Projects, r.Inquiries)
	documentUC := inquiry.NewDocumentUseCase(inquiryUC,
		infraexcel.NewInquiryExporter(),
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		docStore,
		inquiry.CurrencyLabels{Primary: cfg.Pricing.PrimaryCurrency, Secondary: cfg.Pricing.SecondaryCurrency},
	)
	authUC := auth.NewAuthUseCase(be.users, blacklist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Cotizador HVAC API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(be.users),
		CategoryUC: usecase.NewCategoryUseCase(r.Categories),
		DeviceUC:   usecase.NewDeviceUseCase(r.Devices, r.Categories),
		SettingsUC: usecase.NewSettingsUseCase(be.tx, r.Settings, r.Devices),
		ProjectUC:  projectUC,
		InquiryUC:  inquiryUC,
		DocumentUC: documentUC,
		Dashboard:  analytics.NewDashboardUseCase(be.analytics),
		Blacklist:  blacklist,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func memoryBackend() backend {
	store := memory.NewStore()
	return backend{
		tx:        memory.NewTxRunner(store),
		repos:     store.Repos(),
		users:     store.Users(),
		analytics: store.Analytics(),
		close:     func() {},
	}
}

func postgresBackend(ctx context.Context, cfg config.DBConfig) (backend, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return backend{}, err
	}
	return backend{
		tx:        postgres.NewTxRunner(pool),
		repos:     postgres.NewRepos(pool),
		users:     postgres.NewUserRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}
