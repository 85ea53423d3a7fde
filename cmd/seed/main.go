// seed crea el usuario admin, las categorías iniciales y la configuración de precios vigente.
//
// Uso: go run ./cmd/seed --admin-user admin --admin-password <clave> [--sample-devices]
// La contraseña también puede venir de SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/Cotizador-api/internal/application/bootstrap"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

func main() {
	username := pflag.String("admin-user", "admin", "usuario administrador")
	password := pflag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "contraseña del administrador")
	fullName := pflag.String("admin-name", "Administrador", "nombre completo del administrador")
	samples := pflag.Bool("sample-devices", false, "cargar equipos de ejemplo")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rep, err := bootstrap.Seed(ctx, postgres.NewTxRunner(pool), postgres.NewUserRepository(pool), bootstrap.Options{
		AdminUsername: *username,
		AdminPassword: *password,
		AdminFullName: *fullName,
		SampleDevices: *samples,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Bool("admin_created", rep.AdminCreated).
		Int("categories", rep.Categories).
		Int("devices", rep.Devices).
		Bool("settings_created", rep.SettingsCreated).
		Msg("seed completado")
}
