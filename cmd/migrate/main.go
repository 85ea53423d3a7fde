// migrate aplica o revierte las migraciones SQL.
//
// Uso: go run ./cmd/migrate [--down N]
package main

import (
	"github.com/spf13/pflag"

	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

func main() {
	down := pflag.Int("down", 0, "revertir N migraciones en lugar de aplicar")
	dir := pflag.String("path", "", "directorio de migraciones (por defecto DB_MIGRATIONS_PATH)")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	path := cfg.DB.MigrationsPath
	if *dir != "" {
		path = *dir
	}
	dsn := cfg.DB.ConnectionString()

	if *down > 0 {
		if err := postgres.RollbackMigrations(dsn, path, *down); err != nil {
			log.Fatal().Err(err).Msg("rollback")
		}
		log.Info().Int("steps", *down).Msg("migraciones revertidas")
		return
	}
	if err := postgres.RunMigrations(dsn, path, log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
}
