// Command migrate aplica o revierte las migraciones SQL embebidas.
//
//	migrate up
//	migrate down -steps 1
//	migrate version
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

func main() {
	steps := flag.Int("steps", 1, "número de migraciones a revertir con down")
	dbURL := flag.String("database-url", "", "connection string (por defecto DATABASE_URL o DB_*)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "uso: migrate [flags] up|down|version")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	url := *dbURL
	if url == "" {
		url = cfg.DB.ConnectionString()
	}
	mg, err := postgres.NewMigrator(url)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down(*steps)
	case "version":
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", flag.Arg(0)).Msg("migración fallida")
	}

	version, dirty, err := mg.Version()
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Str("cmd", flag.Arg(0)).Msg("migraciones")
}
