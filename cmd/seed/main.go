// seed carga clientes de demostración a través del mismo camino de escritura del
// API, útil para probar el frontend en local.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"

	appcustomer "github.com/danielmeza/catalogo-clientes/internal/application/customer"
	"github.com/danielmeza/catalogo-clientes/internal/application/dto"
	"github.com/danielmeza/catalogo-clientes/internal/infrastructure/postgres"
	"github.com/danielmeza/catalogo-clientes/pkg/config"
	"github.com/danielmeza/catalogo-clientes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	repo := postgres.NewCustomerRepository(pool, log, cfg.DB.ReadShape)
	uc := appcustomer.NewUseCase(repo, postgres.NewTxRunner(pool, log), log)

	demo := []dto.CustomerRequest{
		{
			Name:           "Ana Ruiz",
			CustomerNumber: "C-1",
			Phone:          "555-0101",
			Email:          "ana.ruiz@example.com",
			Addresses: []dto.AddressPayload{
				{Street: "Av. Reforma 123", Neighborhood: "Centro"},
				{Street: "Calle 5 de Mayo 8", Neighborhood: "Roma Norte"},
			},
		},
		{
			Name:           "José Pérez",
			CustomerNumber: "C-2",
			Addresses: []dto.AddressPayload{
				{Street: "Insurgentes Sur 450", Neighborhood: "Del Valle"},
			},
		},
		{
			Name:           "Comercializadora O'Brien",
			CustomerNumber: "C-3",
			Email:          "ventas@obrien.example.com",
		},
	}

	for _, in := range demo {
		id, err := uc.Create(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("customer_number", in.CustomerNumber).Msg("sembrar cliente")
		}
		log.Info().Int64("customer_id", id).Str("name", in.Name).Msg("cliente sembrado")
	}
}
