// Command seed carga datos de demostración (insumos, vehículos y algunos movimientos) en la base
// configurada y muestra un JWT de desarrollo para probar la API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/jwt"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

const seedActor = "00000000-0000-0000-0000-0000000000a1"

type seedSupply struct {
	name     string
	category string
	unit     string
	min      int64
	initial  int64
	expiry   string
}

var supplies = []seedSupply{
	{"Luvas de procedimento", entity.CategoryPPE, "CX", 10, 40, ""},
	{"Máscara N95", entity.CategoryPPE, "UN", 20, 15, ""},
	{"Dipirona 500mg", entity.CategoryMedication, "CP", 50, 200, "2027-03-31"},
	{"Soro fisiológico 0,9%", entity.CategoryMedication, "FR", 30, 12, "2026-11-05"},
	{"Seringa 5ml", entity.CategoryDisposableMaterial, "UN", 100, 0, ""},
	{"Esfigmomanômetro", entity.CategoryEquipment, "UN", 2, 4, ""},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "estoque-seed"})
	if err := run(context.Background(), cfg, log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	runner := postgres.NewTxRunner(pool, cfg.DB.TxMaxRetries, log)
	repos := postgres.Repos(pool)
	settings := inventory.Settings{Location: cfg.Ledger.Location(), ExpiryHorizonDays: cfg.Ledger.ExpiryHorizonDays, Logger: log}
	supplyUC := inventory.NewSupplyUseCase(runner, repos.Supplies, settings)
	ledger := inventory.NewRegisterMovementUseCase(runner, settings)
	vehicleUC := inventory.NewVehicleUseCase(repos.Vehicles, settings)

	vehicle, err := vehicleUC.Create(ctx, dto.CreateVehicleRequest{Plate: "UBS1A23", Description: "Unidade móvel de saúde"})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		existing, err := repos.Vehicles.GetByPlate(ctx, "UBS1A23")
		if err != nil {
			return err
		}
		vehicle = &dto.VehicleResponse{ID: existing.ID, Plate: existing.Plate}
		log.Info().Str("plate", existing.Plate).Msg("vehículo ya existía")
	case err != nil:
		return err
	}

	existing, err := supplyUC.List(ctx, dto.SupplyListRequest{PageRequest: dto.PageRequest{Limit: 1}})
	if err != nil {
		return err
	}
	if existing.Page.Total > 0 {
		log.Info().Int("supplies", existing.Page.Total).Msg("la base ya tiene insumos; no se cargan más")
	} else {
		for _, s := range supplies {
			created, err := supplyUC.Create(ctx, dto.CreateSupplyRequest{
				Name:            s.name,
				Category:        s.category,
				Unit:            s.unit,
				MinQuantity:     decimal.NewFromInt(s.min),
				InitialQuantity: decimal.NewFromInt(s.initial),
				ExpiryDate:      s.expiry,
			})
			if err != nil {
				return fmt.Errorf("insumo %s: %w", s.name, err)
			}
			log.Info().Str("id", created.ID).Str("name", created.Name).Msg("insumo creado")

			if s.initial < 10 {
				continue
			}
			if _, err := ledger.Transfer(ctx, seedActor, dto.TransferRequest{
				SupplyID:  created.ID,
				VehicleID: vehicle.ID,
				Quantity:  decimal.NewFromInt(s.initial / 4),
				Direction: dto.DirectionToVehicle,
				Notes:     "carga inicial da unidade móvel",
			}); err != nil {
				return fmt.Errorf("transferencia %s: %w", s.name, err)
			}
		}
	}

	token, err := jwt.Generate(cfg.JWT.Secret, seedActor, "Seed", "admin", cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	fmt.Printf("vehicle_id: %s\nAuthorization: Bearer %s\n", vehicle.ID, token)
	return nil
}
