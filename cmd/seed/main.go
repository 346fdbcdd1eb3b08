// Seed idempotente: crea el superadmin inicial (y una empresa demo en
// development) si no existen. Pensado para correr una vez tras el deploy:
//
//	SEED_SUPERADMIN_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-api/pkg/config"
	"github.com/jhoicas/erp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "seed"})

	if cfg.Seed.SuperadminPassword == "" {
		log.Fatal().Msg("SEED_SUPERADMIN_PASSWORD es requerido")
	}
	if len(cfg.Seed.SuperadminPassword) < 8 {
		log.Fatal().Msg("SEED_SUPERADMIN_PASSWORD debe tener al menos 8 caracteres")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)

	existing, err := userRepo.GetByEmail(cfg.Seed.SuperadminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar superadmin")
	}
	if existing != nil {
		log.Info().Str("email", cfg.Seed.SuperadminEmail).Msg("superadmin ya existe, nada que hacer")
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.SuperadminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password")
		}
		now := time.Now()
		super := &entity.User{
			ID:           uuid.New().String(),
			Email:        cfg.Seed.SuperadminEmail,
			PasswordHash: string(hash),
			Name:         "Superadmin",
			Role:         domain.RoleSuperadmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(super); err != nil {
			log.Fatal().Err(err).Msg("crear superadmin")
		}
		log.Info().Str("email", super.Email).Msg("superadmin creado")
	}

	// Empresa demo solo en development, para tener un tenant con el que jugar.
	if cfg.App.Env == "development" {
		seedDemoCompany(companyRepo, log)
	}
}

func seedDemoCompany(companyRepo *postgres.CompanyRepo, log *logger.Logger) {
	companies, err := companyRepo.List(repository.CompanyFilter{Search: "Empresa Demo", Limit: 1})
	if err != nil {
		log.Fatal().Err(err).Msg("consultar empresa demo")
	}
	if len(companies) > 0 {
		log.Info().Msg("empresa demo ya existe, nada que hacer")
		return
	}
	now := time.Now()
	demo := &entity.Company{
		ID:        uuid.New().String(),
		Name:      "Empresa Demo",
		Email:     "demo@erp.local",
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := companyRepo.Create(demo); err != nil {
		log.Fatal().Err(err).Msg("crear empresa demo")
	}
	log.Info().Str("id", demo.ID).Msg("empresa demo creada")
}
