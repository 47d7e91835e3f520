package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/iramedia/work-reports/internal/api"
	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
	"github.com/iramedia/work-reports/internal/core/service"
	"github.com/iramedia/work-reports/internal/infrastructure/config"
	mongodb "github.com/iramedia/work-reports/internal/infrastructure/db/mongo"
	redisdb "github.com/iramedia/work-reports/internal/infrastructure/db/redis"
	"github.com/iramedia/work-reports/internal/infrastructure/storage"
	"github.com/iramedia/work-reports/pkg/logger"
)

// @title        Work Reports API
// @version      1.0
// @description  Daily employee work report service with role-gated admin views.
// @BasePath     /
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	userRepo := mongodb.NewUserRepository(db)
	subRepo := mongodb.NewSubmissionRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := subRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("submission index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("upload directory unavailable")
	}

	if err := seedAdmin(ctx, cfg, userRepo, files); err != nil {
		log.Fatal().Err(err).Msg("admin seeding failed")
	}

	e := api.NewRouter(api.Dependencies{
		DB:    db,
		Redis: rdb,
		Files: files,
		Cfg:   cfg,
		Log:   log,
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// seedAdmin creates the initial admin account when the database holds none, so
// a fresh deployment is immediately usable.
func seedAdmin(ctx context.Context, cfg *config.Config, users ports.UserRepository, files ports.FileStore) error {
	count, err := users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	identity := service.NewIdentityService(users, files, logger.Get())
	_, err = identity.Create(ctx, ports.CreateUserInput{
		Name:           cfg.AdminName,
		Email:          cfg.AdminEmail,
		Password:       cfg.AdminPassword,
		Role:           domain.RoleAdmin,
		EmploymentType: domain.EmploymentInHouse,
	})
	if err != nil {
		return err
	}

	log := logger.Get()
	log.Info().Str("email", cfg.AdminEmail).Msg("seeded initial admin account")
	return nil
}
