package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpserver "skate_admin/internal/adapters/http_server"
	"skate_admin/internal/adapters/memory"
	"skate_admin/internal/adapters/observability"
	redisad "skate_admin/internal/adapters/redis"
	"skate_admin/internal/adapters/skateapi"
	"skate_admin/internal/app"
	"skate_admin/internal/console"
	"skate_admin/internal/domain"
	"skate_admin/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	if ms := observability.Serve(cfg.MetricsAddr, reg); ms != nil {
		defer ms.Close()
	}

	// backend
	client, err := skateapi.New(cfg.APIBase, cfg.APIRPS,
		skateapi.WithTimeout(cfg.APITimeout),
		skateapi.WithGetRetries(cfg.GetRetries),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API client")
	}
	log.Info().Str("base", cfg.APIBase).Int("rps", cfg.APIRPS).Msg("api client ready")

	// previews
	var previews domain.PreviewStore
	if cfg.RedisAddr != "" {
		rs := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.PublicURL, cfg.PreviewTTL)
		if err := rs.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		defer rs.Close()
		previews = rs
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis preview store")
	} else {
		previews = memory.NewPreviewStore(cfg.PublicURL)
	}

	// deps
	spots := app.NewSpotService(client)
	services := app.NewServiceService(client)
	instructors := app.NewInstructorService(client)

	// side http: previews, snapshots, health, metrics
	srv := httpserver.New(log.Logger, cfg.ServerTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&httpserver.Handlers{
		Previews:    previews,
		Spots:       spots.Spots,
		Services:    services.Services,
		Instructors: instructors.Instructors,
	})
	go func() {
		if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
			log.Error().Err(err).Msg("side server failed")
		}
	}()

	c := console.New(console.Deps{
		Spots:       spots,
		Services:    services,
		Instructors: instructors,
		Photos:      app.NewPhotoService(client, cfg.UploadedBy),
		Dashboard:   app.NewDashboard(spots, services, instructors),
		Previews:    previews,
		MaxPhotos:   cfg.MaxPhotos,
		Constraints: cfg.Photo,
	}, os.Stdout)

	if err := c.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("console stopped")
	}
	log.Info().Msg("bye")
}
