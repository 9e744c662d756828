package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"vidtube/config"
	"vidtube/internal/delivery"
	"vidtube/internal/delivery/api"
	"vidtube/internal/delivery/api/middleware"
	"vidtube/internal/delivery/api/router/handler"
	"vidtube/internal/infra/auth"
	logs "vidtube/internal/infra/log"
	"vidtube/internal/infra/media"
	"vidtube/internal/infra/persistence/mongo"
	"vidtube/internal/infra/persistence/postgres"
	"vidtube/internal/infra/pubsub"
	"vidtube/internal/infra/qrcode"
	"vidtube/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %+v\n", err)
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		injectInfra(),
		injectRepo(cfg.Persistence.Driver),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			logs.New,
			context.Background,
			media.New,
		),
		pubsub.Module,
	)
}

// injectRepo binds the repository interfaces to the configured store.
func injectRepo(driver string) fx.Option {
	if driver == config.DriverMongo {
		return fx.Options(
			fx.Provide(
				mongo.New,
				mongo.NewUserRepository,
				mongo.NewRefreshTokenRepository,
				mongo.NewChannelRepository,
			),
		)
	}

	return fx.Options(
		fx.Provide(
			postgres.New,
			postgres.NewUserRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewChannelRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewUserService,
			impl.NewProfileService,
			impl.NewChannelService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewChannelHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
