package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/gradovikov/storefront/internal/app"
	"github.com/gradovikov/storefront/internal/config"
	"github.com/gradovikov/storefront/internal/domain/repository"
	"github.com/gradovikov/storefront/internal/logger"
	"github.com/gradovikov/storefront/internal/pkg/auth"
	"github.com/gradovikov/storefront/internal/server/http/handlers"
	"github.com/gradovikov/storefront/internal/server/http/router"
	"github.com/gradovikov/storefront/internal/storage/postgres"
	"github.com/gradovikov/storefront/internal/storage/redisledger"
	"github.com/gradovikov/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		fx.Provide(newStockLedger),
		usecase.Module,
		fx.Provide(func(f *app.StoreFacade) handlers.StoreFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

type ledgerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Storage   *postgres.Storage
	Logger    *slog.Logger
}

// newStockLedger selects the stock backend. With REDIS_ADDRESS set the ledger
// lives in Redis and is primed from the database on startup; otherwise stock
// is decremented directly in PostgreSQL.
func newStockLedger(p ledgerParams) repository.StockLedger {
	if p.Config.RedisAddress == "" {
		return p.Storage.Stock()
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	ledger := redisledger.New(client)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := ledger.Ping(ctx); err != nil {
				return err
			}
			products, err := p.Storage.StockSnapshot(ctx)
			if err != nil {
				return err
			}
			// Seed only absent keys. Existing counters already account for
			// reservations made before the restart.
			for _, product := range products {
				if err := ledger.InitStock(ctx, product.ID, product.Quantity); err != nil {
					return err
				}
			}
			p.Logger.Info("redis stock ledger primed", slog.Int("products", len(products)))
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return ledger
}
