package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/dealerseed/internal/platform"
	"github.com/aussiebroadwan/dealerseed/internal/seed/generate"
	"github.com/aussiebroadwan/dealerseed/internal/seed/service"
	"github.com/aussiebroadwan/dealerseed/internal/seed/store"
	"github.com/aussiebroadwan/dealerseed/internal/seed/store/drivers/dynamo"
	"github.com/aussiebroadwan/dealerseed/internal/seed/store/drivers/sqlite"
	"github.com/aussiebroadwan/dealerseed/pkg/authx"
	"github.com/aussiebroadwan/dealerseed/pkg/cachex"
	"github.com/aussiebroadwan/dealerseed/pkg/confx"
	"github.com/aussiebroadwan/dealerseed/pkg/restx"
	"github.com/aussiebroadwan/dealerseed/pkg/slogx"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/dealerseed/internal/seed/app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application holds the seeder and the collaborators it was built from.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	redis    *redis.Client
	tokens   *authx.TokenSource
	platform *platform.Platform
	seeder   *service.Seeder
}

// New builds the application. Only the collaborators the selected run modes
// need are created.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "dealerseed",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.CreateContainer || cfg.InsertData {
		if err := app.initStore(ctx); err != nil {
			return nil, err
		}
	}

	if cfg.Publish {
		if err := app.initPlatform(ctx); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	app.logger.Info("seeder configured",
		"seed", seed,
		"store", cfg.StoreBackend,
		"create_container", cfg.CreateContainer,
		"insert_data", cfg.InsertData,
		"publish", cfg.Publish,
	)

	// Keep the interface nil rather than holding a nil *Platform.
	var pub service.Platform
	if app.platform != nil {
		pub = app.platform
	}
	app.seeder = service.New(app.db, pub, generate.New(seed), app.logger, service.Options{
		Dealers:         cfg.Dealers,
		CreateContainer: cfg.CreateContainer,
		InsertData:      cfg.InsertData,
		Publish:         cfg.Publish,
		Concurrency:     cfg.Concurrency,
	})

	return app, nil
}

// Run performs one seeding pass.
func (app *Application) Run(ctx context.Context) error {
	ctx = slogx.WithContext(ctx, app.logger)

	started := time.Now()
	report, err := app.seeder.Run(ctx)
	app.logger.Info("seeding finished",
		"dealers", report.Dealers,
		"locations", report.Locations,
		"items", report.Items,
		"rate_programs", report.RatePrograms,
		"stored", report.Stored,
		"published", report.Published,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return err
}

// Close releases the store and cache connections.
func (app *Application) Close() error {
	var errs []error
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing store", "error", err)
			errs = append(errs, err)
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// initStore opens the configured document store.
func (app *Application) initStore(ctx context.Context) error {
	switch app.cfg.StoreBackend {
	case StoreDDB:
		cli, err := dynamo.NewClient(ctx, dynamo.ClientConfig{Endpoint: app.cfg.DDBEndpoint})
		if err != nil {
			return fmt.Errorf("failed to initialize dynamodb client: %w", err)
		}
		app.db = dynamo.NewStore(app.cfg.DDBTable, cli)
		app.logger.Info("using dynamodb store", "table", app.cfg.DDBTable)

	case StoreSQLite, "":
		dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.SQLiteFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
		app.logger.Info("using sqlite store", "file", app.cfg.SQLiteFile)

	default:
		return fmt.Errorf("unknown store backend %q", app.cfg.StoreBackend)
	}
	return nil
}

// initPlatform builds the token source and the platform clients.
func (app *Application) initPlatform(ctx context.Context) error {
	provider := confx.Chain{confx.Env{}}
	if app.cfg.ConfigFile != "" {
		fileValues, err := confx.YAMLFile(app.cfg.ConfigFile)
		if err != nil {
			return err
		}
		provider = append(provider, fileValues)
	}

	pcfg, err := platform.ConfigFrom(provider)
	if err != nil {
		return err
	}
	pcfg.Timeout = app.cfg.PlatformTimeout
	pcfg.RPS = app.cfg.PlatformRPS

	cache, err := app.tokenCache(ctx)
	if err != nil {
		return err
	}

	app.tokens = authx.NewTokenSource(pcfg.IdentityURL,
		authx.WithCache(cache),
		authx.WithTimeout(pcfg.Timeout),
		authx.WithAdapterFactory(restx.NewFactory(restx.WithLogger(app.logger))),
		authx.WithLogger(app.logger),
	)

	app.platform, err = platform.New(pcfg, app.tokens, app.logger)
	if err != nil {
		return err
	}
	app.logger.Info("platform clients ready", "api_url", pcfg.APIURL)
	return nil
}

func (app *Application) tokenCache(ctx context.Context) (cachex.Cache, error) {
	switch app.cfg.CacheBackend {
	case CacheRedis:
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		app.logger.Info("using redis token cache", "addr", app.cfg.RedisAddr)
		return cachex.NewRedis(app.redis, "", nil), nil

	case CacheMemory, "":
		return cachex.NewMemory(nil), nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", app.cfg.CacheBackend)
	}
}
