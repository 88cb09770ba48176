package backend

import (
	"context"
	"fmt"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/config"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/db"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/service"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/store"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/store/memory"
	log "github.com/sirupsen/logrus"
)

// Backend bundles the stores of one storage engine.
type Backend struct {
	Drivers       service.DriverStore
	Contributions service.ContributionStore
	Reports       service.ReportStore
	Close         func()
}

// Open builds the stores for cfg.DataBackend.
func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch cfg.DataBackend {
	case config.PostgresBackend:
		return openPostgres(ctx, cfg)
	case config.MemoryBackend:
		m := memory.New()
		log.Warn("using in-memory backend, data is lost on restart")
		return &Backend{Drivers: m, Contributions: m, Reports: m, Close: func() {}}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*Backend, error) {
	if cfg.MigrateOnStart {
		if err := db.RunMigrations(cfg.DBUrl); err != nil {
			return nil, err
		}
		log.Info("database migrations applied")
	}

	pool, err := db.Connect(ctx, cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	log.Printf("pg connection established successfully")

	return &Backend{
		Drivers:       store.NewDriverStore(pool),
		Contributions: store.NewContributionStore(pool),
		Reports:       store.NewReportStore(pool),
		Close:         pool.Close,
	}, nil
}
