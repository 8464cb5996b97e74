package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/config"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/memstore"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/mongostore"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/pgstore"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/redisstore"
)

type StoreOptions struct {
	ConnectTO time.Duration
	PingTO    time.Duration
}

// OpenStore builds the store for cfg.Driver. Only a failure to build the
// client handle is returned.
func OpenStore(ctx context.Context, cfg *config.Config, opt StoreOptions) (storage.Store, error) {
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 10 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	switch cfg.Database.Driver {
	case config.DriverMongo:
		s, err := mongostore.Connect(cctx, cfg.Database.MongoURI(), cfg.Database.Name)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := pgstore.Open(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverRedis:
		return redisstore.Open(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), nil
	case config.DriverMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Database.Driver)
	}
}

// VerifyStore pings the store and logs the outcome. A failed ping is not
// fatal: the listener still starts and requests fail on first use.
func VerifyStore(ctx context.Context, store storage.Store, opt StoreOptions) bool {
	if opt.PingTO == 0 {
		opt.PingTO = 5 * time.Second
	}

	pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
	defer cancel()

	logger := logging.L()
	if err := store.Ping(pctx); err != nil {
		logger.Error().Err(err).Msg("storage ping failed, serving anyway")
		return false
	}
	logger.Info().Msg("Pinged your deployment. You successfully connected to the database!")

	if m, ok := store.(migrator); ok {
		if err := m.Migrate(pctx, domain.CollectionProjects, domain.CollectionMessages); err != nil {
			logger.Warn().Err(err).Msg("collection setup failed, retrying on first use")
		}
	}
	return true
}

// migrator is implemented by stores that create collections up front.
type migrator interface {
	Migrate(ctx context.Context, collections ...string) error
}
