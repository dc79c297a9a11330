package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
	Store  repositories.Store
	Photos services.PhotoStore

	mongoClient *mongo.Client
}

// NewApp connects to Postgres (with retries) and picks the photo store:
// GridFS when MONGO_URI is set, the upload directory otherwise.
func NewApp(cfg *config.Config) (*App, error) {
	effectiveURL := cfg.DBUrl
	if cfg.LDFlag_UsingIsolatedSchema {
		var err error
		effectiveURL, err = utils.WithIsolatedRole(cfg.DBUrl, cfg.UniqueRunnerID, cfg.UniqueRunNumber)
		if err != nil {
			return nil, err
		}
		utils.Logger.Infof("Using isolated schema; role=%s", utils.IsolatedRoleName(cfg.UniqueRunnerID, cfg.UniqueRunNumber))
	} else {
		utils.Logger.Info("Isolated schema disabled; using public schema.")
	}

	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, effectiveURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("Connected to DB on attempt %d", i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)
		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	a := &App{
		Config: cfg,
		DB:     dbPool,
		Store:  repositories.NewStore(dbPool),
	}
	if err := a.initPhotoStore(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) initPhotoStore() error {
	if a.Config.MongoURI == "" {
		disk, err := services.NewDiskPhotoStore(a.Config.UploadDir)
		if err != nil {
			return err
		}
		utils.Logger.Infof("Storing photos on disk in %s", a.Config.UploadDir)
		a.Photos = disk
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*connectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.Config.MongoURI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping: %w", err)
	}
	utils.Logger.Infof("Storing photos in GridFS database %s", a.Config.MongoDatabase)
	a.mongoClient = client
	a.Photos = services.NewGridFSPhotoStore(client.Database(a.Config.MongoDatabase))
	return nil
}

func (a *App) Close() {
	if a.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			utils.Logger.WithError(err).Warn("Mongo disconnect failed")
		}
	}
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("DB connection closed.")
	}
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}
