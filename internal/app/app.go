package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"Socialmedia/internal/config"
	"Socialmedia/internal/middleware"
	"Socialmedia/internal/repo"
	"Socialmedia/migrations"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type App struct {
	cfg    config.Config
	log    zerolog.Logger
	pg     *pgxpool.Pool
	sqlite *sql.DB
	redis  *redis.Client
	router *gin.Engine
}

// Stores are the collaborators the routes are built from.
type Stores struct {
	Accounts repo.AccountRepo
	Messages repo.MessageRepo
	// Redis enables rate limiting on /register and /login when non-nil.
	Redis *redis.Client
	Ping  func(ctx context.Context) error
}

func New(cfg config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}
	stores := Stores{}

	switch cfg.Store.Driver {
	case config.DriverSQLite:
		db, err := newSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.sqlite = db
		if err := runSQLiteMigrations(db); err != nil {
			a.Close(context.Background())
			return nil, err
		}
		stores.Accounts = repo.NewSQLAccountRepo(db)
		stores.Messages = repo.NewSQLMessageRepo(db)
		stores.Ping = db.PingContext
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("using sqlite store")
	default:
		if err := runMigrations(cfg.Store.PGDSN); err != nil {
			return nil, err
		}
		db, err := newPostgres(cfg.Store)
		if err != nil {
			return nil, err
		}
		a.pg = db
		stores.Accounts = repo.NewPGAccountRepo(db)
		stores.Messages = repo.NewPGMessageRepo(db)
		stores.Ping = db.Ping
		log.Info().Msg("using postgres store")
	}

	if cfg.Redis.Enabled() {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			a.Close(context.Background())
			return nil, err
		}
		a.redis = rdb
		stores.Redis = rdb
	} else {
		log.Warn().Msg("no redis configured, rate limiting disabled")
	}

	a.router = newRouter(cfg, log, stores)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pg != nil {
		a.pg.Close()
	}
	if a.sqlite != nil {
		return a.sqlite.Close()
	}
	return nil
}

// pgPoolConfig maps the store settings onto a pgxpool config.
func pgPoolConfig(sc config.StoreConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(sc.PGDSN)
	if err != nil {
		return nil, fmt.Errorf("pg dsn: %w", err)
	}
	pc.MaxConns = int32(sc.PGMaxConns)
	pc.MinConns = int32(sc.PGMinConns)
	pc.MaxConnIdleTime = sc.PGConnIdleTime.Duration()
	pc.MaxConnLifetime = sc.PGConnLifetime.Duration()
	return pc, nil
}

func newPostgres(sc config.StoreConfig) (*pgxpool.Pool, error) {
	pc, err := pgPoolConfig(sc)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), sc.ConnectTimeout.Duration())
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg unreachable: %w", err)
	}
	return pool, nil
}

// newSQLite opens path with foreign keys on. A single connection keeps
// ":memory:" databases shared and serialises writers.
func newSQLite(path string) (*sql.DB, error) {
	dsn := path + "?_foreign_keys=on"
	if !strings.Contains(path, ":memory:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite mkdir: %w", err)
		}
		dsn += "&_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return db, nil
}

func redisOptions(rc config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:        rc.Addr,
		Password:    rc.Password,
		DB:          rc.DB,
		DialTimeout: rc.DialTimeout.Duration(),
		ReadTimeout:  rc.DialTimeout.Duration(),
		WriteTimeout: rc.DialTimeout.Duration(),
	}
}

func newRedis(rc config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(redisOptions(rc))
	ctx, cancel := context.WithTimeout(context.Background(), rc.DialTimeout.Duration())
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", rc.Addr, err)
	}
	return rdb, nil
}

func runMigrations(dsn string) error {
	goose.SetBaseFS(migrations.FS)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrations.PostgresDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func runSQLiteMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, migrations.SQLiteDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func newRouter(cfg config.Config, log zerolog.Logger, stores Stores) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, log, stores)
	return r
}
