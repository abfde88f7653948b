// Package app wires configuration, stores, messaging, and handlers into one
// container consumed by the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/praxisdesk/availability/internal/availability/application/commands"
	"github.com/praxisdesk/availability/internal/availability/application/queries"
	"github.com/praxisdesk/availability/internal/availability/domain"
	availabilityCaldav "github.com/praxisdesk/availability/internal/availability/infrastructure/caldav"
	"github.com/praxisdesk/availability/internal/availability/infrastructure/cache"
	"github.com/praxisdesk/availability/internal/availability/infrastructure/persistence"
	"github.com/praxisdesk/availability/internal/shared/infrastructure/eventbus"
	"github.com/praxisdesk/availability/internal/shared/infrastructure/migrations"
	"github.com/praxisdesk/availability/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Stores
	Pool     *pgxpool.Pool // nil when running on SQLite
	SQLiteDB *sql.DB       // nil when running on PostgreSQL

	RedisClient *redis.Client

	// Repositories
	ScheduleRepo    domain.ScheduleRepository
	SlotRepo        domain.SlotRepository
	AppointmentRepo domain.AppointmentRepository

	// Messaging
	EventPublisher eventbus.Publisher

	// Calendar cache; nil without Redis.
	CalendarCache *cache.RedisCalendarCache

	// CalDAV publisher; nil unless configured.
	CalDAVPublisher *availabilityCaldav.Publisher

	// Command handlers
	SaveAvailabilityHandler *commands.SaveAvailabilityHandler
	BookAppointmentHandler  *commands.BookAppointmentHandler
	BlockTimeHandler        *commands.BlockTimeHandler
	UnblockTimeHandler      *commands.UnblockTimeHandler
	CancelSeriesHandler     *commands.CancelSeriesHandler

	// Query handlers
	GetAvailabilityHandler *queries.GetAvailabilityHandler
	ExpandSlotsHandler     *queries.ExpandSlotsHandler
	CalendarSlotsHandler   *queries.CalendarSlotsHandler
}

// NewContainer builds the dependency container: store selected by
// configuration, migrations applied, optional Redis and RabbitMQ attached.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.setupStore(ctx); err != nil {
		return nil, err
	}
	if err := c.setupRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.setupPublisher()
	c.setupCalDAV()
	c.setupHandlers()

	return c, nil
}

func (c *Container) setupStore(ctx context.Context) error {
	if c.Config.UsePostgres() {
		pool, err := pgxpool.New(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.Pool = pool
		c.ScheduleRepo = persistence.NewGuardedScheduleRepository(
			persistence.NewPostgresScheduleRepository(pool), c.Logger)
		c.SlotRepo = persistence.NewGuardedSlotRepository(
			persistence.NewPostgresSlotRepository(pool), c.Logger)
		c.AppointmentRepo = persistence.NewGuardedAppointmentRepository(
			persistence.NewPostgresAppointmentRepository(pool), c.Logger)
		c.Logger.Info("connected to PostgreSQL")
		return nil
	}

	path := c.Config.SQLitePath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	c.SQLiteDB = db
	c.ScheduleRepo = persistence.NewSQLiteScheduleRepository(db)
	c.SlotRepo = persistence.NewSQLiteSlotRepository(db)
	c.AppointmentRepo = persistence.NewSQLiteAppointmentRepository(db)
	c.Logger.Info("using SQLite store", "path", path)
	return nil
}

func (c *Container) setupRedis(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, calendar caching disabled", "error", err)
		return nil
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, calendar caching disabled", "error", err)
		return nil
	}
	c.RedisClient = client
	c.CalendarCache = cache.NewRedisCalendarCache(client, c.Config.CalendarCacheTTL)
	c.Logger.Info("connected to Redis")
	return nil
}

func (c *Container) setupPublisher() {
	if c.Config.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}
	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		c.Logger.Warn("RabbitMQ not available, event publishing disabled", "error", err)
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}
	c.EventPublisher = publisher
	c.Logger.Info("connected to RabbitMQ")
}

func (c *Container) setupCalDAV() {
	if c.Config.CalDAVURL == "" {
		return
	}
	publisher := availabilityCaldav.NewPublisher(
		c.Config.CalDAVURL,
		c.Config.CalDAVUsername,
		c.Config.CalDAVPassword,
		c.Logger,
	).WithDeleteMissing(c.Config.CalDAVDeleteMissing)
	if c.Config.CalDAVCalendarPath != "" {
		publisher = publisher.WithCalendarPath(c.Config.CalDAVCalendarPath)
	}
	c.CalDAVPublisher = publisher
}

func (c *Container) setupHandlers() {
	var invalidator commands.CalendarInvalidator
	var calendarCache queries.CalendarCache
	if c.CalendarCache != nil {
		invalidator = c.CalendarCache
		calendarCache = c.CalendarCache
	}

	c.SaveAvailabilityHandler = commands.NewSaveAvailabilityHandler(
		c.ScheduleRepo, c.EventPublisher, invalidator, c.Logger)
	c.BookAppointmentHandler = commands.NewBookAppointmentHandler(
		c.SlotRepo, c.AppointmentRepo, c.EventPublisher, invalidator, c.Logger)
	c.BlockTimeHandler = commands.NewBlockTimeHandler(
		c.SlotRepo, c.AppointmentRepo, c.EventPublisher, invalidator, c.Logger)
	c.UnblockTimeHandler = commands.NewUnblockTimeHandler(
		c.SlotRepo, c.EventPublisher, invalidator, c.Logger)
	c.CancelSeriesHandler = commands.NewCancelSeriesHandler(
		c.AppointmentRepo, c.EventPublisher, invalidator, c.Logger)

	c.GetAvailabilityHandler = queries.NewGetAvailabilityHandler(c.ScheduleRepo)
	c.ExpandSlotsHandler = queries.NewExpandSlotsHandler(c.ScheduleRepo)
	c.CalendarSlotsHandler = queries.NewCalendarSlotsHandler(
		c.ScheduleRepo, c.SlotRepo, calendarCache, c.Logger)
}

// Close releases all held resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close Redis client", "error", err)
		}
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("failed to close sqlite database", "error", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
