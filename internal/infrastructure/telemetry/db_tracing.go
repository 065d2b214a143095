package telemetry

import (
	"fmt"
	"time"

	"github.com/iletigo/mutabakat/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	queryStartKey = "otel_timing:start"
	dbSystem      = "postgresql"
)

// DBTracing installs otelgorm spans and slow query warnings on a gorm.DB
type DBTracing struct {
	enabled    bool
	fullSQL    bool
	slowThresh time.Duration
	dbName     string
	logger     *zap.Logger
}

// NewDBTracing builds the plugin from telemetry config.
// Database tracing needs both telemetry and DB tracing enabled.
func NewDBTracing(cfg config.TelemetryConfig, logger *zap.Logger) *DBTracing {
	return &DBTracing{
		enabled:    cfg.Enabled && cfg.DBTraceEnabled,
		fullSQL:    cfg.DBLogFullSQL,
		slowThresh: cfg.DBSlowQueryThresh,
		dbName:     dbSystem,
		logger:     logger,
	}
}

// Register attaches the plugin and timing callbacks to db
func (p *DBTracing) Register(db *gorm.DB) error {
	if !p.enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.dbName)}
	if !p.fullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("register otelgorm: %w", err)
	}
	if err := p.registerTiming(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.fullSQL),
		zap.Duration("slow_query_threshold", p.slowThresh),
	)
	return nil
}

func (p *DBTracing) registerTiming(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}

	cb := db.Callback()
	register := []struct {
		op     string
		before func() error
		after  func() error
	}{
		{"create",
			func() error { return cb.Create().Before("gorm:create").Register("otel_timing:before_create", before) },
			func() error { return cb.Create().After("gorm:create").Register("otel_timing:after_create", p.after("create")) }},
		{"query",
			func() error { return cb.Query().Before("gorm:query").Register("otel_timing:before_query", before) },
			func() error { return cb.Query().After("gorm:query").Register("otel_timing:after_query", p.after("query")) }},
		{"update",
			func() error { return cb.Update().Before("gorm:update").Register("otel_timing:before_update", before) },
			func() error { return cb.Update().After("gorm:update").Register("otel_timing:after_update", p.after("update")) }},
		{"delete",
			func() error { return cb.Delete().Before("gorm:delete").Register("otel_timing:before_delete", before) },
			func() error { return cb.Delete().After("gorm:delete").Register("otel_timing:after_delete", p.after("delete")) }},
		{"row",
			func() error { return cb.Row().Before("gorm:row").Register("otel_timing:before_row", before) },
			func() error { return cb.Row().After("gorm:row").Register("otel_timing:after_row", p.after("row")) }},
		{"raw",
			func() error { return cb.Raw().Before("gorm:raw").Register("otel_timing:before_raw", before) },
			func() error { return cb.Raw().After("gorm:raw").Register("otel_timing:after_raw", p.after("raw")) }},
	}
	for _, r := range register {
		if err := r.before(); err != nil {
			return fmt.Errorf("register %s timing callback: %w", r.op, err)
		}
		if err := r.after(); err != nil {
			return fmt.Errorf("register %s timing callback: %w", r.op, err)
		}
	}
	return nil
}

func (p *DBTracing) after(op string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		if p.slowThresh <= 0 || elapsed < p.slowThresh {
			return
		}

		span := trace.SpanFromContext(tx.Statement.Context)
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
		)

		fields := []zap.Field{
			zap.String("operation", op),
			zap.String("table", tx.Statement.Table),
			zap.Duration("duration", elapsed),
			zap.Int64("rows_affected", tx.Statement.RowsAffected),
		}
		if p.fullSQL {
			fields = append(fields, zap.String("sql", tx.Statement.SQL.String()))
		}
		p.logger.Warn("Slow database query", fields...)
	}
}
