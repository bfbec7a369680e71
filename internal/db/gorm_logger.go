package db

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

type gormLogger struct {
	log   hclog.Logger
	level logger.LogLevel
}

// NewGormLogger routes GORM output through hclog.
func NewGormLogger(log hclog.Logger) logger.Interface {
	return &gormLogger{log: log, level: logger.Info}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{log: g.log, level: level}
}

func (g *gormLogger) Info(_ context.Context, msg string, data ...any) {
	if g.level >= logger.Info {
		g.log.Info(msg, data...)
	}
}

func (g *gormLogger) Warn(_ context.Context, msg string, data ...any) {
	if g.level >= logger.Warn {
		g.log.Warn(msg, data...)
	}
}

func (g *gormLogger) Error(_ context.Context, msg string, data ...any) {
	if g.level >= logger.Error {
		g.log.Error(msg, data...)
	}
}

func (g *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	// not-found lookups are routine answers, not failures
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= logger.Error:
		g.log.Error("query failed", "error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > slowQueryThreshold && g.level >= logger.Warn:
		g.log.Warn("slow query", "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.level >= logger.Info:
		g.log.Debug("query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
