package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
)

// SlowQueryThreshold is the duration above which queries are logged as warnings.
const SlowQueryThreshold = 200 * time.Millisecond

// GormLogger routes gorm's log output through zerolog.
type GormLogger struct {
	log   *logger.Logger
	level gormlogger.LogLevel
}

// NewGormLogger creates a gorm logger at the given level name.
func NewGormLogger(log *logger.Logger, level string) *GormLogger {
	return &GormLogger{log: log, level: ParseLogLevel(level)}
}

// ParseLogLevel maps a level name to the gorm log level. Unknown names mean warn.
func ParseLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug", "info":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msgf(msg, args...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msgf(msg, args...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msgf(msg, args...)
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var event *zerolog.Event
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		event = l.log.Error().Err(err)
	case elapsed > SlowQueryThreshold && l.level >= gormlogger.Warn:
		event = l.log.Warn().Bool("slow", true)
	case l.level >= gormlogger.Info:
		event = l.log.Debug()
	default:
		return
	}

	sql, rows := fc()
	event.Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("gorm query")
}

var _ gormlogger.Interface = (*GormLogger)(nil)
