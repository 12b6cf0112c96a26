package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkglogger "github.com/haierkeys/fast-note-web/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowThreshold 慢查询阈值
const slowThreshold = 200 * time.Millisecond

// gormLogger 将 gorm 日志输出到 zap
type gormLogger struct {
	zap   *zap.Logger
	level logger.LogLevel
}

// NewGormLogger 创建 zap 适配的 gorm 日志器
func NewGormLogger(lg *zap.Logger) logger.Interface {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &gormLogger{zap: lg.Named("gorm").WithOptions(zap.AddCallerSkip(3)), level: logger.Warn}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	nl := *l
	nl.level = level
	return &nl
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.zap.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.zap.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.zap.Error(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	// record not found 属于正常业务分支，不记为错误
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.zap.Error("sql error",
			zap.String(pkglogger.FieldSQL, sql),
			zap.Int64(pkglogger.FieldRows, rows),
			zap.Duration(pkglogger.FieldDuration, elapsed),
			zap.Error(err),
		)
	case elapsed > slowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		l.zap.Warn("slow sql",
			zap.String(pkglogger.FieldSQL, sql),
			zap.Int64(pkglogger.FieldRows, rows),
			zap.Duration(pkglogger.FieldDuration, elapsed),
		)
	case l.level >= logger.Info:
		sql, rows := fc()
		l.zap.Debug("sql",
			zap.String(pkglogger.FieldSQL, sql),
			zap.Int64(pkglogger.FieldRows, rows),
			zap.Duration(pkglogger.FieldDuration, elapsed),
		)
	}
}
