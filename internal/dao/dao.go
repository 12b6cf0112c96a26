package dao

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/haierkeys/fast-note-web/pkg/fileurl"
	"github.com/haierkeys/fast-note-web/pkg/util"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string // sqlite / mysql / postgres
	Path            string // sqlite 文件路径
	UserName        string
	Password        string
	Host            string // host[:port]
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

type Dao struct {
	Db          *gorm.DB
	tablePrefix string
	logger      *zap.Logger
}

func New(db *gorm.DB, tablePrefix string, lg *zap.Logger) *Dao {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Dao{Db: db, tablePrefix: tablePrefix, logger: lg}
}

// DB 返回带上下文的会话
func (d *Dao) DB(ctx context.Context) *gorm.DB {
	return d.Db.WithContext(ctx)
}

// Table 返回带前缀的表名
func (d *Dao) Table(name string) string {
	return d.tablePrefix + name
}

// NewDBEngineWithConfig opens the configured database and applies pool settings
// NewDBEngineWithConfig 根据配置创建数据库连接
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := useDialector(c)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if c.RunMode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(lg).LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	sqlDB.SetConnMaxLifetime(util.ParseDurationOr(c.ConnMaxLifetime, 10*time.Minute))
	sqlDB.SetConnMaxIdleTime(util.ParseDurationOr(c.ConnMaxIdleTime, 5*time.Minute))

	return db, nil
}

func useDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		)), nil
	case "postgres":
		host, port := c.Host, "5432"
		if h, p, err := net.SplitHostPort(c.Host); err == nil {
			host, port = h, p
		}
		return postgres.Open(fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Local",
			host,
			port,
			c.UserName,
			c.Password,
			c.Name,
		)), nil
	case "sqlite", "":
		if c.Path != ":memory:" && !fileurl.IsExist(c.Path) {
			if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
				return nil, err
			}
		}
		return sqlite.Open(c.Path), nil
	}
	return nil, fmt.Errorf("unsupported database type %q", c.Type)
}
