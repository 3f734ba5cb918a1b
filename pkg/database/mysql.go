package database

import (
	"fmt"
	"scanmenu-platform/internal/model"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options MySQL 连接参数
type Options struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	Charset      string
	MaxOpenConns int
	MaxIdleConns int
	Debug        bool
}

// InitMySQL 建立数据库连接
// 开启 TranslateError 以便唯一索引冲突被翻译为 gorm.ErrDuplicatedKey
func InitMySQL(opts Options) (*gorm.DB, error) {
	if opts.Charset == "" {
		opts.Charset = "utf8mb4"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=UTC",
		opts.User, opts.Password, opts.Host, opts.Port, opts.Name, opts.Charset)

	logLevel := gormlogger.Warn
	if opts.Debug {
		logLevel = gormlogger.Info
	}

	connection, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库连接池失败: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return connection, nil
}

// Migrate 自动迁移表结构，menu_links.slug 上的唯一索引由此创建
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}
